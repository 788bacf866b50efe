package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// String methods render a compact single-line form of each node. The
// canonical multi-line layout lives in the format package.

func (p *Program) String() string {
	var b strings.Builder
	for i, item := range p.Items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(item.String())
	}
	return b.String()
}

func (c *Comment) String() string {
	return c.Text
}

func (i *Ident) String() string {
	return i.Value
}

func (f *Function) String() string {
	var b strings.Builder

	b.WriteString(f.Definition.String())
	b.WriteString(" ")
	b.WriteString(exprString(f.Body))

	if len(f.Tests) > 0 {
		b.WriteString(" [")
		for i, t := range f.Tests {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(t.String())
		}
		b.WriteString("]")
	}

	return b.String()
}

func (fd *FunctionDefinition) String() string {
	var b strings.Builder
	b.WriteString("fn ")
	b.WriteString(fd.Name.Value)
	b.WriteString("(")
	for i, param := range fd.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(param.String())
	}
	b.WriteString(")")
	return b.String()
}

func (p *Parameter) String() string {
	return p.Name.Value
}

func (t *Test) String() string {
	return fmt.Sprintf("%s = %s", exprString(t.Input), exprString(t.Output))
}

func (l *LetStmt) String() string {
	return fmt.Sprintf("let %s = %s;", l.Name.Value, exprString(l.Value))
}

func (r *ReturnStmt) String() string {
	return fmt.Sprintf("return %s;", exprString(r.Value))
}

func (e *ExprStmt) String() string {
	return exprString(e.Expr) + ";"
}

func (*BadStmt) String() string {
	return "error;"
}

func (n *NumberExpr) String() string {
	return strconv.FormatInt(int64(n.Value), 10)
}

func (s *StringExpr) String() string {
	return `"` + s.Value + `"`
}

func (b *BlockExpr) String() string {
	if len(b.Stmts) == 0 {
		return "{}"
	}

	var out strings.Builder
	out.WriteString("{ ")
	for _, stmt := range b.Stmts {
		out.WriteString(stmt.String())
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}

func (i *IfExpr) String() string {
	s := fmt.Sprintf("if %s %s", exprString(i.Cond), i.Body.String())
	if i.Else != nil {
		s += " else " + i.Else.String()
	}
	return s
}

func (c *CallExpr) String() string {
	args := make([]string, len(c.Args))
	for i, arg := range c.Args {
		args[i] = exprString(arg)
	}
	return fmt.Sprintf("%s(%s)", c.Name.Value, strings.Join(args, ", "))
}

func (v *VariableExpr) String() string {
	return v.Name
}

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", exprString(b.Left), b.Op, exprString(b.Right))
}

func (*BadExpr) String() string {
	return "error"
}

func exprString(e Expr) string {
	if e == nil {
		return "error"
	}
	return e.String()
}
