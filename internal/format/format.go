// Package format renders an AST back to source text in a canonical layout.
// Every binary operation is parenthesized, blocks put one statement per
// line, and keywords use the dialect's canonical spelling.
package format

import (
	"strconv"
	"strings"

	"wryneck/internal/ast"
	"wryneck/token"
)

// DefaultIndent is the number of spaces per nesting level.
const DefaultIndent = 4

type printer struct {
	b       strings.Builder
	dialect *token.Dialect
	unit    string
	level   int
}

func newPrinter(d *token.Dialect, indent int) *printer {
	if d == nil {
		d = token.Classic
	}
	if indent <= 0 {
		indent = DefaultIndent
	}
	return &printer{dialect: d, unit: strings.Repeat(" ", indent)}
}

// Program formats a whole program. Functions are separated by a blank line
// and the output ends with a single newline.
func Program(prog *ast.Program, d *token.Dialect, indent int) string {
	p := newPrinter(d, indent)

	for i, item := range prog.Items {
		if i > 0 {
			_, prevIsFn := prog.Items[i-1].(*ast.Function)
			_, isFn := item.(*ast.Function)
			if prevIsFn || isFn {
				p.b.WriteString("\n")
			}
		}
		p.topLevel(item)
		p.b.WriteString("\n")
	}

	return p.b.String()
}

// Node formats a single node without a trailing newline.
func Node(node ast.Node, d *token.Dialect, indent int) string {
	p := newPrinter(d, indent)

	switch n := node.(type) {
	case *ast.Program:
		return strings.TrimSuffix(Program(n, d, indent), "\n")
	case ast.TopLevel:
		p.topLevel(n)
	case ast.Stmt:
		p.stmt(n)
	case ast.Expr:
		p.expr(n)
	case *ast.Test:
		p.test(n)
	case *ast.FunctionDefinition:
		p.definition(n)
	case *ast.Parameter:
		p.b.WriteString(p.name(n.Name.Value))
	case *ast.Ident:
		p.b.WriteString(p.name(n.Value))
	}
	return p.b.String()
}

func (p *printer) newline() {
	p.b.WriteString("\n")
	p.b.WriteString(strings.Repeat(p.unit, p.level))
}

func (p *printer) keyword(role token.TokenType) string {
	return p.dialect.Spelling(role)
}

func (p *printer) name(canonical string) string {
	return p.dialect.SurfaceName(canonical)
}

func (p *printer) topLevel(item ast.TopLevel) {
	switch n := item.(type) {
	case *ast.Comment:
		p.b.WriteString(n.Text)
	case *ast.Function:
		p.function(n)
	}
}

func (p *printer) function(fn *ast.Function) {
	p.definition(fn.Definition)
	p.b.WriteString(" ")
	p.expr(fn.Body)

	if len(fn.Tests) == 0 {
		return
	}

	p.b.WriteString(" [")
	p.level++
	for _, t := range fn.Tests {
		p.newline()
		p.test(t)
		p.b.WriteString(",")
	}
	p.level--
	p.newline()
	p.b.WriteString("]")
}

func (p *printer) definition(def *ast.FunctionDefinition) {
	p.b.WriteString(p.keyword(token.FUNCTION))
	p.b.WriteString(" ")
	if def == nil {
		p.b.WriteString("error()")
		return
	}

	p.b.WriteString(p.name(def.Name.Value))
	p.b.WriteString("(")
	for i, param := range def.Params {
		if i > 0 {
			p.b.WriteString(", ")
		}
		p.b.WriteString(p.name(param.Name.Value))
	}
	p.b.WriteString(")")
}

func (p *printer) test(t *ast.Test) {
	p.expr(t.Input)
	p.b.WriteString(" = ")
	p.expr(t.Output)
}

func (p *printer) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Comment:
		p.b.WriteString(n.Text)
	case *ast.LetStmt:
		p.b.WriteString(p.keyword(token.LET))
		p.b.WriteString(" ")
		p.b.WriteString(p.name(n.Name.Value))
		p.b.WriteString(" = ")
		p.expr(n.Value)
		p.b.WriteString(";")
	case *ast.ReturnStmt:
		p.b.WriteString(p.keyword(token.RETURN))
		p.b.WriteString(" ")
		p.expr(n.Value)
		p.b.WriteString(";")
	case *ast.ExprStmt:
		p.expr(n.Expr)
		p.b.WriteString(";")
	case *ast.BadStmt:
		p.b.WriteString("error;")
	}
}

func (p *printer) block(b *ast.BlockExpr) {
	if len(b.Stmts) == 0 {
		p.b.WriteString("{}")
		return
	}

	p.b.WriteString("{")
	p.level++
	for _, s := range b.Stmts {
		p.newline()
		p.stmt(s)
	}
	p.level--
	p.newline()
	p.b.WriteString("}")
}

func (p *printer) expr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.NumberExpr:
		p.b.WriteString(strconv.FormatInt(int64(n.Value), 10))
	case *ast.StringExpr:
		p.b.WriteString(`"`)
		p.b.WriteString(n.Value)
		p.b.WriteString(`"`)
	case *ast.VariableExpr:
		p.b.WriteString(p.name(n.Name))
	case *ast.CallExpr:
		p.b.WriteString(p.name(n.Name.Value))
		p.b.WriteString("(")
		for i, arg := range n.Args {
			if i > 0 {
				p.b.WriteString(", ")
			}
			p.expr(arg)
		}
		p.b.WriteString(")")
	case *ast.BinaryExpr:
		p.b.WriteString("(")
		p.expr(n.Left)
		p.b.WriteString(" ")
		p.b.WriteString(n.Op.String())
		p.b.WriteString(" ")
		p.expr(n.Right)
		p.b.WriteString(")")
	case *ast.BlockExpr:
		p.block(n)
	case *ast.IfExpr:
		p.b.WriteString(p.keyword(token.IF))
		p.b.WriteString(" ")
		p.expr(n.Cond)
		p.b.WriteString(" ")
		p.block(n.Body)
		if n.Else != nil {
			p.b.WriteString(" ")
			p.b.WriteString(p.keyword(token.ELSE))
			p.b.WriteString(" ")
			p.block(n.Else)
		}
	default:
		// BadExpr, or a nil left by a failed production
		p.b.WriteString("error")
	}
}
