package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
	"wryneck/internal/ast"
	"wryneck/token"
)

// converter lowers the participle parse tree into the shared AST so both
// parsers can be compared node for node.
type converter struct {
	dialect *token.Dialect
}

func position(p lexer.Position) ast.Position {
	return ast.Position{
		Filename: p.Filename,
		Line:     p.Line,
		Column:   p.Column,
		Offset:   p.Offset,
	}
}

func (c *converter) program(p *Program) (*ast.Program, error) {
	prog := &ast.Program{
		Pos:    position(p.Pos),
		EndPos: position(p.EndPos),
		Items:  make([]ast.TopLevel, 0, len(p.Items)),
	}

	for _, item := range p.Items {
		switch {
		case item.Comment != nil:
			prog.Items = append(prog.Items, c.comment(item.Comment))
		case item.Function != nil:
			fn, err := c.function(item.Function)
			if err != nil {
				return nil, err
			}
			prog.Items = append(prog.Items, fn)
		}
	}
	return prog, nil
}

func (c *converter) comment(cm *Comment) *ast.Comment {
	return &ast.Comment{Pos: position(cm.Pos), EndPos: position(cm.EndPos), Text: cm.Text}
}

func (c *converter) ident(id *PosIdent) ast.Ident {
	return ast.Ident{
		Pos:    position(id.Pos),
		EndPos: position(id.EndPos),
		Value:  c.dialect.CanonicalName(id.Value),
	}
}

func (c *converter) function(f *Function) (*ast.Function, error) {
	def := &ast.FunctionDefinition{
		Pos:    position(f.Pos),
		EndPos: position(f.Body.Pos),
		Name:   c.ident(f.Name),
		Params: make([]*ast.Parameter, 0, len(f.Params)),
	}
	for _, p := range f.Params {
		name := c.ident(p)
		def.Params = append(def.Params, &ast.Parameter{Pos: name.Pos, EndPos: name.EndPos, Name: name})
	}

	body, err := c.expr(f.Body)
	if err != nil {
		return nil, err
	}

	fn := &ast.Function{
		Pos:        position(f.Pos),
		EndPos:     position(f.EndPos),
		Definition: def,
		Body:       body,
		Tests:      []*ast.Test{},
	}

	if f.Tests != nil {
		for _, t := range f.Tests.Tests {
			input, err := c.expr(t.Input)
			if err != nil {
				return nil, err
			}
			output, err := c.expr(t.Output)
			if err != nil {
				return nil, err
			}
			fn.Tests = append(fn.Tests, &ast.Test{
				Pos:    position(t.Pos),
				EndPos: position(t.EndPos),
				Input:  input,
				Output: output,
			})
		}
	}
	return fn, nil
}

func (c *converter) statement(s *Statement) (ast.Stmt, error) {
	pos, end := position(s.Pos), position(s.EndPos)

	switch {
	case s.Comment != nil:
		return c.comment(s.Comment), nil
	case s.Let != nil:
		value, err := c.expr(s.Let.Value)
		if err != nil {
			return nil, err
		}
		return &ast.LetStmt{Pos: pos, EndPos: end, Name: c.ident(s.Let.Name), Value: value}, nil
	case s.Return != nil:
		value, err := c.expr(s.Return)
		if err != nil {
			return nil, err
		}
		return &ast.ReturnStmt{Pos: pos, EndPos: end, Value: value}, nil
	default:
		value, err := c.expr(s.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Pos: pos, EndPos: end, Expr: value}, nil
	}
}

var opcodes = map[string]ast.Opcode{
	"+": ast.Add,
	"-": ast.Sub,
	"*": ast.Mul,
	"/": ast.Div,
}

func (c *converter) expr(e *Expr) (ast.Expr, error) {
	left, err := c.term(e.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range e.Ops {
		right, err := c.term(op.Right)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{
			Pos:    left.NodePos(),
			EndPos: position(op.EndPos),
			Left:   left,
			Op:     opcodes[op.Operator],
			Right:  right,
		}
	}
	return left, nil
}

func (c *converter) term(t *Term) (ast.Expr, error) {
	left, err := c.atom(t.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range t.Ops {
		right, err := c.atom(op.Right)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{
			Pos:    left.NodePos(),
			EndPos: position(op.EndPos),
			Left:   left,
			Op:     opcodes[op.Operator],
			Right:  right,
		}
	}
	return left, nil
}

func (c *converter) atom(a *Atom) (ast.Expr, error) {
	pos, end := position(a.Pos), position(a.EndPos)

	switch {
	case a.Number != nil:
		v, err := token.ParseNumber(*a.Number, pos)
		if err != nil {
			return nil, err
		}
		return &ast.NumberExpr{Pos: pos, EndPos: end, Value: v}, nil
	case a.String != nil:
		text := *a.String
		return &ast.StringExpr{Pos: pos, EndPos: end, Value: text[1 : len(text)-1]}, nil
	case a.Call != nil:
		call := &ast.CallExpr{Pos: pos, EndPos: end, Name: c.ident(a.Call.Name), Args: make([]ast.Expr, 0, len(a.Call.Args))}
		for _, arg := range a.Call.Args {
			v, err := c.expr(arg)
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, v)
		}
		return call, nil
	case a.Var != nil:
		return &ast.VariableExpr{Pos: pos, EndPos: end, Name: c.dialect.CanonicalName(*a.Var)}, nil
	case a.Parens != nil:
		return c.expr(a.Parens)
	case a.Block != nil:
		return c.block(a.Block)
	case a.If != nil:
		return c.ifExpr(a.If)
	}
	return &ast.BadExpr{Bad: ast.BadNode{Pos: pos, EndPos: end, Message: "empty atom"}}, nil
}

func (c *converter) block(b *Block) (*ast.BlockExpr, error) {
	block := &ast.BlockExpr{
		Pos:    position(b.Pos),
		EndPos: position(b.EndPos),
		Stmts:  make([]ast.Stmt, 0, len(b.Statements)),
	}
	for _, s := range b.Statements {
		stmt, err := c.statement(s)
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	return block, nil
}

func (c *converter) ifExpr(i *IfExpr) (ast.Expr, error) {
	cond, err := c.expr(i.Cond)
	if err != nil {
		return nil, err
	}
	body, err := c.block(i.Body)
	if err != nil {
		return nil, err
	}

	node := &ast.IfExpr{Pos: position(i.Pos), EndPos: position(i.EndPos), Cond: cond, Body: body}
	if i.Else != nil {
		if node.Else, err = c.block(i.Else); err != nil {
			return nil, err
		}
	}
	return node, nil
}
