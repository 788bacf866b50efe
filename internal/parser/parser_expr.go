package parser

import (
	"wryneck/internal/ast"
	"wryneck/token"
)

// tiers lists the binary operators from lowest to highest precedence. All
// of them are left-associative.
var tiers = [][]token.TokenType{
	{token.PLUS, token.MINUS},
	{token.STAR, token.SLASH},
}

var opcodes = map[token.TokenType]ast.Opcode{
	token.PLUS:  ast.Add,
	token.MINUS: ast.Sub,
	token.STAR:  ast.Mul,
	token.SLASH: ast.Div,
}

func (p *Parser) parseExpr() ast.Expr {
	return p.parseTier(0)
}

// parseTier folds operands of the next tier into left-leaning BinaryExprs,
// so a+b-c becomes ((a+b)-c).
func (p *Parser) parseTier(level int) ast.Expr {
	if level == len(tiers) {
		return p.parseAtom()
	}

	left := p.parseTier(level + 1)
	for p.match(tiers[level]...) {
		op := p.previous()
		right := p.parseTier(level + 1)
		left = &ast.BinaryExpr{
			Pos:    left.NodePos(),
			EndPos: right.NodeEndPos(),
			Left:   left,
			Op:     opcodes[op.Type],
			Right:  right,
		}
	}
	return left
}

// canStartExpr reports whether tt can begin an atom.
func canStartExpr(tt token.TokenType) bool {
	switch tt {
	case token.NUMBER, token.STRING, token.IDENTIFIER, token.LEFT_PAREN, token.LEFT_BRACE, token.IF:
		return true
	}
	return false
}

func (p *Parser) parseAtom() ast.Expr {
	tok := p.peek()

	switch tok.Type {
	case token.NUMBER:
		p.advance()
		value, err := token.ParseNumber(tok.Lexeme, tok.Position)
		if err != nil {
			p.fail(err)
			return &ast.BadExpr{Bad: ast.BadNode{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Message: err.Error()}}
		}
		return &ast.NumberExpr{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Value: value}

	case token.STRING:
		p.advance()
		return &ast.StringExpr{
			Pos:    p.makePos(tok),
			EndPos: p.makeEndPos(tok),
			Value:  tok.Lexeme[1 : len(tok.Lexeme)-1],
		}

	case token.IDENTIFIER:
		p.advance()
		// An identifier directly followed by '(' is always a call.
		if p.check(token.LEFT_PAREN) {
			return p.parseCall(tok)
		}
		return &ast.VariableExpr{
			Pos:    p.makePos(tok),
			EndPos: p.makeEndPos(tok),
			Name:   p.dialect.CanonicalName(tok.Lexeme),
		}

	case token.LEFT_PAREN:
		p.advance()
		inner := p.parseExpr()
		if _, ok := p.expect(token.RIGHT_PAREN); !ok {
			p.skipStray(token.RIGHT_PAREN, is())
			return &ast.BadExpr{Bad: p.badNode(tok)}
		}
		return inner

	case token.LEFT_BRACE:
		return p.parseBlock()

	case token.IF:
		return p.parseIf()
	}

	p.errorExpected("expression")
	if !p.atBoundary() && !closesList(tok.Type) {
		p.advance()
	}
	return &ast.BadExpr{Bad: p.badNode(tok)}
}

// closesList reports whether tt ends an element of an argument, parameter
// or test list, so a missing operand leaves it to that list.
func closesList(tt token.TokenType) bool {
	switch tt {
	case token.RIGHT_PAREN, token.RIGHT_BRACKET, token.COMMA, token.EQUAL:
		return true
	}
	return false
}

func (p *Parser) parseCall(name token.Token) ast.Expr {
	p.advance() // '('

	args := []ast.Expr{}
	valid := p.parseList(token.RIGHT_PAREN, canStartExpr, func() bool {
		args = append(args, p.parseExpr())
		return true
	})

	end, ok := p.expect(token.RIGHT_PAREN)
	if !ok || !valid {
		return &ast.BadExpr{Bad: p.badNode(name)}
	}

	return &ast.CallExpr{
		Pos:    p.makePos(name),
		EndPos: p.makeEndPos(end),
		Name:   p.makeIdent(name),
		Args:   args,
	}
}

// parseBlock parses '{' statement* '}'. The caller has checked for '{'.
func (p *Parser) parseBlock() ast.Expr {
	start := p.advance()

	// A function marker cannot occur inside a block, so an unclosed block
	// ends before the next function.
	stmts := []ast.Stmt{}
	for !p.check(token.RIGHT_BRACE) && !p.check(token.FUNCTION) && !p.isAtEnd() {
		stmts = append(stmts, p.parseStatement())
	}

	end, ok := p.expect(token.RIGHT_BRACE)
	if !ok {
		return &ast.BadExpr{Bad: p.badNode(start)}
	}

	return &ast.BlockExpr{
		Pos:    p.makePos(start),
		EndPos: p.makeEndPos(end),
		Stmts:  stmts,
	}
}

// parseBranch parses the braced body of an if or else.
func (p *Parser) parseBranch(start token.Token) (*ast.BlockExpr, *ast.BadExpr) {
	if !p.check(token.LEFT_BRACE) {
		p.expect(token.LEFT_BRACE)
		return nil, &ast.BadExpr{Bad: p.badNode(start)}
	}

	switch body := p.parseBlock().(type) {
	case *ast.BlockExpr:
		return body, nil
	default:
		return nil, &ast.BadExpr{Bad: p.badNode(start)}
	}
}

func (p *Parser) parseIf() ast.Expr {
	start := p.advance()
	cond := p.parseExpr()

	body, bad := p.parseBranch(start)
	if bad != nil {
		return bad
	}

	node := &ast.IfExpr{
		Pos:    p.makePos(start),
		EndPos: body.EndPos,
		Cond:   cond,
		Body:   body,
	}

	if p.match(token.ELSE) {
		elseBody, bad := p.parseBranch(start)
		if bad != nil {
			return bad
		}
		node.Else = elseBody
		node.EndPos = elseBody.EndPos
	}

	return node
}
