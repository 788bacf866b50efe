package parser

import (
	"wryneck/internal/ast"
	"wryneck/token"
)

// canStartStmt reports whether tt can begin a statement.
func canStartStmt(tt token.TokenType) bool {
	switch tt {
	case token.COMMENT, token.LET, token.RETURN:
		return true
	}
	return canStartExpr(tt)
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.peek().Type {
	case token.COMMENT:
		return p.parseComment()
	case token.LET:
		return p.parseLetStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	}

	start := p.peek()
	if !canStartExpr(start.Type) {
		p.errorExpected("statement")
		p.advance()
		return &ast.BadStmt{Bad: p.badNode(start)}
	}

	expr := p.parseExpr()
	semi, ok := p.terminate()
	if !ok {
		return &ast.BadStmt{Bad: p.badNode(start)}
	}

	return &ast.ExprStmt{
		Pos:    expr.NodePos(),
		EndPos: p.makeEndPos(semi),
		Expr:   expr,
	}
}

// terminate consumes the ';' ending a statement. When something else is
// there, a token that cannot start the next statement is skipped along
// with a ';' right after it, so it is reported once.
func (p *Parser) terminate() (token.Token, bool) {
	semi, ok := p.expect(token.SEMICOLON)
	if !ok {
		p.skipStray(token.SEMICOLON, canStartStmt)
	}
	return semi, ok
}

// abandon ends a statement that cannot go on, taking a ';' at the current
// token as its terminator.
func (p *Parser) abandon(start token.Token) ast.Stmt {
	p.match(token.SEMICOLON)
	return &ast.BadStmt{Bad: p.badNode(start)}
}

func (p *Parser) parseLetStmt() ast.Stmt {
	start := p.advance()
	valid := true

	nameTok, ok := p.expect(token.IDENTIFIER)
	if !ok {
		valid = false
		// A stray token stands in for the name: "let @ = 1;".
		if nameTok, ok = p.skipStray(token.IDENTIFIER, is(token.EQUAL)); !ok && !p.check(token.EQUAL) {
			return p.abandon(start)
		}
	}

	if _, ok := p.expect(token.EQUAL); !ok {
		valid = false
		// "let x 1;" reads as a missing '=', "let x @ 1;" as a misspelled one.
		if _, found := p.skipStray(token.EQUAL, canStartExpr); !found && !canStartExpr(p.peek().Type) {
			return p.abandon(start)
		}
	}

	value := p.parseExpr()
	semi, ok := p.terminate()
	if !ok || !valid {
		return &ast.BadStmt{Bad: p.badNode(start)}
	}

	return &ast.LetStmt{
		Pos:    p.makePos(start),
		EndPos: p.makeEndPos(semi),
		Name:   p.makeIdent(nameTok),
		Value:  value,
	}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.advance()

	value := p.parseExpr()
	semi, ok := p.terminate()
	if !ok {
		return &ast.BadStmt{Bad: p.badNode(start)}
	}

	return &ast.ReturnStmt{
		Pos:    p.makePos(start),
		EndPos: p.makeEndPos(semi),
		Value:  value,
	}
}
