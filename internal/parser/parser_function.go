package parser

import (
	"wryneck/internal/ast"
	"wryneck/token"
)

// parseFunction parses a definition, a body expression and an optional
// test block. A function whose definition fails is still returned with
// what was parsed, and its body is parsed when one follows.
func (p *Parser) parseFunction() *ast.Function {
	start := p.peek()

	def, ok := p.parseFunctionDefinition()

	var body ast.Expr
	if ok || canStartExpr(p.peek().Type) {
		body = p.parseExpr()
	} else {
		body = &ast.BadExpr{Bad: p.badNode(start)}
	}

	fn := &ast.Function{
		Pos:        p.makePos(start),
		EndPos:     body.NodeEndPos(),
		Definition: def,
		Body:       body,
		Tests:      []*ast.Test{},
	}

	if p.check(token.LEFT_BRACKET) {
		tests, end := p.parseTests()
		fn.Tests = tests
		fn.EndPos = end
	}

	return fn
}

// startsDefinitionRest reports whether tt can follow a missing function
// name or '(' without being a stray: the parameter list or the body.
func startsDefinitionRest(tt token.TokenType) bool {
	switch tt {
	case token.LEFT_PAREN, token.RIGHT_PAREN:
		return true
	}
	return canStartExpr(tt)
}

// parseFunctionDefinition parses the marker, the name and the parameter
// list. On failure the definition holds what was parsed.
func (p *Parser) parseFunctionDefinition() (*ast.FunctionDefinition, bool) {
	start := p.advance()
	def := &ast.FunctionDefinition{
		Pos:    p.makePos(start),
		EndPos: p.makeEndPos(start),
		Params: []*ast.Parameter{},
	}
	valid := true

	nameTok, ok := p.expect(token.IDENTIFIER)
	if !ok {
		valid = false
		nameTok, ok = p.skipStray(token.IDENTIFIER, startsDefinitionRest)
	}
	if ok {
		def.Name = p.makeIdent(nameTok)
		def.EndPos = def.Name.EndPos
	}

	if _, ok := p.expect(token.LEFT_PAREN); !ok {
		valid = false
		found := false
		if p.check(token.IDENTIFIER) || p.check(token.RIGHT_PAREN) {
			found = true
		} else {
			_, found = p.skipStray(token.LEFT_PAREN, startsDefinitionRest)
		}
		// Without a parameter list, as in "fn f 1", the body comes next.
		if !found {
			return def, false
		}
	}

	params := p.parseList(token.RIGHT_PAREN, is(token.IDENTIFIER), func() bool {
		tok, ok := p.expect(token.IDENTIFIER)
		if ok {
			name := p.makeIdent(tok)
			def.Params = append(def.Params, &ast.Parameter{Pos: name.Pos, EndPos: name.EndPos, Name: name})
		}
		return ok
	})

	end, ok := p.expect(token.RIGHT_PAREN)
	if !ok {
		return def, false
	}
	def.EndPos = p.makeEndPos(end)
	return def, valid && params
}

// parseTests parses '[' (input '=' output),* ']'. The caller has checked
// for '['.
func (p *Parser) parseTests() ([]*ast.Test, ast.Position) {
	p.advance()

	tests := []*ast.Test{}
	p.parseList(token.RIGHT_BRACKET, canStartExpr, func() bool {
		tests = append(tests, p.parseTest())
		return true
	})

	end, ok := p.expect(token.RIGHT_BRACKET)
	if !ok {
		return tests, p.makeEndPos(p.previous())
	}
	return tests, p.makeEndPos(end)
}

func (p *Parser) parseTest() *ast.Test {
	input := p.parseExpr()
	test := &ast.Test{
		Pos:    input.NodePos(),
		EndPos: input.NodeEndPos(),
		Input:  input,
	}

	if _, ok := p.expect(token.EQUAL); !ok {
		_, found := p.skipStray(token.EQUAL, func(tt token.TokenType) bool {
			return tt == token.COMMA || tt == token.RIGHT_BRACKET || canStartExpr(tt)
		})
		if !found && !canStartExpr(p.peek().Type) {
			start := p.peek()
			test.Output = &ast.BadExpr{Bad: ast.BadNode{
				Pos:     p.makePos(start),
				EndPos:  p.makePos(start),
				Message: p.lastMessage(),
			}}
			return test
		}
	}

	test.Output = p.parseExpr()
	test.EndPos = test.Output.NodeEndPos()
	return test
}
