package parser

import (
	"fmt"

	"wryneck/internal/ast"
	"wryneck/internal/errors"
	"wryneck/token"
)

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(tt token.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tt
}

func (p *Parser) match(types ...token.TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes a token of type tt. On mismatch it records an error and
// leaves the offending token in place; see skipStray.
func (p *Parser) expect(tt token.TokenType) (token.Token, bool) {
	if p.check(tt) {
		return p.advance(), true
	}

	expected := p.describe(tt)
	if p.isAtEnd() {
		p.record(errors.ErrorUnexpectedEOF, p.peek(), expected)
	} else {
		p.record(errors.ErrorMissingToken, p.peek(), expected)
	}
	return p.peek(), false
}

// skipStray repairs a failed expect(tt). The offending token is skipped
// unless follows accepts it or it ends an enclosing construct, and a tt
// right after it is consumed. The result reports whether tt was consumed.
func (p *Parser) skipStray(tt token.TokenType, follows func(token.TokenType) bool) (token.Token, bool) {
	if p.atBoundary() || follows(p.peek().Type) {
		return p.peek(), false
	}
	p.advance()
	if p.check(tt) {
		return p.advance(), true
	}
	return p.previous(), false
}

// atBoundary reports whether the current token ends a statement, a block or
// a function, so recovery must leave it to the construct it belongs to.
func (p *Parser) atBoundary() bool {
	switch p.peek().Type {
	case token.EOF, token.SEMICOLON, token.RIGHT_BRACE, token.FUNCTION:
		return true
	}
	return false
}

func is(types ...token.TokenType) func(token.TokenType) bool {
	return func(tt token.TokenType) bool {
		for _, t := range types {
			if t == tt {
				return true
			}
		}
		return false
	}
}

// parseList parses element (',' element)* up to close, which it leaves in
// place; a trailing ',' is allowed. A token between elements that is
// neither ',' nor close is reported and skipped, and when it stands where
// a ',' belongs the list goes on. A '{' that cannot be an element ends the
// list, as in "fn f(x { ... }". The result reports a well-formed list.
func (p *Parser) parseList(close token.TokenType, starts func(token.TokenType) bool, element func() bool) bool {
	valid := true
	for !p.check(close) && !p.isAtEnd() {
		if !element() {
			valid = false
		}
		if p.match(token.COMMA) || p.check(close) {
			continue
		}

		valid = false
		p.errorExpected("','", p.describe(close))
		if starts(p.peek().Type) {
			continue
		}
		if p.atBoundary() || p.check(token.LEFT_BRACE) {
			break
		}
		p.advance()
	}
	return valid
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

// errorExpected records that the current token cannot start what the
// caller is parsing.
func (p *Parser) errorExpected(expected ...string) {
	code := errors.ErrorUnexpectedToken
	if p.isAtEnd() {
		code = errors.ErrorUnexpectedEOF
	}
	p.record(code, p.peek(), expected...)
}

func (p *Parser) record(code string, tok token.Token, expected ...string) {
	if p.failure != nil {
		return
	}

	// A token is reported once. Every construct left open by it, up to
	// end of input, would otherwise report it again.
	if n := len(p.errors); n > 0 && p.errors[n-1].Token.Position.Offset == tok.Position.Offset {
		return
	}

	pe := ParseError{
		Code:     code,
		Position: tok.Position,
		Token:    tok,
		Expected: expected,
	}
	pe.Message = pe.CompilerError().Message
	p.errors = append(p.errors, pe)
}

// fail stops the parse with a hard failure.
func (p *Parser) fail(err error) {
	if p.failure == nil {
		p.failure = err
	}
	p.current = len(p.tokens) - 1
}

// describe renders a token type the way diagnostics quote it, using the
// dialect's spelling for keyword roles.
func (p *Parser) describe(tt token.TokenType) string {
	switch tt {
	case token.IDENTIFIER:
		return "identifier"
	case token.NUMBER:
		return "number"
	case token.STRING:
		return "string"
	case token.FUNCTION, token.LET, token.IF, token.ELSE, token.RETURN:
		return fmt.Sprintf("'%s'", p.dialect.Spelling(tt))
	}
	for lexeme, punct := range token.Punctuation {
		if punct == tt {
			return fmt.Sprintf("'%s'", lexeme)
		}
	}
	return tt.String()
}

func (p *Parser) makePos(tok token.Token) ast.Position {
	return tok.Position
}

func (p *Parser) makeEndPos(tok token.Token) ast.Position {
	return tok.End()
}

// makeIdent creates an ast.Ident from a token, resolving dialect aliases
func (p *Parser) makeIdent(tok token.Token) ast.Ident {
	return ast.Ident{
		Pos:    p.makePos(tok),
		EndPos: p.makeEndPos(tok),
		Value:  p.dialect.CanonicalName(tok.Lexeme),
	}
}

// badNode spans from start to the last consumed token.
func (p *Parser) badNode(start token.Token) ast.BadNode {
	end := p.makeEndPos(start)
	if p.current > 0 && p.previous().Position.Offset >= start.Position.Offset {
		end = p.makeEndPos(p.previous())
	}

	return ast.BadNode{
		Pos:     p.makePos(start),
		EndPos:  end,
		Message: p.lastMessage(),
	}
}

func (p *Parser) lastMessage() string {
	if len(p.errors) == 0 {
		return "syntax error"
	}
	return p.errors[len(p.errors)-1].Message
}
