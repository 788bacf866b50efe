package parser

import (
	"wryneck/internal/ast"
	"wryneck/token"
)

// Parser is a recursive-descent parser that never stops at a syntax error.
// Each failed production leaves a BadStmt or BadExpr in the tree. A single
// stray token is skipped when the expected token follows it, and no token
// is reported twice.
type Parser struct {
	tokens   []token.Token
	current  int
	filename string
	dialect  *token.Dialect
	errors   []ParseError

	// failure is set by a hard failure, after which the parser drains to
	// EOF and records nothing further.
	failure error
}

// NewParser creates a parser over tokens, which must end with an EOF token
// as produced by Scanner.ScanTokens.
func NewParser(filename string, tokens []token.Token, d *token.Dialect) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
		var end token.Position
		if len(tokens) > 0 {
			end = tokens[len(tokens)-1].End()
		} else {
			end = token.Position{Filename: filename, Line: 1, Column: 1}
		}
		tokens = append(tokens, token.Token{Type: token.EOF, Position: end})
	}

	return &Parser{
		tokens:   tokens,
		filename: filename,
		dialect:  d,
	}
}

// Errors returns the syntax errors recorded so far, in detection order.
func (p *Parser) Errors() []ParseError {
	return p.errors
}

// ParseProgram parses top-level items until the input is exhausted. The
// returned error is non-nil only for a hard failure, in which case the
// program is nil.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{
		Pos:   token.Position{Filename: p.filename, Line: 1, Column: 1},
		Items: []ast.TopLevel{},
	}

	for !p.isAtEnd() {
		switch p.peek().Type {
		case token.COMMENT:
			prog.Items = append(prog.Items, p.parseComment())
		case token.FUNCTION:
			prog.Items = append(prog.Items, p.parseFunction())
		default:
			p.errorExpected("function definition", "comment")
			p.synchronize()
		}
	}

	if p.failure != nil {
		return nil, p.failure
	}

	prog.EndPos = p.peek().Position
	return prog, nil
}

func (p *Parser) parseComment() *ast.Comment {
	tok := p.advance()
	return &ast.Comment{
		Pos:    p.makePos(tok),
		EndPos: p.makeEndPos(tok),
		Text:   tok.Lexeme,
	}
}

// synchronize skips tokens up to the next function marker or comment.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		switch p.peek().Type {
		case token.FUNCTION, token.COMMENT:
			return
		}
		p.advance()
	}
}
