package parser

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"wryneck/grammar"
	"wryneck/token"
)

// Scanner turns source text into the token stream the parser consumes.
// Whitespace is dropped; comments are kept because the grammar places them.
type Scanner struct {
	filename string
	source   string
	def      *grammar.Definition
}

func NewScanner(filename, source string, d *token.Dialect) *Scanner {
	return &Scanner{
		filename: filename,
		source:   source,
		def:      grammar.Lexer(d),
	}
}

// ScanTokens lexes the whole source. The result always ends with exactly
// one EOF token.
func (s *Scanner) ScanTokens() ([]token.Token, error) {
	lex, err := s.def.Lex(s.filename, strings.NewReader(s.source))
	if err != nil {
		return nil, fmt.Errorf("failed to start lexer: %w", err)
	}

	var tokens []token.Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, fmt.Errorf("failed to lex %s: %w", s.filename, err)
		}

		tt, keep := s.def.Classify(tok)
		if !keep {
			continue
		}

		tokens = append(tokens, token.Token{
			Type:     tt,
			Lexeme:   tok.Value,
			Position: s.position(tok.Pos),
		})
		if tt == token.EOF {
			return tokens, nil
		}
	}
}

func (s *Scanner) position(pos lexer.Position) token.Position {
	return token.Position{
		Filename: s.filename,
		Line:     pos.Line,
		Column:   pos.Column,
		Offset:   pos.Offset,
	}
}
