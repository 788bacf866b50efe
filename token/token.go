// SPDX-License-Identifier: Apache-2.0

// Package token defines the lexical categories of wryneck source and the
// keyword tables of its two dialects.
package token

import "fmt"

type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Identifiers + literals
	IDENTIFIER
	NUMBER
	STRING

	// Comments
	COMMENT

	// Keyword roles; spelling depends on the dialect
	FUNCTION
	LET
	IF
	ELSE
	RETURN

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	EQUAL

	// Separators
	COMMA
	SEMICOLON

	// Brackets
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	LEFT_BRACKET
	RIGHT_BRACKET
)

var tokenTypeNames = [...]string{
	ILLEGAL:       "ILLEGAL",
	EOF:           "EOF",
	IDENTIFIER:    "IDENTIFIER",
	NUMBER:        "NUMBER",
	STRING:        "STRING",
	COMMENT:       "COMMENT",
	FUNCTION:      "FUNCTION",
	LET:           "LET",
	IF:            "IF",
	ELSE:          "ELSE",
	RETURN:        "RETURN",
	PLUS:          "PLUS",
	MINUS:         "MINUS",
	STAR:          "STAR",
	SLASH:         "SLASH",
	EQUAL:         "EQUAL",
	COMMA:         "COMMA",
	SEMICOLON:     "SEMICOLON",
	LEFT_PAREN:    "LEFT_PAREN",
	RIGHT_PAREN:   "RIGHT_PAREN",
	LEFT_BRACE:    "LEFT_BRACE",
	RIGHT_BRACE:   "RIGHT_BRACE",
	LEFT_BRACKET:  "LEFT_BRACKET",
	RIGHT_BRACKET: "RIGHT_BRACKET",
}

func (tt TokenType) String() string {
	if tt >= 0 && int(tt) < len(tokenTypeNames) {
		return tokenTypeNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Punctuation maps single-character punctuation to its token type.
var Punctuation = map[string]TokenType{
	"+": PLUS,
	"-": MINUS,
	"*": STAR,
	"/": SLASH,
	"=": EQUAL,
	",": COMMA,
	";": SEMICOLON,
	"(": LEFT_PAREN,
	")": RIGHT_PAREN,
	"{": LEFT_BRACE,
	"}": RIGHT_BRACE,
	"[": LEFT_BRACKET,
	"]": RIGHT_BRACKET,
}

type Position struct {
	Filename string
	Line     int // 1-based
	Column   int // 1-based, in runes
	Offset   int // 0-based byte index in input
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

type Token struct {
	Type     TokenType
	Lexeme   string
	Position Position
}

// End returns the position just past the token. Tokens never span lines
// except EOF, which is empty.
func (t Token) End() Position {
	end := t.Position
	end.Offset += len(t.Lexeme)
	end.Column += len([]rune(t.Lexeme))
	return end
}

// Describe renders the token for diagnostics.
func (t Token) Describe() string {
	if t.Type == EOF {
		return "end of input"
	}
	return fmt.Sprintf("`%s`", t.Lexeme)
}
