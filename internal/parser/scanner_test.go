package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wryneck/token"
)

func scanTypes(t *testing.T, d *token.Dialect, input string) []token.TokenType {
	t.Helper()
	tokens, err := NewScanner("test.wry", input, d).ScanTokens()
	require.NoError(t, err)

	types := make([]token.TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	input := "fn egg let if else *)> customIdent _under score9"
	expected := []token.TokenType{
		token.FUNCTION, token.FUNCTION, token.LET, token.IF, token.ELSE, token.RETURN,
		token.IDENTIFIER, token.IDENTIFIER, token.IDENTIFIER, token.EOF,
	}
	assert.Equal(t, expected, scanTypes(t, token.Classic, input))
}

func TestEmojiKeywords(t *testing.T) {
	input := "🥚 🐔 🐓 🐣 let"
	expected := []token.TokenType{
		token.FUNCTION, token.RETURN, token.RETURN, token.IDENTIFIER, token.LET, token.EOF,
	}
	assert.Equal(t, expected, scanTypes(t, token.Emoji, input))
}

func TestNumbersAndStrings(t *testing.T) {
	tokens, err := NewScanner("test.wry", `42 0 "hello" "esc \"q\""`, token.Classic).ScanTokens()
	require.NoError(t, err)
	require.Len(t, tokens, 5)

	assert.Equal(t, token.NUMBER, tokens[0].Type)
	assert.Equal(t, "42", tokens[0].Lexeme)
	assert.Equal(t, token.NUMBER, tokens[1].Type)
	assert.Equal(t, token.STRING, tokens[2].Type)
	assert.Equal(t, `"hello"`, tokens[2].Lexeme)
	assert.Equal(t, `"esc \"q\""`, tokens[3].Lexeme)
}

func TestPunctuation(t *testing.T) {
	expected := []token.TokenType{
		token.LEFT_PAREN, token.RIGHT_PAREN, token.LEFT_BRACE, token.RIGHT_BRACE,
		token.LEFT_BRACKET, token.RIGHT_BRACKET, token.COMMA, token.SEMICOLON,
		token.EQUAL, token.PLUS, token.MINUS, token.STAR, token.SLASH, token.EOF,
	}
	assert.Equal(t, expected, scanTypes(t, token.Classic, "(){}[],;=+-*/"))
}

func TestCommentsAreKept(t *testing.T) {
	tokens, err := NewScanner("test.wry", "// one\nfn // two", token.Classic).ScanTokens()
	require.NoError(t, err)
	require.Len(t, tokens, 4)

	assert.Equal(t, token.COMMENT, tokens[0].Type)
	assert.Equal(t, "// one", tokens[0].Lexeme)
	assert.Equal(t, token.FUNCTION, tokens[1].Type)
	assert.Equal(t, "// two", tokens[2].Lexeme)
}

func TestUnknownCharactersAreIllegal(t *testing.T) {
	assert.Equal(t,
		[]token.TokenType{token.IDENTIFIER, token.ILLEGAL, token.IDENTIFIER, token.ILLEGAL, token.IDENTIFIER, token.EOF},
		scanTypes(t, token.Classic, `a @ b "open`),
	)
}

func TestTokenPositions(t *testing.T) {
	tokens, err := NewScanner("test.wry", "fn f()\n  🐣 x", token.Classic).ScanTokens()
	require.NoError(t, err)

	x := tokens[5]
	assert.Equal(t, "x", x.Lexeme)
	assert.Equal(t, token.Position{Filename: "test.wry", Line: 2, Column: 5, Offset: len("fn f()\n  🐣 ")}, x.Position)
	assert.Equal(t, 6, x.End().Column)

	eof := tokens[len(tokens)-1]
	assert.Equal(t, token.EOF, eof.Type)
	assert.Equal(t, len("fn f()\n  🐣 x"), eof.Position.Offset)
}

func TestEmptySource(t *testing.T) {
	assert.Equal(t, []token.TokenType{token.EOF}, scanTypes(t, token.Classic, ""))
	assert.Equal(t, []token.TokenType{token.EOF}, scanTypes(t, token.Classic, "  \n\t "))
}
