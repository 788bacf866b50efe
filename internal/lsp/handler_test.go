package lsp_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"wryneck/internal/lsp"
)

const testURI = "file:///tmp/test.wry"

type notification struct {
	method string
	params *protocol.PublishDiagnosticsParams
}

func newContext(sent *[]notification) *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			p, _ := params.(*protocol.PublishDiagnosticsParams)
			*sent = append(*sent, notification{method: method, params: p})
		},
	}
}

func open(t *testing.T, h *lsp.WryneckHandler, ctx *glsp.Context, text string) {
	t.Helper()
	err := h.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        testURI,
			LanguageID: "wryneck",
			Version:    1,
			Text:       text,
		},
	})
	require.NoError(t, err)
}

func TestDidOpenPublishesDiagnostics(t *testing.T) {
	var sent []notification
	ctx := newContext(&sent)
	h := lsp.NewWryneckHandler("test", nil)

	open(t, h, ctx, "fn f() { let x = 1; @ *)> x; }")

	require.Len(t, sent, 1)
	assert.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, sent[0].method)
	require.NotNil(t, sent[0].params)
	assert.Equal(t, testURI, sent[0].params.URI)

	require.Len(t, sent[0].params.Diagnostics, 1)
	d := sent[0].params.Diagnostics[0]
	assert.Equal(t, "unexpected `@`, expected statement", d.Message)
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	assert.Equal(t, "E0100", d.Code.Value)
	assert.Equal(t, protocol.Position{Line: 0, Character: 20}, d.Range.Start)
	assert.Equal(t, protocol.Position{Line: 0, Character: 21}, d.Range.End)
}

func TestResolverWarningsArePublished(t *testing.T) {
	var sent []notification
	ctx := newContext(&sent)
	h := lsp.NewWryneckHandler("test", nil)

	open(t, h, ctx, "fn add(x, y) x + y\nfn main() ad(1, 2)")

	require.Len(t, sent, 1)
	require.Len(t, sent[0].params.Diagnostics, 1)
	d := sent[0].params.Diagnostics[0]
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *d.Severity)
	assert.Contains(t, d.Message, "did you mean 'add'")
	assert.Equal(t, protocol.Position{Line: 1, Character: 10}, d.Range.Start)
	assert.Equal(t, protocol.Position{Line: 1, Character: 12}, d.Range.End)
}

func TestDidChangeReplacesDocument(t *testing.T) {
	var sent []notification
	ctx := newContext(&sent)
	h := lsp.NewWryneckHandler("test", nil)

	open(t, h, ctx, "fn f() { *)> 1 }")
	require.Len(t, sent[0].params.Diagnostics, 1)

	err := h.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "fn f() { *)> 1; }"},
		},
	})
	require.NoError(t, err)

	require.Len(t, sent, 2)
	assert.Empty(t, sent[1].params.Diagnostics)
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	var sent []notification
	ctx := newContext(&sent)
	h := lsp.NewWryneckHandler("test", nil)

	open(t, h, ctx, "fn f() @")
	err := h.TextDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)

	require.Len(t, sent, 2)
	assert.Empty(t, sent[1].params.Diagnostics)
}

func TestNumberOutOfRangeIsReported(t *testing.T) {
	var sent []notification
	ctx := newContext(&sent)
	h := lsp.NewWryneckHandler("test", nil)

	open(t, h, ctx, "fn f() 2147483648")

	require.Len(t, sent[0].params.Diagnostics, 1)
	d := sent[0].params.Diagnostics[0]
	assert.Equal(t, "E0103", d.Code.Value)
	assert.Equal(t, protocol.Position{Line: 0, Character: 7}, d.Range.Start)
}

func TestHoverOnCallShowsSignature(t *testing.T) {
	var sent []notification
	ctx := newContext(&sent)
	h := lsp.NewWryneckHandler("test", nil)

	open(t, h, ctx, "fn add(x, y) x + y\nfn main() add(1, 2)")

	hover, err := h.TextDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
			Position:     protocol.Position{Line: 1, Character: 11},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, hover)

	content, ok := hover.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Equal(t, "```\nfn add(x, y)\n```", content.Value)
	assert.Equal(t, protocol.Position{Line: 1, Character: 10}, hover.Range.Start)
}

func TestHoverOnParameter(t *testing.T) {
	var sent []notification
	ctx := newContext(&sent)
	h := lsp.NewWryneckHandler("test", nil)

	open(t, h, ctx, "fn add(x, y) x + y")

	hover, err := h.TextDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
			Position:     protocol.Position{Line: 0, Character: 7},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, hover)
	assert.Equal(t, "`x` (parameter)", hover.Contents.(protocol.MarkupContent).Value)
}

func TestFormatting(t *testing.T) {
	var sent []notification
	ctx := newContext(&sent)
	h := lsp.NewWryneckHandler("test", nil)

	open(t, h, ctx, "fn add(x,y){*)> x+y;}")

	edits, err := h.TextDocumentFormatting(ctx, &protocol.DocumentFormattingParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		Options:      protocol.FormattingOptions{protocol.FormattingOptionTabSize: float64(2)},
	})
	require.NoError(t, err)
	require.Len(t, edits, 1)
	assert.Equal(t, "fn add(x, y) {\n  *)> (x + y);\n}\n", edits[0].NewText)
	assert.Equal(t, protocol.Position{Line: 0, Character: 0}, edits[0].Range.Start)
	assert.Equal(t, protocol.Position{Line: 0, Character: 21}, edits[0].Range.End)
}

func TestFormattingSkipsBrokenDocuments(t *testing.T) {
	var sent []notification
	ctx := newContext(&sent)
	h := lsp.NewWryneckHandler("test", nil)

	open(t, h, ctx, "fn add(x,y){*)> x+y}")

	edits, err := h.TextDocumentFormatting(ctx, &protocol.DocumentFormattingParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)
	assert.Empty(t, edits)
}

func TestDocumentSymbols(t *testing.T) {
	var sent []notification
	ctx := newContext(&sent)
	h := lsp.NewWryneckHandler("test", nil)

	open(t, h, ctx, "// math\nfn add(x, y) x + y\nfn zero() 0")

	result, err := h.TextDocumentDocumentSymbol(ctx, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)

	symbols, ok := result.([]protocol.DocumentSymbol)
	require.True(t, ok)
	require.Len(t, symbols, 2)
	assert.Equal(t, "add", symbols[0].Name)
	assert.Equal(t, "fn add(x, y)", *symbols[0].Detail)
	assert.Equal(t, protocol.SymbolKindFunction, symbols[0].Kind)
	require.Len(t, symbols[0].Children, 2)
	assert.Equal(t, "y", symbols[0].Children[1].Name)
	assert.Equal(t, "zero", symbols[1].Name)
}

func TestSemanticTokensClassic(t *testing.T) {
	var sent []notification
	ctx := newContext(&sent)
	h := lsp.NewWryneckHandler("test", nil)

	open(t, h, ctx, "fn add(x, y) {\n    *)> x + y;\n}")

	tokens, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 8)

	assertToken(t, &decoded[0], 1, 1, 2, "keyword", nil)
	assertToken(t, &decoded[1], 1, 4, 3, "function", []string{"declaration"})
	assertToken(t, &decoded[2], 1, 8, 1, "parameter", []string{"declaration"})
	assertToken(t, &decoded[3], 1, 11, 1, "parameter", []string{"declaration"})
	assertToken(t, &decoded[4], 2, 5, 3, "keyword", nil)
	assertToken(t, &decoded[5], 2, 9, 1, "parameter", nil)
	assertToken(t, &decoded[6], 2, 11, 1, "operator", nil)
	assertToken(t, &decoded[7], 2, 13, 1, "parameter", nil)
}

func TestSemanticTokensCountUTF16(t *testing.T) {
	var sent []notification
	ctx := newContext(&sent)
	h := lsp.NewWryneckHandler("test", nil)

	open(t, h, ctx, "🥚 f() { 🐔 \"hi\"; } // done")

	tokens, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 5)

	assertToken(t, &decoded[0], 1, 1, 2, "keyword", nil)
	assertToken(t, &decoded[1], 1, 4, 1, "function", []string{"declaration"})
	assertToken(t, &decoded[2], 1, 10, 2, "keyword", nil)
	assertToken(t, &decoded[3], 1, 13, 4, "string", nil)
	assertToken(t, &decoded[4], 1, 21, 7, "comment", nil)
}

func TestUnopenedFileIsReadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.wry")
	require.NoError(t, os.WriteFile(path, []byte("fn f() 1"), 0o644))
	uri := "file://" + filepath.ToSlash(path)

	var sent []notification
	ctx := newContext(&sent)
	h := lsp.NewWryneckHandler("test", nil)

	tokens, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 3)
	assertToken(t, &decoded[2], 1, 8, 1, "number", nil)

	require.Len(t, sent, 1)
	assert.Equal(t, uri, sent[0].params.URI)
}

type DecodedToken struct {
	Index     int
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]
		length := raw[i+2]
		tokenTypeIdx := raw[i+3]
		tokenModMask := raw[i+4]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if tokenModMask&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, DecodedToken{
			Index:     i / 5,
			Line:      line + 1,
			Char:      char + 1,
			Length:    length,
			Type:      lsp.SemanticTokenTypes[tokenTypeIdx],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}

func assertToken(t *testing.T, token *DecodedToken, expectedLine, expectedChar, expectedLength uint32, expectedType string, expectedModifiers []string) {
	require.Equal(t, expectedLine, token.Line, "line mismatch (expected line %d)", expectedLine)
	require.Equal(t, expectedChar, token.Char, "char mismatch (expected char %d)", expectedChar)
	require.Equal(t, expectedLength, token.Length, "length mismatch")
	require.Equal(t, expectedType, token.Type, "type mismatch")
	require.ElementsMatch(t, expectedModifiers, token.Modifiers, "modifiers mismatch")
}
