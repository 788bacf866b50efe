package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"wryneck/internal/ast"
	"wryneck/internal/config"
	"wryneck/internal/format"
	"wryneck/internal/parser"
	"wryneck/internal/resolve"
	"wryneck/token"
)

const lsName = "wryneck"

var log = commonlog.GetLogger("wryneck.lsp")

// document is the analysed state of one open file.
type document struct {
	uri      protocol.DocumentUri
	path     string
	version  protocol.Integer
	source   string
	dialect  *token.Dialect
	program  *ast.Program
	errors   []parser.ParseError
	failure  error
	resolved *resolve.Program
}

// clean reports whether the document parsed without any error record.
func (d *document) clean() bool {
	return d.failure == nil && len(d.errors) == 0
}

// WryneckHandler implements the LSP server handlers for wryneck sources
type WryneckHandler struct {
	mu      sync.RWMutex
	docs    map[protocol.DocumentUri]*document
	version string
	cfg     *config.Config
}

// NewWryneckHandler creates a handler. A nil cfg uses the defaults.
func NewWryneckHandler(version string, cfg *config.Config) *WryneckHandler {
	if cfg == nil {
		cfg = config.Default()
	}
	return &WryneckHandler{
		docs:    make(map[protocol.DocumentUri]*document),
		version: version,
		cfg:     cfg,
	}
}

// Protocol returns the method table to pass to server.NewServer.
func (h *WryneckHandler) Protocol() *protocol.Handler {
	return &protocol.Handler{
		Initialize:                     h.Initialize,
		Initialized:                    h.Initialized,
		Shutdown:                       h.Shutdown,
		SetTrace:                       h.SetTrace,
		TextDocumentDidOpen:            h.TextDocumentDidOpen,
		TextDocumentDidChange:          h.TextDocumentDidChange,
		TextDocumentDidClose:           h.TextDocumentDidClose,
		TextDocumentHover:              h.TextDocumentHover,
		TextDocumentFormatting:         h.TextDocumentFormatting,
		TextDocumentDocumentSymbol:     h.TextDocumentDocumentSymbol,
		TextDocumentSemanticTokensFull: h.TextDocumentSemanticTokensFull,
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *WryneckHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			HoverProvider:              true,
			DocumentFormattingProvider: true,
			DocumentSymbolProvider:     true,
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &h.version,
		},
	}, nil
}

func (h *WryneckHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (h *WryneckHandler) Shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	log.Info("shutdown")
	return nil
}

func (h *WryneckHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen analyses the opened file and publishes its diagnostics
func (h *WryneckHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	item := params.TextDocument
	log.Debugf("opened %s", item.URI)

	doc, err := h.update(item.URI, item.Version, item.Text)
	if err != nil {
		return err
	}
	publishDiagnostics(ctx, doc)
	return nil
}

// TextDocumentDidChange re-analyses the file. Only full-text sync is
// advertised, so the last change carries the whole document.
func (h *WryneckHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Debugf("changed %s", params.TextDocument.URI)

	text, ok := h.changedText(params)
	if !ok {
		return fmt.Errorf("no full-text change for %s", params.TextDocument.URI)
	}

	doc, err := h.update(params.TextDocument.URI, params.TextDocument.Version, text)
	if err != nil {
		return err
	}
	publishDiagnostics(ctx, doc)
	return nil
}

func (h *WryneckHandler) changedText(params *protocol.DidChangeTextDocumentParams) (string, bool) {
	for i := len(params.ContentChanges) - 1; i >= 0; i-- {
		switch change := params.ContentChanges[i].(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			return change.Text, true
		case *protocol.TextDocumentContentChangeEventWhole:
			return change.Text, true
		}
	}
	return "", false
}

// TextDocumentDidClose forgets the file and clears its diagnostics
func (h *WryneckHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debugf("closed %s", uri)

	h.mu.Lock()
	delete(h.docs, uri)
	h.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

// TextDocumentHover describes the innermost node under the cursor
func (h *WryneckHandler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, err := h.getOrLoad(ctx, params.TextDocument.URI)
	if err != nil || doc.program == nil {
		return nil, err
	}

	offset := offsetAt(doc.source, params.Position)
	path := ast.PathTo(doc.program, offset)
	if len(path) < 2 {
		return nil, nil
	}

	node := path[len(path)-1]
	text := hoverText(doc, path)
	if text == "" {
		return nil, nil
	}

	rng := rangeOf(doc.source, node.NodePos(), node.NodeEndPos())
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: text,
		},
		Range: &rng,
	}, nil
}

func hoverText(doc *document, path []ast.Node) string {
	node := path[len(path)-1]

	switch n := node.(type) {
	case *ast.Ident:
		if len(path) >= 3 {
			if call, ok := path[len(path)-2].(*ast.CallExpr); ok {
				return callHover(doc, call)
			}
		}
		return fmt.Sprintf("`%s` (%s)", doc.dialect.SurfaceName(n.Value), identRole(path))
	case *ast.CallExpr:
		return callHover(doc, n)
	case *ast.VariableExpr:
		return fmt.Sprintf("`%s` (variable)", doc.dialect.SurfaceName(n.Name))
	case *ast.NumberExpr:
		return fmt.Sprintf("number `%d`", n.Value)
	case *ast.BadExpr:
		return "syntax error: " + n.Bad.Message
	case *ast.BadStmt:
		return "syntax error: " + n.Bad.Message
	case *ast.Comment:
		return ""
	default:
		return fmt.Sprintf("```\n%s\n```", format.Node(node, doc.dialect, format.DefaultIndent))
	}
}

func identRole(path []ast.Node) string {
	switch path[len(path)-2].(type) {
	case *ast.FunctionDefinition:
		return "function"
	case *ast.Parameter:
		return "parameter"
	case *ast.LetStmt:
		return "variable"
	default:
		return "name"
	}
}

func callHover(doc *document, call *ast.CallExpr) string {
	name := call.Name.Value
	if doc.resolved != nil {
		if id, ok := doc.resolved.Lookup(name); ok {
			def := doc.resolved.Function(id).Definition
			return fmt.Sprintf("```\n%s\n```", signature(doc.dialect, def))
		}
	}
	return fmt.Sprintf("call to `%s`", doc.dialect.SurfaceName(name))
}

func signature(d *token.Dialect, def *ast.FunctionDefinition) string {
	params := make([]string, len(def.Params))
	for i, p := range def.Params {
		params[i] = d.SurfaceName(p.Name.Value)
	}
	return fmt.Sprintf("%s %s(%s)", d.Spelling(token.FUNCTION), d.SurfaceName(def.Name.Value), strings.Join(params, ", "))
}

// TextDocumentFormatting replaces the document with its canonical form.
// Documents with syntax errors are left alone.
func (h *WryneckHandler) TextDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc, err := h.getOrLoad(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	if !doc.clean() {
		return nil, nil
	}

	indent := h.cfg.Indent
	if size, ok := params.Options[protocol.FormattingOptionTabSize].(float64); ok && size > 0 {
		indent = int(size)
	}

	formatted := format.Program(doc.program, doc.dialect, indent)
	if formatted == doc.source {
		return []protocol.TextEdit{}, nil
	}

	return []protocol.TextEdit{{
		Range:   rangeOf(doc.source, token.Position{Line: 1, Column: 1}, endOf(doc.source)),
		NewText: formatted,
	}}, nil
}

// TextDocumentDocumentSymbol lists the functions of the document
func (h *WryneckHandler) TextDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc, err := h.getOrLoad(ctx, params.TextDocument.URI)
	if err != nil || doc.resolved == nil {
		return nil, err
	}

	symbols := []protocol.DocumentSymbol{}
	for _, fn := range doc.resolved.Functions {
		def := fn.Definition
		if def == nil || def.Name.Value == "" {
			continue
		}

		detail := signature(doc.dialect, def)
		symbol := protocol.DocumentSymbol{
			Name:           doc.dialect.SurfaceName(def.Name.Value),
			Detail:         &detail,
			Kind:           protocol.SymbolKindFunction,
			Range:          rangeOf(doc.source, fn.Pos, fn.EndPos),
			SelectionRange: rangeOf(doc.source, def.Name.Pos, def.Name.EndPos),
		}
		for _, p := range def.Params {
			symbol.Children = append(symbol.Children, protocol.DocumentSymbol{
				Name:           doc.dialect.SurfaceName(p.Name.Value),
				Kind:           protocol.SymbolKindVariable,
				Range:          rangeOf(doc.source, p.Pos, p.EndPos),
				SelectionRange: rangeOf(doc.source, p.Name.Pos, p.Name.EndPos),
			})
		}
		symbols = append(symbols, symbol)
	}
	return symbols, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *WryneckHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc, err := h.getOrLoad(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	tokens, err := collectSemanticTokens(doc)
	if err != nil {
		return nil, err
	}

	return &protocol.SemanticTokens{
		Data: encodeSemanticTokens(tokens),
	}, nil
}

// update parses text and stores the result as the current state of uri.
func (h *WryneckHandler) update(uri protocol.DocumentUri, version protocol.Integer, text string) (*document, error) {
	path, err := uriToPath(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", uri, err)
	}

	dialect, err := h.cfg.DialectFor(text)
	if err != nil {
		return nil, err
	}

	doc := &document{
		uri:     uri,
		path:    path,
		version: version,
		source:  text,
		dialect: dialect,
	}
	doc.program, doc.errors, doc.failure = parser.ParseSource(path, text, parser.WithDialect(dialect))
	if doc.program != nil {
		doc.resolved = resolve.Resolve(doc.program)
	}

	h.mu.Lock()
	h.docs[uri] = doc
	h.mu.Unlock()

	return doc, nil
}

// getOrLoad returns the open document, reading it from disk when the
// client asks about a file it never opened.
func (h *WryneckHandler) getOrLoad(ctx *glsp.Context, uri protocol.DocumentUri) (*document, error) {
	h.mu.RLock()
	doc, ok := h.docs[uri]
	h.mu.RUnlock()
	if ok {
		return doc, nil
	}

	path, err := uriToPath(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", uri, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	doc, err = h.update(uri, 0, string(content))
	if err != nil {
		return nil, err
	}
	publishDiagnostics(ctx, doc)
	return doc, nil
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) -> C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func publishDiagnostics(ctx *glsp.Context, doc *document) {
	if ctx == nil || ctx.Notify == nil {
		return
	}

	diagnostics := CollectDiagnostics(doc)
	log.Debugf("publishing %d diagnostics for %s", len(diagnostics), doc.uri)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         doc.uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
