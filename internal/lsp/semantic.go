package lsp

import (
	"strings"

	"wryneck/internal/ast"
	"wryneck/internal/parser"
	"wryneck/token"
)

// SemanticTokenTypes is the legend advertised to the client; token entries
// refer to it by index.
var SemanticTokenTypes = []string{
	"function",
	"parameter",
	"variable",
	"keyword",
	"number",
	"string",
	"comment",
	"operator",
}

// SemanticTokenModifiers is the modifier legend; entries carry a bitmask.
var SemanticTokenModifiers = []string{
	"declaration",
}

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based, StartChar and Length in UTF-16 units
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into SemanticTokenTypes
	TokenModifiers int // bitmask
}

type role struct {
	kind        string
	declaration bool
}

// collectSemanticTokens classifies every token of the document. Keywords
// and literals come from the lexer; identifiers take their role from the
// tree when it places them.
func collectSemanticTokens(doc *document) ([]SemanticToken, error) {
	tokens, err := parser.NewScanner(doc.path, doc.source, doc.dialect).ScanTokens()
	if err != nil {
		return nil, err
	}

	roles := identRoles(doc.program)

	var result []SemanticToken
	for _, tok := range tokens {
		var r role
		switch tok.Type {
		case token.COMMENT:
			r = role{kind: "comment"}
		case token.FUNCTION, token.LET, token.IF, token.ELSE, token.RETURN:
			r = role{kind: "keyword"}
		case token.NUMBER:
			r = role{kind: "number"}
		case token.STRING:
			r = role{kind: "string"}
		case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.EQUAL:
			r = role{kind: "operator"}
		case token.IDENTIFIER:
			var ok bool
			if r, ok = roles[tok.Position.Offset]; !ok {
				r = role{kind: "variable"}
			}
		default:
			continue
		}

		if strings.ContainsRune(tok.Lexeme, '\n') {
			continue
		}
		result = append(result, makeToken(doc.source, tok, r))
	}

	return result, nil
}

// identRoles maps the byte offset of each identifier the tree knows about
// to its role.
func identRoles(prog *ast.Program) map[int]role {
	roles := make(map[int]role)
	if prog == nil {
		return roles
	}

	params := map[string]bool{}
	ast.Walk(prog, func(node ast.Node) bool {
		switch n := node.(type) {
		case *ast.Function:
			params = map[string]bool{}
			if n.Definition != nil {
				for _, p := range n.Definition.Params {
					params[p.Name.Value] = true
				}
			}
		case *ast.FunctionDefinition:
			roles[n.Name.Pos.Offset] = role{kind: "function", declaration: true}
		case *ast.Parameter:
			roles[n.Name.Pos.Offset] = role{kind: "parameter", declaration: true}
		case *ast.LetStmt:
			roles[n.Name.Pos.Offset] = role{kind: "variable", declaration: true}
		case *ast.CallExpr:
			roles[n.Name.Pos.Offset] = role{kind: "function"}
		case *ast.VariableExpr:
			kind := "variable"
			if params[n.Name] {
				kind = "parameter"
			}
			roles[n.Pos.Offset] = role{kind: kind}
		}
		return true
	})
	return roles
}

func makeToken(source string, tok token.Token, r role) SemanticToken {
	start := toProtocol(source, tok.Position.Offset)

	modifiers := 0
	if r.declaration {
		modifiers = 1 << indexOf("declaration", SemanticTokenModifiers)
	}

	return SemanticToken{
		Line:           uint32(start.Line),
		StartChar:      uint32(start.Character),
		Length:         uint32(utf16Len(tok.Lexeme)),
		TokenType:      indexOf(r.kind, SemanticTokenTypes),
		TokenModifiers: modifiers,
	}
}

// encodeSemanticTokens produces the LSP wire format, where each entry is
// relative to the previous one.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := []uint32{}
	var prevLine, prevStart uint32

	for _, tok := range tokens {
		deltaLine := tok.Line - prevLine
		deltaStart := tok.StartChar
		if deltaLine == 0 {
			deltaStart = tok.StartChar - prevStart
		}

		data = append(data, deltaLine, deltaStart, tok.Length, uint32(tok.TokenType), uint32(tok.TokenModifiers))

		prevLine = tok.Line
		prevStart = tok.StartChar
	}

	return data
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
