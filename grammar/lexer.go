package grammar

import (
	"io"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2/lexer"
	"wryneck/token"
)

// identPattern accepts letters, underscores and emoji at the start and adds
// digits, combining marks, skin tones and emoji joiners after it.
const identPattern = `[\p{L}\p{So}_][\p{L}\p{N}\p{So}\p{M}_\x{1F3FB}-\x{1F3FF}\x{200D}]*`

var identRegexp = regexp.MustCompile(`^` + identPattern + `$`)

// roleSymbols names the token types the keyword roles are lexed as.
var roleSymbols = []struct {
	Name string
	Role token.TokenType
}{
	{"Fn", token.FUNCTION},
	{"Let", token.LET},
	{"If", token.IF},
	{"Else", token.ELSE},
	{"Return", token.RETURN},
}

func rules(d *token.Dialect) []lexer.SimpleRule {
	rules := []lexer.SimpleRule{
		{Name: "Comment", Pattern: `//[^\n]*`},
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "String", Pattern: `"(?:\\.|[^"\\\n])*"`},
		{Name: "Number", Pattern: `[0-9]+`},
	}

	if marker := markerPattern(d); marker != "" {
		rules = append(rules, lexer.SimpleRule{Name: "Marker", Pattern: marker})
	}

	return append(rules,
		lexer.SimpleRule{Name: "Ident", Pattern: identPattern},
		lexer.SimpleRule{Name: "Punct", Pattern: `[(){}\[\],;=+\-*/]`},
		lexer.SimpleRule{Name: "Illegal", Pattern: `(?s).`},
	)
}

// markerPattern matches the keyword spellings that the identifier rule
// cannot, such as "*)>". Longer spellings are tried first.
func markerPattern(d *token.Dialect) string {
	var markers []string
	for spelling := range d.Keywords() {
		if !identRegexp.MatchString(spelling) {
			markers = append(markers, spelling)
		}
	}
	if len(markers) == 0 {
		return ""
	}

	sort.Slice(markers, func(i, j int) bool {
		if len(markers[i]) != len(markers[j]) {
			return len(markers[i]) > len(markers[j])
		}
		return markers[i] < markers[j]
	})
	for i, m := range markers {
		markers[i] = regexp.QuoteMeta(m)
	}
	return strings.Join(markers, "|")
}

// Definition is a participle lexer definition for one dialect. Identifier
// and marker tokens spelling a keyword are re-typed as that keyword's role.
type Definition struct {
	dialect *token.Dialect
	inner   *lexer.StatefulDefinition
	symbols map[string]lexer.TokenType
	names   map[lexer.TokenType]string
	roles   map[token.TokenType]lexer.TokenType
}

var _ lexer.Definition = (*Definition)(nil)

func NewDefinition(d *token.Dialect) *Definition {
	inner := lexer.MustSimple(rules(d))

	def := &Definition{
		dialect: d,
		inner:   inner,
		symbols: make(map[string]lexer.TokenType),
		names:   make(map[lexer.TokenType]string),
		roles:   make(map[token.TokenType]lexer.TokenType),
	}

	next := lexer.EOF
	for name, tt := range inner.Symbols() {
		def.symbols[name] = tt
		if tt < next {
			next = tt
		}
	}
	for _, rs := range roleSymbols {
		next--
		def.symbols[rs.Name] = next
		def.roles[rs.Role] = next
	}
	for name, tt := range def.symbols {
		def.names[tt] = name
	}

	return def
}

var (
	definitionsMu sync.Mutex
	definitions   = map[*token.Dialect]*Definition{}
)

// Lexer returns the shared lexer definition for d.
func Lexer(d *token.Dialect) *Definition {
	definitionsMu.Lock()
	defer definitionsMu.Unlock()

	if def, ok := definitions[d]; ok {
		return def
	}
	def := NewDefinition(d)
	definitions[d] = def
	return def
}

func (d *Definition) Dialect() *token.Dialect {
	return d.dialect
}

func (d *Definition) Symbols() map[string]lexer.TokenType {
	return d.symbols
}

func (d *Definition) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	lex, err := d.inner.Lex(filename, r)
	if err != nil {
		return nil, err
	}
	return &keywordLexer{def: d, lex: lex}, nil
}

// Classify maps a participle token to the parser's token type. Whitespace
// reports false.
func (d *Definition) Classify(tok lexer.Token) (token.TokenType, bool) {
	switch d.names[tok.Type] {
	case "EOF":
		return token.EOF, true
	case "Whitespace":
		return token.ILLEGAL, false
	case "Comment":
		return token.COMMENT, true
	case "String":
		return token.STRING, true
	case "Number":
		return token.NUMBER, true
	case "Ident":
		return token.IDENTIFIER, true
	case "Punct":
		if tt, ok := token.Punctuation[tok.Value]; ok {
			return tt, true
		}
		return token.ILLEGAL, true
	}

	for role, tt := range d.roles {
		if tt == tok.Type {
			return role, true
		}
	}
	return token.ILLEGAL, true
}

type keywordLexer struct {
	def *Definition
	lex lexer.Lexer
}

func (k *keywordLexer) Next() (lexer.Token, error) {
	tok, err := k.lex.Next()
	if err != nil {
		return tok, err
	}

	switch k.def.names[tok.Type] {
	case "Ident", "Marker":
		if role, ok := k.def.dialect.Lookup(tok.Value); ok {
			tok.Type = k.def.roles[role]
		}
	}
	return tok, nil
}

// DetectDialect picks the emoji dialect when source uses a keyword or alias
// only that dialect accepts, and the classic dialect otherwise. Comments
// and string literals are not looked at.
func DetectDialect(source string) *token.Dialect {
	def := Lexer(token.Emoji)
	lex, err := def.Lex("", strings.NewReader(source))
	if err != nil {
		return token.Classic
	}

	for {
		tok, err := lex.Next()
		if err != nil || tok.EOF() {
			return token.Classic
		}
		switch tt, _ := def.Classify(tok); tt {
		case token.IDENTIFIER, token.FUNCTION, token.RETURN:
			if token.EmojiOnly(tok.Value) {
				return token.Emoji
			}
		}
	}
}
