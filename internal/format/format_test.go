package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wryneck/internal/ast"
	"wryneck/internal/parser"
	"wryneck/token"
)

func parse(t *testing.T, source string, d *token.Dialect) *ast.Program {
	t.Helper()
	prog, parseErrors, err := parser.ParseSource("test.wry", source, parser.WithDialect(d))
	require.NoError(t, err)
	require.Empty(t, parseErrors)
	return prog
}

func TestFormatClassic(t *testing.T) {
	prog := parse(t, "// math\nfn add(x,y){*)> x+y;}[1+1=2,2+2=4] egg zero() 0", token.Classic)

	expected := `// math

fn add(x, y) {
    *)> (x + y);
} [
    (1 + 1) = 2,
    (2 + 2) = 4,
]

fn zero() 0
`
	assert.Equal(t, expected, Program(prog, token.Classic, 4))
}

func TestFormatEmoji(t *testing.T) {
	prog := parse(t, "🥚 🐣() { let x = 1; 🐓 if x { 🐔 \"a\"; } else {}; }", token.Emoji)

	expected := `🥚 🐣() {
  let x = 1;
  🐔 if x {
    🐔 "a";
  } else {};
}
`
	assert.Equal(t, expected, Program(prog, token.Emoji, 2))
}

func TestFormatTranslatesDialects(t *testing.T) {
	prog := parse(t, "🥚 🐣() { 🐔 1; }", token.Emoji)
	assert.Equal(t, "fn hatch() {\n    *)> 1;\n}\n", Program(prog, token.Classic, 0))
}

func TestCheckNames(t *testing.T) {
	prog := parse(t, "🥚 f(egg) { let fn = 1; 🐔 egg + fn + let2; }", token.Emoji)

	require.NoError(t, CheckNames(prog, token.Emoji))

	err := CheckNames(prog, token.Classic)
	var clash *ClashError
	require.ErrorAs(t, err, &clash)
	assert.Equal(t, "classic", clash.Dialect)

	var names []string
	for _, c := range clash.Clashes {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"egg", "fn", "egg", "fn"}, names)
	assert.Equal(t, 1, clash.Clashes[0].Pos.Line)
}

func TestCheckNamesAcceptsAliases(t *testing.T) {
	prog := parse(t, "🥚 🐣() hatch()", token.Emoji)
	assert.NoError(t, CheckNames(prog, token.Emoji))
	assert.NoError(t, CheckNames(prog, token.Classic))
}

func TestCheckNamesRejectsAliasSpelling(t *testing.T) {
	prog := parse(t, "fn f(🐣) 🐣", token.Classic)
	assert.Error(t, CheckNames(prog, token.Emoji))
	assert.NoError(t, CheckNames(prog, token.Classic))
}

func TestFormatComments(t *testing.T) {
	prog := parse(t, "// a\n// b\nfn f() {\n// inside\n}", token.Classic)
	assert.Equal(t, "// a\n// b\n\nfn f() {\n    // inside\n}\n", Program(prog, token.Classic, 4))
}

func TestFormatErrorNodes(t *testing.T) {
	prog, parseErrors, err := parser.ParseSource("test.wry", "fn f() { @ *)> 1 + #; }", parser.WithDialect(token.Classic))
	require.NoError(t, err)
	require.Len(t, parseErrors, 2)

	assert.Equal(t, "fn f() {\n    error;\n    *)> (1 + error);\n}\n", Program(prog, token.Classic, 4))
}

func TestFormatNode(t *testing.T) {
	prog := parse(t, "fn f(a) if a { *)> a * 2; }", token.Classic)
	fn := prog.Items[0].(*ast.Function)

	assert.Equal(t, "fn f(a)", Node(fn.Definition, token.Classic, 4))
	assert.Equal(t, "if a {\n    *)> (a * 2);\n}", Node(fn.Body, token.Classic, 4))
	assert.Equal(t, "a", Node(fn.Definition.Params[0], token.Classic, 4))
}

// Formatting a clean program and parsing the result yields the same tree.
func TestRoundTrip(t *testing.T) {
	sources := []struct {
		source  string
		dialect *token.Dialect
	}{
		{"fn add(x, y) { *)> x + y; } [1+1=2, 2+2=4]", token.Classic},
		{"// c\nfn f(a,) { let b = a*(a-1)/2; // note\n if b { g(b, \"s\",); } else { *)> 0; }; } []", token.Classic},
		{"egg g() { {}; { {}; }; } [g() = {}]", token.Classic},
		{"🥚 🐣() { 🐔 🐣(); 🐓 1 - 2 - 3; } [🐣() = 1]", token.Emoji},
	}

	for _, tt := range sources {
		t.Run(tt.source, func(t *testing.T) {
			first := parse(t, tt.source, tt.dialect)
			formatted := Program(first, tt.dialect, DefaultIndent)
			second := parse(t, formatted, tt.dialect)

			assert.Equal(t, first.String(), second.String())
			assert.False(t, ast.HasErrors(second))

			// Formatting is idempotent
			assert.Equal(t, formatted, Program(second, tt.dialect, DefaultIndent))
		})
	}
}
