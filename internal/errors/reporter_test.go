package errors

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"wryneck/internal/ast"
)

func TestErrorReporter(t *testing.T) {
	color.NoColor = true

	source := `fn add(x, y) {
    *)> x + ;
}`

	reporter := NewErrorReporter("test.wry", source)

	err := UnexpectedToken(";", []string{"expression"}, ast.Position{Line: 2, Column: 13})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "error["+ErrorUnexpectedToken+"]")
	assert.Contains(t, formatted, "unexpected `;`, expected expression")
	assert.Contains(t, formatted, "test.wry:2:13")

	// Excerpt shows the offending line and the lines around it
	assert.Contains(t, formatted, "fn add(x, y) {")
	assert.Contains(t, formatted, "*)> x + ;")
	assert.Contains(t, formatted, strings.Repeat(" ", 12)+"^")
	assert.Contains(t, formatted, "expected: expression")
}

func TestExpectedAlternativesAreListed(t *testing.T) {
	color.NoColor = true

	reporter := NewErrorReporter("test.wry", "fn f(x 1) x")
	err := MissingToken([]string{"','", "')'"}, "1", ast.Position{Line: 1, Column: 8})
	assert.Equal(t, "expected ',' or ')', found `1`", err.Message)

	formatted := reporter.FormatError(err)
	assert.Contains(t, formatted, "expected: ',' or ')'")
	assert.NotContains(t, formatted, "help:")
}

func TestEndOfInputExcerpt(t *testing.T) {
	color.NoColor = true

	source := "fn f() {\n    *)> 1\n\n"
	reporter := NewErrorReporter("test.wry", source)

	err := UnexpectedEOF([]string{"';'"}, ast.Position{Line: 4, Column: 1, Offset: len(source)})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "test.wry:4:1")
	assert.Contains(t, formatted, "  1 │ fn f() {")
	assert.Contains(t, formatted, "  2 │     *)> 1")
	assert.Contains(t, formatted, "    │ ---------^")
	assert.NotContains(t, formatted, "  4 │")
	assert.Contains(t, formatted, "expected: ';'")
}

func TestEndOfInputOnEmptySource(t *testing.T) {
	color.NoColor = true

	formatted := NewErrorReporter("empty.wry", "").FormatError(UnexpectedEOF(nil, ast.Position{Line: 1, Column: 1}))
	assert.Contains(t, formatted, "  1 │ \n")
	assert.Contains(t, formatted, "    │ ^")
	assert.NotContains(t, formatted, "expected:")
}

func TestMarkerKeepsTabs(t *testing.T) {
	color.NoColor = true

	reporter := NewErrorReporter("test.wry", "\tlet = 1;")
	marker := reporter.createMarker("\tlet = 1;", 6, 1, Error)
	assert.Equal(t, "\t    ^", marker)
}

func TestUnexpectedTokenError(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 5}

	err := UnexpectedToken("🐔", []string{"'('", "'{'"}, pos)
	assert.Equal(t, ErrorUnexpectedToken, err.Code)
	assert.Equal(t, Error, err.Level)
	assert.Equal(t, "unexpected `🐔`, expected '(' or '{'", err.Message)
	assert.Equal(t, 1, err.Length)
}

func TestMissingSemicolonHasHelp(t *testing.T) {
	err := MissingToken([]string{"';'"}, "}", ast.Position{Line: 3, Column: 1})
	assert.Equal(t, ErrorMissingToken, err.Code)
	assert.Contains(t, err.Message, "expected ';', found `}`")
	assert.NotEmpty(t, err.HelpText)
}

func TestUnexpectedEOFError(t *testing.T) {
	err := UnexpectedEOF([]string{"'}'"}, ast.Position{Line: 9, Column: 1})
	assert.Equal(t, ErrorUnexpectedEOF, err.Code)
	assert.Equal(t, "unexpected end of input, expected '}'", err.Message)
	assert.Len(t, err.Notes, 1)
}

func TestUnknownFunctionWarning(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 5}

	err := UnknownFunction("ad", pos, []string{"add", "sub"})
	assert.Equal(t, Warning, err.Level)
	assert.Equal(t, WarningUnknownFunction, err.Code)
	assert.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "did you mean 'add'")

	err = UnknownFunction("print", pos, []string{"add"})
	assert.Empty(t, err.Suggestions)
	assert.Len(t, err.Notes, 1)
}

func TestDuplicateDeclarationError(t *testing.T) {
	err := DuplicateDeclaration("add", ast.Position{Line: 4, Column: 4}, ast.Position{Filename: "a.wry", Line: 1, Column: 4})
	assert.Equal(t, ErrorDuplicateDeclaration, err.Code)
	assert.Contains(t, err.Notes[0], "a.wry:1:4")
}

func TestLevenshteinCountsRunes(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("add", "add"))
	assert.Equal(t, 1, levenshteinDistance("add", "ad"))
	assert.Equal(t, 1, levenshteinDistance("🐔x", "🐓x"))
	assert.Equal(t, 3, levenshteinDistance("", "abc"))
}

func TestReportSummary(t *testing.T) {
	color.NoColor = true

	reporter := NewErrorReporter("test.wry", "fn f() x")
	errs := []CompilerError{
		UnknownFunction("g", ast.Position{Line: 1, Column: 8}, nil),
		UnexpectedEOF(nil, ast.Position{Line: 1, Column: 9}),
		UnexpectedToken("x", nil, ast.Position{Line: 1, Column: 8}),
	}

	var out bytes.Buffer
	count := reporter.Report(&out, errs)
	assert.Equal(t, 2, count)
	assert.Contains(t, out.String(), "test.wry: 2 errors, 1 warning generated")
}

func TestSortIsStable(t *testing.T) {
	errs := []CompilerError{
		{Message: "b", Position: ast.Position{Offset: 5}},
		{Message: "a", Position: ast.Position{Offset: 1}},
		{Message: "c", Position: ast.Position{Offset: 5}},
	}
	Sort(errs)
	assert.Equal(t, "a", errs[0].Message)
	assert.Equal(t, "b", errs[1].Message)
	assert.Equal(t, "c", errs[2].Message)
}

func TestErrorCategories(t *testing.T) {
	assert.Equal(t, "Parser", GetErrorCategory(ErrorUnexpectedToken))
	assert.Equal(t, "Resolution", GetErrorCategory(ErrorDuplicateDeclaration))
	assert.Equal(t, "Warning", GetErrorCategory(WarningUnknownFunction))
	assert.True(t, IsWarning(WarningUnusedParameter))
	assert.False(t, IsWarning(ErrorMissingToken))
	assert.False(t, IsWarning(""))
}
