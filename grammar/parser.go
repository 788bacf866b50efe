package grammar

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
	"wryneck/internal/ast"
	"wryneck/token"
)

var (
	parsersMu sync.Mutex
	parsers   = map[*token.Dialect]*participle.Parser[Program]{}
)

func build(d *token.Dialect) (*participle.Parser[Program], error) {
	parsersMu.Lock()
	defer parsersMu.Unlock()

	if p, ok := parsers[d]; ok {
		return p, nil
	}

	p, err := participle.Build[Program](
		participle.Lexer(Lexer(d)),
		participle.Elide("Whitespace"),
		participle.UseLookahead(3),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s parser: %w", d.Name, err)
	}
	parsers[d] = p
	return p, nil
}

// Parse parses source strictly. The first syntax error is returned as a
// participle.Error; an out of range literal as a *token.NumberFormatError.
func Parse(filename, source string, d *token.Dialect) (*ast.Program, error) {
	if d == nil {
		d = DetectDialect(source)
	}

	parser, err := build(d)
	if err != nil {
		return nil, err
	}

	tree, err := parser.ParseString(filename, source)
	if err != nil {
		return nil, err
	}

	c := &converter{dialect: d}
	return c.program(tree)
}

// ReportError writes a caret-style message for err to w.
func ReportError(w io.Writer, src string, err error) {
	red := color.New(color.FgRed)
	hiRed := color.New(color.FgHiRed)

	var pe participle.Error
	if !errors.As(err, &pe) {
		red.Fprintf(w, "Unexpected error: %s\n", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		red.Fprintf(w, "Syntax error at unknown location: %s\n", err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", max(pos.Column-1, 0)) + "^"

	red.Fprintf(w, "Syntax error in %s at line %d, column %d:\n", pos.Filename, pos.Line, pos.Column)
	fmt.Fprintln(w, line)
	hiRed.Fprintln(w, caret)
	fmt.Fprintf(w, "→ %s\n", pe.Message())
}
