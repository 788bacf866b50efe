package format

import (
	"fmt"
	"strings"

	"wryneck/internal/ast"
	"wryneck/token"
)

// NameClash is a name that would not read back as itself once printed in
// the target dialect.
type NameClash struct {
	Name string
	Pos  ast.Position
}

// ClashError lists every clashing name of a program.
type ClashError struct {
	Dialect string
	Clashes []NameClash
}

func (e *ClashError) Error() string {
	names := make([]string, len(e.Clashes))
	for i, c := range e.Clashes {
		names[i] = fmt.Sprintf("'%s' at %s", c.Name, c.Pos)
	}
	return fmt.Sprintf("cannot print in the %s dialect: %s would be read as a different name or a keyword",
		e.Dialect, strings.Join(names, ", "))
}

// CheckNames reports the names of prog that collide with a keyword or an
// alias of d. Printing such a program in d yields source that parses
// differently, e.g. a variable "fn" from an emoji file printed as classic.
func CheckNames(prog *ast.Program, d *token.Dialect) error {
	if d == nil {
		d = token.Classic
	}

	var clashes []NameClash
	check := func(name string, pos ast.Position) {
		if name == "" {
			return
		}
		surface := d.SurfaceName(name)
		if _, keyword := d.Lookup(surface); keyword || d.CanonicalName(surface) != name {
			clashes = append(clashes, NameClash{Name: name, Pos: pos})
		}
	}

	ast.Walk(prog, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Ident:
			check(n.Value, n.Pos)
		case *ast.VariableExpr:
			check(n.Name, n.Pos)
		}
		return true
	})

	if len(clashes) > 0 {
		return &ClashError{Dialect: d.Name, Clashes: clashes}
	}
	return nil
}
