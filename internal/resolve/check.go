package resolve

import (
	stderrors "errors"
	"io"

	"wryneck/internal/ast"
	"wryneck/internal/errors"
	"wryneck/internal/parser"
)

// Result is everything known about one source file after parsing and
// resolution.
type Result struct {
	Path    string
	Source  string
	Syntax  *ast.Program // nil after a hard failure
	Program *Program     // nil after a hard failure

	// Diagnostics holds syntax errors and resolver diagnostics, ordered by
	// position.
	Diagnostics []errors.CompilerError
	Failure     error
}

// Check parses and resolves source. A hard failure is reported as a
// diagnostic as well as through Failure.
func Check(path, source string, opts ...parser.Option) *Result {
	result := &Result{Path: path, Source: source}

	prog, parseErrors, err := parser.ParseSource(path, source, opts...)
	result.Diagnostics = parser.CompilerErrors(parseErrors)

	if err != nil {
		result.Failure = err
		result.Diagnostics = append(result.Diagnostics, failureDiagnostic(err))
		return result
	}

	result.Syntax = prog
	result.Program = Resolve(prog)
	result.Diagnostics = append(result.Diagnostics, result.Program.Diagnostics()...)
	errors.Sort(result.Diagnostics)
	return result
}

func failureDiagnostic(err error) errors.CompilerError {
	var numErr *parser.NumberFormatError
	if stderrors.As(err, &numErr) {
		return errors.NumberOutOfRange(numErr.Literal, numErr.Position)
	}
	return errors.CompilerError{Level: errors.Error, Message: err.Error()}
}

// Clean reports whether the file has no errors. Warnings do not count.
func (r *Result) Clean() bool {
	return r.ErrorCount() == 0
}

// ErrorCount counts diagnostics at error level.
func (r *Result) ErrorCount() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Level == errors.Error {
			n++
		}
	}
	return n
}

// Report prints the diagnostics with source excerpts. Warnings are left
// out unless warnings is set. It returns the number of errors.
func (r *Result) Report(w io.Writer, warnings bool) int {
	diagnostics := r.Diagnostics
	if !warnings {
		diagnostics = nil
		for _, d := range r.Diagnostics {
			if d.Level != errors.Warning {
				diagnostics = append(diagnostics, d)
			}
		}
	}
	return errors.NewErrorReporter(r.Path, r.Source).Report(w, diagnostics)
}
