package parser

import (
	"fmt"
	"os"

	"wryneck/grammar"
	"wryneck/internal/ast"
	"wryneck/token"
)

type options struct {
	dialect *token.Dialect
}

// Option configures ParseSource and ParseFile.
type Option func(*options)

// WithDialect fixes the dialect instead of detecting it from the source.
// A nil dialect keeps detection.
func WithDialect(d *token.Dialect) Option {
	return func(o *options) {
		o.dialect = d
	}
}

// ParseSource scans and parses source. Syntax errors are returned as
// records next to a best-effort program; the error result is reserved for
// hard failures, in which case the program is nil.
func ParseSource(path string, source string, opts ...Option) (*ast.Program, []ParseError, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	d := o.dialect
	if d == nil {
		d = grammar.DetectDialect(source)
	}

	tokens, err := NewScanner(path, source, d).ScanTokens()
	if err != nil {
		return nil, nil, err
	}

	parser := NewParser(path, tokens, d)
	program, err := parser.ParseProgram()
	return program, parser.Errors(), err
}

// ParseFile reads path and parses its contents with ParseSource.
func ParseFile(path string, opts ...Option) (*ast.Program, []ParseError, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseSource(path, string(source), opts...)
}
