package parser

import (
	"fmt"

	"wryneck/internal/errors"
	"wryneck/token"
)

// ParseError records one recoverable syntax error. Errors are appended in
// the order they are detected and never removed.
type ParseError struct {
	Code     string
	Message  string
	Position token.Position
	Token    token.Token // the offending token
	Expected []string    // what would have been accepted instead
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Message)
}

// CompilerError converts the record into a reportable diagnostic.
func (e ParseError) CompilerError() errors.CompilerError {
	switch e.Code {
	case errors.ErrorUnexpectedEOF:
		return errors.UnexpectedEOF(e.Expected, e.Position)
	case errors.ErrorMissingToken:
		return errors.MissingToken(e.Expected, e.Token.Lexeme, e.Position)
	default:
		return errors.UnexpectedToken(e.Token.Lexeme, e.Expected, e.Position)
	}
}

// NumberFormatError is the hard failure raised for a digit run outside the
// signed 32-bit range.
type NumberFormatError = token.NumberFormatError

// CompilerErrors converts a slice of records for reporting.
func CompilerErrors(errs []ParseError) []errors.CompilerError {
	out := make([]errors.CompilerError, len(errs))
	for i, e := range errs {
		out[i] = e.CompilerError()
	}
	return out
}
