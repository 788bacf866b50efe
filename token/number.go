// SPDX-License-Identifier: Apache-2.0
package token

import (
	"fmt"
	"strconv"
)

// NumberFormatError reports a decimal literal that does not fit a signed
// 32-bit integer. The scanner only produces digit runs, so this is a broken
// invariant rather than a syntax error.
type NumberFormatError struct {
	Literal  string
	Position Position
	Err      error
}

func (e *NumberFormatError) Error() string {
	return fmt.Sprintf("%s: invalid number literal %q: %v", e.Position, e.Literal, e.Err)
}

func (e *NumberFormatError) Unwrap() error {
	return e.Err
}

// ParseNumber decodes a NUMBER lexeme.
func ParseNumber(literal string, pos Position) (int32, error) {
	v, err := strconv.ParseInt(literal, 10, 32)
	if err != nil {
		return 0, &NumberFormatError{Literal: literal, Position: pos, Err: err}
	}
	return int32(v), nil
}
