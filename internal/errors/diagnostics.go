package errors

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"wryneck/internal/ast"
)

// DiagnosticBuilder provides a fluent interface for creating diagnostics with suggestions
type DiagnosticBuilder struct {
	err CompilerError
}

// NewError creates a new error builder
func NewError(code, message string, pos ast.Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewWarning creates a new warning builder
func NewWarning(code, message string, pos ast.Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		err: CompilerError{
			Level:    Warning,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span in columns
func (b *DiagnosticBuilder) WithLength(length int) *DiagnosticBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *DiagnosticBuilder) WithSuggestion(message string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithExpected records the alternatives the parser would have accepted
func (b *DiagnosticBuilder) WithExpected(expected []string) *DiagnosticBuilder {
	b.err.Expected = expected
	return b
}

// WithNote adds a note to the error
func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error
func (b *DiagnosticBuilder) Build() CompilerError {
	return b.err
}

// Parser diagnostics

func expectation(expected []string) string {
	switch len(expected) {
	case 0:
		return ""
	case 1:
		return expected[0]
	default:
		return strings.Join(expected[:len(expected)-1], ", ") + " or " + expected[len(expected)-1]
	}
}

// UnexpectedToken creates an error for a token that cannot appear where it was found
func UnexpectedToken(found string, expected []string, pos ast.Position) CompilerError {
	message := fmt.Sprintf("unexpected `%s`", found)
	if len(expected) > 0 {
		message += ", expected " + expectation(expected)
	}
	return NewError(ErrorUnexpectedToken, message, pos).
		WithLength(utf8.RuneCountInString(found)).
		WithExpected(expected).
		Build()
}

// MissingToken creates an error for a required token that is absent
func MissingToken(expected []string, found string, pos ast.Position) CompilerError {
	missing := expectation(expected)
	if missing == "" {
		missing = "token"
	}
	builder := NewError(ErrorMissingToken, fmt.Sprintf("expected %s, found `%s`", missing, found), pos).
		WithLength(max(utf8.RuneCountInString(found), 1)).
		WithExpected(expected)

	if missing == "';'" {
		builder = builder.WithHelp("every statement inside a block ends with ';'")
	}
	return builder.Build()
}

// UnexpectedEOF creates an error for input that ends inside a construct
func UnexpectedEOF(expected []string, pos ast.Position) CompilerError {
	message := "unexpected end of input"
	if len(expected) > 0 {
		message += ", expected " + expectation(expected)
	}
	return NewError(ErrorUnexpectedEOF, message, pos).
		WithExpected(expected).
		WithNote("a construct was left open at the end of the file").
		Build()
}

// NumberOutOfRange creates an error for literals beyond the 32-bit range
func NumberOutOfRange(literal string, pos ast.Position) CompilerError {
	return NewError(ErrorNumberOutOfRange, fmt.Sprintf("number literal %s does not fit in 32 bits", literal), pos).
		WithLength(len(literal)).
		WithHelp("number literals must lie between -2147483648 and 2147483647").
		Build()
}

// Resolution diagnostics

// DuplicateDeclaration creates an error for a function name defined twice
func DuplicateDeclaration(name string, pos ast.Position, first ast.Position) CompilerError {
	return NewError(ErrorDuplicateDeclaration, fmt.Sprintf("duplicate declaration: %s", name), pos).
		WithLength(utf8.RuneCountInString(name)).
		WithSuggestion(fmt.Sprintf("rename the duplicate '%s' to a unique name", name)).
		WithNote(fmt.Sprintf("'%s' is first defined at %s", name, first)).
		Build()
}

// UnknownFunction creates a warning for calls that resolve to nothing
func UnknownFunction(name string, pos ast.Position, candidates []string) CompilerError {
	builder := NewWarning(WarningUnknownFunction, fmt.Sprintf("call to unknown function '%s'", name), pos).
		WithLength(utf8.RuneCountInString(name))

	similar := findSimilarNames(name, candidates)
	switch len(similar) {
	case 0:
		builder = builder.WithNote("the function may be provided by the environment running the tests")
	case 1:
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
	default:
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similar, "', '")))
	}
	return builder.Build()
}

// UnusedParameter creates a warning for a parameter the body never reads
func UnusedParameter(name string, pos ast.Position) CompilerError {
	return NewWarning(WarningUnusedParameter, fmt.Sprintf("unused parameter '%s'", name), pos).
		WithLength(utf8.RuneCountInString(name)).
		WithSuggestion(fmt.Sprintf("if this is intentional, prefix it with an underscore: _%s", name)).
		Build()
}

func findSimilarNames(target string, candidates []string) []string {
	var similar []string

	for _, candidate := range candidates {
		if candidate != target && levenshteinDistance(target, candidate) <= 2 && utf8.RuneCountInString(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}

	return similar
}

// Levenshtein distance over runes, so emoji names count as one edit each
func levenshteinDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
