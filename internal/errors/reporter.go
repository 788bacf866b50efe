package errors

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"wryneck/internal/ast"
)

// ErrorLevel represents the severity of an error
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
)

// CompilerError represents a structured error with suggestions and context
type CompilerError struct {
	Level       ErrorLevel
	Code        string       // Error code like E0001
	Message     string       // Primary error message
	Position    ast.Position // Location in source
	Length      int          // Length of the problematic region
	Expected    []string     // Alternatives the parser would have accepted
	Suggestions []Suggestion // Suggested fixes
	Notes       []string     // Additional context notes
	HelpText    string       // Help text for the error
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message string
}

// ErrorReporter handles consistent error formatting and suggestions
type ErrorReporter struct {
	filename string
	source   string
	lines    []string
}

// NewErrorReporter creates a new error reporter for a file
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		source:   source,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatError formats a diagnostic with a source excerpt and its suggestions
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var result strings.Builder

	levelColor := er.getLevelColor(err.Level)
	dim := color.New(color.Faint).SprintFunc()

	// Header: error[E0001]: message
	if err.Code != "" {
		result.WriteString(fmt.Sprintf("%s[%s]: %s\n",
			levelColor(string(err.Level)), err.Code, err.Message))
	} else {
		result.WriteString(fmt.Sprintf("%s: %s\n",
			levelColor(string(err.Level)), err.Message))
	}

	lineNumberWidth := er.getLineNumberWidth(err.Position.Line)
	indent := strings.Repeat(" ", lineNumberWidth)

	result.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n",
		indent, dim("-->"), er.filename, err.Position.Line, err.Position.Column))
	result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	if err.Code == ErrorUnexpectedEOF {
		er.writeEndOfInput(&result, err, lineNumberWidth)
	} else {
		er.writeExcerpt(&result, err, lineNumberWidth)
	}

	if len(err.Expected) > 0 {
		expectedColor := color.New(color.FgMagenta).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n",
			indent, dim("│"), expectedColor("expected:"), expectation(err.Expected)))
	}

	if len(err.Suggestions) > 0 {
		suggestionColor := color.New(color.FgCyan).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))
		for i, suggestion := range err.Suggestions {
			if i == 0 {
				result.WriteString(fmt.Sprintf("%s %s %s: %s\n",
					indent, suggestionColor("help"), suggestionColor("try"), suggestion.Message))
			} else {
				result.WriteString(fmt.Sprintf("%s %s %s\n",
					indent, suggestionColor("    "), suggestion.Message))
			}
		}
	}

	for _, note := range err.Notes {
		noteColor := color.New(color.FgBlue).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n",
			indent, dim("│"), noteColor("note:"), note))
	}

	if err.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n",
			indent, dim("│"), helpColor("help:"), err.HelpText))
	}

	result.WriteString("\n")
	return result.String()
}

// writeExcerpt prints the offending line between its neighbours with a
// marker under the span.
func (er *ErrorReporter) writeExcerpt(result *strings.Builder, err CompilerError, width int) {
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	indent := strings.Repeat(" ", width)

	if err.Position.Line > 1 && err.Position.Line-1 <= len(er.lines) {
		er.writeLine(result, err.Position.Line-1, width, dim)
	}

	if err.Position.Line <= len(er.lines) && err.Position.Line > 0 {
		er.writeLine(result, err.Position.Line, width, bold)

		// tabs are kept so the caret lines up
		marker := er.createMarker(er.lines[err.Position.Line-1], err.Position.Column, err.Length, err.Level)
		result.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), marker))
	}

	if err.Position.Line > 0 && err.Position.Line < len(er.lines) {
		er.writeLine(result, err.Position.Line+1, width, dim)
	}
}

// writeEndOfInput prints the last non-blank line and the one before it,
// then runs a dashed marker out to just past its end.
func (er *ErrorReporter) writeEndOfInput(result *strings.Builder, err CompilerError, width int) {
	dim := color.New(color.Faint).SprintFunc()
	indent := strings.Repeat(" ", width)

	last := min(err.Position.Line, len(er.lines))
	for last > 1 && strings.TrimSpace(er.lines[last-1]) == "" {
		last--
	}
	if last < 1 {
		return
	}

	if last > 1 {
		er.writeLine(result, last-1, width, dim)
	}
	er.writeLine(result, last, width, color.New(color.Bold).SprintFunc())

	markerColor := er.getLevelColor(err.Level)
	dashes := strings.Repeat("-", utf8.RuneCountInString(er.lines[last-1]))
	result.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), markerColor(dashes+"^")))
}

func (er *ErrorReporter) writeLine(result *strings.Builder, line, width int, style func(...interface{}) string) {
	dim := color.New(color.Faint).SprintFunc()
	result.WriteString(fmt.Sprintf("%s %s %s\n",
		style(fmt.Sprintf("%*d", width, line)), dim("│"), er.lines[line-1]))
}

// getLevelColor returns the appropriate color function for an error level
func (er *ErrorReporter) getLevelColor(level ErrorLevel) func(...interface{}) string {
	if level == Warning {
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	}
	return color.New(color.FgRed, color.Bold).SprintFunc()
}

// createMarker creates the underline marker for errors. column counts runes.
func (er *ErrorReporter) createMarker(line string, column, length int, level ErrorLevel) string {
	if length <= 0 {
		length = 1
	}

	var spaces strings.Builder
	runes := []rune(line)
	for i := 0; i < column-1; i++ {
		if i < len(runes) && runes[i] == '\t' {
			spaces.WriteRune('\t')
		} else {
			spaces.WriteRune(' ')
		}
	}

	markerChar := "^"
	if level == Warning {
		markerChar = "-"
	}
	return spaces.String() + er.getLevelColor(level)(strings.Repeat(markerChar, length))
}

// getLineNumberWidth calculates the width needed for line numbers
func (er *ErrorReporter) getLineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3 // minimum width for visual alignment
	}
	return width
}

// Error implements the error interface so diagnostics can travel through
// ordinary error returns.
func (e CompilerError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%s: %s: %s", e.Position, e.Level, e.Message)
	}
	return fmt.Sprintf("%s: %s[%s]: %s", e.Position, e.Level, e.Code, e.Message)
}

// Sort orders diagnostics by source position, keeping detection order for ties.
func Sort(errs []CompilerError) {
	sort.SliceStable(errs, func(i, j int) bool {
		return errs[i].Position.Offset < errs[j].Position.Offset
	})
}

// Report writes every diagnostic followed by a summary line and returns the
// number of errors, warnings excluded.
func (er *ErrorReporter) Report(w io.Writer, errs []CompilerError) int {
	errorCount, warningCount := 0, 0
	for _, err := range errs {
		fmt.Fprint(w, er.FormatError(err))
		if err.Level == Warning {
			warningCount++
		} else if err.Level == Error {
			errorCount++
		}
	}

	if errorCount+warningCount > 0 {
		fmt.Fprintln(w, er.Summary(errorCount, warningCount))
	}
	return errorCount
}

// Summary renders the closing "N errors, M warnings" line.
func (er *ErrorReporter) Summary(errorCount, warningCount int) string {
	var parts []string
	if errorCount > 0 {
		parts = append(parts, er.getLevelColor(Error)(plural(errorCount, "error")))
	}
	if warningCount > 0 {
		parts = append(parts, er.getLevelColor(Warning)(plural(warningCount, "warning")))
	}
	return fmt.Sprintf("%s: %s generated", er.filename, strings.Join(parts, ", "))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
