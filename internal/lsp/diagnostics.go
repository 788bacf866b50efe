package lsp

import (
	stderrors "errors"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"wryneck/internal/errors"
	"wryneck/internal/parser"
)

const diagnosticSource = "wryneck"

// CollectDiagnostics gathers everything worth showing for doc: the syntax
// error records, a hard failure if parsing was abandoned, and the resolver
// diagnostics when a program was produced.
func CollectDiagnostics(doc *document) []protocol.Diagnostic {
	diagnostics := ConvertParseErrors(doc.source, doc.errors)

	if doc.failure != nil {
		diagnostics = append(diagnostics, convertFailure(doc.source, doc.failure))
	}

	if doc.resolved != nil {
		diagnostics = append(diagnostics, ConvertCompilerErrors(doc.source, doc.resolved.Diagnostics())...)
	}

	return diagnostics
}

// ConvertParseErrors transforms syntax error records into LSP diagnostics.
// Each one spans the offending token.
func ConvertParseErrors(source string, parseErrors []parser.ParseError) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	for _, parseErr := range parseErrors {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    rangeOf(source, parseErr.Token.Position, parseErr.Token.End()),
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Code:     &protocol.IntegerOrString{Value: parseErr.Code},
			Source:   ptrString(diagnosticSource),
			Message:  parseErr.Message,
		})
	}

	return diagnostics
}

// ConvertCompilerErrors transforms structured diagnostics, keeping their
// level and suggestions.
func ConvertCompilerErrors(source string, compilerErrors []errors.CompilerError) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	for _, err := range compilerErrors {
		severity := protocol.DiagnosticSeverityError
		if err.Level == errors.Warning {
			severity = protocol.DiagnosticSeverityWarning
		}

		message := err.Message
		for _, s := range err.Suggestions {
			message += "\nhelp: " + s.Message
		}

		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    spanRange(source, err.Position, max(err.Length, 1)),
			Severity: ptrSeverity(severity),
			Code:     &protocol.IntegerOrString{Value: err.Code},
			Source:   ptrString(diagnosticSource),
			Message:  message,
		})
	}

	return diagnostics
}

func convertFailure(source string, failure error) protocol.Diagnostic {
	var numErr *parser.NumberFormatError
	if stderrors.As(failure, &numErr) {
		return ConvertCompilerErrors(source, []errors.CompilerError{
			errors.NumberOutOfRange(numErr.Literal, numErr.Position),
		})[0]
	}

	return protocol.Diagnostic{
		Range:    spanRange(source, endOf(source), 0),
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString(diagnosticSource),
		Message:  failure.Error(),
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
