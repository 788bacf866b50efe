package errors

// Error codes for the wryneck toolchain
// These codes are used in diagnostics and in the language server
// to provide consistent error identification across the toolchain.
//
// Error code ranges:
// E0001-E0099: Resolution errors
// E0100-E0199: Parser errors
// W0001-W0099: Warnings

const (
	// E0009: Two functions share a name
	ErrorDuplicateDeclaration = "E0009"

	// Parser errors (reserved range: E0100-E0199)

	// E0100: A token that cannot start or continue the current construct
	ErrorUnexpectedToken = "E0100"

	// E0101: A required token is missing, e.g. the ';' after a statement
	ErrorMissingToken = "E0101"

	// E0102: Input ended in the middle of a construct
	ErrorUnexpectedEOF = "E0102"

	// E0103: Number literal does not fit a signed 32-bit integer
	ErrorNumberOutOfRange = "E0103"

	// Warning codes

	// W0001: Parameter is never referenced in the function body
	WarningUnusedParameter = "W0001"

	// W0003: Call to a name that is neither a function nor a variable in scope
	WarningUnknownFunction = "W0003"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorDuplicateDeclaration:
		return "Duplicate declaration found"
	case ErrorUnexpectedToken:
		return "Token cannot appear here"
	case ErrorMissingToken:
		return "Expected token is missing"
	case ErrorUnexpectedEOF:
		return "Input ends in the middle of a construct"
	case ErrorNumberOutOfRange:
		return "Number literal does not fit a signed 32-bit integer"
	case WarningUnusedParameter:
		return "Parameter is declared but never used"
	case WarningUnknownFunction:
		return "Called function is not defined in this file"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the error code represents a warning rather than an error
func IsWarning(code string) bool {
	return code != "" && code[0] == 'W'
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0001" && code < "E0100":
		return "Resolution"
	case code >= "E0100" && code < "E0200":
		return "Parser"
	case IsWarning(code):
		return "Warning"
	default:
		return "Unknown"
	}
}
