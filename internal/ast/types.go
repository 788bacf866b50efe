package ast

type NodeType int

const (
	// Special / error
	ILLEGAL NodeType = iota
	BAD_STMT
	BAD_EXPR

	// Comments
	COMMENT

	// High-level constructs
	PROGRAM
	FUNCTION
	FUNCTION_DEFINITION
	PARAMETER
	TEST
	IDENT

	// Statements
	LET_STMT
	RETURN_STMT
	EXPR_STMT

	// Expressions
	NUMBER_EXPR
	STRING_EXPR
	BLOCK_EXPR
	IF_EXPR
	CALL_EXPR
	VARIABLE_EXPR
	BINARY_EXPR
)

var nodeTypeNames = [...]string{
	ILLEGAL:             "ILLEGAL",
	BAD_STMT:            "BAD_STMT",
	BAD_EXPR:            "BAD_EXPR",
	COMMENT:             "COMMENT",
	PROGRAM:             "PROGRAM",
	FUNCTION:            "FUNCTION",
	FUNCTION_DEFINITION: "FUNCTION_DEFINITION",
	PARAMETER:           "PARAMETER",
	TEST:                "TEST",
	IDENT:               "IDENT",
	LET_STMT:            "LET_STMT",
	RETURN_STMT:         "RETURN_STMT",
	EXPR_STMT:           "EXPR_STMT",
	NUMBER_EXPR:         "NUMBER_EXPR",
	STRING_EXPR:         "STRING_EXPR",
	BLOCK_EXPR:          "BLOCK_EXPR",
	IF_EXPR:             "IF_EXPR",
	CALL_EXPR:           "CALL_EXPR",
	VARIABLE_EXPR:       "VARIABLE_EXPR",
	BINARY_EXPR:         "BINARY_EXPR",
}

func (nt NodeType) String() string {
	if nt >= 0 && int(nt) < len(nodeTypeNames) {
		return nodeTypeNames[nt]
	}
	return "NodeType(?)"
}
