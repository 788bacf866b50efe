package ast

import "wryneck/token"

// Position tracks location information for error reporting and tooling
type Position = token.Position

// Program is the root of a parsed source file. Items keep source order.
type Program struct {
	Pos    Position
	EndPos Position
	Items  []TopLevel
}

// Comment represents a line comment, kept verbatim including the leading "//"
// Example: "// adds two numbers"
type Comment struct {
	Pos    Position
	EndPos Position
	Text   string
}

// Ident represents a name written in the source: function, parameter and let names
// Example: "add", "x", "hatch"
type Ident struct {
	Pos    Position
	EndPos Position
	Value  string
}

// Function represents a function declaration with its optional test block
// Example: "fn add(x, y) { *)> x + y; } [1+1=2]"
type Function struct {
	Pos        Position
	EndPos     Position
	Definition *FunctionDefinition
	Body       Expr
	Tests      []*Test // never nil; empty when no test block is present
}

// FunctionDefinition represents the head of a function
// Example: "fn add(x, y)"
type FunctionDefinition struct {
	Pos    Position
	EndPos Position
	Name   Ident
	Params []*Parameter
}

// Parameter represents a single function parameter
type Parameter struct {
	Pos    Position
	EndPos Position
	Name   Ident
}

// Test pairs an input expression with its expected output
// Example: "1+1=2"
type Test struct {
	Pos    Position
	EndPos Position
	Input  Expr
	Output Expr
}

// BadNode contains error information for failed parsing
type BadNode struct {
	Pos     Position
	EndPos  Position
	Message string
}

type TopLevel interface {
	Node
	isTopLevel()
}

func (*Function) isTopLevel() {}
func (*Comment) isTopLevel()  {}
