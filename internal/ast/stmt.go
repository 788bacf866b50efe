package ast

type Stmt interface {
	Node
	isStmt()
}

// LetStmt binds a name to a value
// Example: "let total = a + b;"
type LetStmt struct {
	Pos    Position
	EndPos Position
	Name   Ident
	Value  Expr
}

// ReturnStmt returns a value from the enclosing function
// Example: "*)> total;", "🐔 total;"
type ReturnStmt struct {
	Pos    Position
	EndPos Position
	Value  Expr
}

// ExprStmt represents expression statements
// Example: "print(x);"
type ExprStmt struct {
	Pos    Position
	EndPos Position
	Expr   Expr
}

// BadStmt stands in for a statement that failed to parse
type BadStmt struct {
	Bad BadNode
}

func (*LetStmt) isStmt()    {}
func (*ReturnStmt) isStmt() {}
func (*ExprStmt) isStmt()   {}
func (*Comment) isStmt()    {}
func (*BadStmt) isStmt()    {}
