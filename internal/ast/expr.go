package ast

type Expr interface {
	Node
	isExpr()
}

// Opcode is the operator of a BinaryExpr
type Opcode int

const (
	Add Opcode = iota
	Sub
	Mul
	Div
)

func (op Opcode) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	default:
		return "?"
	}
}

// NumberExpr represents a signed 32-bit integer literal
// Example: "42"
type NumberExpr struct {
	Pos    Position
	EndPos Position
	Value  int32
}

// StringExpr represents a string literal; Value holds the text between the
// quotes with escapes left as written
// Example: "\"hello\""
type StringExpr struct {
	Pos    Position
	EndPos Position
	Value  string
}

// BlockExpr represents a braced statement list
// Example: "{ let x = 1; *)> x; }"
type BlockExpr struct {
	Pos    Position
	EndPos Position
	Stmts  []Stmt
}

// IfExpr represents a conditional; Else is nil when there is no else branch
// Example: "if x { *)> 1; } else { *)> 2; }"
type IfExpr struct {
	Pos    Position
	EndPos Position
	Cond   Expr
	Body   *BlockExpr
	Else   *BlockExpr
}

// CallExpr represents function calls
// Example: "add(1, 2)", "now()"
type CallExpr struct {
	Pos    Position
	EndPos Position
	Name   Ident
	Args   []Expr
}

// VariableExpr represents a bare identifier used as a value
type VariableExpr struct {
	Pos    Position
	EndPos Position
	Name   string
}

// BinaryExpr represents arithmetic
// Example: "a + b * c"
type BinaryExpr struct {
	Pos    Position
	EndPos Position
	Left   Expr
	Op     Opcode
	Right  Expr
}

// BadExpr represents parse errors in expressions
type BadExpr struct {
	Bad BadNode
}

func (*NumberExpr) isExpr()   {}
func (*StringExpr) isExpr()   {}
func (*BlockExpr) isExpr()    {}
func (*IfExpr) isExpr()       {}
func (*CallExpr) isExpr()     {}
func (*VariableExpr) isExpr() {}
func (*BinaryExpr) isExpr()   {}
func (*BadExpr) isExpr()      {}
