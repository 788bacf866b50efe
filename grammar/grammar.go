package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// The declarative grammar accepts exactly the well-formed programs. It
// does no error recovery; the first mismatch fails the parse.

type Program struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Items  []*TopLevel `@@*`
}

type TopLevel struct {
	Comment  *Comment  `  @@`
	Function *Function `| @@`
}

type Comment struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Text   string `@Comment`
}

type PosIdent struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  string `@Ident`
}

type Function struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   *PosIdent   `Fn @@ "("`
	Params []*PosIdent `( @@ ( "," @@ )* ","? )? ")"`
	Body   *Expr       `@@`
	Tests  *TestBlock  `@@?`
}

type TestBlock struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Tests  []*Test `"[" ( @@ ( "," @@ )* ","? )? "]"`
}

type Test struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Input  *Expr `@@ "="`
	Output *Expr `@@`
}

type Statement struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Comment *Comment `  @@`
	Let     *LetStmt `| @@`
	Return  *Expr    `| Return @@ ";"`
	Expr    *Expr    `| @@ ";"`
}

type LetStmt struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   *PosIdent `Let @@ "="`
	Value  *Expr     `@@ ";"`
}

// Expr is the additive tier.
type Expr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Left   *Term    `@@`
	Ops    []*AddOp `@@*`
}

type AddOp struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Operator string `@("+" | "-")`
	Right    *Term  `@@`
}

// Term is the multiplicative tier.
type Term struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Left   *Atom    `@@`
	Ops    []*MulOp `@@*`
}

type MulOp struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Operator string `@("*" | "/")`
	Right    *Atom  `@@`
}

type Atom struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Number *string   `  @Number`
	String *string   `| @String`
	Call   *CallExpr `| @@`
	Var    *string   `| @Ident`
	Parens *Expr     `| "(" @@ ")"`
	Block  *Block    `| @@`
	If     *IfExpr   `| @@`
}

type CallExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   *PosIdent `@@ "("`
	Args   []*Expr   `( @@ ( "," @@ )* ","? )? ")"`
}

type Block struct {
	Pos        lexer.Position
	EndPos     lexer.Position
	Statements []*Statement `"{" @@* "}"`
}

type IfExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Cond   *Expr  `If @@`
	Body   *Block `@@`
	Else   *Block `( Else @@ )?`
}
