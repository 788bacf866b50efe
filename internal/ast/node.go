package ast

type Node interface {
	NodePos() Position
	NodeEndPos() Position
	NodeType() NodeType
	String() string
}

func (p *Program) NodePos() Position    { return p.Pos }
func (p *Program) NodeEndPos() Position { return p.EndPos }
func (*Program) NodeType() NodeType     { return PROGRAM }

func (c *Comment) NodePos() Position    { return c.Pos }
func (c *Comment) NodeEndPos() Position { return c.EndPos }
func (*Comment) NodeType() NodeType     { return COMMENT }

func (i *Ident) NodePos() Position    { return i.Pos }
func (i *Ident) NodeEndPos() Position { return i.EndPos }
func (*Ident) NodeType() NodeType     { return IDENT }

func (f *Function) NodePos() Position    { return f.Pos }
func (f *Function) NodeEndPos() Position { return f.EndPos }
func (*Function) NodeType() NodeType     { return FUNCTION }

func (fd *FunctionDefinition) NodePos() Position    { return fd.Pos }
func (fd *FunctionDefinition) NodeEndPos() Position { return fd.EndPos }
func (*FunctionDefinition) NodeType() NodeType      { return FUNCTION_DEFINITION }

func (p *Parameter) NodePos() Position    { return p.Pos }
func (p *Parameter) NodeEndPos() Position { return p.EndPos }
func (*Parameter) NodeType() NodeType     { return PARAMETER }

func (t *Test) NodePos() Position    { return t.Pos }
func (t *Test) NodeEndPos() Position { return t.EndPos }
func (*Test) NodeType() NodeType     { return TEST }

func (l *LetStmt) NodePos() Position    { return l.Pos }
func (l *LetStmt) NodeEndPos() Position { return l.EndPos }
func (*LetStmt) NodeType() NodeType     { return LET_STMT }

func (r *ReturnStmt) NodePos() Position    { return r.Pos }
func (r *ReturnStmt) NodeEndPos() Position { return r.EndPos }
func (*ReturnStmt) NodeType() NodeType     { return RETURN_STMT }

func (e *ExprStmt) NodePos() Position    { return e.Pos }
func (e *ExprStmt) NodeEndPos() Position { return e.EndPos }
func (*ExprStmt) NodeType() NodeType     { return EXPR_STMT }

func (bs *BadStmt) NodePos() Position    { return bs.Bad.Pos }
func (bs *BadStmt) NodeEndPos() Position { return bs.Bad.EndPos }
func (*BadStmt) NodeType() NodeType      { return BAD_STMT }

func (n *NumberExpr) NodePos() Position    { return n.Pos }
func (n *NumberExpr) NodeEndPos() Position { return n.EndPos }
func (*NumberExpr) NodeType() NodeType     { return NUMBER_EXPR }

func (s *StringExpr) NodePos() Position    { return s.Pos }
func (s *StringExpr) NodeEndPos() Position { return s.EndPos }
func (*StringExpr) NodeType() NodeType     { return STRING_EXPR }

func (b *BlockExpr) NodePos() Position    { return b.Pos }
func (b *BlockExpr) NodeEndPos() Position { return b.EndPos }
func (*BlockExpr) NodeType() NodeType     { return BLOCK_EXPR }

func (i *IfExpr) NodePos() Position    { return i.Pos }
func (i *IfExpr) NodeEndPos() Position { return i.EndPos }
func (*IfExpr) NodeType() NodeType     { return IF_EXPR }

func (c *CallExpr) NodePos() Position    { return c.Pos }
func (c *CallExpr) NodeEndPos() Position { return c.EndPos }
func (*CallExpr) NodeType() NodeType     { return CALL_EXPR }

func (v *VariableExpr) NodePos() Position    { return v.Pos }
func (v *VariableExpr) NodeEndPos() Position { return v.EndPos }
func (*VariableExpr) NodeType() NodeType     { return VARIABLE_EXPR }

func (b *BinaryExpr) NodePos() Position    { return b.Pos }
func (b *BinaryExpr) NodeEndPos() Position { return b.EndPos }
func (*BinaryExpr) NodeType() NodeType     { return BINARY_EXPR }

func (be *BadExpr) NodePos() Position    { return be.Bad.Pos }
func (be *BadExpr) NodeEndPos() Position { return be.Bad.EndPos }
func (*BadExpr) NodeType() NodeType      { return BAD_EXPR }
