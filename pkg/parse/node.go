package parse

import "github.com/RubixDev/Roost/pkg/diag"

// Node represents a node in the syntax tree. The set of node types is closed;
// the evaluator switches over the concrete types.
type Node interface {
	diag.Ranger
	n() *node
}

type node struct {
	diag.Ranging
}

func (n *node) n() *node { return n }

// Stmt is a node that may appear in a statement list.
type Stmt interface {
	Node
	stmt()
}

// Expr is a node that produces a value.
type Expr interface {
	Node
	expr()
}

type stmtNode struct{ node }

func (*stmtNode) stmt() {}

type exprNode struct{ node }

func (*exprNode) expr() {}

// Program is the root of a syntax tree.
type Program struct {
	node
	Stmts []Stmt
}

// VarDecl is "var Name" or "var Name = Value". Value is nil in the former
// case.
type VarDecl struct {
	stmtNode
	Name  string
	Value Expr
}

// FunctionDecl is "fun Name(Params) Body".
type FunctionDecl struct {
	stmtNode
	Name   string
	Params []string
	Body   *Block
}

// ClassDecl is "class Name { Members }".
type ClassDecl struct {
	stmtNode
	Name    string
	Members []*MemberDecl
}

// MemberDecl is a member of a class body. Exactly one of Var and Fun is
// non-nil.
type MemberDecl struct {
	node
	Static bool
	Var    *VarDecl
	Fun    *FunctionDecl
}

// Name returns the name the member binds.
func (m *MemberDecl) Name() string {
	if m.Var != nil {
		return m.Var.Name
	}
	return m.Fun.Name
}

// Break is "break" with an optional value.
type Break struct {
	stmtNode
	Value Expr
}

// Continue is "continue".
type Continue struct {
	stmtNode
}

// Return is "return" with an optional value.
type Return struct {
	stmtNode
	Value Expr
}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	stmtNode
	Expr Expr
}

// Block is a brace-delimited statement list. Bodies written as a single
// statement are also represented as a Block.
type Block struct {
	exprNode
	Stmts []Stmt
}

// RangeExpr is "Start..End" or "Start..=End". Start and End may be nil.
type RangeExpr struct {
	exprNode
	Start     Expr
	End       Expr
	Inclusive bool
}

// BinaryExpr is a binary operation, used for all binary operator tiers.
type BinaryExpr struct {
	exprNode
	Op    TokenKind
	Left  Expr
	Right Expr
}

// UnaryExpr is a prefix operation: +, - or !.
type UnaryExpr struct {
	exprNode
	Op      TokenKind
	Operand Expr
}

// AssignExpr is "Target Op Value", where Op is = or a compound assignment
// operator. Target is an *Ident, *MemberExpr or *IndexExpr.
type AssignExpr struct {
	exprNode
	Op     TokenKind
	Target Expr
	Value  Expr
}

// CallExpr is "Callee(Args)".
type CallExpr struct {
	exprNode
	Callee Expr
	Args   []Expr
}

// MemberExpr is "Object.Name".
type MemberExpr struct {
	exprNode
	Object Expr
	Name   string
}

// IndexExpr is "Object[Index]".
type IndexExpr struct {
	exprNode
	Object Expr
	Index  Expr
}

// NumberLit is a number literal. Value is an int if the literal has no
// fractional part and fits, and a float64 otherwise.
type NumberLit struct {
	exprNode
	Value any
}

// BoolLit is "true" or "false".
type BoolLit struct {
	exprNode
	Value bool
}

// StringLit is a string literal, with escape sequences decoded.
type StringLit struct {
	exprNode
	Value string
}

// NullLit is "null".
type NullLit struct {
	exprNode
}

// Ident is a reference to a variable.
type Ident struct {
	exprNode
	Name string
}

// ListLit is "[Elems]".
type ListLit struct {
	exprNode
	Elems []Expr
}

// IfExpr is "if (Cond) Then" with an optional "else Else". Else is nil when
// absent.
type IfExpr struct {
	exprNode
	Cond Expr
	Then *Block
	Else *Block
}

// ForExpr is "for (Var in Iter) Body".
type ForExpr struct {
	exprNode
	Var  string
	Iter Expr
	Body *Block
}

// WhileExpr is "while (Cond) Body".
type WhileExpr struct {
	exprNode
	Cond Expr
	Body *Block
}

// LoopExpr is "loop Body".
type LoopExpr struct {
	exprNode
	Body *Block
}

// FunExpr is an anonymous function, "fun (Params) Body".
type FunExpr struct {
	exprNode
	Params []string
	Body   *Block
}

// ClassExpr is an anonymous class, "class { Members }".
type ClassExpr struct {
	exprNode
	Members []*MemberDecl
}

// TryExpr is "try Body catch (ErrName) Catch".
type TryExpr struct {
	exprNode
	Body    *Block
	ErrName string
	Catch   *Block
}
