package ast

import (
	"ember/internal/source"
	"ember/internal/tokens"
)

// LiteralExpr holds an int64, float64, bool or string value.
type LiteralExpr struct {
	Value any
	source.Location
}

func (l *LiteralExpr) INode()                {} // Implements Node interface
func (l *LiteralExpr) Expr()                 {} // Expr is a marker interface for all expressions
func (l *LiteralExpr) Loc() *source.Location { return &l.Location }

// NameExpr represents an identifier
type NameExpr struct {
	Name string
	source.Location
}

func (n *NameExpr) INode()                {} // Implements Node interface
func (n *NameExpr) Expr()                 {} // Expr is a marker interface for all expressions
func (n *NameExpr) Loc() *source.Location { return &n.Location }

// AssignExpr represents `x = v`
type AssignExpr struct {
	Name  string
	Value Expression
	source.Location
}

func (a *AssignExpr) INode()                {} // Implements Node interface
func (a *AssignExpr) Expr()                 {} // Expr is a marker interface for all expressions
func (a *AssignExpr) Loc() *source.Location { return &a.Location }

// IndexAssignExpr represents `xs[i] = v`. Target must be a name.
type IndexAssignExpr struct {
	Target Expression
	Index  Expression
	Value  Expression
	source.Location
}

func (a *IndexAssignExpr) INode()                {} // Implements Node interface
func (a *IndexAssignExpr) Expr()                 {} // Expr is a marker interface for all expressions
func (a *IndexAssignExpr) Loc() *source.Location { return &a.Location }

// FieldAssignExpr represents `obj.f = v`; a nil Object means the current instance.
type FieldAssignExpr struct {
	Object Expression
	Field  string
	Value  Expression
	source.Location
}

func (a *FieldAssignExpr) INode()                {} // Implements Node interface
func (a *FieldAssignExpr) Expr()                 {} // Expr is a marker interface for all expressions
func (a *FieldAssignExpr) Loc() *source.Location { return &a.Location }

// UnaryExpr represents a unary expression
type UnaryExpr struct {
	Op tokens.TOKEN
	X  Expression
	source.Location
}

func (u *UnaryExpr) INode()                {} // Implements Node interface
func (u *UnaryExpr) Expr()                 {} // Expr is a marker interface for all expressions
func (u *UnaryExpr) Loc() *source.Location { return &u.Location }

// BinaryExpr represents a binary expression
type BinaryExpr struct {
	X  Expression // left operand
	Op tokens.TOKEN
	Y  Expression // right operand
	source.Location
}

func (b *BinaryExpr) INode()                {} // Implements Node interface
func (b *BinaryExpr) Expr()                 {} // Expr is a marker interface for all expressions
func (b *BinaryExpr) Loc() *source.Location { return &b.Location }

// ParenExpr represents a parenthesized expression
type ParenExpr struct {
	X Expression
	source.Location
}

func (p *ParenExpr) INode()                {} // Implements Node interface
func (p *ParenExpr) Expr()                 {} // Expr is a marker interface for all expressions
func (p *ParenExpr) Loc() *source.Location { return &p.Location }

// CallExpr represents `name(args)`: a function call, a constructor call or a cast.
type CallExpr struct {
	Name string
	Args []Expression
	source.Location
}

func (c *CallExpr) INode()                {} // Implements Node interface
func (c *CallExpr) Expr()                 {} // Expr is a marker interface for all expressions
func (c *CallExpr) Loc() *source.Location { return &c.Location }

// IndexExpr represents `x[i]`, including enum indexing `Color[1]`.
type IndexExpr struct {
	X     Expression
	Index Expression
	source.Location
}

func (i *IndexExpr) INode()                {} // Implements Node interface
func (i *IndexExpr) Expr()                 {} // Expr is a marker interface for all expressions
func (i *IndexExpr) Loc() *source.Location { return &i.Location }

// ArrayLiteral represents `[a, b, c]`
type ArrayLiteral struct {
	Elements []Expression
	source.Location
}

func (a *ArrayLiteral) INode()                {} // Implements Node interface
func (a *ArrayLiteral) Expr()                 {} // Expr is a marker interface for all expressions
func (a *ArrayLiteral) Loc() *source.Location { return &a.Location }

// MemberExpr represents `x.name`: a field read or an enum member `Color.Red`.
type MemberExpr struct {
	X    Expression
	Name string
	source.Location
}

func (m *MemberExpr) INode()                {} // Implements Node interface
func (m *MemberExpr) Expr()                 {} // Expr is a marker interface for all expressions
func (m *MemberExpr) Loc() *source.Location { return &m.Location }

// MemberCallExpr represents `x.name(args)`: an instance call, or a static call
// when X names a class.
type MemberCallExpr struct {
	X    Expression
	Name string
	Args []Expression
	source.Location
}

func (m *MemberCallExpr) INode()                {} // Implements Node interface
func (m *MemberCallExpr) Expr()                 {} // Expr is a marker interface for all expressions
func (m *MemberCallExpr) Loc() *source.Location { return &m.Location }
