package bound

import (
	"fmt"

	"ember/internal/semantics/operators"
	"ember/internal/semantics/symbols"
	"ember/internal/source"
	"ember/internal/types"
)

// Node is the base interface for all bound nodes. Bound nodes are never mutated
// after construction; rewrites build new parents and share unchanged children.
type Node interface {
	boundNode()
	Loc() *source.Location
}

// Expr is a bound expression; every expression knows its resolved type.
type Expr interface {
	Node
	boundExpr()
	Type() *types.TypeSymbol
}

// Stmt is a bound statement.
type Stmt interface {
	Node
	boundStmt()
}

// ErrorExpr stands in for an expression that has already been diagnosed.
type ErrorExpr struct {
	Location source.Location
}

func (e *ErrorExpr) boundNode()              {}
func (e *ErrorExpr) boundExpr()              {}
func (e *ErrorExpr) Loc() *source.Location  { return &e.Location }
func (e *ErrorExpr) Type() *types.TypeSymbol { return types.Unknown }

// LiteralExpr holds an int64, float64, bool or string.
type LiteralExpr struct {
	Value    any
	Location source.Location
}

func (l *LiteralExpr) boundNode()             {}
func (l *LiteralExpr) boundExpr()             {}
func (l *LiteralExpr) Loc() *source.Location { return &l.Location }
func (l *LiteralExpr) Type() *types.TypeSymbol {
	switch l.Value.(type) {
	case int64:
		return types.Int
	case float64:
		return types.Float
	case bool:
		return types.Bool
	case string:
		return types.String
	}
	panic(fmt.Sprintf("unexpected literal %T", l.Value))
}

// VariableExpr reads a variable.
type VariableExpr struct {
	Variable *symbols.VariableSymbol
	Location source.Location
}

func (v *VariableExpr) boundNode()              {}
func (v *VariableExpr) boundExpr()              {}
func (v *VariableExpr) Loc() *source.Location  { return &v.Location }
func (v *VariableExpr) Type() *types.TypeSymbol { return v.Variable.Type }

// AssignExpr writes a variable and yields the written value.
type AssignExpr struct {
	Variable *symbols.VariableSymbol
	Value    Expr
	Location source.Location
}

func (a *AssignExpr) boundNode()              {}
func (a *AssignExpr) boundExpr()              {}
func (a *AssignExpr) Loc() *source.Location  { return &a.Location }
func (a *AssignExpr) Type() *types.TypeSymbol { return a.Value.Type() }

// IndexAssignExpr writes one element of an array variable.
type IndexAssignExpr struct {
	Variable *symbols.VariableSymbol
	Index    Expr
	Value    Expr
	Location source.Location
}

func (a *IndexAssignExpr) boundNode()              {}
func (a *IndexAssignExpr) boundExpr()              {}
func (a *IndexAssignExpr) Loc() *source.Location  { return &a.Location }
func (a *IndexAssignExpr) Type() *types.TypeSymbol { return a.Value.Type() }

// FieldAssignExpr writes a field. A nil Instance means the current instance.
type FieldAssignExpr struct {
	Instance Expr
	Field    *symbols.FieldSymbol
	Value    Expr
	Location source.Location
}

func (a *FieldAssignExpr) boundNode()              {}
func (a *FieldAssignExpr) boundExpr()              {}
func (a *FieldAssignExpr) Loc() *source.Location  { return &a.Location }
func (a *FieldAssignExpr) Type() *types.TypeSymbol { return a.Value.Type() }

type UnaryExpr struct {
	Op       *operators.UnaryOperator
	Operand  Expr
	Location source.Location
}

func (u *UnaryExpr) boundNode()              {}
func (u *UnaryExpr) boundExpr()              {}
func (u *UnaryExpr) Loc() *source.Location  { return &u.Location }
func (u *UnaryExpr) Type() *types.TypeSymbol { return u.Op.Result }

type BinaryExpr struct {
	Left     Expr
	Op       *operators.BinaryOperator
	Right    Expr
	Location source.Location
}

func (b *BinaryExpr) boundNode()              {}
func (b *BinaryExpr) boundExpr()              {}
func (b *BinaryExpr) Loc() *source.Location  { return &b.Location }
func (b *BinaryExpr) Type() *types.TypeSymbol { return b.Op.Result }

// CallExpr calls a free function or a built-in. Result is fixed at bind time.
type CallExpr struct {
	Function *symbols.FunctionSymbol
	Args     []Expr
	Result   *types.TypeSymbol
	Location source.Location
}

func (c *CallExpr) boundNode()              {}
func (c *CallExpr) boundExpr()              {}
func (c *CallExpr) Loc() *source.Location  { return &c.Location }
func (c *CallExpr) Type() *types.TypeSymbol { return c.Result }

// MethodCallExpr calls a method. Instance is nil for calls on the current
// instance and for static calls.
type MethodCallExpr struct {
	Instance Expr
	Method   *symbols.FunctionSymbol
	Args     []Expr
	Result   *types.TypeSymbol
	Location source.Location
}

func (m *MethodCallExpr) boundNode()              {}
func (m *MethodCallExpr) boundExpr()              {}
func (m *MethodCallExpr) Loc() *source.Location  { return &m.Location }
func (m *MethodCallExpr) Type() *types.TypeSymbol { return m.Result }

// NewExpr instantiates a class and runs its constructor.
type NewExpr struct {
	Class    *symbols.ClassSymbol
	Args     []Expr
	Location source.Location
}

func (n *NewExpr) boundNode()              {}
func (n *NewExpr) boundExpr()              {}
func (n *NewExpr) Loc() *source.Location  { return &n.Location }
func (n *NewExpr) Type() *types.TypeSymbol { return n.Class.Type }

// ConversionExpr converts X to To. Explicit conversions may fault at run time.
type ConversionExpr struct {
	To       *types.TypeSymbol
	X        Expr
	Location source.Location
}

func (c *ConversionExpr) boundNode()              {}
func (c *ConversionExpr) boundExpr()              {}
func (c *ConversionExpr) Loc() *source.Location  { return &c.Location }
func (c *ConversionExpr) Type() *types.TypeSymbol { return c.To }

type IndexExpr struct {
	Array    Expr
	Index    Expr
	Location source.Location
}

func (i *IndexExpr) boundNode()              {}
func (i *IndexExpr) boundExpr()              {}
func (i *IndexExpr) Loc() *source.Location  { return &i.Location }
func (i *IndexExpr) Type() *types.TypeSymbol { return i.Array.Type().ElementType() }

type ArrayExpr struct {
	Element  *types.TypeSymbol
	Elements []Expr
	Location source.Location
}

func (a *ArrayExpr) boundNode()              {}
func (a *ArrayExpr) boundExpr()              {}
func (a *ArrayExpr) Loc() *source.Location  { return &a.Location }
func (a *ArrayExpr) Type() *types.TypeSymbol { return a.Element.ArrayOf() }

// FieldExpr reads a field. A nil Instance means the current instance.
type FieldExpr struct {
	Instance Expr
	Field    *symbols.FieldSymbol
	Location source.Location
}

func (f *FieldExpr) boundNode()              {}
func (f *FieldExpr) boundExpr()              {}
func (f *FieldExpr) Loc() *source.Location  { return &f.Location }
func (f *FieldExpr) Type() *types.TypeSymbol { return f.Field.Variable.Type }

// ADTMemberExpr is a member of an enumeration, `Color.Red`.
type ADTMemberExpr struct {
	ADT      *symbols.ADTSymbol
	Ordinal  int
	Location source.Location
}

func (a *ADTMemberExpr) boundNode()              {}
func (a *ADTMemberExpr) boundExpr()              {}
func (a *ADTMemberExpr) Loc() *source.Location  { return &a.Location }
func (a *ADTMemberExpr) Type() *types.TypeSymbol { return a.ADT.Type }

// ADTIndexExpr selects an enumeration member by ordinal, `Color[1]`.
type ADTIndexExpr struct {
	ADT      *symbols.ADTSymbol
	Index    Expr
	Location source.Location
}

func (a *ADTIndexExpr) boundNode()              {}
func (a *ADTIndexExpr) boundExpr()              {}
func (a *ADTIndexExpr) Loc() *source.Location  { return &a.Location }
func (a *ADTIndexExpr) Type() *types.TypeSymbol { return a.ADT.Type }
