package ast

import (
	"ember/internal/source"
)

// BlockStmt represents a block of statements
type BlockStmt struct {
	Statements []Statement
	source.Location
}

func (b *BlockStmt) INode()                {} // Implements Node interface
func (b *BlockStmt) Stmt()                 {} // Stmt is a marker interface for all statements
func (b *BlockStmt) Loc() *source.Location { return &b.Location }

// VarDecl represents `var x = v` (Mutable) or `let x = v`.
type VarDecl struct {
	Name    string
	Mutable bool
	Type    *TypeClause // explicit type (can be nil for type inference)
	Value   Expression
	source.Location
}

func (v *VarDecl) INode()                {} // Implements Node interface
func (v *VarDecl) Stmt()                 {} // Stmt is a marker interface for all statements
func (v *VarDecl) Loc() *source.Location { return &v.Location }

// ExprStmt represents an expression used as a statement
type ExprStmt struct {
	X Expression
	source.Location
}

func (e *ExprStmt) INode()                {} // Implements Node interface
func (e *ExprStmt) Stmt()                 {} // Stmt is a marker interface for all statements
func (e *ExprStmt) Loc() *source.Location { return &e.Location }

// IfStmt represents an if statement; Else is nil, a *BlockStmt or an *IfStmt.
type IfStmt struct {
	Cond Expression
	Body *BlockStmt
	Else Statement
	source.Location
}

func (i *IfStmt) INode()                {} // Implements Node interface
func (i *IfStmt) Stmt()                 {} // Stmt is a marker interface for all statements
func (i *IfStmt) Loc() *source.Location { return &i.Location }

// WhileStmt represents a while loop
type WhileStmt struct {
	Cond Expression
	Body *BlockStmt
	source.Location
}

func (w *WhileStmt) INode()                {} // Implements Node interface
func (w *WhileStmt) Stmt()                 {} // Stmt is a marker interface for all statements
func (w *WhileStmt) Loc() *source.Location { return &w.Location }

// DoWhileStmt represents `do {} while c`
type DoWhileStmt struct {
	Body *BlockStmt
	Cond Expression
	source.Location
}

func (d *DoWhileStmt) INode()                {} // Implements Node interface
func (d *DoWhileStmt) Stmt()                 {} // Stmt is a marker interface for all statements
func (d *DoWhileStmt) Loc() *source.Location { return &d.Location }

// ForStmt represents `for v = lo -> hi {}` with an inclusive upper bound.
type ForStmt struct {
	Var   string
	Lower Expression
	Upper Expression
	Body  *BlockStmt
	source.Location
}

func (f *ForStmt) INode()                {} // Implements Node interface
func (f *ForStmt) Stmt()                 {} // Stmt is a marker interface for all statements
func (f *ForStmt) Loc() *source.Location { return &f.Location }

// ForEachStmt represents `for x in arr {}` or `for x, i in arr {}`.
type ForEachStmt struct {
	Var      string
	Index    string // empty when no index binder is written
	Iterable Expression
	Body     *BlockStmt
	source.Location
}

func (f *ForEachStmt) INode()                {} // Implements Node interface
func (f *ForEachStmt) Stmt()                 {} // Stmt is a marker interface for all statements
func (f *ForEachStmt) Loc() *source.Location { return &f.Location }

// BreakStmt represents a break statement
type BreakStmt struct {
	source.Location
}

func (b *BreakStmt) INode()                {} // Implements Node interface
func (b *BreakStmt) Stmt()                 {} // Stmt is a marker interface for all statements
func (b *BreakStmt) Loc() *source.Location { return &b.Location }

// ContinueStmt represents a continue statement
type ContinueStmt struct {
	source.Location
}

func (c *ContinueStmt) INode()                {} // Implements Node interface
func (c *ContinueStmt) Stmt()                 {} // Stmt is a marker interface for all statements
func (c *ContinueStmt) Loc() *source.Location { return &c.Location }

// ReturnStmt represents a return statement
type ReturnStmt struct {
	Value Expression // return value (can be nil for void functions)
	source.Location
}

func (r *ReturnStmt) INode()                {} // Implements Node interface
func (r *ReturnStmt) Stmt()                 {} // Stmt is a marker interface for all statements
func (r *ReturnStmt) Loc() *source.Location { return &r.Location }
