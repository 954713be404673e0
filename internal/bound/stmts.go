package bound

import (
	"ember/internal/semantics/symbols"
	"ember/internal/source"
)

// ErrorStmt stands in for a statement that has already been diagnosed.
type ErrorStmt struct {
	Location source.Location
}

func (e *ErrorStmt) boundNode()             {}
func (e *ErrorStmt) boundStmt()             {}
func (e *ErrorStmt) Loc() *source.Location { return &e.Location }

type BlockStmt struct {
	Statements []Stmt
	Location   source.Location
}

func (b *BlockStmt) boundNode()             {}
func (b *BlockStmt) boundStmt()             {}
func (b *BlockStmt) Loc() *source.Location { return &b.Location }

type VarDecl struct {
	Variable *symbols.VariableSymbol
	Init     Expr
	Location source.Location
}

func (v *VarDecl) boundNode()             {}
func (v *VarDecl) boundStmt()             {}
func (v *VarDecl) Loc() *source.Location { return &v.Location }

type ExprStmt struct {
	X        Expr
	Location source.Location
}

func (e *ExprStmt) boundNode()             {}
func (e *ExprStmt) boundStmt()             {}
func (e *ExprStmt) Loc() *source.Location { return &e.Location }

// IfStmt has a nil Else when there is no else branch.
type IfStmt struct {
	Cond     Expr
	Then     Stmt
	Else     Stmt
	Location source.Location
}

func (i *IfStmt) boundNode()             {}
func (i *IfStmt) boundStmt()             {}
func (i *IfStmt) Loc() *source.Location { return &i.Location }

// Loop carries the labels break and continue jump to. The binder mints them.
type Loop struct {
	Break    *symbols.LabelSymbol
	Continue *symbols.LabelSymbol
}

type WhileStmt struct {
	Cond     Expr
	Body     Stmt
	Loop     Loop
	Location source.Location
}

func (w *WhileStmt) boundNode()             {}
func (w *WhileStmt) boundStmt()             {}
func (w *WhileStmt) Loc() *source.Location { return &w.Location }

type DoWhileStmt struct {
	Body     Stmt
	Cond     Expr
	Loop     Loop
	Location source.Location
}

func (d *DoWhileStmt) boundNode()             {}
func (d *DoWhileStmt) boundStmt()             {}
func (d *DoWhileStmt) Loc() *source.Location { return &d.Location }

// ForStmt counts Variable from Lower to Upper inclusive.
type ForStmt struct {
	Variable *symbols.VariableSymbol
	Lower    Expr
	Upper    Expr
	Body     Stmt
	Loop     Loop
	Location source.Location
}

func (f *ForStmt) boundNode()             {}
func (f *ForStmt) boundStmt()             {}
func (f *ForStmt) Loc() *source.Location { return &f.Location }

// ForEachStmt walks an array. Index is nil when no index binder was written.
type ForEachStmt struct {
	Variable *symbols.VariableSymbol
	Index    *symbols.VariableSymbol
	Iterable Expr
	Body     Stmt
	Loop     Loop
	Location source.Location
}

func (f *ForEachStmt) boundNode()             {}
func (f *ForEachStmt) boundStmt()             {}
func (f *ForEachStmt) Loc() *source.Location { return &f.Location }

type LabelStmt struct {
	Label    *symbols.LabelSymbol
	Location source.Location
}

func (l *LabelStmt) boundNode()             {}
func (l *LabelStmt) boundStmt()             {}
func (l *LabelStmt) Loc() *source.Location { return &l.Location }

type GotoStmt struct {
	Label    *symbols.LabelSymbol
	Location source.Location
}

func (g *GotoStmt) boundNode()             {}
func (g *GotoStmt) boundStmt()             {}
func (g *GotoStmt) Loc() *source.Location { return &g.Location }

// CondGotoStmt jumps to Label when Cond equals JumpIfTrue.
type CondGotoStmt struct {
	Label      *symbols.LabelSymbol
	Cond       Expr
	JumpIfTrue bool
	Location   source.Location
}

func (c *CondGotoStmt) boundNode()             {}
func (c *CondGotoStmt) boundStmt()             {}
func (c *CondGotoStmt) Loc() *source.Location { return &c.Location }

// ReturnStmt has a nil Value in void functions.
type ReturnStmt struct {
	Value    Expr
	Location source.Location
}

func (r *ReturnStmt) boundNode()             {}
func (r *ReturnStmt) boundStmt()             {}
func (r *ReturnStmt) Loc() *source.Location { return &r.Location }
