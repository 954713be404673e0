package ast

import (
	"ember/internal/source"
)

// Parameter is one entry of a function's parameter list
type Parameter struct {
	Name string
	Type *TypeClause
	source.Location
}

func (p *Parameter) INode()                {} // Implements Node interface
func (p *Parameter) Loc() *source.Location { return &p.Location }

// FuncDecl declares a free function, a method or a constructor (Name "new").
// Exactly one of Body and ExprBody is set. A nil ReturnType on a block body
// requests inference; on an expression body the expression's type is used.
type FuncDecl struct {
	Name       string
	Params     []*Parameter
	ReturnType *TypeClause
	Body       *BlockStmt
	ExprBody   Expression
	Private    bool
	Static     bool
	source.Location
}

func (f *FuncDecl) INode()                {} // Implements Node interface
func (f *FuncDecl) Member()               {}
func (f *FuncDecl) Loc() *source.Location { return &f.Location }

// FieldDecl is a class field: `var x: int = 1` or `priv let y = "a"`.
type FieldDecl struct {
	Name    string
	Mutable bool
	Private bool
	Type    *TypeClause // nil: taken from Default
	Default Expression  // nil: zero value of Type
	source.Location
}

func (f *FieldDecl) INode()                {} // Implements Node interface
func (f *FieldDecl) Loc() *source.Location { return &f.Location }

// ClassDecl declares a class with fields, an optional constructor and methods.
type ClassDecl struct {
	Name    string
	Fields  []*FieldDecl
	Ctor    *FuncDecl
	Methods []*FuncDecl
	source.Location
}

func (c *ClassDecl) INode()                {} // Implements Node interface
func (c *ClassDecl) Member()               {}
func (c *ClassDecl) Loc() *source.Location { return &c.Location }

// EnumDecl declares a closed enumeration; member ordinals follow list order.
type EnumDecl struct {
	Name    string
	Members []string
	source.Location
}

func (e *EnumDecl) INode()                {} // Implements Node interface
func (e *EnumDecl) Member()               {}
func (e *EnumDecl) Loc() *source.Location { return &e.Location }

// GlobalStatement wraps a statement written at the top level of a module.
type GlobalStatement struct {
	Statement Statement
	source.Location
}

func (g *GlobalStatement) INode()                {} // Implements Node interface
func (g *GlobalStatement) Member()               {}
func (g *GlobalStatement) Loc() *source.Location { return &g.Location }
