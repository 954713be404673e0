package ast

import (
	"ember/internal/source"
)

// Node is the base interface for all syntax nodes
type Node interface {
	INode()
	Loc() *source.Location
}

// Expression represents any node that produces a value
type Expression interface {
	Node
	Expr()
}

// Statement represents any node that performs an action
type Statement interface {
	Node
	Stmt()
}

// Member is a top-level item of a module: a function, class or enum declaration,
// or a global statement.
type Member interface {
	Node
	Member()
}

// Module is one syntax tree handed over by the parser layer.
type Module struct {
	FilePath string
	Members  []Member

	source.Location
}

func (m *Module) INode()                {} // Implements Node interface
func (m *Module) Loc() *source.Location { return &m.Location }

// GlobalStatements returns the module's top-level statements in order.
func (m *Module) GlobalStatements() []*GlobalStatement {
	var stmts []*GlobalStatement
	for _, member := range m.Members {
		if g, ok := member.(*GlobalStatement); ok {
			stmts = append(stmts, g)
		}
	}
	return stmts
}

// TypeClause is a written type: a name plus an optional [] suffix.
type TypeClause struct {
	Name  string
	Array bool
	source.Location
}

func (t *TypeClause) INode()                {} // Implements Node interface
func (t *TypeClause) Loc() *source.Location { return &t.Location }

func (t *TypeClause) String() string {
	if t.Array {
		return t.Name + "[]"
	}
	return t.Name
}
