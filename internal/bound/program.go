package bound

import (
	"ember/internal/diagnostics"
	"ember/internal/semantics/symbols"
	"ember/internal/semantics/table"
)

// GlobalScope is the result of the declaration pass over one submission. It
// chains to the previous submission's scope so declarations accumulate.
type GlobalScope struct {
	Previous    *GlobalScope
	Diagnostics []*diagnostics.Diagnostic

	// Main is the user's main function, Script the wrapper synthesized around
	// top-level statements. At most one is set.
	Main   *symbols.FunctionSymbol
	Script *symbols.FunctionSymbol

	Functions  []*symbols.FunctionSymbol
	Classes    []*symbols.ClassSymbol
	ADTs       []*symbols.ADTSymbol
	Variables  []*symbols.VariableSymbol
	Statements []Stmt

	// Scope is the global frame; the next submission's frame is its child.
	Scope *table.Scope
}

// Entry returns the function evaluation starts at, or nil.
func (g *GlobalScope) Entry() *symbols.FunctionSymbol {
	if g.Main != nil {
		return g.Main
	}
	return g.Script
}

// FieldInit is one field's default, evaluated when an instance is created.
type FieldInit struct {
	Field *symbols.FieldSymbol
	Value Expr // nil: zero value of the field type
}

// ClassBody holds everything about a class that only exists after binding:
// bound field defaults and lowered constructor and method bodies.
type ClassBody struct {
	Class   *symbols.ClassSymbol
	Fields  []FieldInit
	Ctor    *BlockStmt
	Methods map[symbols.FunctionKey]*BlockStmt
}

// Program is a fully bound and lowered submission.
type Program struct {
	Previous    *Program
	Global      *GlobalScope
	Diagnostics []*diagnostics.Diagnostic

	Functions map[symbols.FunctionKey]*BlockStmt
	Classes   map[string]*ClassBody
}

func NewProgram(previous *Program, global *GlobalScope) *Program {
	return &Program{
		Previous:  previous,
		Global:    global,
		Functions: make(map[symbols.FunctionKey]*BlockStmt),
		Classes:   make(map[string]*ClassBody),
	}
}

// Entry returns the entry function of this submission.
func (p *Program) Entry() *symbols.FunctionSymbol {
	return p.Global.Entry()
}

// Body returns the lowered body of a function, method or constructor, searching
// earlier submissions when needed.
func (p *Program) Body(fn *symbols.FunctionSymbol) (*BlockStmt, bool) {
	for prog := p; prog != nil; prog = prog.Previous {
		if fn.Owner == nil {
			if body, ok := prog.Functions[fn.Key()]; ok {
				return body, true
			}
			continue
		}
		cb, ok := prog.Classes[fn.Owner.Name]
		if !ok {
			continue
		}
		if fn.Kind == symbols.Constructor {
			return cb.Ctor, cb.Ctor != nil
		}
		if body, ok := cb.Methods[fn.Key()]; ok {
			return body, true
		}
	}
	return nil, false
}

// Class returns the bound body of a class, searching earlier submissions.
func (p *Program) Class(c *symbols.ClassSymbol) (*ClassBody, bool) {
	for prog := p; prog != nil; prog = prog.Previous {
		if cb, ok := prog.Classes[c.Name]; ok {
			return cb, true
		}
	}
	return nil, false
}

// HasErrors reports whether any error was diagnosed.
func (p *Program) HasErrors() bool {
	for _, d := range p.Diagnostics {
		if d.Severity == diagnostics.Error {
			return true
		}
	}
	return false
}
