package table

import (
	"fmt"

	"ember/internal/semantics/symbols"
)

// Scope is one frame of the bound scope chain. A frame only ever adds to its own
// maps; children read the parent but never write to it.
type Scope struct {
	parent *Scope

	variables map[string]*symbols.VariableSymbol
	functions map[string][]*symbols.FunctionSymbol
	classes   map[string]*symbols.ClassSymbol
	adts      map[string]*symbols.ADTSymbol

	// declaration order, for deterministic export
	varOrder []*symbols.VariableSymbol
	fnOrder  []*symbols.FunctionSymbol
}

// NewScope creates a new frame with optional parent scope
func NewScope(parent *Scope) *Scope {
	return &Scope{
		parent:    parent,
		variables: make(map[string]*symbols.VariableSymbol),
		functions: make(map[string][]*symbols.FunctionSymbol),
		classes:   make(map[string]*symbols.ClassSymbol),
		adts:      make(map[string]*symbols.ADTSymbol),
	}
}

func (s *Scope) Parent() *Scope { return s.parent }

func (s *Scope) taken(name string) bool {
	if _, ok := s.variables[name]; ok {
		return true
	}
	if _, ok := s.classes[name]; ok {
		return true
	}
	if _, ok := s.adts[name]; ok {
		return true
	}
	return len(s.functions[name]) > 0
}

// DeclareVariable adds a variable to this frame
func (s *Scope) DeclareVariable(v *symbols.VariableSymbol) error {
	if s.taken(v.Name) {
		return fmt.Errorf("symbol '%s' already declared", v.Name)
	}
	s.ForceDeclareVariable(v)
	return nil
}

// ForceDeclareVariable adds a variable even when the name is taken in this frame.
// The new variable shadows the old one.
func (s *Scope) ForceDeclareVariable(v *symbols.VariableSymbol) {
	s.variables[v.Name] = v
	s.varOrder = append(s.varOrder, v)
}

// DeclareFunction adds an overload. Overloads with distinct keys may share a name.
func (s *Scope) DeclareFunction(f *symbols.FunctionSymbol) error {
	if existing, ok := s.functions[f.Name]; ok {
		for _, e := range existing {
			if e.Key() == f.Key() {
				return fmt.Errorf("function '%s' already declared", f)
			}
		}
	} else if s.taken(f.Name) {
		return fmt.Errorf("symbol '%s' already declared", f.Name)
	}
	s.functions[f.Name] = append(s.functions[f.Name], f)
	s.fnOrder = append(s.fnOrder, f)
	return nil
}

func (s *Scope) DeclareClass(c *symbols.ClassSymbol) error {
	if s.taken(c.Name) {
		return fmt.Errorf("symbol '%s' already declared", c.Name)
	}
	s.classes[c.Name] = c
	return nil
}

func (s *Scope) DeclareADT(a *symbols.ADTSymbol) error {
	if s.taken(a.Name) {
		return fmt.Errorf("symbol '%s' already declared", a.Name)
	}
	s.adts[a.Name] = a
	return nil
}

// LookupVariable finds a variable in this scope or parent scopes
func (s *Scope) LookupVariable(name string) (*symbols.VariableSymbol, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.variables[name]; ok {
			return v, true
		}
		if sc.taken(name) {
			return nil, false
		}
	}
	return nil, false
}

// LookupFunctions returns every visible overload of name. An overload in an
// inner frame hides an outer one with the same key.
func (s *Scope) LookupFunctions(name string) []*symbols.FunctionSymbol {
	var out []*symbols.FunctionSymbol
	seen := make(map[symbols.FunctionKey]bool)
	for sc := s; sc != nil; sc = sc.parent {
		if _, ok := sc.variables[name]; ok {
			break
		}
		for _, f := range sc.functions[name] {
			if !seen[f.Key()] {
				seen[f.Key()] = true
				out = append(out, f)
			}
		}
	}
	return out
}

func (s *Scope) LookupClass(name string) (*symbols.ClassSymbol, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if c, ok := sc.classes[name]; ok {
			return c, true
		}
	}
	return nil, false
}

func (s *Scope) LookupADT(name string) (*symbols.ADTSymbol, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if a, ok := sc.adts[name]; ok {
			return a, true
		}
	}
	return nil, false
}

// Names returns every name visible from this frame.
func (s *Scope) Names() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(n string) {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	for sc := s; sc != nil; sc = sc.parent {
		for n := range sc.variables {
			add(n)
		}
		for n := range sc.functions {
			add(n)
		}
		for n := range sc.classes {
			add(n)
		}
		for n := range sc.adts {
			add(n)
		}
	}
	return names
}

// Variables returns the variables declared in this frame, in order.
func (s *Scope) Variables() []*symbols.VariableSymbol {
	return append([]*symbols.VariableSymbol(nil), s.varOrder...)
}

// Functions returns the functions declared in this frame, in order.
func (s *Scope) Functions() []*symbols.FunctionSymbol {
	return append([]*symbols.FunctionSymbol(nil), s.fnOrder...)
}

// Classes returns the classes declared in this frame.
func (s *Scope) Classes() []*symbols.ClassSymbol {
	out := make([]*symbols.ClassSymbol, 0, len(s.classes))
	for _, c := range s.classes {
		out = append(out, c)
	}
	return out
}

// ADTs returns the enumerations declared in this frame.
func (s *Scope) ADTs() []*symbols.ADTSymbol {
	out := make([]*symbols.ADTSymbol, 0, len(s.adts))
	for _, a := range s.adts {
		out = append(out, a)
	}
	return out
}
