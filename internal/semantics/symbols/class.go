package symbols

import (
	"ember/internal/frontend/ast"
	"ember/internal/types"
)

// FieldSymbol is a class field: its storage variable plus access information.
type FieldSymbol struct {
	Variable *VariableSymbol
	Private  bool
	Decl     *ast.FieldDecl
}

// ClassSymbol holds a class's members. It is filled while declarations are
// collected and read-only afterwards.
type ClassSymbol struct {
	Name    string
	Type    *types.TypeSymbol
	Ctor    *FunctionSymbol
	Fields  []*FieldSymbol
	Methods map[string][]*FunctionSymbol
	Decl    *ast.ClassDecl
}

func NewClass(name, namespace string, decl *ast.ClassDecl) *ClassSymbol {
	return &ClassSymbol{
		Name:    name,
		Type:    types.NewClass(name, namespace),
		Methods: make(map[string][]*FunctionSymbol),
		Decl:    decl,
	}
}

// Field looks a field up by name
func (c *ClassSymbol) Field(name string) (*FieldSymbol, bool) {
	for _, f := range c.Fields {
		if f.Variable.Name == name {
			return f, true
		}
	}
	return nil, false
}

// AddMethod records a method overload. It returns false when an overload with
// the same key already exists.
func (c *ClassSymbol) AddMethod(m *FunctionSymbol) bool {
	for _, existing := range c.Methods[m.Name] {
		if existing.Key() == m.Key() {
			return false
		}
	}
	c.Methods[m.Name] = append(c.Methods[m.Name], m)
	return true
}

// AllMethods returns every method in declaration order of their names.
func (c *ClassSymbol) AllMethods() []*FunctionSymbol {
	var out []*FunctionSymbol
	if c.Decl != nil {
		seen := make(map[string]bool)
		for _, d := range c.Decl.Methods {
			if seen[d.Name] {
				continue
			}
			seen[d.Name] = true
			out = append(out, c.Methods[d.Name]...)
		}
		return out
	}
	for _, ms := range c.Methods {
		out = append(out, ms...)
	}
	return out
}

// ADTSymbol is a closed enumeration; member ordinals follow declaration order.
type ADTSymbol struct {
	Name    string
	Members []string
	Type    *types.TypeSymbol
}

func NewADT(name, namespace string, members []string) *ADTSymbol {
	return &ADTSymbol{Name: name, Members: members, Type: types.NewADT(name, namespace)}
}

// Ordinal returns the ordinal of a member name.
func (a *ADTSymbol) Ordinal(member string) (int, bool) {
	for i, m := range a.Members {
		if m == member {
			return i, true
		}
	}
	return -1, false
}
