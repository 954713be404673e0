package symbols

import (
	"ember/internal/types"
)

// VariableKind tells where a variable lives and therefore how long.
type VariableKind int

const (
	Global    VariableKind = iota // program lifetime
	Local                         // call-frame lifetime
	Parameter                     // call-frame lifetime, read-only
	Field                         // instance lifetime
)

func (k VariableKind) String() string {
	switch k {
	case Global:
		return "global"
	case Local:
		return "local"
	case Parameter:
		return "parameter"
	case Field:
		return "field"
	default:
		return "unknown"
	}
}

// VariableSymbol is a declared variable. Identity of the pointer is the identity of
// the variable: evaluator storage is keyed by it.
type VariableSymbol struct {
	Name    string
	Kind    VariableKind
	Type    *types.TypeSymbol
	Mutable bool
}

func NewVariable(name string, kind VariableKind, typ *types.TypeSymbol, mutable bool) *VariableSymbol {
	return &VariableSymbol{Name: name, Kind: kind, Type: typ, Mutable: mutable}
}

// IsReadOnly holds for let bindings and parameters.
func (v *VariableSymbol) IsReadOnly() bool {
	return !v.Mutable || v.Kind == Parameter
}

func (v *VariableSymbol) String() string {
	return v.Name + ": " + v.Type.String()
}

// LabelSymbol is a jump target. Labels are compared by pointer, never by name.
type LabelSymbol struct {
	Name string
}

func NewLabel(name string) *LabelSymbol {
	return &LabelSymbol{Name: name}
}

func (l *LabelSymbol) String() string { return l.Name }
