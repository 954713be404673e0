package evaluator

import (
	"strconv"
	"strings"

	"ember/internal/semantics/symbols"
)

// Value is a runtime value: int64, float64, bool, string, Array, *Instance,
// EnumValue, or nil for void.
type Value any

// Array is an array value. Arrays have value semantics: a write copies the
// backing slice before changing it, so no other holder sees the change.
type Array []Value

// with returns a copy of a with element i set to v.
func (a Array) with(i int, v Value) Array {
	out := make(Array, len(a))
	copy(out, a)
	out[i] = v
	return out
}

// Instance is an object. Instances are shared by reference.
type Instance struct {
	Class  *symbols.ClassSymbol
	Fields map[*symbols.FieldSymbol]Value
}

func newInstance(class *symbols.ClassSymbol) *Instance {
	return &Instance{Class: class, Fields: make(map[*symbols.FieldSymbol]Value, len(class.Fields))}
}

// EnumValue is one member of an enumeration.
type EnumValue struct {
	ADT     *symbols.ADTSymbol
	Ordinal int
}

func (e EnumValue) String() string {
	return e.ADT.Members[e.Ordinal]
}

// Format renders a value the way print and string conversion show it.
func Format(v Value) string {
	switch v := v.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case string:
		return v
	case Array:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = Format(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Instance:
		if v == nil {
			return "<nil>"
		}
		return v.Class.Name
	case EnumValue:
		return v.String()
	}
	panic("evaluator: unexpected value")
}
