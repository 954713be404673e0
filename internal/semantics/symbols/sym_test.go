package symbols

import (
	"testing"

	"ember/internal/types"
)

func TestFunctionKeyIsStructural(t *testing.T) {
	a := NewFunction("add", Function, []*VariableSymbol{
		NewVariable("a", Parameter, types.Int, false),
		NewVariable("b", Parameter, types.Int, false),
	}, types.Int, nil)
	b := NewFunction("add", Function, []*VariableSymbol{
		NewVariable("x", Parameter, types.Int, false),
		NewVariable("y", Parameter, types.Int, false),
	}, types.Float, nil)
	c := NewFunction("add", Function, []*VariableSymbol{
		NewVariable("a", Parameter, types.Float, false),
	}, types.Int, nil)

	if a.Key() != b.Key() {
		t.Errorf("Expected same key for same name and parameter types, got %v and %v", a.Key(), b.Key())
	}
	if a.Key() == c.Key() {
		t.Error("Expected different keys for different parameter types")
	}

	class := NewClass("Box", "main", nil)
	m := NewFunction("add", Method, a.Params, types.Int, nil)
	m.Owner = class
	if m.Key() == a.Key() {
		t.Error("Expected owner to take part in the key")
	}
}

func TestInferredReturnTypeIsWriteOnce(t *testing.T) {
	f := NewFunction("f", Function, nil, nil, nil)
	if !f.NeedsInference() {
		t.Fatal("Expected pending inference")
	}

	speculative := f.WithReturnType(types.Unknown)
	if speculative.NeedsInference() || !f.NeedsInference() {
		t.Error("Expected WithReturnType to leave the original untouched")
	}

	f.SetInferredReturnType(types.Int)
	f.SetInferredReturnType(types.String)
	if !f.ReturnType().Equals(types.Int) {
		t.Errorf("Expected int, got %s", f.ReturnType())
	}
}

func TestClassMembers(t *testing.T) {
	class := NewClass("Box", "main", nil)
	class.Fields = append(class.Fields, &FieldSymbol{Variable: NewVariable("w", Field, types.Int, true)})

	if _, ok := class.Field("w"); !ok {
		t.Error("Expected field w")
	}
	if _, ok := class.Field("h"); ok {
		t.Error("Expected no field h")
	}

	m := NewFunction("area", Method, nil, types.Int, nil)
	m.Owner = class
	if !class.AddMethod(m) {
		t.Error("Expected first overload to be added")
	}
	dup := NewFunction("area", Method, nil, types.Float, nil)
	dup.Owner = class
	if class.AddMethod(dup) {
		t.Error("Expected duplicate overload to be rejected")
	}
}

func TestADTOrdinals(t *testing.T) {
	color := NewADT("Color", "main", []string{"Red", "Green", "Blue"})
	if i, ok := color.Ordinal("Blue"); !ok || i != 2 {
		t.Errorf("Expected Blue at 2, got %d", i)
	}
	if _, ok := color.Ordinal("Pink"); ok {
		t.Error("Expected Pink to be missing")
	}
}

func TestReadOnly(t *testing.T) {
	if !NewVariable("p", Parameter, types.Int, true).IsReadOnly() {
		t.Error("Expected parameters to be read-only")
	}
	if NewVariable("v", Local, types.Int, true).IsReadOnly() {
		t.Error("Expected var locals to be mutable")
	}
}
