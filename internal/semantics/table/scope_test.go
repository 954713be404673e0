package table

import (
	"sort"
	"testing"

	"ember/internal/semantics/symbols"
	"ember/internal/types"
)

func newVar(name string) *symbols.VariableSymbol {
	return symbols.NewVariable(name, symbols.Local, types.Int, true)
}

func newFn(name string, params ...*types.TypeSymbol) *symbols.FunctionSymbol {
	ps := make([]*symbols.VariableSymbol, len(params))
	for i, p := range params {
		ps[i] = symbols.NewVariable("p", symbols.Parameter, p, false)
	}
	return symbols.NewFunction(name, symbols.Function, ps, types.Void, nil)
}

func TestDeclareAndLookup(t *testing.T) {
	root := NewScope(nil)
	x := newVar("x")
	if err := root.DeclareVariable(x); err != nil {
		t.Fatalf("Declare failed: %v", err)
	}
	if err := root.DeclareVariable(newVar("x")); err == nil {
		t.Error("Expected duplicate declaration to fail")
	}

	child := NewScope(root)
	got, ok := child.LookupVariable("x")
	if !ok || got != x {
		t.Error("Lookup should walk to the parent")
	}

	inner := newVar("x")
	if err := child.DeclareVariable(inner); err != nil {
		t.Fatalf("Shadowing in a child frame should succeed: %v", err)
	}
	if got, _ := child.LookupVariable("x"); got != inner {
		t.Error("Expected the child declaration to shadow the parent")
	}
	if got, _ := root.LookupVariable("x"); got != x {
		t.Error("Parent frame must be untouched by the child")
	}
}

func TestForceDeclare(t *testing.T) {
	s := NewScope(nil)
	field := symbols.NewVariable("w", symbols.Field, types.Int, true)
	param := symbols.NewVariable("w", symbols.Parameter, types.Int, false)

	_ = s.DeclareVariable(field)
	if err := s.DeclareVariable(param); err == nil {
		t.Fatal("Expected plain Declare to reject the duplicate")
	}
	s.ForceDeclareVariable(param)
	if got, _ := s.LookupVariable("w"); got != param {
		t.Error("Expected the forced parameter to shadow the field")
	}
}

func TestOverloads(t *testing.T) {
	root := NewScope(nil)
	if err := root.DeclareFunction(newFn("print", types.Int)); err != nil {
		t.Fatal(err)
	}
	if err := root.DeclareFunction(newFn("print", types.String)); err != nil {
		t.Errorf("Expected distinct overload to be accepted: %v", err)
	}
	if err := root.DeclareFunction(newFn("print", types.Int)); err == nil {
		t.Error("Expected same-key overload to be rejected")
	}

	global := NewScope(root)
	mine := newFn("print", types.Int)
	_ = global.DeclareFunction(mine)
	_ = global.DeclareFunction(newFn("print", types.Bool))

	got := global.LookupFunctions("print")
	if len(got) != 3 {
		t.Fatalf("Expected 3 visible overloads, got %d", len(got))
	}
	if got[0] != mine {
		t.Error("Expected the inner overload to hide the outer one with the same key")
	}

	if err := global.DeclareVariable(newVar("print")); err == nil {
		t.Error("Expected a variable to clash with a function of the same name")
	}
}

func TestNames(t *testing.T) {
	root := NewScope(nil)
	_ = root.DeclareFunction(newFn("print"))
	child := NewScope(root)
	_ = child.DeclareVariable(newVar("count"))
	_ = child.DeclareClass(symbols.NewClass("Point", "main", nil))

	names := child.Names()
	sort.Strings(names)
	want := []string{"Point", "count", "print"}
	if len(names) != len(want) {
		t.Fatalf("Expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, names)
		}
	}
}
