package builtins

import (
	"testing"

	"ember/internal/semantics/symbols"
	"ember/internal/semantics/table"
	"ember/internal/types"
)

func TestRegisterAllBuiltins(t *testing.T) {
	scope := table.NewScope(nil)
	RegisterAllBuiltins(scope)

	tests := []struct {
		name      string
		overloads int
	}{
		{"print", 4},
		{"input", 1},
		{"random", 1},
		{"range", 1},
		{"clear", 1},
	}
	for _, tt := range tests {
		if got := len(scope.LookupFunctions(tt.name)); got != tt.overloads {
			t.Errorf("Expected %d overload(s) of %s, got %d", tt.overloads, tt.name, got)
		}
	}
}

func TestBuiltinSignatures(t *testing.T) {
	if !Range.ReturnType().Equals(types.Int.ArrayOf()) {
		t.Errorf("Expected range to return int[], got %s", Range.ReturnType())
	}
	if !Input.ReturnType().Equals(types.String) {
		t.Errorf("Expected input to return string, got %s", Input.ReturnType())
	}
	for _, fn := range All() {
		for _, p := range fn.Params {
			if p.Kind != symbols.Parameter || !p.IsReadOnly() {
				t.Errorf("Expected %s parameter %s to be a read-only parameter", fn.Name, p.Name)
			}
		}
	}
}

func TestIsBuiltinMatchesByIdentity(t *testing.T) {
	if !IsBuiltin(PrintInt) {
		t.Error("Expected print(int) to be a built-in")
	}
	lookalike := symbols.NewFunction("print", symbols.Function, PrintInt.Params, types.Void, nil)
	if IsBuiltin(lookalike) {
		t.Error("Expected a user function with the same signature not to be a built-in")
	}
}
