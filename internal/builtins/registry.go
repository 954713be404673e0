package builtins

import (
	"ember/internal/semantics/symbols"
	"ember/internal/semantics/table"
	"ember/internal/types"
)

var (
	// Random returns a value in [0, max).
	Random = native("random", types.Int, param("max", types.Int))
	// Range returns [start, end) as an array.
	Range = native("range", types.Int.ArrayOf(), param("start", types.Int), param("end", types.Int))
)

var miscBuiltins = []*symbols.FunctionSymbol{Random, Range}

// All returns every built-in function in registration order.
func All() []*symbols.FunctionSymbol {
	out := make([]*symbols.FunctionSymbol, 0, len(IOBuiltins)+len(miscBuiltins))
	out = append(out, IOBuiltins...)
	return append(out, miscBuiltins...)
}

// IsBuiltin reports whether fn is one of the built-in symbols. Built-ins are
// matched by identity.
func IsBuiltin(fn *symbols.FunctionSymbol) bool {
	for _, b := range All() {
		if b == fn {
			return true
		}
	}
	return false
}

// RegisterAllBuiltins declares every built-in in scope, normally the root frame
// under the global scope.
func RegisterAllBuiltins(scope *table.Scope) {
	for _, fn := range All() {
		if err := scope.DeclareFunction(fn); err != nil {
			panic("builtins: " + err.Error())
		}
	}
}

func native(name string, ret *types.TypeSymbol, params ...*symbols.VariableSymbol) *symbols.FunctionSymbol {
	return symbols.NewFunction(name, symbols.Function, params, ret, nil)
}

func param(name string, typ *types.TypeSymbol) *symbols.VariableSymbol {
	return symbols.NewVariable(name, symbols.Parameter, typ, false)
}
