package builtins

import (
	"ember/internal/semantics/symbols"
	"ember/internal/types"
)

// Console built-ins. print has one overload per printable primitive so the
// binder's exact-match pass picks it without a conversion.
var (
	PrintString = native("print", types.Void, param("text", types.String))
	PrintInt    = native("print", types.Void, param("value", types.Int))
	PrintFloat  = native("print", types.Void, param("value", types.Float))
	PrintBool   = native("print", types.Void, param("value", types.Bool))
	Input       = native("input", types.String)
	Clear       = native("clear", types.Void)
)

// IOBuiltins lists the console built-ins
var IOBuiltins = []*symbols.FunctionSymbol{
	PrintString,
	PrintInt,
	PrintFloat,
	PrintBool,
	Input,
	Clear,
}
