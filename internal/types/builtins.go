package types

type TYPE_NAME string

const (
	TYPE_INT     TYPE_NAME = "int"
	TYPE_FLOAT   TYPE_NAME = "float"
	TYPE_BOOL    TYPE_NAME = "bool"
	TYPE_STRING  TYPE_NAME = "string"
	TYPE_VOID    TYPE_NAME = "void"
	TYPE_UNKNOWN TYPE_NAME = "unknown"
)

// Built-in types. Unknown marks an expression that has already been diagnosed.
var (
	Int     = NewPrimitive(TYPE_INT)
	Float   = NewPrimitive(TYPE_FLOAT)
	Bool    = NewPrimitive(TYPE_BOOL)
	String  = NewPrimitive(TYPE_STRING)
	Void    = NewPrimitive(TYPE_VOID)
	Unknown = NewPrimitive(TYPE_UNKNOWN)
)

var writable = map[TYPE_NAME]*TypeSymbol{
	TYPE_INT:    Int,
	TYPE_FLOAT:  Float,
	TYPE_BOOL:   Bool,
	TYPE_STRING: String,
	TYPE_VOID:   Void,
}

// LookupBuiltin returns the built-in type a type clause may name. unknown is not
// writable.
func LookupBuiltin(name string) (*TypeSymbol, bool) {
	t, ok := writable[TYPE_NAME(name)]
	return t, ok
}

// Primitives lists the writable built-in types in a fixed order.
func Primitives() []*TypeSymbol {
	return []*TypeSymbol{Int, Float, Bool, String, Void}
}
