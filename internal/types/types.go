package types

// TypeFlags marks the family a type belongs to.
type TypeFlags uint8

const (
	FlagArray TypeFlags = 1 << iota
	FlagClass
	FlagADT
)

// TypeSymbol is a named type plus flags and an optional owning namespace.
//
// Design principles:
// - TypeSymbols are immutable after creation
// - equality is structural (name, flags, namespace), never by pointer
// - "array of T" is the array flag on T; arrays do not nest
type TypeSymbol struct {
	name      string
	flags     TypeFlags
	namespace string
}

func NewPrimitive(name TYPE_NAME) *TypeSymbol {
	return &TypeSymbol{name: string(name)}
}

// NewClass creates the type of instances of a class.
func NewClass(name, namespace string) *TypeSymbol {
	return &TypeSymbol{name: name, flags: FlagClass, namespace: namespace}
}

// NewADT creates the type of an enumeration's members.
func NewADT(name, namespace string) *TypeSymbol {
	return &TypeSymbol{name: name, flags: FlagADT, namespace: namespace}
}

func (t *TypeSymbol) Name() string      { return t.name }
func (t *TypeSymbol) Namespace() string { return t.namespace }
func (t *TypeSymbol) IsArray() bool     { return t.flags&FlagArray != 0 }
func (t *TypeSymbol) IsClass() bool     { return t.flags&FlagClass != 0 }
func (t *TypeSymbol) IsADT() bool       { return t.flags&FlagADT != 0 }

// IsUnknown reports whether t is the already-diagnosed sentinel type.
func (t *TypeSymbol) IsUnknown() bool {
	return t == nil || t.Equals(Unknown)
}

// IsVoid reports whether t is void (not an array of anything).
func (t *TypeSymbol) IsVoid() bool {
	return t.Equals(Void)
}

// Equals checks structural equality with another type
func (t *TypeSymbol) Equals(other *TypeSymbol) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.name == other.name && t.flags == other.flags && t.namespace == other.namespace
}

// ElementType strips the array flag.
func (t *TypeSymbol) ElementType() *TypeSymbol {
	if !t.IsArray() {
		return t
	}
	return &TypeSymbol{name: t.name, flags: t.flags &^ FlagArray, namespace: t.namespace}
}

// ArrayOf returns the array type whose elements are t.
func (t *TypeSymbol) ArrayOf() *TypeSymbol {
	if t.IsArray() {
		return t
	}
	return &TypeSymbol{name: t.name, flags: t.flags | FlagArray, namespace: t.namespace}
}

func (t *TypeSymbol) String() string {
	if t == nil {
		return string(TYPE_UNKNOWN)
	}
	if t.IsArray() {
		return t.name + "[]"
	}
	return t.name
}
