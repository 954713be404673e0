package types

// Conversion classifies how a value of one type becomes a value of another.
type Conversion int

const (
	// None means no conversion exists
	None Conversion = iota

	// Identity means the types are the same
	Identity

	// Implicit conversions are inserted silently
	Implicit

	// Explicit conversions need a cast such as int(x)
	Explicit
)

func (c Conversion) String() string {
	switch c {
	case Identity:
		return "identity"
	case Implicit:
		return "implicit"
	case Explicit:
		return "explicit"
	default:
		return "none"
	}
}

func (c Conversion) Exists() bool     { return c != None }
func (c Conversion) IsIdentity() bool { return c == Identity }

// IsImplicit holds for conversions that need no cast, identity included.
func (c Conversion) IsImplicit() bool { return c == Identity || c == Implicit }

// IsExplicit holds for conversions that exist but need a cast.
func (c Conversion) IsExplicit() bool { return c.Exists() && !c.IsImplicit() }

type conversionRule struct {
	from, to *TypeSymbol
	kind     Conversion
}

var conversionRules = []conversionRule{
	{Bool, String, Explicit},
	{Int, String, Explicit},
	{Int, Float, Implicit},
	{Float, String, Explicit},
	{Float, Int, Explicit},
	{String, Int, Explicit},
	{String, Float, Explicit},
}

// Classify returns the conversion from one type to another. It is total: every
// pair maps to exactly one kind.
func Classify(from, to *TypeSymbol) Conversion {
	if from.Equals(to) {
		return Identity
	}
	if from.IsArray() || to.IsArray() {
		if from.IsArray() && to.Equals(String) {
			return Explicit
		}
		return None
	}
	for _, rule := range conversionRules {
		if from.Equals(rule.from) && to.Equals(rule.to) {
			return rule.kind
		}
	}
	return None
}
