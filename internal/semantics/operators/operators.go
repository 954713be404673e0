package operators

import (
	"ember/internal/tokens"
	"ember/internal/types"
)

type UnaryKind int

const (
	Identity UnaryKind = iota
	Negation
	LogicalNegation
	OnesComplement
	ArrayLength
)

func (k UnaryKind) String() string {
	switch k {
	case Identity:
		return "identity"
	case Negation:
		return "negation"
	case LogicalNegation:
		return "logical negation"
	case OnesComplement:
		return "ones complement"
	case ArrayLength:
		return "array length"
	default:
		return "unknown"
	}
}

type BinaryKind int

const (
	Addition BinaryKind = iota
	Subtraction
	Multiplication
	Division
	Modulo
	BitwiseAnd
	BitwiseOr
	BitwiseXor
	LogicalAnd
	LogicalOr
	Equals
	NotEquals
	Less
	LessOrEquals
	Greater
	GreaterOrEquals
	ArrayAppend
	ArrayConcat
)

var binaryKindNames = map[BinaryKind]string{
	Addition:        "addition",
	Subtraction:     "subtraction",
	Multiplication:  "multiplication",
	Division:        "division",
	Modulo:          "modulo",
	BitwiseAnd:      "bitwise and",
	BitwiseOr:       "bitwise or",
	BitwiseXor:      "bitwise xor",
	LogicalAnd:      "logical and",
	LogicalOr:       "logical or",
	Equals:          "equals",
	NotEquals:       "not equals",
	Less:            "less",
	LessOrEquals:    "less or equals",
	Greater:         "greater",
	GreaterOrEquals: "greater or equals",
	ArrayAppend:     "array append",
	ArrayConcat:     "array concat",
}

func (k BinaryKind) String() string {
	if s, ok := binaryKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// UnaryOperator is one resolved entry of the unary table.
type UnaryOperator struct {
	Token   tokens.TOKEN
	Kind    UnaryKind
	Operand *types.TypeSymbol
	Result  *types.TypeSymbol
}

// BinaryOperator is one resolved entry of the binary table.
type BinaryOperator struct {
	Token  tokens.TOKEN
	Kind   BinaryKind
	Left   *types.TypeSymbol
	Right  *types.TypeSymbol
	Result *types.TypeSymbol
}
