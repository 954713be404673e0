package operators

import (
	"ember/internal/tokens"
	"ember/internal/types"
)

var unaryTable = []UnaryOperator{
	{tokens.PLUS_TOKEN, Identity, types.Int, types.Int},
	{tokens.MINUS_TOKEN, Negation, types.Int, types.Int},
	{tokens.BIT_NOT_TOKEN, OnesComplement, types.Int, types.Int},
	{tokens.PLUS_TOKEN, Identity, types.Float, types.Float},
	{tokens.MINUS_TOKEN, Negation, types.Float, types.Float},
	{tokens.NOT_TOKEN, LogicalNegation, types.Bool, types.Bool},
}

var binaryTable []BinaryOperator

func init() {
	arith := []struct {
		tok  tokens.TOKEN
		kind BinaryKind
	}{
		{tokens.PLUS_TOKEN, Addition},
		{tokens.MINUS_TOKEN, Subtraction},
		{tokens.MUL_TOKEN, Multiplication},
		{tokens.DIV_TOKEN, Division},
	}
	compare := []struct {
		tok  tokens.TOKEN
		kind BinaryKind
	}{
		{tokens.DOUBLE_EQUAL_TOKEN, Equals},
		{tokens.NOT_EQUAL_TOKEN, NotEquals},
		{tokens.LESS_TOKEN, Less},
		{tokens.LESS_EQUAL_TOKEN, LessOrEquals},
		{tokens.GREATER_TOKEN, Greater},
		{tokens.GREATER_EQUAL_TOKEN, GreaterOrEquals},
	}
	add := func(tok tokens.TOKEN, kind BinaryKind, left, right, result *types.TypeSymbol) {
		binaryTable = append(binaryTable, BinaryOperator{tok, kind, left, right, result})
	}

	// int, int
	for _, op := range arith {
		add(op.tok, op.kind, types.Int, types.Int, types.Int)
	}
	add(tokens.MOD_TOKEN, Modulo, types.Int, types.Int, types.Int)
	add(tokens.BIT_AND_TOKEN, BitwiseAnd, types.Int, types.Int, types.Int)
	add(tokens.BIT_OR_TOKEN, BitwiseOr, types.Int, types.Int, types.Int)
	add(tokens.BIT_XOR_TOKEN, BitwiseXor, types.Int, types.Int, types.Int)
	for _, op := range compare {
		add(op.tok, op.kind, types.Int, types.Int, types.Bool)
	}

	// float, float and the mixed numeric pairs
	numeric := [][2]*types.TypeSymbol{
		{types.Float, types.Float},
		{types.Int, types.Float},
		{types.Float, types.Int},
	}
	for _, pair := range numeric {
		for _, op := range arith {
			add(op.tok, op.kind, pair[0], pair[1], types.Float)
		}
		for _, op := range compare {
			add(op.tok, op.kind, pair[0], pair[1], types.Bool)
		}
	}

	// bool, bool
	add(tokens.AND_TOKEN, LogicalAnd, types.Bool, types.Bool, types.Bool)
	add(tokens.OR_TOKEN, LogicalOr, types.Bool, types.Bool, types.Bool)
	add(tokens.BIT_AND_TOKEN, BitwiseAnd, types.Bool, types.Bool, types.Bool)
	add(tokens.BIT_OR_TOKEN, BitwiseOr, types.Bool, types.Bool, types.Bool)
	add(tokens.BIT_XOR_TOKEN, BitwiseXor, types.Bool, types.Bool, types.Bool)
	add(tokens.DOUBLE_EQUAL_TOKEN, Equals, types.Bool, types.Bool, types.Bool)
	add(tokens.NOT_EQUAL_TOKEN, NotEquals, types.Bool, types.Bool, types.Bool)

	// string, string
	add(tokens.PLUS_TOKEN, Addition, types.String, types.String, types.String)
	add(tokens.DOUBLE_EQUAL_TOKEN, Equals, types.String, types.String, types.Bool)
	add(tokens.NOT_EQUAL_TOKEN, NotEquals, types.String, types.String, types.Bool)

	// string concatenation with scalars on either side
	for _, other := range []*types.TypeSymbol{types.Int, types.Float, types.Bool} {
		add(tokens.PLUS_TOKEN, Addition, types.String, other, types.String)
		add(tokens.PLUS_TOKEN, Addition, other, types.String, types.String)
	}
}

// BindUnary resolves a unary operator for an operand type.
func BindUnary(tok tokens.TOKEN, operand *types.TypeSymbol) (*UnaryOperator, bool) {
	for i := range unaryTable {
		op := &unaryTable[i]
		if op.Token == tok && op.Operand.Equals(operand) {
			return op, true
		}
	}
	// +xs is the length of xs
	if tok == tokens.PLUS_TOKEN && operand.IsArray() {
		return &UnaryOperator{Token: tok, Kind: ArrayLength, Operand: operand, Result: types.Int}, true
	}
	return nil, false
}

// BindBinary resolves a binary operator for a pair of operand types.
func BindBinary(tok tokens.TOKEN, left, right *types.TypeSymbol) (*BinaryOperator, bool) {
	for i := range binaryTable {
		op := &binaryTable[i]
		if op.Token == tok && op.Left.Equals(left) && op.Right.Equals(right) {
			return op, true
		}
	}

	switch {
	case tok == tokens.PLUS_TOKEN && left.IsArray() && right.Equals(left.ElementType()):
		return &BinaryOperator{Token: tok, Kind: ArrayAppend, Left: left, Right: right, Result: left}, true
	case tok == tokens.PLUS_TOKEN && left.IsArray() && right.Equals(left):
		return &BinaryOperator{Token: tok, Kind: ArrayConcat, Left: left, Right: right, Result: left}, true
	case left.IsADT() && !left.IsArray() && left.Equals(right):
		switch tok {
		case tokens.DOUBLE_EQUAL_TOKEN:
			return &BinaryOperator{Token: tok, Kind: Equals, Left: left, Right: right, Result: types.Bool}, true
		case tokens.NOT_EQUAL_TOKEN:
			return &BinaryOperator{Token: tok, Kind: NotEquals, Left: left, Right: right, Result: types.Bool}, true
		}
	}
	return nil, false
}
