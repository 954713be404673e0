package evaluator

import (
	"fmt"
	"strconv"
	"strings"

	"ember/internal/bound"
	"ember/internal/builtins"
	"ember/internal/diagnostics"
	"ember/internal/semantics/operators"
	"ember/internal/types"
)

func (e *Evaluator) eval(x bound.Expr) Value {
	switch x := x.(type) {
	case *bound.LiteralExpr:
		return x.Value
	case *bound.VariableExpr:
		return e.lookup(x.Variable)
	case *bound.AssignExpr:
		v := e.eval(x.Value)
		e.assign(x.Variable, v)
		return v
	case *bound.IndexAssignExpr:
		return e.evalIndexAssign(x)
	case *bound.FieldAssignExpr:
		target := e.receiver(x.Instance)
		v := e.eval(x.Value)
		target.Fields[x.Field] = v
		return v
	case *bound.UnaryExpr:
		return e.evalUnary(x)
	case *bound.BinaryExpr:
		return e.evalBinary(x)
	case *bound.CallExpr:
		return e.evalCall(x)
	case *bound.MethodCallExpr:
		return e.evalMethodCall(x)
	case *bound.NewExpr:
		return e.instantiate(x)
	case *bound.ConversionExpr:
		return e.convert(x)
	case *bound.IndexExpr:
		array := e.eval(x.Array).(Array)
		i := e.index(x.Index, len(array))
		return array[i]
	case *bound.ArrayExpr:
		out := make(Array, len(x.Elements))
		for i, el := range x.Elements {
			out[i] = e.eval(el)
		}
		return out
	case *bound.FieldExpr:
		return e.receiver(x.Instance).Fields[x.Field]
	case *bound.ADTMemberExpr:
		return EnumValue{ADT: x.ADT, Ordinal: x.Ordinal}
	case *bound.ADTIndexExpr:
		i := e.eval(x.Index).(int64)
		if i < 0 || i >= int64(len(x.ADT.Members)) {
			panic(fault(diagnostics.FaultIndexOutOfRange, x.Loc(), "%s has no member at index %d", x.ADT.Name, i))
		}
		return EnumValue{ADT: x.ADT, Ordinal: int(i)}
	}
	panic(fmt.Sprintf("evaluator: unexpected expression %T", x))
}

// receiver evaluates an explicit instance, or returns the current one. A nil
// instance faults.
func (e *Evaluator) receiver(x bound.Expr) *Instance {
	if x == nil {
		return e.instance
	}
	inst, _ := e.eval(x).(*Instance)
	if inst == nil {
		panic(fault(diagnostics.FaultNilInstance, x.Loc(), "nil %s instance", x.Type()))
	}
	return inst
}

// index evaluates an array index and faults when it is outside [0, n).
func (e *Evaluator) index(x bound.Expr, n int) int {
	i := e.eval(x).(int64)
	if i < 0 || i >= int64(n) {
		panic(fault(diagnostics.FaultIndexOutOfRange, x.Loc(), "index %d out of range for length %d", i, n))
	}
	return int(i)
}

func (e *Evaluator) evalIndexAssign(x *bound.IndexAssignExpr) Value {
	array := e.lookup(x.Variable).(Array)
	i := e.index(x.Index, len(array))
	v := e.eval(x.Value)
	e.assign(x.Variable, array.with(i, v))
	return v
}

func (e *Evaluator) evalUnary(x *bound.UnaryExpr) Value {
	operand := e.eval(x.Operand)
	switch x.Op.Kind {
	case operators.Identity:
		return operand
	case operators.Negation:
		switch v := operand.(type) {
		case int64:
			return -v
		case float64:
			return -v
		}
	case operators.LogicalNegation:
		return !operand.(bool)
	case operators.OnesComplement:
		return ^operand.(int64)
	case operators.ArrayLength:
		return int64(len(operand.(Array)))
	}
	panic(fmt.Sprintf("evaluator: unary %s undefined for %T", x.Op.Kind, operand))
}

// evalBinary dispatches on the operator kind and the runtime type of the left
// operand. Both operands are always evaluated.
func (e *Evaluator) evalBinary(x *bound.BinaryExpr) Value {
	left := e.eval(x.Left)
	right := e.eval(x.Right)

	switch x.Op.Kind {
	case operators.ArrayAppend:
		l := left.(Array)
		out := make(Array, len(l), len(l)+1)
		copy(out, l)
		return append(out, right)
	case operators.ArrayConcat:
		l, r := left.(Array), right.(Array)
		out := make(Array, 0, len(l)+len(r))
		return append(append(out, l...), r...)
	case operators.Equals:
		return equal(left, right)
	case operators.NotEquals:
		return !equal(left, right)
	}

	switch l := left.(type) {
	case int64:
		switch r := right.(type) {
		case int64:
			return e.intOp(x, l, r)
		case float64:
			return floatOp(x, float64(l), r)
		case string:
			return Format(l) + r
		}
	case float64:
		switch r := right.(type) {
		case int64:
			return floatOp(x, l, float64(r))
		case float64:
			return floatOp(x, l, r)
		case string:
			return Format(l) + r
		}
	case bool:
		if r, ok := right.(string); ok {
			return Format(l) + r
		}
		r := right.(bool)
		switch x.Op.Kind {
		case operators.LogicalAnd, operators.BitwiseAnd:
			return l && r
		case operators.LogicalOr, operators.BitwiseOr:
			return l || r
		case operators.BitwiseXor:
			return l != r
		}
	case string:
		if x.Op.Kind == operators.Addition {
			return l + Format(right)
		}
	}
	panic(fmt.Sprintf("evaluator: binary %s undefined for %T and %T", x.Op.Kind, left, right))
}

func (e *Evaluator) intOp(x *bound.BinaryExpr, l, r int64) Value {
	switch x.Op.Kind {
	case operators.Addition:
		return l + r
	case operators.Subtraction:
		return l - r
	case operators.Multiplication:
		return l * r
	case operators.Division, operators.Modulo:
		if r == 0 {
			panic(fault(diagnostics.FaultDivisionByZero, x.Loc(), "integer division by zero"))
		}
		if x.Op.Kind == operators.Division {
			return l / r
		}
		return l % r
	case operators.BitwiseAnd:
		return l & r
	case operators.BitwiseOr:
		return l | r
	case operators.BitwiseXor:
		return l ^ r
	case operators.Less:
		return l < r
	case operators.LessOrEquals:
		return l <= r
	case operators.Greater:
		return l > r
	case operators.GreaterOrEquals:
		return l >= r
	}
	panic(fmt.Sprintf("evaluator: binary %s undefined for int", x.Op.Kind))
}

func floatOp(x *bound.BinaryExpr, l, r float64) Value {
	switch x.Op.Kind {
	case operators.Addition:
		return l + r
	case operators.Subtraction:
		return l - r
	case operators.Multiplication:
		return l * r
	case operators.Division:
		return l / r
	case operators.Less:
		return l < r
	case operators.LessOrEquals:
		return l <= r
	case operators.Greater:
		return l > r
	case operators.GreaterOrEquals:
		return l >= r
	}
	panic(fmt.Sprintf("evaluator: binary %s undefined for float", x.Op.Kind))
}

// equal compares two values; an int and a float compare numerically.
func equal(left, right Value) bool {
	switch l := left.(type) {
	case int64:
		if r, ok := right.(float64); ok {
			return float64(l) == r
		}
	case float64:
		if r, ok := right.(int64); ok {
			return l == float64(r)
		}
	}
	return left == right
}

func (e *Evaluator) convert(x *bound.ConversionExpr) Value {
	v := e.eval(x.X)
	switch {
	case x.To.Equals(types.String):
		return Format(v)
	case x.To.Equals(types.Float):
		switch v := v.(type) {
		case int64:
			return float64(v)
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				panic(fault(diagnostics.FaultInvalidCast, x.Loc(), "cannot convert %q to float", v))
			}
			return f
		}
	case x.To.Equals(types.Int):
		switch v := v.(type) {
		case float64:
			return int64(v)
		case string:
			i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				panic(fault(diagnostics.FaultInvalidCast, x.Loc(), "cannot convert %q to int", v))
			}
			return i
		}
	}
	return v
}

func (e *Evaluator) args(xs []bound.Expr) []Value {
	out := make([]Value, len(xs))
	for i, x := range xs {
		out[i] = e.eval(x)
	}
	return out
}

func (e *Evaluator) evalCall(x *bound.CallExpr) Value {
	args := e.args(x.Args)
	if builtins.IsBuiltin(x.Function) {
		return e.callBuiltin(x, args)
	}
	return e.call(x.Function, nil, args)
}

func (e *Evaluator) evalMethodCall(x *bound.MethodCallExpr) Value {
	var receiver *Instance
	if !x.Method.Static {
		receiver = e.receiver(x.Instance)
	}
	return e.call(x.Method, receiver, e.args(x.Args))
}

// instantiate creates an instance with every field at its zero value,
// evaluates the field defaults in order with the new instance current, then
// runs the constructor. Methods called from a default see zero values for the
// fields not yet initialized.
func (e *Evaluator) instantiate(x *bound.NewExpr) Value {
	args := e.args(x.Args)
	inst := newInstance(x.Class)

	body, ok := e.program.Class(x.Class)
	if !ok {
		panic(fmt.Sprintf("evaluator: no bound body for class %s", x.Class.Name))
	}

	for _, init := range body.Fields {
		inst.Fields[init.Field] = e.zero(init.Field.Variable.Type)
	}

	saved := e.instance
	e.instance = inst
	for _, init := range body.Fields {
		if init.Value != nil {
			inst.Fields[init.Field] = e.eval(init.Value)
		}
	}
	e.instance = saved

	if x.Class.Ctor != nil {
		e.call(x.Class.Ctor, inst, args)
	}
	return inst
}

// zero is the value of a field declared without a default.
func (e *Evaluator) zero(t *types.TypeSymbol) Value {
	switch {
	case t.IsArray():
		return Array{}
	case t.Equals(types.Int):
		return int64(0)
	case t.Equals(types.Float):
		return float64(0)
	case t.Equals(types.Bool):
		return false
	case t.Equals(types.String):
		return ""
	case t.IsADT():
		if adt, ok := e.program.Global.Scope.LookupADT(t.Name()); ok {
			return EnumValue{ADT: adt, Ordinal: 0}
		}
	}
	var none *Instance
	return none
}
