package diagnostics

import (
	"fmt"

	"ember/internal/source"
	str "ember/internal/utils/strings"
)

// Common diagnostic builders for the binder

// UndefinedSymbol creates a diagnostic for undefined symbol. suggestion may be empty.
func UndefinedSymbol(loc *source.Location, name, suggestion string) *Diagnostic {
	d := NewError("undefined symbol: "+name).
		WithCode(ErrUndefinedSymbol).
		WithPrimaryLabel(loc, "not found in this scope")
	if suggestion != "" {
		d.WithHelp(fmt.Sprintf("did you mean '%s'?", suggestion))
	}
	return d
}

// RedeclaredSymbol creates a diagnostic for redeclared symbol
func RedeclaredSymbol(loc *source.Location, name string) *Diagnostic {
	return NewError(name+" is already declared").
		WithCode(ErrRedeclaredSymbol).
		WithPrimaryLabel(loc, "redeclared here").
		WithHelp("use a different name or remove one of the declarations")
}

// UndefinedType reports a type clause naming nothing known.
func UndefinedType(loc *source.Location, name string) *Diagnostic {
	return NewError("undefined type: "+name).
		WithCode(ErrUndefinedType).
		WithPrimaryLabel(loc, "unknown type")
}

// UndefinedUnaryOperator reports an operator with no entry for the operand type.
func UndefinedUnaryOperator(loc *source.Location, op string, operand fmt.Stringer) *Diagnostic {
	return NewError(fmt.Sprintf("unary operator '%s' is not defined for type '%s'", op, operand)).
		WithCode(ErrUndefinedOperator).
		WithPrimaryLabel(loc, "operator undefined")
}

// UndefinedBinaryOperator reports an operator with no entry for the operand types.
func UndefinedBinaryOperator(loc *source.Location, op string, left, right fmt.Stringer) *Diagnostic {
	return NewError(fmt.Sprintf("binary operator '%s' is not defined for types '%s' and '%s'", op, left, right)).
		WithCode(ErrUndefinedOperator).
		WithPrimaryLabel(loc, "operator undefined")
}

// CannotConvert reports a pair with no conversion at all.
func CannotConvert(loc *source.Location, from, to fmt.Stringer) *Diagnostic {
	return NewError(fmt.Sprintf("cannot convert type '%s' to '%s'", from, to)).
		WithCode(ErrTypeMismatch).
		WithPrimaryLabel(loc, fmt.Sprintf("expected %s, found %s", to, from))
}

// CannotConvertImplicitly reports an explicit-only conversion used implicitly.
// The help spells the cast that would make it legal.
func CannotConvertImplicitly(loc *source.Location, from, to fmt.Stringer) *Diagnostic {
	return NewError(fmt.Sprintf("cannot convert type '%s' to '%s' implicitly", from, to)).
		WithCode(ErrExplicitConversion).
		WithPrimaryLabel(loc, "an explicit conversion exists").
		WithHelp(fmt.Sprintf("are you missing a cast? write %s(...)", to))
}

// ReadOnlyAssignment reports assignment to a let binding or parameter.
func ReadOnlyAssignment(loc *source.Location, name string) *Diagnostic {
	return NewError(fmt.Sprintf("cannot assign to '%s': it is read-only", name)).
		WithCode(ErrConstantReassignment).
		WithPrimaryLabel(loc, "read-only binding").
		WithHelp(fmt.Sprintf("declare '%s' with 'var' to make it mutable", name))
}

// WrongArgumentCount creates a diagnostic for wrong number of arguments
func WrongArgumentCount(loc *source.Location, name string, expected, found int) *Diagnostic {
	return NewError(fmt.Sprintf("'%s' requires %d %s but was given %d",
		name, expected, str.Pluralize("argument", "arguments", expected), found)).
		WithCode(ErrWrongArgumentCount).
		WithPrimaryLabel(loc, fmt.Sprintf("expected %d, found %d", expected, found))
}

// NotCallable reports a call whose callee names no function.
func NotCallable(loc *source.Location, name string) *Diagnostic {
	return NewError(fmt.Sprintf("'%s' is not a function", name)).
		WithCode(ErrNotCallable).
		WithPrimaryLabel(loc, "cannot be called")
}

// NotIndexable reports indexing on a non-array value.
func NotIndexable(loc *source.Location, typ fmt.Stringer) *Diagnostic {
	return NewError(fmt.Sprintf("cannot index a value of type '%s'", typ)).
		WithCode(ErrNotIndexable).
		WithPrimaryLabel(loc, "not an array")
}

// FieldNotFound creates a diagnostic for field not found
func FieldNotFound(loc *source.Location, fieldName, typeName string) *Diagnostic {
	return NewError("field "+fieldName+" not found").
		WithCode(ErrFieldNotFound).
		WithPrimaryLabel(loc, typeName+" has no field "+fieldName).
		WithHelp("check the field name spelling")
}

// MethodNotFound reports a member call naming no method of the class.
func MethodNotFound(loc *source.Location, methodName, typeName string) *Diagnostic {
	return NewError("method "+methodName+" not found").
		WithCode(ErrMethodNotFound).
		WithPrimaryLabel(loc, typeName+" has no method "+methodName)
}

// InaccessibleMember reports use of a private member outside its class.
func InaccessibleMember(loc *source.Location, kind, typeName, name string) *Diagnostic {
	return NewError(fmt.Sprintf("%s '%s' of '%s' is private", kind, name, typeName)).
		WithCode(ErrInaccessibleMember).
		WithPrimaryLabel(loc, "not accessible from here").
		WithNote("private members are visible only inside the class that declares them")
}

// FieldBeforeInit reports a field default reading a field declared after it.
func FieldBeforeInit(loc *source.Location, name string, declared *source.Location) *Diagnostic {
	d := NewError(fmt.Sprintf("field '%s' is used before it is initialized", name)).
		WithCode(ErrFieldBeforeInit).
		WithPrimaryLabel(loc, "read here")
	if declared != nil && declared.Start != nil {
		d.WithSecondaryLabel(declared, "declared later here")
	}
	return d.WithHelp("field defaults run in declaration order; move the field up")
}

// CannotInferReturn reports a function whose every return has an unknown type.
func CannotInferReturn(loc *source.Location, name string) *Diagnostic {
	return NewError(fmt.Sprintf("cannot infer the return type of '%s'", name)).
		WithCode(ErrCannotInferReturn).
		WithPrimaryLabel(loc, "no return with a known type").
		WithHelp("annotate the return type")
}

// NilField warns about a class-typed field with no default.
func NilField(loc *source.Location, name, typeName string) *Diagnostic {
	return NewWarning(fmt.Sprintf("field '%s' of class type '%s' starts as nil", name, typeName)).
		WithCode(WarnNilField).
		WithPrimaryLabel(loc, "no default").
		WithHelp("give it a default or assign it in the constructor before use")
}

// StaticMismatch reports a static member used through an instance or the reverse.
func StaticMismatch(loc *source.Location, message string) *Diagnostic {
	return NewError(message).
		WithCode(ErrStaticMismatch).
		WithPrimaryLabel(loc, "static/instance mismatch")
}

// InvalidJump reports break or continue outside any loop.
func InvalidJump(loc *source.Location, keyword string) *Diagnostic {
	code := ErrInvalidBreak
	if keyword == "continue" {
		code = ErrInvalidContinue
	}
	return NewError(keyword+" statement outside loop").
		WithCode(code).
		WithPrimaryLabel(loc, "not inside a loop")
}

// MissingReturn reports a non-void body with a path that falls off its end.
func MissingReturn(loc *source.Location, name string) *Diagnostic {
	return NewError(fmt.Sprintf("not all code paths in '%s' return a value", name)).
		WithCode(ErrMissingReturn).
		WithPrimaryLabel(loc, "missing return on some paths").
		WithHelp("make sure every branch returns, or add a final return at the end of the function")
}

// InvalidReturn reports a ret whose value does not fit the enclosing signature.
func InvalidReturn(loc *source.Location, message string) *Diagnostic {
	return NewError(message).
		WithCode(ErrInvalidReturn).
		WithPrimaryLabel(loc, "invalid return")
}

// ReturnOutsideFunction reports ret among top-level statements.
func ReturnOutsideFunction(loc *source.Location) *Diagnostic {
	return NewError("ret is not valid outside a function").
		WithCode(ErrReturnOutsideFunction).
		WithPrimaryLabel(loc, "top-level return")
}

// InvalidExpressionStatement reports an expression statement with no effect.
func InvalidExpressionStatement(loc *source.Location) *Diagnostic {
	return NewError("only assignment and call expressions can be used as a statement").
		WithCode(ErrInvalidExprStatement).
		WithPrimaryLabel(loc, "value is discarded")
}

// EmptyArrayType reports [] with no required type to take its element type from.
func EmptyArrayType(loc *source.Location) *Diagnostic {
	return NewError("cannot infer the element type of an empty array").
		WithCode(ErrEmptyArrayType).
		WithPrimaryLabel(loc, "empty array literal").
		WithHelp("add a type clause, e.g. var xs: int[] = []")
}

// FunctionAsValue reports a function name used where a value is expected.
func FunctionAsValue(loc *source.Location, name string) *Diagnostic {
	return NewError(fmt.Sprintf("'%s' is a function, not a value", name)).
		WithCode(ErrFunctionAsValue).
		WithPrimaryLabel(loc, "function used as value").
		WithHelp(fmt.Sprintf("did you mean to call it: %s(...)?", name))
}

// VoidValue reports a void expression used as a value.
func VoidValue(loc *source.Location) *Diagnostic {
	return NewError("expression must have a value").
		WithCode(ErrVoidValue).
		WithPrimaryLabel(loc, "this is void")
}

// InvalidArrayTarget reports element assignment not rooted at a variable name.
func InvalidArrayTarget(loc *source.Location) *Diagnostic {
	return NewError("array element assignment requires a variable name").
		WithCode(ErrInvalidArrayTarget).
		WithPrimaryLabel(loc, "not a variable")
}

// MainWithGlobals reports a main function alongside top-level statements.
func MainWithGlobals(loc *source.Location) *Diagnostic {
	return NewError("main cannot be used together with top-level statements").
		WithCode(ErrMainWithGlobals).
		WithPrimaryLabel(loc, "main declared here")
}

// MultipleGlobalFiles reports top-level statements in more than one tree.
func MultipleGlobalFiles(loc *source.Location) *Diagnostic {
	return NewError("at most one file can have top-level statements").
		WithCode(ErrMultipleGlobalFiles).
		WithPrimaryLabel(loc, "second file with top-level statements")
}

// InvalidMainSignature reports a main that takes parameters or returns a value.
func InvalidMainSignature(loc *source.Location) *Diagnostic {
	return NewError("main must take no arguments and not return anything").
		WithCode(ErrInvalidMainSignature).
		WithPrimaryLabel(loc, "invalid main")
}
