package diagnostics

// Error codes for the binder and evaluator
const (
	// Binder errors (T prefix)
	ErrTypeMismatch         = "T0001"
	ErrUndefinedSymbol      = "T0002"
	ErrRedeclaredSymbol     = "T0003"
	ErrUndefinedOperator    = "T0004"
	ErrNotCallable          = "T0005"
	ErrWrongArgumentCount   = "T0006"
	ErrInvalidAssignment    = "T0007"
	ErrNotIndexable         = "T0008"
	ErrFieldNotFound        = "T0010"
	ErrMethodNotFound       = "T0011"
	ErrExplicitConversion   = "T0014"
	ErrInvalidReturn        = "T0016"
	ErrMissingReturn        = "T0017"
	ErrConstantReassignment = "T0018"
	ErrInvalidBreak         = "T0019"
	ErrInvalidContinue      = "T0020"
	ErrUndefinedType        = "T0021"
	ErrInaccessibleMember   = "T0028"
	ErrStaticMismatch       = "T0029"
	ErrInvalidExprStatement = "T0030"
	ErrEmptyArrayType       = "T0031"
	ErrFunctionAsValue      = "T0032"
	ErrVoidValue            = "T0033"
	ErrInvalidArrayTarget   = "T0034"
	ErrFieldBeforeInit      = "T0035"
	ErrCannotInferReturn    = "T0036"

	// Binder warnings (W prefix)
	WarnNilField = "W0001"

	// Entry point errors (E prefix)
	ErrMainWithGlobals       = "E0001"
	ErrMultipleGlobalFiles   = "E0002"
	ErrInvalidMainSignature  = "E0003"
	ErrReturnOutsideFunction = "E0004"

	// Runtime faults (R prefix). These never enter a DiagnosticBag.
	FaultIndexOutOfRange = "R0001"
	FaultInvalidCast     = "R0002"
	FaultDivisionByZero  = "R0003"
	FaultInvalidArgument = "R0004"
	FaultNilInstance     = "R0005"
)
