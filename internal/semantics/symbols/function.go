package symbols

import (
	"strings"

	"ember/internal/frontend/ast"
	"ember/internal/types"
)

type FunctionKind int

const (
	Function FunctionKind = iota
	Method
	Constructor
)

func (k FunctionKind) String() string {
	switch k {
	case Function:
		return "function"
	case Method:
		return "method"
	case Constructor:
		return "constructor"
	default:
		return "unknown"
	}
}

// FunctionKey identifies a function by owner, name and parameter types. Two
// symbols with equal keys are the same overload.
type FunctionKey struct {
	Owner  string
	Name   string
	Params string
}

// FunctionSymbol describes a free function, a method or a constructor.
type FunctionSymbol struct {
	Name    string
	Kind    FunctionKind
	Params  []*VariableSymbol
	Decl    *ast.FuncDecl // nil for built-ins and the synthesized entry points
	Owner   *ClassSymbol
	Private bool
	Static  bool

	// returnType is nil until inferred when Decl omits it on a block body.
	returnType *types.TypeSymbol
}

func NewFunction(name string, kind FunctionKind, params []*VariableSymbol, ret *types.TypeSymbol, decl *ast.FuncDecl) *FunctionSymbol {
	return &FunctionSymbol{Name: name, Kind: kind, Params: params, returnType: ret, Decl: decl}
}

// ReturnType returns the declared or inferred type, or nil while inference is
// still pending.
func (f *FunctionSymbol) ReturnType() *types.TypeSymbol {
	return f.returnType
}

// NeedsInference reports whether the return type is still to be inferred.
func (f *FunctionSymbol) NeedsInference() bool {
	return f.returnType == nil
}

// SetInferredReturnType fills the return type once. Later calls are ignored.
func (f *FunctionSymbol) SetInferredReturnType(t *types.TypeSymbol) {
	if f.returnType == nil {
		f.returnType = t
	}
}

// WithReturnType returns a copy of f with a different return type.
func (f *FunctionSymbol) WithReturnType(t *types.TypeSymbol) *FunctionSymbol {
	c := *f
	c.returnType = t
	return &c
}

// Key returns the structural identity used for overload bookkeeping.
func (f *FunctionSymbol) Key() FunctionKey {
	owner := ""
	if f.Owner != nil {
		owner = f.Owner.Name
	}
	return FunctionKey{Owner: owner, Name: f.Name, Params: f.paramList()}
}

func (f *FunctionSymbol) paramList() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.Type.String()
	}
	return strings.Join(parts, ", ")
}

// QualifiedName is Owner.Name for members and Name otherwise.
func (f *FunctionSymbol) QualifiedName() string {
	if f.Owner != nil {
		return f.Owner.Name + "." + f.Name
	}
	return f.Name
}

func (f *FunctionSymbol) String() string {
	ret := "?"
	if f.returnType != nil {
		ret = f.returnType.String()
	}
	return f.QualifiedName() + "(" + f.paramList() + ") -> " + ret
}
