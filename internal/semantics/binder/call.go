package binder

import (
	"ember/internal/bound"
	"ember/internal/diagnostics"
	"ember/internal/frontend/ast"
	"ember/internal/semantics/symbols"
	"ember/internal/types"
	str "ember/internal/utils/strings"
)

// bindCall binds name(args): a constructor call when name is a class, a cast
// when name is a type and there is one argument, a function call otherwise.
func (b *Binder) bindCall(ctx bindContext, e *ast.CallExpr) bound.Expr {
	if class, ok := b.lookupClass(ctx, e.Name); ok {
		return b.bindNew(ctx, e, class)
	}
	if t, ok := types.LookupBuiltin(e.Name); ok && !t.IsVoid() && len(e.Args) == 1 {
		return b.bindCast(ctx, e, t)
	}

	candidates := ctx.scope.LookupFunctions(e.Name)
	if len(candidates) == 0 {
		for _, a := range e.Args {
			b.bindExpression(ctx, a, nil)
		}
		if _, isVar := ctx.scope.LookupVariable(e.Name); isVar {
			b.report(diagnostics.NotCallable(e.Loc(), e.Name))
		} else {
			b.report(diagnostics.UndefinedSymbol(e.Loc(), e.Name, str.ClosestMatch(e.Name, ctx.scope.Names())))
		}
		return &bound.ErrorExpr{Location: e.Location}
	}

	fn, args, ok := b.bindArguments(ctx, e, e.Name, candidates, e.Args)
	if !ok {
		return &bound.ErrorExpr{Location: e.Location}
	}

	if fn.Owner != nil {
		// a sibling method called without a receiver
		if ctx.static && !fn.Static {
			b.report(diagnostics.StaticMismatch(e.Loc(),
				"instance method '"+fn.QualifiedName()+"' cannot be called from static method '"+ctx.function.QualifiedName()+"'"))
			return &bound.ErrorExpr{Location: e.Location}
		}
		return &bound.MethodCallExpr{Method: fn, Args: args, Result: b.returnTypeOf(fn), Location: e.Location}
	}
	return &bound.CallExpr{Function: fn, Args: args, Result: b.returnTypeOf(fn), Location: e.Location}
}

func (b *Binder) bindCast(ctx bindContext, e *ast.CallExpr, to *types.TypeSymbol) bound.Expr {
	x := b.convert(b.bindValue(ctx, e.Args[0], to), to, true)
	if c, ok := x.(*bound.ConversionExpr); ok {
		c.Location = e.Location
	}
	return x
}

// bindNew binds a constructor call. A class without a constructor takes no
// arguments.
func (b *Binder) bindNew(ctx bindContext, e *ast.CallExpr, class *symbols.ClassSymbol) bound.Expr {
	ctor := class.Ctor
	if ctor == nil {
		if len(e.Args) > 0 {
			for _, a := range e.Args {
				b.bindExpression(ctx, a, nil)
			}
			b.report(diagnostics.WrongArgumentCount(e.Loc(), class.Name, 0, len(e.Args)))
			return &bound.ErrorExpr{Location: e.Location}
		}
		return &bound.NewExpr{Class: class, Location: e.Location}
	}

	if ctor.Private && !ctx.canAccess(class) {
		b.report(diagnostics.InaccessibleMember(e.Loc(), "constructor", class.Name, class.Name))
		return &bound.ErrorExpr{Location: e.Location}
	}

	_, args, ok := b.bindArguments(ctx, e, class.Name, []*symbols.FunctionSymbol{ctor}, e.Args)
	if !ok {
		return &bound.ErrorExpr{Location: e.Location}
	}
	return &bound.NewExpr{Class: class, Args: args, Location: e.Location}
}

// bindArguments binds call arguments and picks an overload: an exact match of
// parameter types first, then the first candidate of the same arity with the
// arguments converted. With no candidate of that arity the count is reported.
func (b *Binder) bindArguments(ctx bindContext, call ast.Node, name string, candidates []*symbols.FunctionSymbol, args []ast.Expression) (*symbols.FunctionSymbol, []bound.Expr, bool) {
	// the only candidate of the right arity supplies required types, so [] works
	var hint *symbols.FunctionSymbol
	for _, c := range candidates {
		if len(c.Params) != len(args) {
			continue
		}
		if hint != nil {
			hint = nil
			break
		}
		hint = c
	}

	bargs := make([]bound.Expr, len(args))
	for i, a := range args {
		var required *types.TypeSymbol
		if hint != nil {
			required = hint.Params[i].Type
		}
		bargs[i] = b.bindValue(ctx, a, required)
	}

	for _, c := range candidates {
		if matchesExactly(c, bargs) {
			return c, bargs, true
		}
	}

	for _, c := range candidates {
		if len(c.Params) != len(bargs) {
			continue
		}
		converted := make([]bound.Expr, len(bargs))
		for i, arg := range bargs {
			converted[i] = b.convert(arg, c.Params[i].Type, false)
		}
		return c, converted, true
	}

	b.report(diagnostics.WrongArgumentCount(call.Loc(), name, len(candidates[0].Params), len(args)))
	return nil, nil, false
}

func matchesExactly(fn *symbols.FunctionSymbol, args []bound.Expr) bool {
	if len(fn.Params) != len(args) {
		return false
	}
	for i, p := range fn.Params {
		if !p.Type.Equals(args[i].Type()) {
			return false
		}
	}
	return true
}

// lookupClass finds a class named name unless a variable of that name hides it.
func (b *Binder) lookupClass(ctx bindContext, name string) (*symbols.ClassSymbol, bool) {
	if _, ok := ctx.scope.LookupVariable(name); ok {
		return nil, false
	}
	return ctx.scope.LookupClass(name)
}

// namedClass reports whether x is a bare name of a class.
func (b *Binder) namedClass(ctx bindContext, x ast.Expression) (*symbols.ClassSymbol, bool) {
	name, ok := unparen(x).(*ast.NameExpr)
	if !ok {
		return nil, false
	}
	return b.lookupClass(ctx, name.Name)
}

// namedADT reports whether x is a bare name of an enumeration.
func (b *Binder) namedADT(ctx bindContext, x ast.Expression) (*symbols.ADTSymbol, bool) {
	name, ok := unparen(x).(*ast.NameExpr)
	if !ok {
		return nil, false
	}
	if _, isVar := ctx.scope.LookupVariable(name.Name); isVar {
		return nil, false
	}
	return ctx.scope.LookupADT(name.Name)
}

// classOf returns the class whose instances have type t.
func (b *Binder) classOf(ctx bindContext, t *types.TypeSymbol) (*symbols.ClassSymbol, bool) {
	if !t.IsClass() || t.IsArray() {
		return nil, false
	}
	class, ok := ctx.scope.LookupClass(t.Name())
	if !ok || !class.Type.Equals(t) {
		return nil, false
	}
	return class, true
}
