package binder

import (
	"fmt"

	"ember/internal/bound"
	"ember/internal/diagnostics"
	"ember/internal/frontend/ast"
	"ember/internal/semantics/symbols"
	str "ember/internal/utils/strings"
)

// bindMemberCall binds x.m(args): a static call when x names a class, an
// instance call otherwise.
func (b *Binder) bindMemberCall(ctx bindContext, e *ast.MemberCallExpr) bound.Expr {
	if class, ok := b.namedClass(ctx, e.X); ok {
		fn, args, ok := b.bindMethodArguments(ctx, e, class)
		if !ok {
			return &bound.ErrorExpr{Location: e.Location}
		}
		if !fn.Static {
			b.report(diagnostics.StaticMismatch(e.Loc(),
				fmt.Sprintf("method '%s' is not static; call it on an instance", fn.QualifiedName())))
			return &bound.ErrorExpr{Location: e.Location}
		}
		return &bound.MethodCallExpr{Method: fn, Args: args, Result: b.returnTypeOf(fn), Location: e.Location}
	}

	receiver := b.bindValue(ctx, e.X, nil)
	t := receiver.Type()
	if isUnknown(t) {
		for _, a := range e.Args {
			b.bindExpression(ctx, a, nil)
		}
		return &bound.ErrorExpr{Location: e.Location}
	}
	class, ok := b.classOf(ctx, t)
	if !ok {
		b.report(diagnostics.MethodNotFound(e.Loc(), e.Name, t.String()))
		return &bound.ErrorExpr{Location: e.Location}
	}

	fn, args, ok := b.bindMethodArguments(ctx, e, class)
	if !ok {
		return &bound.ErrorExpr{Location: e.Location}
	}
	if fn.Static {
		b.report(diagnostics.StaticMismatch(e.Loc(),
			fmt.Sprintf("static method '%s' must be called through the class name", fn.QualifiedName())))
		return &bound.ErrorExpr{Location: e.Location}
	}
	return &bound.MethodCallExpr{Instance: receiver, Method: fn, Args: args, Result: b.returnTypeOf(fn), Location: e.Location}
}

func (b *Binder) bindMethodArguments(ctx bindContext, e *ast.MemberCallExpr, class *symbols.ClassSymbol) (*symbols.FunctionSymbol, []bound.Expr, bool) {
	candidates := class.Methods[e.Name]
	if len(candidates) == 0 {
		for _, a := range e.Args {
			b.bindExpression(ctx, a, nil)
		}
		b.report(diagnostics.MethodNotFound(e.Loc(), e.Name, class.Name))
		return nil, nil, false
	}
	fn, args, ok := b.bindArguments(ctx, e, class.Name+"."+e.Name, candidates, e.Args)
	if !ok {
		return nil, nil, false
	}
	if fn.Private && !ctx.canAccess(class) {
		b.report(diagnostics.InaccessibleMember(e.Loc(), "method", class.Name, e.Name))
		return nil, nil, false
	}
	return fn, args, true
}

// bindMember binds x.name: an enumeration member when x names an enumeration,
// a field read otherwise.
func (b *Binder) bindMember(ctx bindContext, e *ast.MemberExpr) bound.Expr {
	if adt, ok := b.namedADT(ctx, e.X); ok {
		ordinal, ok := adt.Ordinal(e.Name)
		if !ok {
			b.report(diagnostics.UndefinedSymbol(e.Loc(), adt.Name+"."+e.Name, str.ClosestMatch(e.Name, adt.Members)))
			return &bound.ErrorExpr{Location: e.Location}
		}
		return &bound.ADTMemberExpr{ADT: adt, Ordinal: ordinal, Location: e.Location}
	}

	if class, ok := b.namedClass(ctx, e.X); ok {
		switch _, isField := class.Field(e.Name); {
		case isField:
			b.report(diagnostics.StaticMismatch(e.Loc(),
				fmt.Sprintf("instance field '%s.%s' cannot be accessed through the class name", class.Name, e.Name)))
		case len(class.Methods[e.Name]) > 0:
			b.report(diagnostics.FunctionAsValue(e.Loc(), class.Name+"."+e.Name))
		default:
			b.report(diagnostics.FieldNotFound(e.Loc(), e.Name, class.Name))
		}
		return &bound.ErrorExpr{Location: e.Location}
	}

	receiver := b.bindValue(ctx, e.X, nil)
	t := receiver.Type()
	if isUnknown(t) {
		return &bound.ErrorExpr{Location: e.Location}
	}
	class, ok := b.classOf(ctx, t)
	if !ok {
		b.report(diagnostics.FieldNotFound(e.Loc(), e.Name, t.String()))
		return &bound.ErrorExpr{Location: e.Location}
	}

	field, ok := b.lookupField(ctx, e, class, e.Name)
	if !ok {
		return &bound.ErrorExpr{Location: e.Location}
	}
	return &bound.FieldExpr{Instance: receiver, Field: field, Location: e.Location}
}

// lookupField finds an accessible field of class, reporting a missing or
// private one.
func (b *Binder) lookupField(ctx bindContext, node ast.Node, class *symbols.ClassSymbol, name string) (*symbols.FieldSymbol, bool) {
	field, ok := class.Field(name)
	if !ok {
		if len(class.Methods[name]) > 0 {
			b.report(diagnostics.FunctionAsValue(node.Loc(), name))
		} else {
			b.report(diagnostics.FieldNotFound(node.Loc(), name, class.Name))
		}
		return nil, false
	}
	if field.Private && !ctx.canAccess(class) {
		b.report(diagnostics.InaccessibleMember(node.Loc(), "field", class.Name, name))
		return nil, false
	}
	return field, true
}

// bindFieldAssign binds obj.f = v, or f = v on the current instance when no
// receiver is written.
func (b *Binder) bindFieldAssign(ctx bindContext, e *ast.FieldAssignExpr) bound.Expr {
	if e.Object == nil {
		return b.bindSelfFieldAssign(ctx, e, e.Field, e.Value)
	}

	receiver := b.bindValue(ctx, e.Object, nil)
	t := receiver.Type()
	if isUnknown(t) {
		b.bindValue(ctx, e.Value, nil)
		return &bound.ErrorExpr{Location: e.Location}
	}
	class, ok := b.classOf(ctx, t)
	if !ok {
		b.report(diagnostics.FieldNotFound(e.Loc(), e.Field, t.String()))
		return &bound.ErrorExpr{Location: e.Location}
	}
	field, ok := b.lookupField(ctx, e, class, e.Field)
	if !ok {
		return &bound.ErrorExpr{Location: e.Location}
	}

	value := b.bindConversion(ctx, e.Value, field.Variable.Type, false)
	if !mayAssignField(ctx, class, field) {
		b.report(diagnostics.ReadOnlyAssignment(e.Loc(), class.Name+"."+e.Field))
		return &bound.ErrorExpr{Location: e.Location}
	}
	return &bound.FieldAssignExpr{Instance: receiver, Field: field, Value: value, Location: e.Location}
}

func (b *Binder) bindSelfFieldAssign(ctx bindContext, node ast.Node, name string, valueExpr ast.Expression) bound.Expr {
	loc := *node.Loc()
	if ctx.class == nil {
		b.bindValue(ctx, valueExpr, nil)
		b.report(diagnostics.UndefinedSymbol(node.Loc(), name, str.ClosestMatch(name, ctx.scope.Names())))
		return &bound.ErrorExpr{Location: loc}
	}
	field, ok := ctx.class.Field(name)
	if !ok {
		b.bindValue(ctx, valueExpr, nil)
		b.report(diagnostics.FieldNotFound(node.Loc(), name, ctx.class.Name))
		return &bound.ErrorExpr{Location: loc}
	}
	if ctx.static {
		b.report(diagnostics.StaticMismatch(node.Loc(),
			fmt.Sprintf("instance field '%s' cannot be used in static method '%s'", name, ctx.function.QualifiedName())))
		return &bound.ErrorExpr{Location: loc}
	}

	value := b.bindConversion(ctx, valueExpr, field.Variable.Type, false)
	if !mayAssignField(ctx, ctx.class, field) {
		b.report(diagnostics.ReadOnlyAssignment(node.Loc(), name))
		return &bound.ErrorExpr{Location: loc}
	}
	return &bound.FieldAssignExpr{Field: field, Value: value, Location: loc}
}

// mayAssignField holds for var fields, and for let fields inside the
// constructor of the class that owns them.
func mayAssignField(ctx bindContext, owner *symbols.ClassSymbol, field *symbols.FieldSymbol) bool {
	if field.Variable.Mutable {
		return true
	}
	return ctx.function != nil && ctx.function.Kind == symbols.Constructor && ctx.class == owner
}
