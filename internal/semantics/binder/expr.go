package binder

import (
	"fmt"

	"ember/internal/bound"
	"ember/internal/diagnostics"
	"ember/internal/frontend/ast"
	"ember/internal/semantics/operators"
	"ember/internal/semantics/symbols"
	"ember/internal/types"
	str "ember/internal/utils/strings"
)

// bindExpression binds any expression, void calls included. required is the
// type the context expects, used to type empty array literals; it may be nil.
func (b *Binder) bindExpression(ctx bindContext, expr ast.Expression, required *types.TypeSymbol) bound.Expr {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return b.bindLiteral(e)
	case *ast.ParenExpr:
		return b.bindExpression(ctx, e.X, required)
	case *ast.NameExpr:
		return b.bindName(ctx, e)
	case *ast.AssignExpr:
		return b.bindAssign(ctx, e)
	case *ast.IndexAssignExpr:
		return b.bindIndexAssign(ctx, e)
	case *ast.FieldAssignExpr:
		return b.bindFieldAssign(ctx, e)
	case *ast.UnaryExpr:
		return b.bindUnary(ctx, e)
	case *ast.BinaryExpr:
		return b.bindBinary(ctx, e)
	case *ast.CallExpr:
		return b.bindCall(ctx, e)
	case *ast.MemberCallExpr:
		return b.bindMemberCall(ctx, e)
	case *ast.MemberExpr:
		return b.bindMember(ctx, e)
	case *ast.IndexExpr:
		return b.bindIndex(ctx, e)
	case *ast.ArrayLiteral:
		return b.bindArray(ctx, e, required)
	}
	panic(fmt.Sprintf("binder: unexpected expression %T", expr))
}

// bindValue binds an expression whose value is used. Void is reported.
func (b *Binder) bindValue(ctx bindContext, expr ast.Expression, required *types.TypeSymbol) bound.Expr {
	x := b.bindExpression(ctx, expr, required)
	if x.Type().IsVoid() {
		b.report(diagnostics.VoidValue(expr.Loc()))
		return &bound.ErrorExpr{Location: *expr.Loc()}
	}
	return x
}

// bindConversion binds expr and converts it to typ. Explicit conversions are
// only accepted when allowExplicit is set, i.e. for a written cast.
func (b *Binder) bindConversion(ctx bindContext, expr ast.Expression, typ *types.TypeSymbol, allowExplicit bool) bound.Expr {
	return b.convert(b.bindValue(ctx, expr, typ), typ, allowExplicit)
}

func (b *Binder) convert(x bound.Expr, typ *types.TypeSymbol, allowExplicit bool) bound.Expr {
	from := x.Type()
	if isUnknown(from) || isUnknown(typ) {
		return x
	}

	conv := types.Classify(from, typ)
	switch {
	case !conv.Exists():
		b.report(diagnostics.CannotConvert(x.Loc(), from, typ))
		return &bound.ErrorExpr{Location: *x.Loc()}
	case conv.IsExplicit() && !allowExplicit:
		b.report(diagnostics.CannotConvertImplicitly(x.Loc(), from, typ))
		return &bound.ErrorExpr{Location: *x.Loc()}
	case conv.IsIdentity():
		return x
	}
	return &bound.ConversionExpr{To: typ, X: x, Location: *x.Loc()}
}

func (b *Binder) bindLiteral(e *ast.LiteralExpr) bound.Expr {
	switch v := e.Value.(type) {
	case int64, float64, bool, string:
		return &bound.LiteralExpr{Value: v, Location: e.Location}
	case int:
		return &bound.LiteralExpr{Value: int64(v), Location: e.Location}
	}
	panic(fmt.Sprintf("binder: unexpected literal %T", e.Value))
}

func (b *Binder) bindName(ctx bindContext, e *ast.NameExpr) bound.Expr {
	if v, ok := ctx.scope.LookupVariable(e.Name); ok {
		if v.Kind == symbols.Field {
			return b.bindSelfField(ctx, e, e.Name)
		}
		return &bound.VariableExpr{Variable: v, Location: e.Location}
	}
	b.reportMissingValue(ctx, e, e.Name)
	return &bound.ErrorExpr{Location: e.Location}
}

// reportMissingValue explains why name is not a value: it is a function, or it
// is not declared at all, in which case the closest visible name is suggested.
func (b *Binder) reportMissingValue(ctx bindContext, node ast.Node, name string) {
	if len(ctx.scope.LookupFunctions(name)) > 0 {
		b.report(diagnostics.FunctionAsValue(node.Loc(), name))
		return
	}
	b.report(diagnostics.UndefinedSymbol(node.Loc(), name, str.ClosestMatch(name, ctx.scope.Names())))
}

// bindSelfField reads a field of the current instance written without a
// receiver.
func (b *Binder) bindSelfField(ctx bindContext, node ast.Node, name string) bound.Expr {
	field, ok := ctx.class.Field(name)
	if !ok {
		b.report(diagnostics.FieldNotFound(node.Loc(), name, ctx.class.Name))
		return &bound.ErrorExpr{Location: *node.Loc()}
	}
	if ctx.static {
		b.report(diagnostics.StaticMismatch(node.Loc(),
			fmt.Sprintf("instance field '%s' cannot be used in static method '%s'", name, ctx.function.QualifiedName())))
		return &bound.ErrorExpr{Location: *node.Loc()}
	}
	return &bound.FieldExpr{Field: field, Location: *node.Loc()}
}

func (b *Binder) bindAssign(ctx bindContext, e *ast.AssignExpr) bound.Expr {
	v, ok := ctx.scope.LookupVariable(e.Name)
	if !ok {
		b.bindValue(ctx, e.Value, nil)
		b.reportMissingValue(ctx, e, e.Name)
		return &bound.ErrorExpr{Location: e.Location}
	}
	if v.Kind == symbols.Field {
		return b.bindSelfFieldAssign(ctx, e, e.Name, e.Value)
	}

	value := b.bindConversion(ctx, e.Value, v.Type, false)
	if v.IsReadOnly() {
		b.report(diagnostics.ReadOnlyAssignment(e.Loc(), e.Name))
		return &bound.ErrorExpr{Location: e.Location}
	}
	return &bound.AssignExpr{Variable: v, Value: value, Location: e.Location}
}

// bindIndexAssign binds xs[i] = v. Only an element of a named array variable
// can be assigned.
func (b *Binder) bindIndexAssign(ctx bindContext, e *ast.IndexAssignExpr) bound.Expr {
	name, ok := unparen(e.Target).(*ast.NameExpr)
	if !ok {
		b.bindValue(ctx, e.Target, nil)
		b.report(diagnostics.InvalidArrayTarget(e.Target.Loc()))
		return &bound.ErrorExpr{Location: e.Location}
	}

	v, ok := ctx.scope.LookupVariable(name.Name)
	if !ok {
		b.reportMissingValue(ctx, name, name.Name)
		return &bound.ErrorExpr{Location: e.Location}
	}
	if v.Kind == symbols.Field && ctx.static {
		b.report(diagnostics.StaticMismatch(name.Loc(),
			fmt.Sprintf("instance field '%s' cannot be used in static method '%s'", v.Name, ctx.function.QualifiedName())))
		return &bound.ErrorExpr{Location: e.Location}
	}
	if isUnknown(v.Type) {
		return &bound.ErrorExpr{Location: e.Location}
	}
	if !v.Type.IsArray() {
		b.report(diagnostics.NotIndexable(name.Loc(), v.Type))
		return &bound.ErrorExpr{Location: e.Location}
	}

	index := b.bindConversion(ctx, e.Index, types.Int, false)
	value := b.bindConversion(ctx, e.Value, v.Type.ElementType(), false)
	if v.IsReadOnly() && !b.mayInitialize(ctx, v) {
		b.report(diagnostics.ReadOnlyAssignment(e.Loc(), v.Name))
		return &bound.ErrorExpr{Location: e.Location}
	}
	return &bound.IndexAssignExpr{Variable: v, Index: index, Value: value, Location: e.Location}
}

// mayInitialize reports whether a read-only field can still be written here:
// only the constructor of its class may.
func (b *Binder) mayInitialize(ctx bindContext, v *symbols.VariableSymbol) bool {
	if v.Kind != symbols.Field || ctx.function == nil || ctx.function.Kind != symbols.Constructor {
		return false
	}
	_, own := ctx.class.Field(v.Name)
	return own
}

func (b *Binder) bindUnary(ctx bindContext, e *ast.UnaryExpr) bound.Expr {
	operand := b.bindValue(ctx, e.X, nil)
	if isUnknown(operand.Type()) {
		return &bound.ErrorExpr{Location: e.Location}
	}
	op, ok := operators.BindUnary(e.Op, operand.Type())
	if !ok {
		b.report(diagnostics.UndefinedUnaryOperator(e.Loc(), string(e.Op), operand.Type()))
		return &bound.ErrorExpr{Location: e.Location}
	}
	return &bound.UnaryExpr{Op: op, Operand: operand, Location: e.Location}
}

func (b *Binder) bindBinary(ctx bindContext, e *ast.BinaryExpr) bound.Expr {
	left := b.bindValue(ctx, e.X, nil)
	right := b.bindValue(ctx, e.Y, nil)
	if isUnknown(left.Type()) || isUnknown(right.Type()) {
		return &bound.ErrorExpr{Location: e.Location}
	}
	op, ok := operators.BindBinary(e.Op, left.Type(), right.Type())
	if !ok {
		b.report(diagnostics.UndefinedBinaryOperator(e.Loc(), string(e.Op), left.Type(), right.Type()))
		return &bound.ErrorExpr{Location: e.Location}
	}
	return &bound.BinaryExpr{Left: left, Op: op, Right: right, Location: e.Location}
}

// bindArray types a literal from required when that is an array type, from
// its first element otherwise. [] needs a required type.
func (b *Binder) bindArray(ctx bindContext, e *ast.ArrayLiteral, required *types.TypeSymbol) bound.Expr {
	var elem *types.TypeSymbol
	if required != nil && required.IsArray() {
		elem = required.ElementType()
	}

	if len(e.Elements) == 0 {
		if elem == nil {
			b.report(diagnostics.EmptyArrayType(e.Loc()))
			return &bound.ErrorExpr{Location: e.Location}
		}
		return &bound.ArrayExpr{Element: elem, Location: e.Location}
	}

	var elements []bound.Expr
	for i, x := range e.Elements {
		if elem == nil && i == 0 {
			first := b.bindValue(ctx, x, nil)
			elem = first.Type()
			elements = append(elements, first)
			continue
		}
		elements = append(elements, b.bindConversion(ctx, x, elem, false))
	}
	if isUnknown(elem) {
		return &bound.ErrorExpr{Location: e.Location}
	}
	if elem.IsArray() {
		b.report(diagnostics.CannotConvert(e.Elements[0].Loc(), elem, elem.ElementType()))
		return &bound.ErrorExpr{Location: e.Location}
	}
	return &bound.ArrayExpr{Element: elem, Elements: elements, Location: e.Location}
}

// bindIndex binds xs[i], or Color[i] when X names an enumeration.
func (b *Binder) bindIndex(ctx bindContext, e *ast.IndexExpr) bound.Expr {
	if adt, ok := b.namedADT(ctx, e.X); ok {
		index := b.bindConversion(ctx, e.Index, types.Int, false)
		return &bound.ADTIndexExpr{ADT: adt, Index: index, Location: e.Location}
	}

	array := b.bindValue(ctx, e.X, nil)
	index := b.bindConversion(ctx, e.Index, types.Int, false)
	t := array.Type()
	if isUnknown(t) {
		return &bound.ErrorExpr{Location: e.Location}
	}
	if !t.IsArray() {
		b.report(diagnostics.NotIndexable(e.X.Loc(), t))
		return &bound.ErrorExpr{Location: e.Location}
	}
	return &bound.IndexExpr{Array: array, Index: index, Location: e.Location}
}

func unparen(x ast.Expression) ast.Expression {
	for {
		p, ok := x.(*ast.ParenExpr)
		if !ok {
			return x
		}
		x = p.X
	}
}
