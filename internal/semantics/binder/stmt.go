package binder

import (
	"fmt"

	"ember/internal/bound"
	"ember/internal/diagnostics"
	"ember/internal/frontend/ast"
	"ember/internal/semantics/symbols"
	"ember/internal/semantics/table"
	"ember/internal/source"
	"ember/internal/types"
)

func (b *Binder) bindStatement(ctx bindContext, stmt ast.Statement) bound.Stmt {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		return b.bindBlock(ctx, s)
	case *ast.VarDecl:
		return b.bindVarDecl(ctx, s)
	case *ast.ExprStmt:
		return b.bindExprStmt(ctx, s)
	case *ast.IfStmt:
		return b.bindIf(ctx, s)
	case *ast.WhileStmt:
		return b.bindWhile(ctx, s)
	case *ast.DoWhileStmt:
		return b.bindDoWhile(ctx, s)
	case *ast.ForStmt:
		return b.bindFor(ctx, s)
	case *ast.ForEachStmt:
		return b.bindForEach(ctx, s)
	case *ast.BreakStmt:
		return b.bindJump(ctx, s.Loc(), "break")
	case *ast.ContinueStmt:
		return b.bindJump(ctx, s.Loc(), "continue")
	case *ast.ReturnStmt:
		return b.bindReturn(ctx, s)
	}
	panic(fmt.Sprintf("binder: unexpected statement %T", stmt))
}

func (b *Binder) bindBlock(ctx bindContext, block *ast.BlockStmt) *bound.BlockStmt {
	inner := ctx.withScope(table.NewScope(ctx.scope))
	out := &bound.BlockStmt{Location: block.Location}
	for _, s := range block.Statements {
		out.Statements = append(out.Statements, b.bindStatement(inner, s))
	}
	return out
}

func (b *Binder) bindVarDecl(ctx bindContext, s *ast.VarDecl) bound.Stmt {
	var init bound.Expr
	var typ *types.TypeSymbol
	if s.Type != nil {
		typ = b.resolveType(ctx.scope, s.Type)
		init = b.bindConversion(ctx, s.Value, typ, false)
	} else {
		init = b.bindValue(ctx, s.Value, nil)
		typ = init.Type()
	}

	v := b.declareVariable(ctx, s.Loc(), s.Name, typ, s.Mutable)
	return &bound.VarDecl{Variable: v, Init: init, Location: s.Location}
}

// declareVariable declares name in the current frame. A clash is reported and
// the variable is still returned so binding can go on.
func (b *Binder) declareVariable(ctx bindContext, loc *source.Location, name string, typ *types.TypeSymbol, mutable bool) *symbols.VariableSymbol {
	v := symbols.NewVariable(name, ctx.variableKind(), typ, mutable)
	if err := ctx.scope.DeclareVariable(v); err != nil {
		b.report(diagnostics.RedeclaredSymbol(loc, name))
	}
	return v
}

// bindExprStmt only accepts assignments and calls inside function bodies. Top-
// level statements may be any expression; the script yields the last value.
func (b *Binder) bindExprStmt(ctx bindContext, s *ast.ExprStmt) bound.Stmt {
	x := b.bindExpression(ctx, s.X, nil)
	if ctx.function != nil && !hasEffect(s.X) {
		b.report(diagnostics.InvalidExpressionStatement(s.X.Loc()))
	}
	return &bound.ExprStmt{X: x, Location: s.Location}
}

func hasEffect(x ast.Expression) bool {
	switch x := x.(type) {
	case *ast.AssignExpr, *ast.IndexAssignExpr, *ast.FieldAssignExpr, *ast.CallExpr, *ast.MemberCallExpr:
		return true
	case *ast.ParenExpr:
		return hasEffect(x.X)
	}
	return false
}

func (b *Binder) bindIf(ctx bindContext, s *ast.IfStmt) bound.Stmt {
	cond := b.bindConversion(ctx, s.Cond, types.Bool, false)
	then := b.bindBlock(ctx, s.Body)
	var els bound.Stmt
	if s.Else != nil {
		els = b.bindStatement(ctx, s.Else)
	}
	return &bound.IfStmt{Cond: cond, Then: then, Else: els, Location: s.Location}
}

func (b *Binder) bindWhile(ctx bindContext, s *ast.WhileStmt) bound.Stmt {
	cond := b.bindConversion(ctx, s.Cond, types.Bool, false)
	loop := b.newLoop()
	body := b.bindBlock(ctx.withLoop(loop), s.Body)
	return &bound.WhileStmt{Cond: cond, Body: body, Loop: loop, Location: s.Location}
}

func (b *Binder) bindDoWhile(ctx bindContext, s *ast.DoWhileStmt) bound.Stmt {
	loop := b.newLoop()
	body := b.bindBlock(ctx.withLoop(loop), s.Body)
	cond := b.bindConversion(ctx, s.Cond, types.Bool, false)
	return &bound.DoWhileStmt{Body: body, Cond: cond, Loop: loop, Location: s.Location}
}

func (b *Binder) bindFor(ctx bindContext, s *ast.ForStmt) bound.Stmt {
	lower := b.bindConversion(ctx, s.Lower, types.Int, false)
	upper := b.bindConversion(ctx, s.Upper, types.Int, false)

	inner := ctx.withScope(table.NewScope(ctx.scope))
	v := b.declareVariable(inner, s.Loc(), s.Var, types.Int, false)

	loop := b.newLoop()
	body := b.bindBlock(inner.withLoop(loop), s.Body)
	return &bound.ForStmt{Variable: v, Lower: lower, Upper: upper, Body: body, Loop: loop, Location: s.Location}
}

func (b *Binder) bindForEach(ctx bindContext, s *ast.ForEachStmt) bound.Stmt {
	iterable := b.bindValue(ctx, s.Iterable, nil)
	elem := types.Unknown
	switch t := iterable.Type(); {
	case t.IsArray():
		elem = t.ElementType()
	case !isUnknown(t):
		b.report(diagnostics.NotIndexable(s.Iterable.Loc(), t))
		iterable = &bound.ErrorExpr{Location: *s.Iterable.Loc()}
	}

	inner := ctx.withScope(table.NewScope(ctx.scope))
	v := b.declareVariable(inner, s.Loc(), s.Var, elem, false)
	var index *symbols.VariableSymbol
	if s.Index != "" {
		index = b.declareVariable(inner, s.Loc(), s.Index, types.Int, false)
	}

	loop := b.newLoop()
	body := b.bindBlock(inner.withLoop(loop), s.Body)
	return &bound.ForEachStmt{Variable: v, Index: index, Iterable: iterable, Body: body, Loop: loop, Location: s.Location}
}

func (b *Binder) bindJump(ctx bindContext, loc *source.Location, keyword string) bound.Stmt {
	loop, ok := ctx.innermostLoop()
	if !ok {
		b.report(diagnostics.InvalidJump(loc, keyword))
		return &bound.ErrorStmt{Location: *loc}
	}
	target := loop.Break
	if keyword == "continue" {
		target = loop.Continue
	}
	return &bound.GotoStmt{Label: target, Location: *loc}
}

func (b *Binder) bindReturn(ctx bindContext, s *ast.ReturnStmt) bound.Stmt {
	if ctx.function == nil {
		b.report(diagnostics.ReturnOutsideFunction(s.Loc()))
		return &bound.ErrorStmt{Location: s.Location}
	}

	fn := ctx.function
	ret := b.returnTypeOf(fn)
	switch {
	case s.Value == nil:
		if !ret.IsVoid() && !ret.IsUnknown() {
			b.report(diagnostics.InvalidReturn(s.Loc(),
				fmt.Sprintf("'%s' must return a value of type '%s'", fn.QualifiedName(), ret)))
		}
		return &bound.ReturnStmt{Location: s.Location}
	case ret.IsVoid():
		value := b.bindExpression(ctx, s.Value, nil)
		b.report(diagnostics.InvalidReturn(s.Value.Loc(),
			fmt.Sprintf("'%s' does not return a value", fn.QualifiedName())))
		return &bound.ReturnStmt{Value: value, Location: s.Location}
	case ret.IsUnknown():
		return &bound.ReturnStmt{Value: b.bindValue(ctx, s.Value, nil), Location: s.Location}
	}
	return &bound.ReturnStmt{Value: b.bindConversion(ctx, s.Value, ret, false), Location: s.Location}
}
