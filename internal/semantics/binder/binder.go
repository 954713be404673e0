package binder

import (
	"fmt"

	"ember/internal/bound"
	"ember/internal/builtins"
	"ember/internal/diagnostics"
	"ember/internal/frontend/ast"
	"ember/internal/lowerer"
	"ember/internal/semantics/controlflow"
	"ember/internal/semantics/symbols"
	"ember/internal/semantics/table"
	"ember/internal/source"
	"ember/internal/types"
)

// Binder resolves names and types over syntax trees and produces bound trees.
// One binder serves one submission; speculative copies share everything except
// the diagnostics bag.
type Binder struct {
	diagnostics *diagnostics.DiagnosticBag
	global      *table.Scope

	// functions whose return type is being inferred right now
	inferring map[*symbols.FunctionSymbol]bool

	loopCount int
}

func newBinder(global *table.Scope) *Binder {
	return &Binder{
		diagnostics: diagnostics.NewDiagnosticBag(),
		global:      global,
		inferring:   make(map[*symbols.FunctionSymbol]bool),
	}
}

// speculative returns a binder whose diagnostics are thrown away.
func (b *Binder) speculative() *Binder {
	return &Binder{
		diagnostics: diagnostics.NewDiagnosticBag(),
		global:      b.global,
		inferring:   b.inferring,
		loopCount:   b.loopCount,
	}
}

func (b *Binder) report(d *diagnostics.Diagnostic) {
	b.diagnostics.Add(d)
}

// bindContext is the state that changes while descending into a body. It is
// passed by value so leaving a construct restores the outer state.
type bindContext struct {
	scope    *table.Scope
	function *symbols.FunctionSymbol // nil among top-level statements and field defaults
	class    *symbols.ClassSymbol    // class whose member is being bound
	static   bool                    // inside a static method
	loops    []bound.Loop
}

func (c bindContext) withScope(s *table.Scope) bindContext {
	c.scope = s
	return c
}

func (c bindContext) withLoop(l bound.Loop) bindContext {
	c.loops = append(c.loops[:len(c.loops):len(c.loops)], l)
	return c
}

func (c bindContext) innermostLoop() (bound.Loop, bool) {
	if len(c.loops) == 0 {
		return bound.Loop{}, false
	}
	return c.loops[len(c.loops)-1], true
}

// variableKind is the kind of variables declared in this context.
func (c bindContext) variableKind() symbols.VariableKind {
	if c.function == nil {
		return symbols.Global
	}
	return symbols.Local
}

// canAccess reports whether a private member of owner is visible here.
func (c bindContext) canAccess(owner *symbols.ClassSymbol) bool {
	return c.class == owner
}

// BindGlobalScope runs the declaration pass over one submission: enums, classes,
// free functions, then the top-level statements of at most one tree. The
// result chains to previous so earlier declarations stay visible.
func BindGlobalScope(previous *bound.GlobalScope, trees []*ast.Module) *bound.GlobalScope {
	var parent *table.Scope
	if previous != nil {
		parent = previous.Scope
	} else {
		parent = table.NewScope(nil)
		builtins.RegisterAllBuiltins(parent)
	}

	b := newBinder(table.NewScope(parent))
	global := &bound.GlobalScope{Previous: previous, Scope: b.global}

	d := &declarer{binder: b, global: global}
	d.declareAll(trees)

	ctx := bindContext{scope: b.global}
	var globalTree *ast.Module
	for _, tree := range trees {
		stmts := tree.GlobalStatements()
		if len(stmts) == 0 {
			continue
		}
		if globalTree != nil {
			b.report(diagnostics.MultipleGlobalFiles(stmts[0].Loc()))
			continue
		}
		globalTree = tree
		for _, g := range stmts {
			global.Statements = append(global.Statements, b.bindStatement(ctx, g.Statement))
		}
	}
	global.Variables = b.global.Variables()

	d.resolveEntryPoint(globalTree)

	global.Diagnostics = b.diagnostics.Diagnostics()
	return global
}

// BindProgram binds and lowers every body declared in global: free functions,
// constructors, methods, field defaults and the script wrapper. Non-void bodies
// are checked to return on every path.
func BindProgram(global *bound.GlobalScope) *bound.Program {
	b := newBinder(global.Scope)
	program := bound.NewProgram(nil, global)

	for _, fn := range global.Functions {
		program.Functions[fn.Key()] = b.bindFunctionBody(b.functionContext(fn), fn)
	}

	for _, class := range global.Classes {
		program.Classes[class.Name] = b.bindClassBody(class)
	}

	if global.Script != nil {
		body := &bound.BlockStmt{Statements: global.Statements}
		program.Functions[global.Script.Key()] = lowerer.Lower(global.Script, body)
	}

	program.Diagnostics = append(append([]*diagnostics.Diagnostic(nil), global.Diagnostics...), b.diagnostics.Diagnostics()...)
	return program
}

func (b *Binder) bindClassBody(class *symbols.ClassSymbol) *bound.ClassBody {
	cb := &bound.ClassBody{
		Class:   class,
		Methods: make(map[symbols.FunctionKey]*bound.BlockStmt),
	}

	fieldCtx := bindContext{scope: b.memberScope(class), class: class}
	for i, f := range class.Fields {
		init := bound.FieldInit{Field: f}
		if f.Decl != nil && f.Decl.Default != nil {
			init.Value = b.bindConversion(fieldCtx, f.Decl.Default, f.Variable.Type, false)
			b.checkFieldOrder(class, i, init.Value)
		}
		cb.Fields = append(cb.Fields, init)
	}

	if class.Ctor != nil {
		cb.Ctor = b.bindFunctionBody(b.functionContext(class.Ctor), class.Ctor)
	}
	for _, m := range class.AllMethods() {
		cb.Methods[m.Key()] = b.bindFunctionBody(b.functionContext(m), m)
	}
	return cb
}

// checkFieldOrder reports reads, in the default of field i, of that field or
// of any field declared after it. Defaults run in declaration order.
func (b *Binder) checkFieldOrder(class *symbols.ClassSymbol, i int, value bound.Expr) {
	later := make(map[*symbols.VariableSymbol]*symbols.FieldSymbol)
	for _, f := range class.Fields[i:] {
		later[f.Variable] = f
	}
	r := &bound.Rewriter{Expr: func(e bound.Expr) (bound.Expr, bool) {
		var read *symbols.FieldSymbol
		switch e := e.(type) {
		case *bound.VariableExpr:
			read = later[e.Variable]
		case *bound.FieldExpr:
			if e.Instance == nil {
				read = later[e.Field.Variable]
			}
		}
		if read != nil {
			var declared *source.Location
			if read.Decl != nil {
				declared = read.Decl.Loc()
			}
			b.report(diagnostics.FieldBeforeInit(e.Loc(), read.Variable.Name, declared))
		}
		return e, false
	}}
	r.RewriteExpr(value)
}

// memberScope builds the frame a class's members see: its fields as Field
// variables and every method overload.
func (b *Binder) memberScope(class *symbols.ClassSymbol) *table.Scope {
	scope := table.NewScope(b.global)
	for _, f := range class.Fields {
		scope.ForceDeclareVariable(f.Variable)
	}
	for _, m := range class.AllMethods() {
		// name clashes with fields were reported when the class was declared
		_ = scope.DeclareFunction(m)
	}
	return scope
}

// functionContext prepares the scope a body is bound in: parameters on top of
// the global frame for free functions, on top of the member frame for methods
// and constructors. A parameter may shadow a field of the same name.
func (b *Binder) functionContext(fn *symbols.FunctionSymbol) bindContext {
	ctx := bindContext{function: fn}
	if fn.Owner == nil {
		ctx.scope = table.NewScope(b.global)
		for _, p := range fn.Params {
			// duplicates were reported when the signature was declared
			_ = ctx.scope.DeclareVariable(p)
		}
		return ctx
	}

	ctx.class = fn.Owner
	ctx.static = fn.Static
	ctx.scope = b.memberScope(fn.Owner)
	for _, p := range fn.Params {
		if v, ok := ctx.scope.LookupVariable(p.Name); ok && v.Kind == symbols.Field {
			ctx.scope.ForceDeclareVariable(p)
			continue
		}
		_ = ctx.scope.DeclareVariable(p)
	}
	return ctx
}

// bindFunctionBody binds and lowers one declared body. Expression bodies
// become a single ret, or the expression followed by a bare ret when the
// function is void.
func (b *Binder) bindFunctionBody(ctx bindContext, fn *symbols.FunctionSymbol) *bound.BlockStmt {
	ret := b.returnTypeOf(fn)
	decl := fn.Decl
	before := b.diagnostics.ErrorCount()

	var body *bound.BlockStmt
	switch {
	case decl == nil:
		body = &bound.BlockStmt{}
	case decl.ExprBody != nil:
		body = b.bindExpressionBody(ctx, decl.ExprBody, ret)
	default:
		body = b.bindBlock(ctx, decl.Body)
	}

	// Calls to a function with no known return type bind silently to
	// sentinels, so the function itself carries the error.
	inferred := decl != nil && decl.ReturnType == nil && fn.Kind != symbols.Constructor
	if inferred && ret.IsUnknown() && b.diagnostics.ErrorCount() == before {
		b.report(diagnostics.CannotInferReturn(decl.Loc(), fn.QualifiedName()))
	}

	lowered := lowerer.Lower(fn, body)
	if decl != nil && decl.ExprBody == nil && !ret.IsVoid() && !ret.IsUnknown() {
		if !controlflow.Create(lowered).AllPathsReturn() {
			b.report(diagnostics.MissingReturn(decl.Loc(), fn.QualifiedName()))
		}
	}
	return lowered
}

func (b *Binder) bindExpressionBody(ctx bindContext, expr ast.Expression, ret *types.TypeSymbol) *bound.BlockStmt {
	loc := *expr.Loc()
	if ret.IsVoid() {
		x := b.bindExpression(ctx, expr, nil)
		return &bound.BlockStmt{Location: loc, Statements: []bound.Stmt{
			&bound.ExprStmt{X: x, Location: loc},
			&bound.ReturnStmt{Location: loc},
		}}
	}
	var value bound.Expr
	if ret.IsUnknown() {
		value = b.bindValue(ctx, expr, nil)
	} else {
		value = b.bindConversion(ctx, expr, ret, false)
	}
	return &bound.BlockStmt{Location: loc, Statements: []bound.Stmt{
		&bound.ReturnStmt{Value: value, Location: loc},
	}}
}

// newLoop mints the break and continue labels of one loop.
func (b *Binder) newLoop() bound.Loop {
	b.loopCount++
	return bound.Loop{
		Break:    symbols.NewLabel(fmt.Sprintf("break%d", b.loopCount)),
		Continue: symbols.NewLabel(fmt.Sprintf("continue%d", b.loopCount)),
	}
}

// resolveType maps a written type clause to a type symbol. Unknown names are
// reported and yield the unknown type.
func (b *Binder) resolveType(scope *table.Scope, tc *ast.TypeClause) *types.TypeSymbol {
	var t *types.TypeSymbol
	if builtin, ok := types.LookupBuiltin(tc.Name); ok {
		t = builtin
	} else if class, ok := scope.LookupClass(tc.Name); ok {
		t = class.Type
	} else if adt, ok := scope.LookupADT(tc.Name); ok {
		t = adt.Type
	} else {
		b.report(diagnostics.UndefinedType(tc.Loc(), tc.Name))
		return types.Unknown
	}
	if tc.Array {
		return t.ArrayOf()
	}
	return t
}

// isUnknown holds for the unknown type and arrays of it.
func isUnknown(t *types.TypeSymbol) bool {
	return t.IsUnknown() || t.ElementType().IsUnknown()
}
