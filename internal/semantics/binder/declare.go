package binder

import (
	"ember/internal/bound"
	"ember/internal/diagnostics"
	"ember/internal/frontend/ast"
	"ember/internal/semantics/symbols"
	"ember/internal/types"
)

const (
	mainName   = "main"
	scriptName = "$script"
	ctorName   = "new"
)

// declarer runs the declaration pass of one submission.
type declarer struct {
	binder *Binder
	global *bound.GlobalScope
}

func (d *declarer) declareAll(trees []*ast.Module) {
	b := d.binder

	// enums first so any signature can name them
	for _, tree := range trees {
		for _, m := range tree.Members {
			if e, ok := m.(*ast.EnumDecl); ok {
				d.declareEnum(tree, e)
			}
		}
	}

	// class names next so signatures and fields can name classes
	var classes []*symbols.ClassSymbol
	for _, tree := range trees {
		for _, m := range tree.Members {
			c, ok := m.(*ast.ClassDecl)
			if !ok {
				continue
			}
			class := symbols.NewClass(c.Name, tree.FilePath, c)
			if err := b.global.DeclareClass(class); err != nil {
				b.report(diagnostics.RedeclaredSymbol(c.Loc(), c.Name))
				continue
			}
			classes = append(classes, class)
		}
	}

	for _, tree := range trees {
		for _, m := range tree.Members {
			if f, ok := m.(*ast.FuncDecl); ok {
				d.declareFunction(f)
			}
		}
	}

	for _, class := range classes {
		d.declareMembers(class)
	}
	// untyped fields take the type of their default, which may call methods
	for _, class := range classes {
		d.inferFieldTypes(class)
	}

	d.global.Classes = classes
	d.global.Functions = b.global.Functions()
}

func (d *declarer) declareEnum(tree *ast.Module, e *ast.EnumDecl) {
	b := d.binder
	seen := make(map[string]bool)
	for _, m := range e.Members {
		if seen[m] {
			b.report(diagnostics.RedeclaredSymbol(e.Loc(), e.Name+"."+m))
		}
		seen[m] = true
	}

	adt := symbols.NewADT(e.Name, tree.FilePath, e.Members)
	if err := b.global.DeclareADT(adt); err != nil {
		b.report(diagnostics.RedeclaredSymbol(e.Loc(), e.Name))
		return
	}
	d.global.ADTs = append(d.global.ADTs, adt)
}

func (d *declarer) declareFunction(f *ast.FuncDecl) {
	b := d.binder
	fn := d.signature(f, symbols.Function, nil)
	if err := b.global.DeclareFunction(fn); err != nil {
		b.report(diagnostics.RedeclaredSymbol(f.Loc(), f.Name))
	}
}

// signature builds the symbol for a declared function, method or constructor.
// A block body without a return type leaves the type to inference; an
// expression body without one does too, from the expression.
func (d *declarer) signature(f *ast.FuncDecl, kind symbols.FunctionKind, owner *symbols.ClassSymbol) *symbols.FunctionSymbol {
	b := d.binder

	var params []*symbols.VariableSymbol
	seen := make(map[string]bool)
	for _, p := range f.Params {
		if seen[p.Name] {
			b.report(diagnostics.RedeclaredSymbol(p.Loc(), p.Name))
			continue
		}
		seen[p.Name] = true
		params = append(params, symbols.NewVariable(p.Name, symbols.Parameter, b.resolveType(b.global, p.Type), false))
	}

	var ret *types.TypeSymbol
	switch {
	case kind == symbols.Constructor:
		ret = types.Void
	case f.ReturnType != nil:
		ret = b.resolveType(b.global, f.ReturnType)
	}

	fn := symbols.NewFunction(f.Name, kind, params, ret, f)
	fn.Owner = owner
	fn.Private = f.Private
	fn.Static = f.Static
	return fn
}

func (d *declarer) declareMembers(class *symbols.ClassSymbol) {
	b := d.binder
	decl := class.Decl

	for _, f := range decl.Fields {
		if first, exists := class.Field(f.Name); exists {
			diag := diagnostics.RedeclaredSymbol(f.Loc(), class.Name+"."+f.Name)
			if first.Decl != nil && first.Decl.Start != nil {
				diag.WithSecondaryLabel(first.Decl.Loc(), "first declared here")
			}
			b.report(diag)
			continue
		}
		typ := types.Unknown
		if f.Type != nil {
			typ = b.resolveType(b.global, f.Type)
		} else if f.Default == nil {
			b.report(diagnostics.UndefinedType(f.Loc(), "of field "+f.Name))
		}
		if f.Default == nil && typ.IsClass() {
			b.report(diagnostics.NilField(f.Loc(), f.Name, typ.Name()))
		}
		class.Fields = append(class.Fields, &symbols.FieldSymbol{
			Variable: symbols.NewVariable(f.Name, symbols.Field, typ, f.Mutable),
			Private:  f.Private,
			Decl:     f,
		})
	}

	if decl.Ctor != nil {
		class.Ctor = d.signature(decl.Ctor, symbols.Constructor, class)
		class.Ctor.Name = ctorName
	}

	for _, m := range decl.Methods {
		if _, clash := class.Field(m.Name); clash {
			b.report(diagnostics.RedeclaredSymbol(m.Loc(), class.Name+"."+m.Name))
			continue
		}
		if !class.AddMethod(d.signature(m, symbols.Method, class)) {
			b.report(diagnostics.RedeclaredSymbol(m.Loc(), class.Name+"."+m.Name))
		}
	}
}

func (d *declarer) inferFieldTypes(class *symbols.ClassSymbol) {
	b := d.binder
	for _, f := range class.Fields {
		if f.Decl.Type != nil || f.Decl.Default == nil {
			continue
		}
		spec := b.speculative()
		ctx := bindContext{scope: b.memberScope(class), class: class}
		t := spec.bindValue(ctx, f.Decl.Default, nil).Type()
		if t.IsVoid() {
			t = types.Unknown
		}
		f.Variable.Type = t
	}
}

// resolveEntryPoint picks main or synthesizes the script wrapper around the
// top-level statements of globalTree.
func (d *declarer) resolveEntryPoint(globalTree *ast.Module) {
	b := d.binder

	var main *symbols.FunctionSymbol
	for _, fn := range d.global.Functions {
		if fn.Name == mainName {
			main = fn
			break
		}
	}

	if main != nil {
		if len(main.Params) > 0 || !b.returnTypeOf(main).IsVoid() {
			b.report(diagnostics.InvalidMainSignature(main.Decl.Loc()))
		}
		if globalTree != nil {
			b.report(diagnostics.MainWithGlobals(main.Decl.Loc()))
		}
		d.global.Main = main
		return
	}

	if globalTree != nil {
		d.global.Script = symbols.NewFunction(scriptName, symbols.Function, nil, types.Void, nil)
	}
}
