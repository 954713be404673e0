package bound

import (
	"strings"
	"testing"

	"ember/internal/semantics/operators"
	"ember/internal/semantics/symbols"
	"ember/internal/tokens"
	"ember/internal/types"
)

func intLit(v int64) *LiteralExpr { return &LiteralExpr{Value: v} }

func add(l, r Expr) *BinaryExpr {
	op, _ := operators.BindBinary(tokens.PLUS_TOKEN, l.Type(), r.Type())
	return &BinaryExpr{Left: l, Op: op, Right: r}
}

func TestRewriterSharesUnchangedNodes(t *testing.T) {
	x := symbols.NewVariable("x", symbols.Local, types.Int, true)
	body := &BlockStmt{Statements: []Stmt{
		&VarDecl{Variable: x, Init: intLit(1)},
		&ExprStmt{X: &AssignExpr{Variable: x, Value: add(&VariableExpr{Variable: x}, intLit(2))}},
		&ReturnStmt{},
	}}

	r := &Rewriter{}
	if out := r.RewriteStmt(body); out != body {
		t.Error("Expected the identity rewrite to return the original node")
	}
}

func TestRewriterRebuildsOnlyChangedPath(t *testing.T) {
	x := symbols.NewVariable("x", symbols.Local, types.Int, true)
	decl := &VarDecl{Variable: x, Init: intLit(1)}
	ret := &ReturnStmt{Value: add(&VariableExpr{Variable: x}, intLit(2))}
	body := &BlockStmt{Statements: []Stmt{decl, ret}}

	// replace the literal 2 with 40
	r := &Rewriter{}
	r.Expr = func(e Expr) (Expr, bool) {
		if lit, ok := e.(*LiteralExpr); ok && lit.Value == int64(2) {
			return intLit(40), true
		}
		return nil, false
	}

	out := r.RewriteStmt(body).(*BlockStmt)
	if out == body {
		t.Fatal("Expected a new block")
	}
	if out.Statements[0] != decl {
		t.Error("Expected the untouched declaration to be shared")
	}
	if out.Statements[1] == ret {
		t.Error("Expected the return to be rebuilt")
	}
	if got := FormatExpr(out.Statements[1].(*ReturnStmt).Value); got != "(x + 40)" {
		t.Errorf("Expected (x + 40), got %s", got)
	}
}

func TestFormat(t *testing.T) {
	l := symbols.NewLabel("L0")
	x := symbols.NewVariable("x", symbols.Local, types.Int, false)
	body := &BlockStmt{Statements: []Stmt{
		&VarDecl{Variable: x, Init: intLit(1)},
		&LabelStmt{Label: l},
		&CondGotoStmt{Label: l, Cond: &LiteralExpr{Value: true}, JumpIfTrue: true},
		&ReturnStmt{Value: &LiteralExpr{Value: "done"}},
	}}

	want := strings.Join([]string{
		"{",
		"    let x = 1",
		"    L0:",
		"    gotoTrue L0 true",
		"    ret \"done\"",
		"}",
		"",
	}, "\n")
	if got := Format(body); got != want {
		t.Errorf("Expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestProgramBodyLookup(t *testing.T) {
	f := symbols.NewFunction("f", symbols.Function, nil, types.Void, nil)
	older := NewProgram(nil, &GlobalScope{})
	body := &BlockStmt{}
	older.Functions[f.Key()] = body

	newer := NewProgram(older, &GlobalScope{})
	if got, ok := newer.Body(f); !ok || got != body {
		t.Error("Expected body lookup to fall back to the previous program")
	}

	class := symbols.NewClass("C", "main", nil)
	m := symbols.NewFunction("m", symbols.Method, nil, types.Void, nil)
	m.Owner = class
	mb := &BlockStmt{}
	newer.Classes["C"] = &ClassBody{Class: class, Methods: map[symbols.FunctionKey]*BlockStmt{m.Key(): mb}}
	if got, ok := newer.Body(m); !ok || got != mb {
		t.Error("Expected method body lookup through the class body")
	}
}
