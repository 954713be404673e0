package binder

import (
	"strings"
	"testing"

	"ember/internal/bound"
	"ember/internal/builtins"
	"ember/internal/diagnostics"
	"ember/internal/frontend/ast"
	"ember/internal/semantics/symbols"
	"ember/internal/types"
)

func parse(t *testing.T, src string) *ast.Module {
	t.Helper()
	tree, err := ast.DecodeModule(strings.NewReader(src), "test.em")
	if err != nil {
		t.Fatalf("Failed to decode tree: %v", err)
	}
	return tree
}

func bindSource(t *testing.T, src string) *bound.Program {
	t.Helper()
	return BindProgram(BindGlobalScope(nil, []*ast.Module{parse(t, src)}))
}

func codes(p *bound.Program) []string {
	var out []string
	for _, d := range p.Diagnostics {
		out = append(out, d.Code)
	}
	return out
}

// expectCodes checks the program reported exactly the given codes, in order.
func expectCodes(t *testing.T, p *bound.Program, want ...string) {
	t.Helper()
	got := codes(p)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Expected diagnostics %v, got %v", want, got)
		for _, d := range p.Diagnostics {
			t.Logf("  %s: %s", d.Code, d.Message)
		}
	}
}

func TestBindDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "let reassignment",
			src: `
members:
  - {kind: let, name: x, value: 5}
  - {kind: assign, name: x, value: 6}
`,
			want: []string{diagnostics.ErrConstantReassignment},
		},
		{
			name: "var reassignment",
			src: `
members:
  - {kind: var, name: x, value: 5}
  - {kind: assign, name: x, value: {kind: binary, op: "+", left: {kind: name, name: x}, right: 1}}
`,
		},
		{
			name: "private constructor from top level",
			src: `
members:
  - kind: class
    name: C
    ctor: {private: true, body: []}
  - {kind: call, name: C}
`,
			want: []string{diagnostics.ErrInaccessibleMember},
		},
		{
			name: "if true without else misses a return",
			src: `
members:
  - kind: fn
    name: f
    returns: int
    body:
      - kind: if
        cond: true
        then: [{kind: ret, value: 1}]
`,
			want: []string{diagnostics.ErrMissingReturn},
		},
		{
			name: "if with else returns on all paths",
			src: `
members:
  - kind: fn
    name: f
    params: [{name: b, type: bool}]
    returns: int
    body:
      - kind: if
        cond: {kind: name, name: b}
        then: [{kind: ret, value: 1}]
        else: [{kind: ret, value: 2}]
`,
		},
		{
			name: "break outside loop",
			src: `
members:
  - {kind: break}
`,
			want: []string{diagnostics.ErrInvalidBreak},
		},
		{
			name: "continue inside loop",
			src: `
members:
  - kind: while
    cond: false
    body: [{kind: continue}]
`,
		},
		{
			name: "ret at top level",
			src: `
members:
  - {kind: ret, value: 1}
`,
			want: []string{diagnostics.ErrReturnOutsideFunction},
		},
		{
			name: "implicit narrowing needs a cast",
			src: `
members:
  - {kind: var, name: i, type: int, value: 1.5}
`,
			want: []string{diagnostics.ErrExplicitConversion},
		},
		{
			name: "explicit cast",
			src: `
members:
  - {kind: let, name: i, value: {kind: call, name: int, args: [1.5]}}
  - {kind: let, name: s, value: {kind: call, name: string, args: [{kind: name, name: i}]}}
  - {kind: var, name: f, type: float, value: 1}
`,
		},
		{
			name: "no conversion at all",
			src: `
members:
  - {kind: var, name: b, type: bool, value: 1}
`,
			want: []string{diagnostics.ErrTypeMismatch},
		},
		{
			name: "undefined operator",
			src: `
members:
  - {kind: let, name: x, value: {kind: binary, op: "-", left: "a", right: 1}}
`,
			want: []string{diagnostics.ErrUndefinedOperator},
		},
		{
			name: "unknown operand is not reported twice",
			src: `
members:
  - {kind: let, name: x, value: {kind: binary, op: "-", left: {kind: name, name: missing}, right: 1}}
`,
			want: []string{diagnostics.ErrUndefinedSymbol},
		},
		{
			name: "function used as value",
			src: `
members:
  - {kind: let, name: p, value: {kind: name, name: print}}
`,
			want: []string{diagnostics.ErrFunctionAsValue},
		},
		{
			name: "wrong argument count",
			src: `
members:
  - {kind: call, name: random, args: [1, 2]}
`,
			want: []string{diagnostics.ErrWrongArgumentCount},
		},
		{
			name: "void value",
			src: `
members:
  - {kind: let, name: x, value: {kind: call, name: clear}}
`,
			want: []string{diagnostics.ErrVoidValue},
		},
		{
			name: "empty array needs a type",
			src: `
members:
  - {kind: let, name: xs, value: {kind: array}}
  - {kind: let, name: ys, type: "int[]", value: {kind: array}}
`,
			want: []string{diagnostics.ErrEmptyArrayType},
		},
		{
			name: "expression statement inside a function",
			src: `
members:
  - kind: fn
    name: f
    body: [{kind: expr, expr: {kind: binary, op: "+", left: 1, right: 2}}]
  - {kind: binary, op: "+", left: 1, right: 2}
`,
			want: []string{diagnostics.ErrInvalidExprStatement},
		},
		{
			name: "main together with top-level statements",
			src: `
members:
  - {kind: fn, name: main, body: []}
  - {kind: call, name: print, args: [1]}
`,
			want: []string{diagnostics.ErrMainWithGlobals},
		},
		{
			name: "main with parameters",
			src: `
members:
  - {kind: fn, name: main, params: [{name: a, type: int}], body: []}
`,
			want: []string{diagnostics.ErrInvalidMainSignature},
		},
		{
			name: "redeclared variable",
			src: `
members:
  - {kind: var, name: x, value: 1}
  - {kind: var, name: x, value: 2}
`,
			want: []string{diagnostics.ErrRedeclaredSymbol},
		},
		{
			name: "enum members",
			src: `
members:
  - {kind: enum, name: Color, members: [Red, Green]}
  - {kind: let, name: a, value: {kind: member, target: {kind: name, name: Color}, name: Red}}
  - {kind: let, name: b, value: {kind: index, target: {kind: name, name: Color}, index: 1}}
  - {kind: let, name: same, value: {kind: binary, op: "==", left: {kind: name, name: a}, right: {kind: name, name: b}}}
  - {kind: let, name: c, value: {kind: member, target: {kind: name, name: Color}, name: Purple}}
`,
			want: []string{diagnostics.ErrUndefinedSymbol},
		},
		{
			name: "undefined type",
			src: `
members:
  - {kind: fn, name: f, params: [{name: a, type: Shape}], body: []}
`,
			want: []string{diagnostics.ErrUndefinedType},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectCodes(t, bindSource(t, tt.src), tt.want...)
		})
	}
}

const classTree = `
members:
  - kind: class
    name: Counter
    fields:
      - {name: count, mutable: true, type: int, default: 0}
      - {name: label, default: "counter"}
      - {name: secret, private: true, type: int}
    ctor:
      params: [{name: label, type: string}]
      body:
        - {kind: field_assign, field: label, value: {kind: name, name: label}}
    methods:
      - kind: fn
        name: inc
        body:
          - {kind: assign, name: count, value: {kind: binary, op: "+", left: {kind: name, name: count}, right: 1}}
      - {kind: fn, name: get, returns: int, expr: {kind: name, name: count}}
      - {kind: fn, name: zero, static: true, returns: int, expr: 0}
`

func TestBindClassMembers(t *testing.T) {
	tests := []struct {
		name  string
		stmts string
		want  []string
	}{
		{
			name: "instance calls and field reads",
			stmts: `
  - {kind: let, name: c, value: {kind: call, name: Counter, args: ["a"]}}
  - {kind: member_call, target: {kind: name, name: c}, name: inc}
  - {kind: let, name: n, type: int, value: {kind: member_call, target: {kind: name, name: c}, name: get}}
  - {kind: let, name: z, type: int, value: {kind: member_call, target: {kind: name, name: Counter}, name: zero}}
  - {kind: let, name: m, type: int, value: {kind: member, target: {kind: name, name: c}, name: count}}
`,
		},
		{
			name: "let field outside the constructor",
			stmts: `
  - {kind: let, name: c, value: {kind: call, name: Counter, args: ["a"]}}
  - {kind: field_assign, target: {kind: name, name: c}, field: label, value: "b"}
`,
			want: []string{diagnostics.ErrConstantReassignment},
		},
		{
			name: "private field",
			stmts: `
  - {kind: let, name: c, value: {kind: call, name: Counter, args: ["a"]}}
  - {kind: let, name: s, value: {kind: member, target: {kind: name, name: c}, name: secret}}
`,
			want: []string{diagnostics.ErrInaccessibleMember},
		},
		{
			name: "instance method through the class",
			stmts: `
  - {kind: member_call, target: {kind: name, name: Counter}, name: inc}
`,
			want: []string{diagnostics.ErrStaticMismatch},
		},
		{
			name: "static method through an instance",
			stmts: `
  - {kind: let, name: c, value: {kind: call, name: Counter, args: ["a"]}}
  - {kind: member_call, target: {kind: name, name: c}, name: zero}
`,
			want: []string{diagnostics.ErrStaticMismatch},
		},
		{
			name: "missing method",
			stmts: `
  - {kind: let, name: c, value: {kind: call, name: Counter, args: ["a"]}}
  - {kind: member_call, target: {kind: name, name: c}, name: reset}
`,
			want: []string{diagnostics.ErrMethodNotFound},
		},
		{
			name: "constructor arity",
			stmts: `
  - {kind: call, name: Counter}
`,
			want: []string{diagnostics.ErrWrongArgumentCount},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectCodes(t, bindSource(t, classTree+tt.stmts), tt.want...)
		})
	}
}

func TestBindFieldTypes(t *testing.T) {
	p := bindSource(t, classTree)
	expectCodes(t, p)

	class := p.Global.Classes[0]
	label, ok := class.Field("label")
	if !ok || !label.Variable.Type.Equals(types.String) {
		t.Fatalf("Expected label to take the type of its default, got %v", label)
	}
	if label.Variable.Mutable {
		t.Error("Expected label to be read-only")
	}

	body, ok := p.Class(class)
	if !ok || body.Ctor == nil || len(body.Fields) != 3 {
		t.Fatalf("Expected a bound class body with a constructor and 3 field inits")
	}
	if body.Fields[2].Value != nil {
		t.Error("Expected a field without a default to have no init expression")
	}
}

func TestReturnTypeInference(t *testing.T) {
	p := bindSource(t, `
members:
  - kind: fn
    name: countdown
    params: [{name: n, type: int}]
    body:
      - kind: if
        cond: {kind: binary, op: "==", left: {kind: name, name: n}, right: 0}
        then: [{kind: ret, value: 0}]
      - {kind: ret, value: {kind: call, name: countdown, args: [{kind: binary, op: "-", left: {kind: name, name: n}, right: 1}]}}
  - kind: fn
    name: greet
    body: [{kind: call, name: print, args: ["hi"]}]
  - {kind: fn, name: twice, params: [{name: x, type: float}], expr: {kind: binary, op: "*", left: {kind: name, name: x}, right: 2.0}}
  - {kind: let, name: a, type: int, value: {kind: call, name: countdown, args: [3]}}
  - {kind: let, name: b, type: float, value: {kind: call, name: twice, args: [1]}}
`)
	expectCodes(t, p)

	want := map[string]*types.TypeSymbol{
		"countdown": types.Int,
		"greet":     types.Void,
		"twice":     types.Float,
	}
	for _, fn := range p.Global.Functions {
		if w, ok := want[fn.Name]; ok && !fn.ReturnType().Equals(w) {
			t.Errorf("Expected %s to return %s, got %s", fn.Name, w, fn.ReturnType())
		}
	}
}

func TestOverloadResolutionPrefersExactMatch(t *testing.T) {
	p := bindSource(t, `
members:
  - {kind: call, name: print, args: [1]}
  - {kind: call, name: print, args: [1.5]}
  - {kind: call, name: print, args: [true]}
`)
	expectCodes(t, p)

	want := []*symbols.FunctionSymbol{builtins.PrintInt, builtins.PrintFloat, builtins.PrintBool}
	for i, s := range p.Global.Statements {
		call, ok := s.(*bound.ExprStmt).X.(*bound.CallExpr)
		if !ok {
			t.Fatalf("Expected statement %d to be a call", i)
		}
		if call.Function != want[i] {
			t.Errorf("Expected statement %d to call %v, got %v", i, want[i], call.Function)
		}
	}
}

func TestUndefinedNameSuggestsClosestMatch(t *testing.T) {
	p := bindSource(t, `
members:
  - {kind: var, name: itemCount, value: 1}
  - {kind: call, name: print, args: [{kind: name, name: itemCnt}]}
`)
	expectCodes(t, p, diagnostics.ErrUndefinedSymbol)
	if got := p.Diagnostics[0].Suggestion(); !strings.Contains(got, "itemCount") {
		t.Errorf("Expected a suggestion naming itemCount, got %q", got)
	}
}

func TestScriptEntryIsLowered(t *testing.T) {
	p := bindSource(t, `
members:
  - kind: for
    var: i
    from: 1
    to: 3
    body: [{kind: call, name: print, args: [{kind: name, name: i}]}]
`)
	expectCodes(t, p)

	entry := p.Entry()
	if entry == nil || entry != p.Global.Script {
		t.Fatal("Expected the script wrapper to be the entry point")
	}
	body, ok := p.Body(entry)
	if !ok {
		t.Fatal("Expected a lowered script body")
	}
	for _, s := range body.Statements {
		switch s.(type) {
		case *bound.ForStmt, *bound.WhileStmt, *bound.IfStmt, *bound.BlockStmt:
			t.Errorf("Expected a flat body, found %T", s)
		}
	}
}

func TestSubmissionsAccumulate(t *testing.T) {
	first := BindGlobalScope(nil, []*ast.Module{parse(t, `
members:
  - {kind: var, name: x, value: 1}
`)})
	second := BindGlobalScope(first, []*ast.Module{parse(t, `
members:
  - {kind: assign, name: x, value: 2}
`)})
	if len(second.Diagnostics) != 0 {
		t.Errorf("Expected x from the first submission to be visible, got %d diagnostic(s)", len(second.Diagnostics))
	}
}

func TestMultipleTreesWithGlobals(t *testing.T) {
	a := parse(t, `
members:
  - {kind: call, name: print, args: [1]}
`)
	b := parse(t, `
members:
  - {kind: call, name: print, args: [2]}
`)
	global := BindGlobalScope(nil, []*ast.Module{a, b})
	if len(global.Diagnostics) != 1 || global.Diagnostics[0].Code != diagnostics.ErrMultipleGlobalFiles {
		t.Errorf("Expected one %s diagnostic, got %v", diagnostics.ErrMultipleGlobalFiles, global.Diagnostics)
	}
}

func TestFieldDefaultsReadOnlyEarlierFields(t *testing.T) {
	tests := []struct {
		name   string
		fields string
		want   []string
	}{
		{
			name: "reads an earlier field",
			fields: `
      - {name: b, type: int, default: 2}
      - {name: a, type: int, default: {kind: binary, op: "+", left: {kind: name, name: b}, right: 1}}
`,
		},
		{
			name: "reads a later field",
			fields: `
      - {name: a, type: int, default: {kind: binary, op: "+", left: {kind: name, name: b}, right: 1}}
      - {name: b, type: int, default: 2}
`,
			want: []string{diagnostics.ErrFieldBeforeInit},
		},
		{
			name: "reads itself",
			fields: `
      - {name: a, type: int, default: {kind: name, name: a}}
`,
			want: []string{diagnostics.ErrFieldBeforeInit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := bindSource(t, `
members:
  - kind: class
    name: C
    fields:`+tt.fields)
			expectCodes(t, p, tt.want...)
		})
	}
}

func TestFieldBeforeInitPointsAtDeclaration(t *testing.T) {
	p := bindSource(t, `
members:
  - kind: class
    name: C
    fields:
      - {name: a, type: int, default: {kind: name, name: b, at: "4:40-4:41"}}
      - {name: b, type: int, default: 2, at: "5:7-5:36"}
`)
	expectCodes(t, p, diagnostics.ErrFieldBeforeInit)
	labels := p.Diagnostics[0].Labels
	if len(labels) != 2 || labels[1].Style != diagnostics.Secondary {
		t.Fatalf("Expected a primary and a secondary label, got %v", labels)
	}
	if labels[1].Location.Start.Line != 5 {
		t.Errorf("Expected the secondary label on line 5, got %d", labels[1].Location.Start.Line)
	}
}

func TestUninferrableReturnTypeIsReported(t *testing.T) {
	p := bindSource(t, `
members:
  - kind: fn
    name: f
    params: [{name: n, type: int}]
    body:
      - {kind: ret, value: {kind: call, name: f, args: [{kind: name, name: n}]}}
  - {kind: var, name: x, value: {kind: binary, op: "+", left: {kind: call, name: f, args: [1]}, right: 1}}
`)
	expectCodes(t, p, diagnostics.ErrCannotInferReturn)
	if !p.HasErrors() {
		t.Error("Expected the program to carry an error")
	}
}

func TestUninferrableReturnNotReportedTwice(t *testing.T) {
	p := bindSource(t, `
members:
  - kind: fn
    name: f
    body:
      - {kind: ret, value: {kind: name, name: missing}}
`)
	expectCodes(t, p, diagnostics.ErrUndefinedSymbol)
}

func TestClassFieldWithoutDefaultWarns(t *testing.T) {
	p := bindSource(t, `
members:
  - kind: class
    name: Node
    fields:
      - {name: next, mutable: true, type: Node}
      - {name: v, type: int}
`)
	expectCodes(t, p, diagnostics.WarnNilField)
	if p.HasErrors() {
		t.Error("Expected a warning only")
	}
	if p.Diagnostics[0].Severity != diagnostics.Warning {
		t.Errorf("Expected a warning, got %v", p.Diagnostics[0].Severity)
	}
}

func TestRedeclaredFieldPointsAtFirstDeclaration(t *testing.T) {
	p := bindSource(t, `
members:
  - kind: class
    name: C
    fields:
      - {name: a, type: int, at: "5:9-5:30"}
      - {name: a, type: int, at: "6:9-6:30"}
`)
	expectCodes(t, p, diagnostics.ErrRedeclaredSymbol)
	labels := p.Diagnostics[0].Labels
	if len(labels) != 2 || labels[1].Location.Start.Line != 5 {
		t.Errorf("Expected a secondary label at the first declaration, got %v", labels)
	}
}

func TestPrivateMemberCarriesNote(t *testing.T) {
	p := bindSource(t, classTree+`
  - {kind: let, name: c, value: {kind: call, name: Counter, args: ["a"]}}
  - {kind: let, name: s, value: {kind: member, target: {kind: name, name: c}, name: secret}}
`)
	expectCodes(t, p, diagnostics.ErrInaccessibleMember)
	if len(p.Diagnostics[0].Notes) != 1 {
		t.Errorf("Expected one note, got %v", p.Diagnostics[0].Notes)
	}
}
