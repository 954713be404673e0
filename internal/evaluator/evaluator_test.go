package evaluator

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"ember/internal/diagnostics"
	"ember/internal/frontend/ast"
	"ember/internal/semantics/binder"
	"ember/internal/semantics/symbols"
)

type run struct {
	result Value
	stdout string
	fault  *Fault
}

func evaluate(t *testing.T, src, stdin string) run {
	t.Helper()
	tree, err := ast.DecodeModule(strings.NewReader(src), "test.em")
	if err != nil {
		t.Fatalf("Failed to decode tree: %v", err)
	}
	program := binder.BindProgram(binder.BindGlobalScope(nil, []*ast.Module{tree}))
	if program.HasErrors() {
		for _, d := range program.Diagnostics {
			t.Logf("  %s: %s", d.Code, d.Message)
		}
		t.Fatalf("Expected the program to bind without errors")
	}

	var out bytes.Buffer
	var r run
	r.result, err = Evaluate(program, make(map[*symbols.VariableSymbol]Value), Options{
		Stdin:     strings.NewReader(stdin),
		Stdout:    &out,
		Seed:      42,
		Terminate: func(f *Fault) { r.fault = f },
	})
	if err != nil && r.fault == nil {
		t.Fatalf("Expected a returned error to go through Terminate, got %v", err)
	}
	r.stdout = out.String()
	return r
}

func TestEvaluateResults(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Value
	}{
		{"int addition", `members: [{kind: binary, op: "+", left: 1, right: 2}]`, int64(3)},
		{"string plus int", `members: [{kind: binary, op: "+", left: "a", right: 1}]`, "a1"},
		{"int plus string", `members: [{kind: binary, op: "+", left: 1, right: "a"}]`, "1a"},
		{"mixed numeric", `members: [{kind: binary, op: "+", left: 1.5, right: 1}]`, 2.5},
		{"float formatting", `members: [{kind: call, name: string, args: [2.0]}]`, "2"},
		{"numeric equality", `members: [{kind: binary, op: "==", left: 2, right: 2.0}]`, true},
		{"cast from string", `members: [{kind: binary, op: "+", left: {kind: call, name: int, args: ["42"]}, right: 1}]`, int64(43)},
		{"array to string", `members: [{kind: call, name: string, args: [{kind: array, elements: [1, 2]}]}]`, "[1, 2]"},
		{
			name: "var reassignment",
			src: `
members:
  - {kind: var, name: x, value: 5}
  - {kind: assign, name: x, value: {kind: binary, op: "+", left: {kind: name, name: x}, right: 1}}
`,
			want: int64(6),
		},
		{
			name: "arrays are values",
			src: `
members:
  - {kind: var, name: a, value: {kind: array, elements: [1, 2]}}
  - {kind: var, name: b, value: {kind: name, name: a}}
  - {kind: index_assign, target: {kind: name, name: b}, index: 0, value: 9}
  - {kind: index, target: {kind: name, name: a}, index: 0}
`,
			want: int64(1),
		},
		{
			name: "append and length",
			src: `
members:
  - {kind: var, name: a, value: {kind: array, elements: [1]}}
  - {kind: assign, name: a, value: {kind: binary, op: "+", left: {kind: name, name: a}, right: 2}}
  - {kind: unary, op: "+", operand: {kind: name, name: a}}
`,
			want: int64(2),
		},
		{
			name: "recursion",
			src: `
members:
  - kind: fn
    name: fact
    params: [{name: n, type: int}]
    returns: int
    body:
      - kind: if
        cond: {kind: binary, op: "<=", left: {kind: name, name: n}, right: 1}
        then: [{kind: ret, value: 1}]
      - kind: ret
        value:
          kind: binary
          op: "*"
          left: {kind: name, name: n}
          right: {kind: call, name: fact, args: [{kind: binary, op: "-", left: {kind: name, name: n}, right: 1}]}
  - {kind: call, name: fact, args: [5]}
`,
			want: int64(120),
		},
		{
			name: "while with break",
			src: `
members:
  - {kind: var, name: i, value: 0}
  - kind: while
    cond: true
    body:
      - {kind: assign, name: i, value: {kind: binary, op: "+", left: {kind: name, name: i}, right: 1}}
      - kind: if
        cond: {kind: binary, op: "==", left: {kind: name, name: i}, right: 4}
        then: [{kind: break}]
  - {kind: name, name: i}
`,
			want: int64(4),
		},
		{
			name: "foreach with index",
			src: `
members:
  - {kind: var, name: sum, value: 0}
  - kind: foreach
    var: x
    index: i
    in: {kind: array, elements: [10, 20, 30]}
    body:
      - {kind: assign, name: sum, value: {kind: binary, op: "+", left: {kind: name, name: sum}, right: {kind: binary, op: "*", left: {kind: name, name: x}, right: {kind: name, name: i}}}}
  - {kind: name, name: sum}
`,
			want: int64(80),
		},
		{
			name: "do while runs once",
			src: `
members:
  - {kind: var, name: n, value: 0}
  - kind: do
    cond: false
    body: [{kind: assign, name: n, value: 7}]
  - {kind: name, name: n}
`,
			want: int64(7),
		},
		{
			name: "enum index",
			src: `
members:
  - {kind: enum, name: Color, members: [Red, Green]}
  - {kind: binary, op: "==", left: {kind: index, target: {kind: name, name: Color}, index: 1}, right: {kind: member, target: {kind: name, name: Color}, name: Green}}
`,
			want: true,
		},
		{
			name: "range is half open",
			src:  `members: [{kind: call, name: range, args: [0, 3]}]`,
			want: Array{int64(0), int64(1), int64(2)},
		},
		{
			name: "input",
			src:  `members: [{kind: binary, op: "+", left: {kind: call, name: input}, right: "!"}]`,
			want: "hello!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := evaluate(t, tt.src, "hello\nworld\n")
			if r.fault != nil {
				t.Fatalf("Unexpected fault: %v", r.fault)
			}
			if !reflect.DeepEqual(r.result, tt.want) {
				t.Errorf("Expected %#v, got %#v", tt.want, r.result)
			}
		})
	}
}

func TestForLoopPrints(t *testing.T) {
	r := evaluate(t, `
members:
  - kind: for
    var: i
    from: 1
    to: 3
    body: [{kind: call, name: print, args: [{kind: name, name: i}]}]
`, "")
	if r.stdout != "1\n2\n3\n" {
		t.Errorf("Expected 1, 2 and 3 on separate lines, got %q", r.stdout)
	}
}

func TestClassesAndMethods(t *testing.T) {
	r := evaluate(t, `
members:
  - kind: class
    name: Counter
    fields:
      - {name: count, mutable: true, type: int, default: 0}
      - {name: label, type: string}
    ctor:
      params: [{name: label, type: string}]
      body:
        - {kind: field_assign, field: label, value: {kind: name, name: label}}
    methods:
      - kind: fn
        name: inc
        body:
          - {kind: assign, name: count, value: {kind: binary, op: "+", left: {kind: name, name: count}, right: 1}}
      - kind: fn
        name: describe
        returns: string
        expr: {kind: binary, op: "+", left: {kind: name, name: label}, right: {kind: name, name: count}}
      - {kind: fn, name: unit, static: true, returns: int, expr: 1}
  - {kind: let, name: c, value: {kind: call, name: Counter, args: ["hits="]}}
  - {kind: member_call, target: {kind: name, name: c}, name: inc}
  - {kind: member_call, target: {kind: name, name: c}, name: inc}
  - {kind: call, name: print, args: [{kind: member_call, target: {kind: name, name: c}, name: describe}]}
  - {kind: member_call, target: {kind: name, name: Counter}, name: unit}
`, "")
	if r.fault != nil {
		t.Fatalf("Unexpected fault: %v", r.fault)
	}
	if r.stdout != "hits=2\n" {
		t.Errorf("Expected hits=2, got %q", r.stdout)
	}
	if r.result != int64(1) {
		t.Errorf("Expected the static call result 1, got %#v", r.result)
	}
}

func TestMainEntry(t *testing.T) {
	r := evaluate(t, `
members:
  - kind: fn
    name: main
    body: [{kind: call, name: print, args: ["from main"]}]
`, "")
	if r.stdout != "from main\n" {
		t.Errorf("Expected main to run, got %q", r.stdout)
	}
}

const nodeTree = `
members:
  - kind: class
    name: Node
    fields:
      - {name: next, mutable: true, type: Node}
      - {name: v, mutable: true, type: int, default: 1}
    methods:
      - {kind: fn, name: touch, body: []}
  - {kind: let, name: n, value: {kind: call, name: Node}}`

func TestRuntimeFaults(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
	}{
		{"division by zero", `members: [{kind: binary, op: "/", left: 1, right: 0}]`, diagnostics.FaultDivisionByZero},
		{"modulo by zero", `members: [{kind: binary, op: "%", left: 1, right: 0}]`, diagnostics.FaultDivisionByZero},
		{"index out of range", `members: [{kind: index, target: {kind: array, elements: [1]}, index: 1}]`, diagnostics.FaultIndexOutOfRange},
		{"invalid cast", `members: [{kind: call, name: int, args: ["x"]}]`, diagnostics.FaultInvalidCast},
		{
			name: "enum index out of range",
			src: `
members:
  - {kind: enum, name: Color, members: [Red]}
  - {kind: index, target: {kind: name, name: Color}, index: 3}
`,
			code: diagnostics.FaultIndexOutOfRange,
		},
		{"random needs a positive bound", `members: [{kind: call, name: random, args: [0]}]`, diagnostics.FaultInvalidArgument},
		{"field of a nil instance", nodeTree + `
  - {kind: member, target: {kind: member, target: {kind: name, name: n}, name: next}, name: v}
`, diagnostics.FaultNilInstance},
		{"method of a nil instance", nodeTree + `
  - {kind: member_call, target: {kind: member, target: {kind: name, name: n}, name: next}, name: touch}
`, diagnostics.FaultNilInstance},
		{"field assignment through a nil instance", nodeTree + `
  - {kind: field_assign, target: {kind: member, target: {kind: name, name: n}, name: next}, field: v, value: 2}
`, diagnostics.FaultNilInstance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := evaluate(t, tt.src, "")
			if r.fault == nil {
				t.Fatalf("Expected a fault")
			}
			if r.fault.Code != tt.code {
				t.Errorf("Expected fault %s, got %s", tt.code, r.fault.Code)
			}
		})
	}
}

func TestNilFieldCanBeReplaced(t *testing.T) {
	r := evaluate(t, nodeTree+`
  - {kind: field_assign, target: {kind: name, name: n}, field: next, value: {kind: call, name: Node}}
  - {kind: member, target: {kind: member, target: {kind: name, name: n}, name: next}, name: v}
`, "")
	if r.fault != nil {
		t.Fatalf("Unexpected fault: %v", r.fault)
	}
	if r.result != int64(1) {
		t.Errorf("Expected 1, got %#v", r.result)
	}
}

func TestFieldDefaultsSeeZeroValues(t *testing.T) {
	r := evaluate(t, `
members:
  - kind: class
    name: C
    fields:
      - {name: a, type: int, default: {kind: call, name: peek}}
      - {name: b, type: int, default: 5}
    methods:
      - {kind: fn, name: peek, returns: int, expr: {kind: name, name: b}}
  - {kind: member, target: {kind: call, name: C}, name: a}
`, "")
	if r.fault != nil {
		t.Fatalf("Unexpected fault: %v", r.fault)
	}
	if r.result != int64(0) {
		t.Errorf("Expected a later field to read as 0, got %#v", r.result)
	}
}

func TestRandomIsSeeded(t *testing.T) {
	src := `members: [{kind: call, name: random, args: [1000]}]`
	first := evaluate(t, src, "").result
	second := evaluate(t, src, "").result
	if first != second {
		t.Errorf("Expected the same seed to give the same value, got %v and %v", first, second)
	}
	if n := first.(int64); n < 0 || n >= 1000 {
		t.Errorf("Expected a value in [0, 1000), got %d", n)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{int64(-3), "-3"},
		{0.1, "0.1"},
		{true, "true"},
		{Array{"a", int64(1)}, "[a, 1]"},
		{Array{}, "[]"},
	}
	for _, tt := range tests {
		if got := Format(tt.value); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}
