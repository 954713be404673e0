package compiler

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"ember/colors"
	"ember/internal/bound"
	"ember/internal/context_v2"
	"ember/internal/evaluator"
	"ember/internal/frontend/ast"
	"ember/internal/pipeline"
	"ember/internal/semantics/binder"
	"ember/internal/semantics/symbols"

	"gopkg.in/yaml.v3"
)

func init() {
	colors.Disable()
}

// fixtureExpect is the `expect` block of a testdata document. The decoder
// ignores it; it only reads `members`.
type fixtureExpect struct {
	Stdin       string   `yaml:"stdin"`
	Stdout      string   `yaml:"stdout"`
	Fault       string   `yaml:"fault"`
	Diagnostics []string `yaml:"diagnostics"`
}

func readFixture(t *testing.T, path string) (*ast.Module, fixtureExpect) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	var doc struct {
		Expect fixtureExpect `yaml:"expect"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parse expectations: %v", err)
	}
	tree, err := ast.DecodeModule(bytes.NewReader(data), path)
	if err != nil {
		t.Fatalf("decode tree: %v", err)
	}
	return tree, doc.Expect
}

// hasErrorCode reports whether any code is an error rather than a W warning.
func hasErrorCode(codes []string) bool {
	for _, c := range codes {
		if !strings.HasPrefix(c, "W") {
			return true
		}
	}
	return false
}

func TestExecFixtures(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("Expected fixtures in testdata")
	}

	for _, path := range paths {
		path := path
		t.Run(strings.TrimSuffix(filepath.Base(path), ".yaml"), func(t *testing.T) {
			tree, expect := readFixture(t, path)

			var stdout, stderr bytes.Buffer
			session := NewSession(&context_v2.Config{
				Stdin:  strings.NewReader(expect.Stdin),
				Stdout: &stdout,
				Stderr: &stderr,
				Seed:   1,
			})
			sub, err := session.Submit(tree)

			var codes []string
			for _, d := range sub.Diagnostics {
				codes = append(codes, d.Code)
			}
			if !reflect.DeepEqual(codes, expect.Diagnostics) {
				t.Errorf("Expected diagnostics %v, got %v", expect.Diagnostics, codes)
			}
			if hasErrorCode(expect.Diagnostics) {
				if !errors.Is(err, pipeline.ErrDiagnostics) {
					t.Errorf("Expected ErrDiagnostics, got %v", err)
				}
				return
			}

			switch {
			case expect.Fault != "":
				if sub.Fault == nil {
					t.Fatalf("Expected fault %s, got none (err %v)", expect.Fault, err)
				}
				if sub.Fault.Code != expect.Fault {
					t.Errorf("Expected fault %s, got %s", expect.Fault, sub.Fault.Code)
				}
			case err != nil:
				t.Fatalf("Unexpected error: %v\n%s", err, stderr.String())
			}

			if stdout.String() != expect.Stdout {
				t.Errorf("Expected stdout %q, got %q", expect.Stdout, stdout.String())
			}
		})
	}
}

// sentinels counts error expressions left in every bound body of p.
func sentinels(p *bound.Program) int {
	n := 0
	r := &bound.Rewriter{Expr: func(e bound.Expr) (bound.Expr, bool) {
		if _, ok := e.(*bound.ErrorExpr); ok {
			n++
		}
		return e, false
	}}
	for _, body := range p.Functions {
		r.RewriteBlock(body)
	}
	for _, cb := range p.Classes {
		for _, f := range cb.Fields {
			r.RewriteExpr(f.Value)
		}
		if cb.Ctor != nil {
			r.RewriteBlock(cb.Ctor)
		}
		for _, body := range cb.Methods {
			r.RewriteBlock(body)
		}
	}
	return n
}

// A fixture that binds without errors holds no error sentinels, and running
// it either completes or stops with a fault.
func TestErrorFreeFixturesEvaluateCleanly(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	for _, path := range paths {
		path := path
		t.Run(strings.TrimSuffix(filepath.Base(path), ".yaml"), func(t *testing.T) {
			tree, expect := readFixture(t, path)
			program := binder.BindProgram(binder.BindGlobalScope(nil, []*ast.Module{tree}))
			if program.HasErrors() {
				if !hasErrorCode(expect.Diagnostics) {
					t.Fatalf("Expected no errors, got %d diagnostic(s)", len(program.Diagnostics))
				}
				return
			}
			if n := sentinels(program); n != 0 {
				t.Fatalf("Expected no error sentinels, found %d", n)
			}

			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("Evaluation panicked: %v", r)
				}
			}()
			var stdout bytes.Buffer
			_, _ = evaluator.Evaluate(program, make(map[*symbols.VariableSymbol]evaluator.Value), evaluator.Options{
				Stdin:     strings.NewReader(expect.Stdin),
				Stdout:    &stdout,
				Seed:      1,
				Terminate: func(*evaluator.Fault) {},
			})
		})
	}
}

func TestRunTrees(t *testing.T) {
	var stdout, stderr bytes.Buffer
	result := Run(&Options{
		Trees:  []string{filepath.Join("testdata", "for_loop.yaml")},
		Stdout: &stdout,
		Stderr: &stderr,
	})

	if !result.Success {
		t.Fatalf("Expected success, got failure:\n%s", stderr.String())
	}
	if stdout.String() != "1\n2\n3\n" {
		t.Errorf("Expected 1, 2 and 3, got %q", stdout.String())
	}
}

func TestRunProjectFile(t *testing.T) {
	dir := t.TempDir()
	lib := `members: [{kind: fn, name: greet, params: [{name: who, type: string}], returns: string, expr: {kind: binary, op: "+", left: "hi ", right: {kind: name, name: who}}}]`
	main := `members: [{kind: call, name: print, args: [{kind: call, name: greet, args: ["there"]}]}]`
	project := "name: greeter\ntrees: [main.yaml, lib.yaml]\n"
	for name, content := range map[string]string{"lib.yaml": lib, "main.yaml": main, context_v2.ProjectFile: project} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	var stdout, stderr bytes.Buffer
	result := Run(&Options{
		ProjectFile: filepath.Join(dir, context_v2.ProjectFile),
		Stdout:      &stdout,
		Stderr:      &stderr,
	})
	if !result.Success {
		t.Fatalf("Expected success, got failure:\n%s", stderr.String())
	}
	if stdout.String() != "hi there\n" {
		t.Errorf("Expected greeting, got %q", stdout.String())
	}
}

func TestRunReportsDiagnostics(t *testing.T) {
	var stdout, stderr bytes.Buffer
	result := Run(&Options{
		Trees:  []string{filepath.Join("testdata", "let_reassign.yaml")},
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if result.Success {
		t.Error("Expected failure for reassigning a let binding")
	}
	if !strings.Contains(stderr.String(), "T0018") {
		t.Errorf("Expected the diagnostic code on stderr, got %q", stderr.String())
	}
}

func TestRunHTML(t *testing.T) {
	result := Run(&Options{
		Code:      `members: [{kind: call, name: print, args: ["<ok>"]}]`,
		LogFormat: HTML,
	})
	if !result.Success {
		t.Fatalf("Expected success, got %q", result.Output)
	}
	if !strings.Contains(result.Output, "ok") {
		t.Errorf("Expected captured program output, got %q", result.Output)
	}
}

func TestRunBadCode(t *testing.T) {
	result := Run(&Options{Code: "members: [{kind: wat}]", LogFormat: HTML})
	if result.Success {
		t.Error("Expected failure for an undecodable tree")
	}
	if !strings.Contains(result.Output, "unknown node kind") {
		t.Errorf("Expected the decode error in the output, got %q", result.Output)
	}
}

func TestRunNothing(t *testing.T) {
	if result := Run(&Options{}); result.Success {
		t.Error("Expected failure with nothing to run")
	}
}

func TestSessionAccumulates(t *testing.T) {
	var stdout bytes.Buffer
	session := NewSession(&context_v2.Config{Stdout: &stdout, Stderr: &bytes.Buffer{}})

	steps := []string{
		`members: [{kind: var, name: x, value: 5}]`,
		`members: [{kind: assign, name: x, value: {kind: binary, op: "+", left: {kind: name, name: x}, right: 1}}]`,
		`members: [{kind: fn, name: show, body: [{kind: call, name: print, args: [{kind: name, name: x}]}]}]`,
		`members: [{kind: call, name: show}]`,
	}
	for i, src := range steps {
		if _, err := session.SubmitDocument(src); err != nil {
			t.Fatalf("Step %d failed: %v", i, err)
		}
	}

	if stdout.String() != "6\n" {
		t.Errorf("Expected 6, got %q", stdout.String())
	}
	if got := session.Globals()["x"]; got != int64(6) {
		t.Errorf("Expected global x = 6, got %#v", got)
	}
}

func TestSessionKeepsStateAfterErrors(t *testing.T) {
	session := NewSession(&context_v2.Config{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})

	if _, err := session.SubmitDocument(`members: [{kind: let, name: limit, value: 3}]`); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	sub, err := session.SubmitDocument(`members: [{kind: var, name: y, value: {kind: name, name: missing}}]`)
	if !errors.Is(err, pipeline.ErrDiagnostics) {
		t.Fatalf("Expected ErrDiagnostics, got %v", err)
	}
	if len(sub.Diagnostics) == 0 {
		t.Error("Expected diagnostics for the failed submission")
	}

	sub, err = session.SubmitDocument(`members: [{kind: binary, op: "*", left: {kind: name, name: limit}, right: 2}]`)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if sub.Value != int64(6) {
		t.Errorf("Expected 6, got %#v", sub.Value)
	}
	if _, seen := session.Globals()["y"]; seen {
		t.Error("Expected the failed submission's global to be discarded")
	}
}

func TestSessionShadowedGlobals(t *testing.T) {
	session := NewSession(&context_v2.Config{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})
	for _, src := range []string{
		`members: [{kind: var, name: x, value: 1}]`,
		`members: [{kind: var, name: x, value: "two"}]`,
	} {
		if _, err := session.SubmitDocument(src); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}
	if got := session.Globals()["x"]; got != "two" {
		t.Errorf("Expected the newest x, got %#v", got)
	}
}
