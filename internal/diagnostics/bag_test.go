package diagnostics

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"ember/colors"
	"ember/internal/source"
)

func TestNewDiagnosticBag(t *testing.T) {
	bag := NewDiagnosticBag()

	if bag == nil {
		t.Fatal("NewDiagnosticBag returned nil")
	}

	if bag.ErrorCount() != 0 {
		t.Errorf("Expected 0 errors, got %d", bag.ErrorCount())
	}

	if bag.HasErrors() {
		t.Error("Expected HasErrors() to be false for empty bag")
	}
}

func TestDiagnosticBag_MultipleDiagnostics(t *testing.T) {
	bag := NewDiagnosticBag()

	bag.Add(NewError("error 1"))
	bag.Add(NewWarning("warning 1"))
	bag.Add(NewError("error 2"))
	bag.AddAll([]*Diagnostic{NewWarning("warning 2"), NewError("error 3")})

	if bag.ErrorCount() != 3 {
		t.Errorf("Expected 3 errors, got %d", bag.ErrorCount())
	}

	if bag.WarningCount() != 2 {
		t.Errorf("Expected 2 warnings, got %d", bag.WarningCount())
	}

	if bag.Len() != 5 {
		t.Errorf("Expected 5 diagnostics, got %d", bag.Len())
	}

	bag.Clear()
	if bag.Len() != 0 || bag.HasErrors() {
		t.Error("Expected empty bag after Clear")
	}
}

func TestDiagnosticBag_DiagnosticsCopy(t *testing.T) {
	bag := NewDiagnosticBag()

	bag.Add(NewError("error 1"))
	diags1 := bag.Diagnostics()
	bag.Add(NewError("error 2"))

	if len(diags1) != 1 {
		t.Errorf("Expected first copy to have 1 diagnostic, got %d", len(diags1))
	}
	if len(bag.Diagnostics()) != 2 {
		t.Errorf("Expected 2 diagnostics, got %d", len(bag.Diagnostics()))
	}
}

func TestDiagnosticBag_ThreadSafety(t *testing.T) {
	bag := NewDiagnosticBag()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				if j%2 == 0 {
					bag.Add(NewError("concurrent error"))
				} else {
					bag.Add(NewWarning("concurrent warning"))
				}
			}
		}()
	}
	wg.Wait()

	if bag.ErrorCount() != 50 {
		t.Errorf("Expected 50 errors, got %d", bag.ErrorCount())
	}
	if bag.WarningCount() != 50 {
		t.Errorf("Expected 50 warnings, got %d", bag.WarningCount())
	}
}

func TestDiagnosticBag_EmitAll(t *testing.T) {
	colors.Disable()
	defer colors.Enable()

	bag := NewDiagnosticBag()
	bag.Add(UndefinedSymbol(source.Span("main.em", 3, 5, 3, 6), "x", "y"))

	var buf bytes.Buffer
	bag.EmitAll(&buf)
	out := buf.String()

	for _, want := range []string{
		"error[T0002]: undefined symbol: x",
		"--> main.em:3:5",
		"help: did you mean 'y'?",
		"Binding failed with 1 error(s)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}
