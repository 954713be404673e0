package diagnostics

import (
	"fmt"
	"io"
	"sync"

	"ember/colors"
)

const (
	bindFailedMsg           = "\nBinding failed with %d error(s)"
	andWarningMsg           = " and %d warning(s)"
	bindSuccessWithWarnings = "\nBinding succeeded with %d warning(s)\n"
)

// DiagnosticBag collects diagnostics during binding
type DiagnosticBag struct {
	diagnostics []*Diagnostic
	mu          sync.Mutex
	errorCount  int
	warnCount   int
}

// NewDiagnosticBag creates an empty diagnostic bag
func NewDiagnosticBag() *DiagnosticBag {
	return &DiagnosticBag{
		diagnostics: make([]*Diagnostic, 0),
	}
}

// Add adds a diagnostic to the bag
func (db *DiagnosticBag) Add(diag *Diagnostic) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.diagnostics = append(db.diagnostics, diag)

	switch diag.Severity {
	case Error:
		db.errorCount++
	case Warning:
		db.warnCount++
	}
}

// AddAll appends every diagnostic in diags, keeping their order.
func (db *DiagnosticBag) AddAll(diags []*Diagnostic) {
	for _, d := range diags {
		db.Add(d)
	}
}

// HasErrors returns true if there are any errors
func (db *DiagnosticBag) HasErrors() bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.errorCount > 0
}

// ErrorCount returns the number of errors
func (db *DiagnosticBag) ErrorCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.errorCount
}

// WarningCount returns the number of warnings
func (db *DiagnosticBag) WarningCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.warnCount
}

// Len returns the number of collected diagnostics of any severity.
func (db *DiagnosticBag) Len() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.diagnostics)
}

// Diagnostics returns a copy of all diagnostics (thread-safe)
func (db *DiagnosticBag) Diagnostics() []*Diagnostic {
	db.mu.Lock()
	defer db.mu.Unlock()
	result := make([]*Diagnostic, len(db.diagnostics))
	copy(result, db.diagnostics)
	return result
}

// EmitAll renders every diagnostic followed by a summary line.
func (db *DiagnosticBag) EmitAll(w io.Writer) {
	emitter := NewEmitter(w)
	for _, diag := range db.Diagnostics() {
		emitter.Emit(diag)
	}
	db.printSummary(w)
}

func (db *DiagnosticBag) printSummary(w io.Writer) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.errorCount > 0 {
		colors.RED.Fprintf(w, bindFailedMsg, db.errorCount)
		if db.warnCount > 0 {
			colors.RED.Fprintf(w, andWarningMsg, db.warnCount)
		}
		fmt.Fprintln(w)
	} else if db.warnCount > 0 {
		colors.ORANGE.Fprintf(w, bindSuccessWithWarnings, db.warnCount)
	}
}

// Clear removes all diagnostics
func (db *DiagnosticBag) Clear() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.diagnostics = make([]*Diagnostic, 0)
	db.errorCount = 0
	db.warnCount = 0
}
