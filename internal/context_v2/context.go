// Package context_v2 holds the state shared by one run of the pipeline: the
// configuration, every syntax tree with its phase, and the diagnostics bag.
//
// Trees are keyed by file path and kept in the order they were added; the
// first tree carrying top-level statements is the script tree.
package context_v2

import (
	"fmt"
	"os"
	"sync"

	"ember/colors"
	"ember/internal/diagnostics"
	"ember/internal/frontend/ast"
	"ember/internal/phase"
	"ember/internal/source"
)

// Module is one syntax tree and its progress through the pipeline
type Module struct {
	FilePath string
	AST      *ast.Module
	Phase    phase.ModulePhase

	Mu sync.Mutex // Protects field updates during parallel decoding
}

// CompilerContext is the central state of one pipeline run
type CompilerContext struct {
	// Tree registry: file path -> Module
	Modules map[string]*Module
	mu      sync.RWMutex // protects Modules and order

	// File paths in registration order
	order []string

	Diagnostics *diagnostics.DiagnosticBag
	Config      *Config
	Debug       bool
}

// New creates a context. A nil config gets the defaults.
func New(config *Config, debug bool) *CompilerContext {
	if config == nil {
		config = DefaultConfig()
	}
	config.fillDefaults()
	return &CompilerContext{
		Modules:     make(map[string]*Module),
		Diagnostics: diagnostics.NewDiagnosticBag(),
		Config:      config,
		Debug:       debug || config.Debug,
	}
}

// AddModule registers a tree. Adding the same path twice keeps the first.
func (ctx *CompilerContext) AddModule(filePath string, module *Module) {
	if module == nil {
		panic(fmt.Sprintf("cannot add nil module for %q", filePath))
	}

	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	if _, exists := ctx.Modules[filePath]; exists {
		return
	}
	module.FilePath = filePath
	ctx.Modules[filePath] = module
	ctx.order = append(ctx.order, filePath)
}

// GetModule retrieves a tree by file path
func (ctx *CompilerContext) GetModule(filePath string) (*Module, bool) {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	module, exists := ctx.Modules[filePath]
	return module, exists
}

// HasModule checks if a tree is registered
func (ctx *CompilerContext) HasModule(filePath string) bool {
	_, exists := ctx.GetModule(filePath)
	return exists
}

// GetModulePhase returns the current phase of a tree
func (ctx *CompilerContext) GetModulePhase(filePath string) phase.ModulePhase {
	if module, exists := ctx.GetModule(filePath); exists {
		module.Mu.Lock()
		defer module.Mu.Unlock()
		return module.Phase
	}
	return phase.PhaseNotStarted
}

// SetModulePhase updates the phase of a tree
func (ctx *CompilerContext) SetModulePhase(filePath string, p phase.ModulePhase) {
	if module, exists := ctx.GetModule(filePath); exists {
		module.Mu.Lock()
		module.Phase = p
		module.Mu.Unlock()
	}
}

// AdvanceModulePhase moves a tree to targetPhase. It returns false when the
// tree is not exactly at the prerequisite phase.
func (ctx *CompilerContext) AdvanceModulePhase(filePath string, targetPhase phase.ModulePhase) bool {
	if !ctx.CanProcessPhase(filePath, targetPhase) {
		return false
	}
	ctx.SetModulePhase(filePath, targetPhase)
	return true
}

// CanProcessPhase checks if a tree is ready for a specific phase
func (ctx *CompilerContext) CanProcessPhase(filePath string, requiredPhase phase.ModulePhase) bool {
	prerequisite, exists := phase.PhasePrerequisites[requiredPhase]
	if !exists {
		return false
	}
	return ctx.GetModulePhase(filePath) == prerequisite
}

// ModuleNames returns the registered file paths in registration order
func (ctx *CompilerContext) ModuleNames() []string {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return append([]string(nil), ctx.order...)
}

// Trees returns the decoded syntax trees in registration order, skipping
// trees that failed to decode.
func (ctx *CompilerContext) Trees() []*ast.Module {
	var trees []*ast.Module
	for _, name := range ctx.ModuleNames() {
		module, _ := ctx.GetModule(name)
		module.Mu.Lock()
		if module.AST != nil {
			trees = append(trees, module.AST)
		}
		module.Mu.Unlock()
	}
	return trees
}

// ModuleCount returns the number of registered trees
func (ctx *CompilerContext) ModuleCount() int {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return len(ctx.Modules)
}

// HasErrors returns true if any errors have been reported
func (ctx *CompilerContext) HasErrors() bool {
	return ctx.Diagnostics.HasErrors()
}

// ReportError adds an error diagnostic
func (ctx *CompilerContext) ReportError(message string, location *source.Location) {
	diag := diagnostics.NewError(message)
	if location != nil {
		diag = diag.WithPrimaryLabel(location, "")
	}
	ctx.Diagnostics.Add(diag)
}

// EmitDiagnostics writes every collected diagnostic to the error writer
func (ctx *CompilerContext) EmitDiagnostics() {
	ctx.Diagnostics.EmitAll(ctx.Config.Stderr)
}

// Logf prints a debug line in colour. It does nothing unless debugging.
func (ctx *CompilerContext) Logf(c colors.COLOR, format string, args ...any) {
	if !ctx.Debug {
		return
	}
	c.Fprintf(ctx.Config.Log, format, args...)
}

func (c *Config) fillDefaults() {
	if c.Stdin == nil {
		c.Stdin = os.Stdin
	}
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	if c.Stderr == nil {
		c.Stderr = os.Stderr
	}
	if c.Log == nil {
		c.Log = c.Stdout
	}
}
