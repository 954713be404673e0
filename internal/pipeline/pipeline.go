package pipeline

import (
	"errors"
	"fmt"
	"sync"

	"ember/colors"
	"ember/internal/bound"
	"ember/internal/context_v2"
	"ember/internal/evaluator"
	"ember/internal/phase"
	"ember/internal/semantics/symbols"
)

// ErrDiagnostics is returned when a phase reported errors. The details are in
// the context's diagnostics bag.
var ErrDiagnostics = errors.New("compilation failed with errors")

// Pipeline coordinates one submission: decode every tree, declare, bind and
// lower, then evaluate.
type Pipeline struct {
	ctx *context_v2.CompilerContext

	// seen ensures each tree file is scheduled exactly once
	seen sync.Map // map[string]struct{}

	// wg tracks all decoding tasks
	wg sync.WaitGroup

	Global  *bound.GlobalScope
	Program *bound.Program
}

// New creates a new pipeline
func New(ctx *context_v2.CompilerContext) *Pipeline {
	return &Pipeline{ctx: ctx}
}

// Run decodes the configured trees and binds them, with any trees already
// added through AddTree, as one submission chained to previous. The bound
// program is returned even when diagnostics were reported.
func (p *Pipeline) Run(previous *bound.Program) (*bound.Program, error) {
	p.ctx.Logf(colors.CYAN, "\n[Phase 1] Decode\n")
	for _, path := range p.ctx.Config.Trees {
		p.processModule(path)
	}
	p.wg.Wait()

	if p.ctx.HasErrors() {
		return nil, ErrDiagnostics
	}

	p.ctx.Logf(colors.CYAN, "\n[Phase 2] Declare\n")
	var previousGlobal *bound.GlobalScope
	if previous != nil {
		previousGlobal = previous.Global
	}
	p.runDeclarePhase(previousGlobal)

	p.ctx.Logf(colors.CYAN, "\n[Phase 3] Bind + Lower\n")
	p.runBindPhase(previous)

	if p.ctx.Config.DumpCFG {
		p.dumpControlFlow()
	}

	if p.ctx.HasErrors() {
		return p.Program, ErrDiagnostics
	}

	p.ctx.Logf(colors.GREEN, "\n✓ Bound %d tree(s)\n", p.ctx.ModuleCount())
	return p.Program, nil
}

// Execute runs the bound program's entry point against globals. A runtime
// fault is written to the error writer and returned.
func (p *Pipeline) Execute(globals map[*symbols.VariableSymbol]evaluator.Value) (evaluator.Value, error) {
	if p.Program == nil {
		return nil, fmt.Errorf("execute: nothing bound")
	}

	p.ctx.Logf(colors.CYAN, "\n[Phase 4] Evaluate\n")
	config := p.ctx.Config
	value, err := evaluator.Evaluate(p.Program, globals, evaluator.Options{
		Stdin:  config.Stdin,
		Stdout: config.Stdout,
		Seed:   config.Seed,
		Terminate: func(f *evaluator.Fault) {
			colors.RED.Fprintln(config.Stderr, f.Error())
		},
	})

	for _, name := range p.ctx.ModuleNames() {
		p.ctx.AdvanceModulePhase(name, phase.PhaseEvaluated)
	}
	return value, err
}
