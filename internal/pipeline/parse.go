package pipeline

import (
	"fmt"

	"ember/colors"
	"ember/internal/context_v2"
	"ember/internal/frontend/ast"
	"ember/internal/phase"
)

// AddTree registers an already decoded tree, such as one typed into the REPL.
func (p *Pipeline) AddTree(tree *ast.Module) {
	if p.ctx.HasModule(tree.FilePath) {
		p.ctx.ReportError(fmt.Sprintf("tree %s was added twice", tree.FilePath), nil)
		return
	}
	p.seen.Store(tree.FilePath, struct{}{})
	p.ctx.AddModule(tree.FilePath, &context_v2.Module{AST: tree})
	p.ctx.AdvanceModulePhase(tree.FilePath, phase.PhaseDecoded)
}

// processModule schedules decoding for a tree file exactly once (thread-safe)
func (p *Pipeline) processModule(path string) {
	if _, loaded := p.seen.LoadOrStore(path, struct{}{}); loaded {
		return
	}

	// Register in configuration order before decoding in parallel
	p.ctx.AddModule(path, &context_v2.Module{})

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.decodeModule(path)
	}()
}

// decodeModule reads one syntax-tree document
func (p *Pipeline) decodeModule(path string) {
	module, _ := p.ctx.GetModule(path)

	tree, err := ast.ParseFile(path)
	if err != nil {
		p.ctx.ReportError(err.Error(), nil)
		return
	}
	module.Mu.Lock()
	module.AST = tree
	module.Mu.Unlock()

	if !p.ctx.AdvanceModulePhase(path, phase.PhaseDecoded) {
		p.ctx.ReportError(fmt.Sprintf("cannot advance tree %s to PhaseDecoded", path), nil)
		return
	}
	p.ctx.Logf(colors.PURPLE, "  ✓ %s (%d members)\n", path, len(tree.Members))
}
