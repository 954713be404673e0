package pipeline

import (
	"fmt"
	"sort"

	"ember/colors"
	"ember/internal/bound"
	"ember/internal/phase"
	"ember/internal/semantics/binder"
	"ember/internal/semantics/controlflow"
	"ember/internal/semantics/symbols"
)

// runDeclarePhase enters every declaration of the decoded trees into a global
// scope chained to previous.
func (p *Pipeline) runDeclarePhase(previous *bound.GlobalScope) {
	p.Global = binder.BindGlobalScope(previous, p.ctx.Trees())

	for _, name := range p.ctx.ModuleNames() {
		if !p.ctx.AdvanceModulePhase(name, phase.PhaseDeclared) {
			continue
		}
		p.ctx.Logf(colors.PURPLE, "  ✓ %s\n", name)
	}
	p.ctx.Logf(colors.GREY, "  %d function(s), %d class(es), %d enum(s), entry %s\n",
		len(p.Global.Functions), len(p.Global.Classes), len(p.Global.ADTs), entryName(p.Global))
}

// runBindPhase binds and lowers every body. Diagnostics from both passes are
// reported here, once.
func (p *Pipeline) runBindPhase(previous *bound.Program) {
	program := binder.BindProgram(p.Global)
	program.Previous = previous
	p.Program = program

	p.ctx.Diagnostics.AddAll(program.Diagnostics)

	for _, name := range p.ctx.ModuleNames() {
		if !p.ctx.AdvanceModulePhase(name, phase.PhaseBound) {
			continue
		}
		p.ctx.Logf(colors.PURPLE, "  ✓ %s\n", name)
	}
}

// dumpControlFlow writes the Graphviz graph of every lowered body to the log
// writer, in declaration order.
func (p *Pipeline) dumpControlFlow() {
	w := p.ctx.Config.Log
	dump := func(fn *symbols.FunctionSymbol) {
		body, ok := p.Program.Body(fn)
		if !ok || body == nil {
			return
		}
		colors.BLUE.Fprintf(w, "// %s\n", fn)
		fmt.Fprint(w, controlflow.Create(body).String())
	}

	if p.Global.Script != nil {
		dump(p.Global.Script)
	}
	for _, fn := range p.Global.Functions {
		dump(fn)
	}
	classes := append([]*symbols.ClassSymbol(nil), p.Global.Classes...)
	sort.Slice(classes, func(i, j int) bool { return classes[i].Name < classes[j].Name })
	for _, class := range classes {
		if class.Ctor != nil {
			dump(class.Ctor)
		}
		for _, m := range class.AllMethods() {
			dump(m)
		}
	}
}

func entryName(g *bound.GlobalScope) string {
	if entry := g.Entry(); entry != nil {
		return entry.Name
	}
	return "none"
}
