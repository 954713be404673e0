package pipeline

import (
	"fmt"
	"io"

	"ember/colors"
)

// PrintSummary prints the trees of this run and what they declared
func (p *Pipeline) PrintSummary(w io.Writer) {
	fmt.Fprintln(w)
	colors.CYAN.Fprintln(w, "═══════════════════════════════════════")
	colors.CYAN.Fprintln(w, "        SUBMISSION SUMMARY")
	colors.CYAN.Fprintln(w, "═══════════════════════════════════════")

	fmt.Fprintf(w, "Project: %s\n", p.ctx.Config.ProjectName)
	fmt.Fprintf(w, "Total Trees: %d\n\n", p.ctx.ModuleCount())

	for _, name := range p.ctx.ModuleNames() {
		fmt.Fprintf(w, " - %s (%s)\n", name, p.ctx.GetModulePhase(name))
	}

	if p.Global != nil {
		fmt.Fprintf(w, "\nFunctions: %d\nClasses: %d\nEnums: %d\nGlobals: %d\nEntry: %s\n",
			len(p.Global.Functions), len(p.Global.Classes), len(p.Global.ADTs),
			len(p.Global.Variables), entryName(p.Global))
	}
	fmt.Fprintf(w, "Errors: %d, Warnings: %d\n", p.ctx.Diagnostics.ErrorCount(), p.ctx.Diagnostics.WarningCount())
}
