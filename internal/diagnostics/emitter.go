package diagnostics

import (
	"fmt"
	"io"

	"ember/colors"
)

const LINE_POS = "%s--> %s:%d:%d\n"

// Emitter handles the rendering and output of diagnostics. Source text is owned by
// the parser layer, so only spans are rendered, not excerpts.
type Emitter struct {
	writer io.Writer
}

// NewEmitter creates an emitter that writes to a specific writer
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{writer: w}
}

func severityColor(s Severity) colors.COLOR {
	switch s {
	case Error:
		return colors.BOLD_RED
	case Warning:
		return colors.BOLD_YELLOW
	default:
		return colors.BOLD_CYAN
	}
}

// Emit writes one diagnostic:
//
//	error[T0002]: undefined symbol: x
//	  --> main.em:3:5 not found in this scope
//	  = help: did you mean 'y'?
func (e *Emitter) Emit(diag *Diagnostic) {
	header := diag.Severity.String()
	if diag.Code != "" {
		header += "[" + diag.Code + "]"
	}
	severityColor(diag.Severity).Fprint(e.writer, header)
	fmt.Fprintf(e.writer, ": %s\n", diag.Message)

	for _, label := range diag.Labels {
		loc := label.Location
		if loc == nil || loc.Start == nil {
			continue
		}
		arrow := colors.BLUE.Sprint("  ")
		file := loc.File()
		if file == "" {
			file = "<input>"
		}
		fmt.Fprintf(e.writer, LINE_POS, arrow, file, loc.Start.Line, loc.Start.Column)
		if label.Message != "" {
			style := colors.GREY
			if label.Style == Primary {
				style = severityColor(diag.Severity)
			}
			fmt.Fprintf(e.writer, "      %s\n", style.Sprint(label.Message))
		}
	}

	for _, note := range diag.Notes {
		fmt.Fprintf(e.writer, "  = note: %s\n", note.Message)
	}
	if diag.Help != "" {
		fmt.Fprintf(e.writer, "  = %s %s\n", colors.GREEN.Sprint("help:"), diag.Help)
	}
}
