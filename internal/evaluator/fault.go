package evaluator

import (
	"fmt"
	"os"

	"ember/colors"
	"ember/internal/source"
)

// Fault is a runtime error that stops evaluation.
type Fault struct {
	Code     string
	Message  string
	Location source.Location
}

func (f *Fault) Error() string {
	if f.Location.Start == nil {
		return fmt.Sprintf("runtime error[%s]: %s", f.Code, f.Message)
	}
	file := f.Location.File()
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("runtime error[%s]: %s at %s:%d:%d", f.Code, f.Message, file, f.Location.Start.Line, f.Location.Start.Column)
}

// DefaultTerminate prints the fault to stderr and exits with status 1.
func DefaultTerminate(f *Fault) {
	colors.RED.Fprintln(os.Stderr, f.Error())
	os.Exit(1)
}

func fault(code string, loc *source.Location, format string, args ...any) *Fault {
	return &Fault{Code: code, Message: fmt.Sprintf(format, args...), Location: *loc}
}
