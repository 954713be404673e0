package diagnostics

import (
	"ember/internal/source"
)

// Severity represents the severity level of a diagnostic
type Severity int

const (
	Error Severity = iota
	Warning
	Info
	Hint
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	case Hint:
		return "hint"
	default:
		return "unknown"
	}
}

// Label represents a labeled section of code in a diagnostic
type Label struct {
	Location *source.Location
	Message  string
	Style    LabelStyle
}

type LabelStyle int

const (
	Primary   LabelStyle = iota // The main error location
	Secondary                   // Additional context
)

// Note represents additional information attached to a diagnostic
type Note struct {
	Message string
}

// Diagnostic is a (location, message, optional suggestion) record produced by
// the binder. Help carries the suggestion.
type Diagnostic struct {
	Severity Severity
	Message  string
	Code     string // Error code like "T0002"
	FilePath string // Source file for this diagnostic
	Labels   []Label
	Notes    []Note
	Help     string // Suggestion for fixing the error
}

// NewError creates a new error diagnostic
func NewError(message string) *Diagnostic {
	return &Diagnostic{
		Severity: Error,
		Message:  message,
		Labels:   make([]Label, 0),
		Notes:    make([]Note, 0),
	}
}

// NewWarning creates a new warning diagnostic
func NewWarning(message string) *Diagnostic {
	return &Diagnostic{
		Severity: Warning,
		Message:  message,
		Labels:   make([]Label, 0),
		Notes:    make([]Note, 0),
	}
}

// WithCode sets the error code
func (d *Diagnostic) WithCode(code string) *Diagnostic {
	d.Code = code
	return d
}

// WithLabel adds a labeled location to the diagnostic
func (d *Diagnostic) WithLabel(loc *source.Location, message string, style LabelStyle) *Diagnostic {
	if d.FilePath == "" {
		d.FilePath = loc.File()
	}
	d.Labels = append(d.Labels, Label{
		Location: loc,
		Message:  message,
		Style:    style,
	})
	return d
}

// WithPrimaryLabel adds a primary labeled location.
// Must be called before any WithSecondaryLabel calls
func (d *Diagnostic) WithPrimaryLabel(loc *source.Location, message string) *Diagnostic {
	for _, label := range d.Labels {
		if label.Style == Primary {
			return d
		}
	}
	if len(d.Labels) > 0 {
		d.Labels = append([]Label{{Location: loc, Message: message, Style: Primary}}, d.Labels...)
		if d.FilePath == "" {
			d.FilePath = loc.File()
		}
		return d
	}
	return d.WithLabel(loc, message, Primary)
}

// WithSecondaryLabel adds a secondary labeled location.
// Primary label must exist before adding secondary labels
func (d *Diagnostic) WithSecondaryLabel(loc *source.Location, message string) *Diagnostic {
	if !d.hasPrimary() {
		panic("Cannot add secondary label without primary label. Call WithPrimaryLabel first.")
	}
	return d.WithLabel(loc, message, Secondary)
}

func (d *Diagnostic) hasPrimary() bool {
	for _, label := range d.Labels {
		if label.Style == Primary {
			return true
		}
	}
	return false
}

// WithNote adds a note to the diagnostic
func (d *Diagnostic) WithNote(message string) *Diagnostic {
	d.Notes = append(d.Notes, Note{Message: message})
	return d
}

// WithHelp sets helpful suggestion for fixing the error
func (d *Diagnostic) WithHelp(help string) *Diagnostic {
	d.Help = help
	return d
}

// Location returns the primary label's location, or nil.
func (d *Diagnostic) Location() *source.Location {
	for _, label := range d.Labels {
		if label.Style == Primary {
			return label.Location
		}
	}
	return nil
}

// Suggestion returns the help text; empty when the diagnostic has none.
func (d *Diagnostic) Suggestion() string {
	return d.Help
}
