package source

import "fmt"

// Location represents a span of source code with start and end positions
type Location struct {
	Start    *Position
	End      *Position
	Filename *string
}

// NewLocation creates a new Location with the given start and end positions
func NewLocation(filename *string, start, end *Position) *Location {
	return &Location{
		Filename: filename,
		Start:    start,
		End:      end,
	}
}

// Span builds a location from plain line/column pairs. Syntax trees handed over by
// the parser layer carry spans in this shape.
func Span(filename string, startLine, startCol, endLine, endCol int) *Location {
	return NewLocation(&filename,
		&Position{Line: startLine, Column: startCol},
		&Position{Line: endLine, Column: endCol})
}

// File returns the file name or an empty string.
func (l *Location) File() string {
	if l == nil || l.Filename == nil {
		return ""
	}
	return *l.Filename
}

// Merge returns a location covering both l and other, in either order.
func (l *Location) Merge(other *Location) *Location {
	if l == nil {
		return other
	}
	if other == nil || other.End == nil {
		return l
	}
	start, end := l.Start, other.End
	if start == nil || (other.Start != nil && other.Start.Before(start)) {
		start = other.Start
	}
	if l.End != nil && end.Before(l.End) {
		end = l.End
	}
	return &Location{Filename: l.Filename, Start: start, End: end}
}

func (l *Location) String() string {
	if l == nil || l.Start == nil || l.End == nil {
		return "location(unknown)"
	}

	return fmt.Sprintf("location(%d:%d - %d:%d)", l.Start.Line, l.Start.Column, l.End.Line, l.End.Column)
}
