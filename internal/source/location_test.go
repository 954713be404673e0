package source

import "testing"

func TestMerge(t *testing.T) {
	a := Span("main.em", 1, 1, 1, 4)
	b := Span("main.em", 3, 2, 3, 9)

	m := a.Merge(b)
	if m.String() != "location(1:1 - 3:9)" {
		t.Errorf("Expected merged span 1:1 - 3:9, got %s", m)
	}
	if m.File() != "main.em" {
		t.Errorf("Expected file main.em, got %q", m.File())
	}

	if r := b.Merge(a); r.String() != "location(1:1 - 3:9)" {
		t.Errorf("Expected reversed merge to give 1:1 - 3:9, got %s", r)
	}

	var nilLoc *Location
	if nilLoc.Merge(b) != b {
		t.Error("Expected nil.Merge(b) to return b")
	}
	if nilLoc.String() != "location(unknown)" {
		t.Errorf("Unexpected string for nil location: %s", nilLoc.String())
	}
}

func TestPositionBefore(t *testing.T) {
	a := &Position{Line: 1, Column: 9}
	b := &Position{Line: 2, Column: 1}
	if !a.Before(b) || b.Before(a) {
		t.Error("Expected 1:9 to come before 2:1")
	}
}
