package fs

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestIsTreeFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"main.yaml", true},
		{"lib/Shapes.YML", true},
		{"main.em", false},
		{"yaml", false},
	}
	for _, tt := range tests {
		if got := IsTreeFile(tt.path); got != tt.want {
			t.Errorf("IsTreeFile(%q): expected %v, got %v", tt.path, tt.want, got)
		}
	}
}

func TestTreeFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.yml", "ember.yaml", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.yaml"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := TreeFiles(dir, "ember.yaml")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := []string{filepath.Join(dir, "a.yml"), filepath.Join(dir, "b.yaml")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if !IsDir(dir) || IsValidFile(dir) {
		t.Error("Expected dir to be a directory and not a file")
	}
	if !IsValidFile(want[0]) {
		t.Errorf("Expected %s to be a file", want[0])
	}
}
