package fs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// TreeExtensions are the file extensions of syntax-tree documents.
var TreeExtensions = []string{".yaml", ".yml"}

// Check if file exists and is a regular file
func IsValidFile(filename string) bool {
	fileInfo, err := os.Stat(filename)
	return err == nil && fileInfo.Mode().IsRegular()
}

func IsDir(path string) bool {
	fileInfo, err := os.Stat(path)
	return err == nil && fileInfo.Mode().IsDir()
}

// IsTreeFile reports whether a path names a syntax-tree document.
func IsTreeFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range TreeExtensions {
		if ext == want {
			return true
		}
	}
	return false
}

// TreeFiles lists the syntax-tree documents directly inside dir, sorted by
// name. Project files are skipped.
func TreeFiles(dir, projectFile string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || name == projectFile || !IsTreeFile(name) {
			continue
		}
		out = append(out, filepath.Join(dir, name))
	}
	sort.Strings(out)
	return out, nil
}
