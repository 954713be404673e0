package context_v2

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ember/internal/utils/fs"

	"gopkg.in/yaml.v3"
)

// ProjectFile is the conventional name of a project file.
const ProjectFile = "ember.yaml"

// Config holds run configuration
type Config struct {
	// Project information
	ProjectName string // Name of the project
	ProjectRoot string // Directory holding the project file, or the first tree

	// Syntax-tree documents, bound together as one submission
	Trees []string

	// Debug output
	Debug   bool // Phase banners and per-tree progress
	DumpCFG bool // Graphviz dump of every lowered body

	// Evaluation
	Seed int64 // Seed for random(); zero means time-based

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer // Diagnostics and runtime faults
	Log    io.Writer // Debug output; defaults to Stdout
}

// DefaultConfig returns a config for an unnamed project in the current
// directory.
func DefaultConfig() *Config {
	return &Config{ProjectName: "playground", ProjectRoot: "."}
}

// projectDisk is the on-disk shape of ember.yaml.
type projectDisk struct {
	Name    string   `yaml:"name"`
	Trees   []string `yaml:"trees"`
	Debug   bool     `yaml:"debug"`
	DumpCFG bool     `yaml:"dump_cfg"`
	Seed    int64    `yaml:"seed"`
}

// LoadConfig parses a project file. Tree paths are resolved against the
// directory holding it.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("project: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("project: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var raw projectDisk
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil && err != io.EOF {
		return nil, fmt.Errorf("project: parse %s: %w", abs, err)
	}

	root := filepath.Dir(abs)
	config := &Config{
		ProjectName: strings.TrimSpace(raw.Name),
		ProjectRoot: root,
		Debug:       raw.Debug,
		DumpCFG:     raw.DumpCFG,
		Seed:        raw.Seed,
	}
	if config.ProjectName == "" {
		config.ProjectName = filepath.Base(root)
	}
	if len(raw.Trees) == 0 {
		return nil, fmt.Errorf("project: %s lists no trees", abs)
	}
	for _, tree := range raw.Trees {
		tree = strings.TrimSpace(tree)
		if tree == "" {
			return nil, fmt.Errorf("project: %s has an empty tree path", abs)
		}
		if !filepath.IsAbs(tree) {
			tree = filepath.Join(root, tree)
		}
		config.Trees = append(config.Trees, tree)
	}
	return config, nil
}

// ConfigForTrees builds a config for tree paths named on the command line. A
// directory stands for every tree document directly inside it. The project is
// named after the directory of the first tree.
func ConfigForTrees(paths []string) (*Config, error) {
	config := DefaultConfig()
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("project: resolve %s: %w", path, err)
		}

		trees := []string{abs}
		if fs.IsDir(abs) {
			if trees, err = fs.TreeFiles(abs, ProjectFile); err != nil {
				return nil, fmt.Errorf("project: list %s: %w", path, err)
			}
			if len(trees) == 0 {
				return nil, fmt.Errorf("project: %s holds no trees", path)
			}
		}
		if len(config.Trees) == 0 {
			config.ProjectRoot = filepath.Dir(trees[0])
			config.ProjectName = filepath.Base(config.ProjectRoot)
		}
		config.Trees = append(config.Trees, trees...)
	}
	return config, nil
}
