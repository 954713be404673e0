package compiler

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"ember/colors"
	"ember/internal/context_v2"
	"ember/internal/evaluator"
	"ember/internal/frontend/ast"
	"ember/internal/pipeline"
	"ember/internal/semantics/symbols"
)

type FORMAT int

const (
	ANSI FORMAT = iota
	HTML
)

// Options for one run
type Options struct {
	// Project file listing the trees (ember.yaml)
	ProjectFile string
	// Tree files named directly; ignored when ProjectFile is set
	Trees []string
	// In-memory syntax-tree document (WASM)
	Code string

	Debug   bool
	DumpCFG bool
	Seed    int64

	// Output format: "ansi" or "html". HTML captures everything into
	// Result.Output.
	LogFormat FORMAT

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Result of a run
type Result struct {
	Success bool
	Output  string
	Value   evaluator.Value
}

// Run binds the configured trees as one submission and evaluates its entry
// point.
func Run(opts *Options) Result {
	config, err := configFor(opts)
	if err != nil {
		return Result{Success: false, Output: err.Error()}
	}

	var captured bytes.Buffer
	if opts.LogFormat == HTML {
		config.Stdout = &captured
		config.Stderr = &captured
		config.Log = &captured
	}

	ctx := context_v2.New(config, opts.Debug)
	p := pipeline.New(ctx)

	if opts.Code != "" {
		tree, err := ast.DecodeModule(strings.NewReader(opts.Code), "main")
		if err != nil {
			ctx.ReportError(err.Error(), nil)
		} else {
			p.AddTree(tree)
		}
	}

	result := Result{}
	if !ctx.HasErrors() {
		if _, err := p.Run(nil); err == nil {
			value, err := p.Execute(make(map[*symbols.VariableSymbol]evaluator.Value))
			result.Value = value
			result.Success = err == nil
		}
	}
	ctx.EmitDiagnostics()

	if opts.LogFormat == HTML {
		result.Output = colors.ConvertANSIToHTML(captured.String())
	}
	return result
}

func configFor(opts *Options) (*context_v2.Config, error) {
	var config *context_v2.Config
	var err error
	switch {
	case opts.ProjectFile != "":
		config, err = context_v2.LoadConfig(opts.ProjectFile)
	case len(opts.Trees) > 0:
		config, err = context_v2.ConfigForTrees(opts.Trees)
	case opts.Code != "":
		config = context_v2.DefaultConfig()
	default:
		err = fmt.Errorf("nothing to run: no project file, trees or code")
	}
	if err != nil {
		return nil, err
	}

	config.Debug = config.Debug || opts.Debug
	config.DumpCFG = config.DumpCFG || opts.DumpCFG
	if opts.Seed != 0 {
		config.Seed = opts.Seed
	}
	config.Stdin = opts.Stdin
	config.Stdout = opts.Stdout
	config.Stderr = opts.Stderr
	return config, nil
}
