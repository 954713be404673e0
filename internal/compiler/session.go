package compiler

import (
	"errors"
	"fmt"
	"strings"

	"ember/internal/bound"
	"ember/internal/context_v2"
	"ember/internal/diagnostics"
	"ember/internal/evaluator"
	"ember/internal/frontend/ast"
	"ember/internal/pipeline"
	"ember/internal/semantics/symbols"
)

// Session accumulates submissions: each one sees the declarations and global
// values of every earlier submission that bound without errors.
type Session struct {
	config   *context_v2.Config
	previous *bound.Program
	globals  map[*symbols.VariableSymbol]evaluator.Value
	count    int
}

// Submission is the outcome of one Submit call
type Submission struct {
	Value       evaluator.Value
	Diagnostics []*diagnostics.Diagnostic
	Fault       *evaluator.Fault
}

func NewSession(config *context_v2.Config) *Session {
	if config == nil {
		config = context_v2.DefaultConfig()
	}
	return &Session{
		config:  config,
		globals: make(map[*symbols.VariableSymbol]evaluator.Value),
	}
}

// SubmitDocument decodes one syntax-tree document and submits it.
func (s *Session) SubmitDocument(src string) (*Submission, error) {
	name := fmt.Sprintf("<submission %d>", s.count+1)
	tree, err := ast.DecodeModule(strings.NewReader(src), name)
	if err != nil {
		return nil, err
	}
	return s.Submit(tree)
}

// Submit binds a tree on top of the earlier submissions and runs it. A
// submission with errors leaves the session unchanged; one that faults keeps
// its declarations and whatever globals it assigned before faulting.
func (s *Session) Submit(tree *ast.Module) (*Submission, error) {
	s.count++
	config := *s.config
	config.Trees = nil
	ctx := context_v2.New(&config, config.Debug)

	p := pipeline.New(ctx)
	p.AddTree(tree)
	program, err := p.Run(s.previous)
	sub := &Submission{Diagnostics: ctx.Diagnostics.Diagnostics()}
	if err != nil {
		return sub, err
	}
	s.previous = program

	sub.Value, err = p.Execute(s.globals)
	if err != nil {
		var fault *evaluator.Fault
		if errors.As(err, &fault) {
			sub.Fault = fault
		}
		return sub, err
	}
	return sub, nil
}

// Globals returns the visible global values by name. A global redeclared by
// a later submission hides the earlier one.
func (s *Session) Globals() map[string]evaluator.Value {
	out := make(map[string]evaluator.Value)
	if s.previous == nil {
		return out
	}
	for g := s.previous.Global; g != nil; g = g.Previous {
		for _, v := range g.Variables {
			if _, hidden := out[v.Name]; hidden {
				continue
			}
			if value, ok := s.globals[v]; ok {
				out[v.Name] = value
			}
		}
	}
	return out
}
