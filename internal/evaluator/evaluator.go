package evaluator

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"ember/internal/bound"
	"ember/internal/semantics/symbols"
)

// Options configures one evaluation.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer

	// Seed seeds random(). Zero seeds from the clock.
	Seed int64

	// Terminate receives the fault that stopped evaluation. When it returns,
	// Evaluate returns the fault as its error. Nil means DefaultTerminate.
	Terminate func(*Fault)
}

type frame map[*symbols.VariableSymbol]Value

// Evaluator walks lowered bodies.
type Evaluator struct {
	program *bound.Program
	globals map[*symbols.VariableSymbol]Value
	frames  []frame

	// instance is the receiver of the method or constructor being run
	instance *Instance

	labels map[*bound.BlockStmt]map[*symbols.LabelSymbol]int

	stdin  *bufio.Reader
	stdout io.Writer
	rand   *rand.Rand
}

// Evaluate runs the program's entry function. Globals are owned by the caller
// and keep their values across calls, so submissions can build on each other.
// A program without an entry yields nil.
func Evaluate(program *bound.Program, globals map[*symbols.VariableSymbol]Value, opts Options) (result Value, err error) {
	entry := program.Entry()
	if entry == nil {
		return nil, nil
	}

	e := newEvaluator(program, globals, opts)
	terminate := opts.Terminate
	if terminate == nil {
		terminate = DefaultTerminate
	}

	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(*Fault)
			if !ok {
				panic(r)
			}
			terminate(f)
			result, err = nil, f
		}
	}()

	return e.call(entry, nil, nil), nil
}

func newEvaluator(program *bound.Program, globals map[*symbols.VariableSymbol]Value, opts Options) *Evaluator {
	if globals == nil {
		globals = make(map[*symbols.VariableSymbol]Value)
	}
	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Evaluator{
		program: program,
		globals: globals,
		labels:  make(map[*bound.BlockStmt]map[*symbols.LabelSymbol]int),
		stdin:   bufio.NewReader(stdin),
		stdout:  stdout,
		rand:    rand.New(rand.NewSource(seed)),
	}
}

// call runs a user function, method or constructor with already evaluated
// arguments. receiver is the instance for methods and constructors.
func (e *Evaluator) call(fn *symbols.FunctionSymbol, receiver *Instance, args []Value) Value {
	body, ok := e.program.Body(fn)
	if !ok {
		panic(fmt.Sprintf("evaluator: no body for %s", fn))
	}

	f := make(frame, len(fn.Params))
	for i, p := range fn.Params {
		f[p] = args[i]
	}

	savedInstance := e.instance
	e.instance = receiver
	e.frames = append(e.frames, f)
	defer func() {
		e.frames = e.frames[:len(e.frames)-1]
		e.instance = savedInstance
	}()

	return e.run(body)
}

// run executes a flat body. A bare ret, or running off the end, yields the
// value of the last expression statement.
func (e *Evaluator) run(body *bound.BlockStmt) Value {
	labels := e.labelIndex(body)
	var last Value

	for i := 0; i < len(body.Statements); {
		switch s := body.Statements[i].(type) {
		case *bound.VarDecl:
			v := e.eval(s.Init)
			e.assign(s.Variable, v)
			last = v
			i++
		case *bound.ExprStmt:
			last = e.eval(s.X)
			i++
		case *bound.LabelStmt:
			i++
		case *bound.GotoStmt:
			i = labels[s.Label]
		case *bound.CondGotoStmt:
			if e.eval(s.Cond).(bool) == s.JumpIfTrue {
				i = labels[s.Label]
			} else {
				i++
			}
		case *bound.ReturnStmt:
			if s.Value == nil {
				return last
			}
			return e.eval(s.Value)
		default:
			panic(fmt.Sprintf("evaluator: unexpected statement %T", s))
		}
	}
	return last
}

func (e *Evaluator) labelIndex(body *bound.BlockStmt) map[*symbols.LabelSymbol]int {
	if idx, ok := e.labels[body]; ok {
		return idx
	}
	idx := make(map[*symbols.LabelSymbol]int)
	for i, s := range body.Statements {
		if l, ok := s.(*bound.LabelStmt); ok {
			idx[l.Label] = i
		}
	}
	e.labels[body] = idx
	return idx
}

func (e *Evaluator) lookup(v *symbols.VariableSymbol) Value {
	switch v.Kind {
	case symbols.Global:
		return e.globals[v]
	case symbols.Field:
		field, _ := e.instance.Class.Field(v.Name)
		return e.instance.Fields[field]
	}
	return e.frames[len(e.frames)-1][v]
}

func (e *Evaluator) assign(v *symbols.VariableSymbol, value Value) {
	switch v.Kind {
	case symbols.Global:
		e.globals[v] = value
	case symbols.Field:
		field, _ := e.instance.Class.Field(v.Name)
		e.instance.Fields[field] = value
	default:
		e.frames[len(e.frames)-1][v] = value
	}
}
