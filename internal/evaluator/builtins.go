package evaluator

import (
	"fmt"
	"io"
	"strings"

	"ember/colors"
	"ember/internal/bound"
	"ember/internal/builtins"
	"ember/internal/diagnostics"
)

func (e *Evaluator) callBuiltin(x *bound.CallExpr, args []Value) Value {
	switch x.Function {
	case builtins.PrintString, builtins.PrintInt, builtins.PrintFloat, builtins.PrintBool:
		fmt.Fprintln(e.stdout, Format(args[0]))
		return nil
	case builtins.Input:
		line, err := e.stdin.ReadString('\n')
		if err != nil && err != io.EOF {
			panic(fault(diagnostics.FaultInvalidArgument, x.Loc(), "input: %v", err))
		}
		return strings.TrimRight(line, "\r\n")
	case builtins.Random:
		limit := args[0].(int64)
		if limit <= 0 {
			panic(fault(diagnostics.FaultInvalidArgument, x.Loc(), "random: max must be positive, got %d", limit))
		}
		return e.rand.Int63n(limit)
	case builtins.Range:
		start, end := args[0].(int64), args[1].(int64)
		out := Array{}
		for i := start; i < end; i++ {
			out = append(out, i)
		}
		return out
	case builtins.Clear:
		fmt.Fprint(e.stdout, colors.ClearScreen+colors.CursorHome)
		return nil
	}
	panic(fmt.Sprintf("evaluator: unknown built-in %s", x.Function))
}
