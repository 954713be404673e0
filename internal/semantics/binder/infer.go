package binder

import (
	"ember/internal/bound"
	"ember/internal/lowerer"
	"ember/internal/semantics/controlflow"
	"ember/internal/semantics/symbols"
	"ember/internal/types"
)

// returnTypeOf returns fn's return type, inferring it on first demand. A
// function asking for its own type while being inferred gets unknown.
func (b *Binder) returnTypeOf(fn *symbols.FunctionSymbol) *types.TypeSymbol {
	if !fn.NeedsInference() {
		return fn.ReturnType()
	}
	if b.inferring[fn] {
		return types.Unknown
	}

	b.inferring[fn] = true
	t := b.inferReturnType(fn)
	delete(b.inferring, fn)

	fn.SetInferredReturnType(t)
	return fn.ReturnType()
}

// inferReturnType binds the body under a copy of fn that returns unknown, so
// every ret is accepted as written, and takes the type of the first ret the
// control flow graph reaches. Diagnostics of the trial are discarded; the body
// is bound for real later.
func (b *Binder) inferReturnType(fn *symbols.FunctionSymbol) *types.TypeSymbol {
	trial := fn.WithReturnType(types.Unknown)
	spec := b.speculative()
	ctx := spec.functionContext(fn)
	ctx.function = trial

	if fn.Decl.ExprBody != nil {
		t := spec.bindExpression(ctx, fn.Decl.ExprBody, nil).Type()
		if t.IsVoid() {
			return types.Void
		}
		return t
	}

	body := spec.bindBlock(ctx, fn.Decl.Body)
	flat := lowerer.Flatten(lowerer.New().Rewrite(body), false)
	return firstReturnType(controlflow.Create(flat))
}

// firstReturnType walks the graph breadth first from Start and returns the type
// of the first ret it meets, or void when no ret is reachable. A ret whose value
// is still unknown, such as a recursive call, is passed over while a later one
// has a type.
func firstReturnType(cfg *controlflow.ControlFlowGraph) *types.TypeSymbol {
	seen := map[*controlflow.BasicBlock]bool{cfg.Start: true}
	queue := []*controlflow.BasicBlock{cfg.Start}
	found := false
	for len(queue) > 0 {
		block := queue[0]
		queue = queue[1:]

		for _, s := range block.Statements {
			ret, ok := s.(*bound.ReturnStmt)
			if !ok {
				continue
			}
			if ret.Value == nil {
				return types.Void
			}
			if !isUnknown(ret.Value.Type()) {
				return ret.Value.Type()
			}
			found = true
		}

		for _, branch := range block.Outgoing {
			if !seen[branch.To] {
				seen[branch.To] = true
				queue = append(queue, branch.To)
			}
		}
	}
	if found {
		return types.Unknown
	}
	return types.Void
}
