package lowerer

import (
	"fmt"

	"ember/internal/bound"
	"ember/internal/semantics/controlflow"
	"ember/internal/semantics/operators"
	"ember/internal/semantics/symbols"
	"ember/internal/tokens"
	"ember/internal/types"
)

// Lowerer rewrites structured control flow into labels and jumps. Labels are
// numbered per instance.
type Lowerer struct {
	labelCount int
	rewriter   bound.Rewriter
}

// New creates a new lowerer.
func New() *Lowerer {
	l := &Lowerer{}
	l.rewriter.Stmt = l.lowerStmt
	return l
}

// Lower turns a bound body into the flat form evaluation runs: structured
// statements become jumps, nested blocks are flattened, void functions get a
// closing ret, and statements the graph never reaches are dropped.
func Lower(fn *symbols.FunctionSymbol, body bound.Stmt) *bound.BlockStmt {
	lowered := New().Rewrite(body)
	appendReturn := fn == nil || (fn.ReturnType() != nil && fn.ReturnType().IsVoid())
	flat := Flatten(lowered, appendReturn)
	return controlflow.Create(flat).RemoveUnreachable(flat)
}

// Rewrite lowers every structured statement in body.
func (l *Lowerer) Rewrite(body bound.Stmt) bound.Stmt {
	return l.rewriter.RewriteStmt(body)
}

func (l *Lowerer) genLabel() *symbols.LabelSymbol {
	l.labelCount++
	return symbols.NewLabel(fmt.Sprintf("Label%d", l.labelCount))
}

func (l *Lowerer) lowerStmt(s bound.Stmt) (bound.Stmt, bool) {
	var out bound.Stmt
	switch s := s.(type) {
	case *bound.IfStmt:
		out = l.lowerIf(s)
	case *bound.WhileStmt:
		out = l.lowerWhile(s)
	case *bound.DoWhileStmt:
		out = l.lowerDoWhile(s)
	case *bound.ForStmt:
		out = l.lowerFor(s)
	case *bound.ForEachStmt:
		out = l.lowerForEach(s)
	default:
		return nil, false
	}
	return l.rewriter.RewriteStmt(out), true
}

// if c {A}          -> gotoFalse end c; A; end:
// if c {A} else {B} -> gotoFalse else c; A; goto end; else: B; end:
func (l *Lowerer) lowerIf(s *bound.IfStmt) bound.Stmt {
	if s.Else == nil {
		end := l.genLabel()
		return &bound.BlockStmt{Location: s.Location, Statements: []bound.Stmt{
			&bound.CondGotoStmt{Label: end, Cond: s.Cond, JumpIfTrue: false, Location: s.Location},
			s.Then,
			&bound.LabelStmt{Label: end},
		}}
	}

	elseLabel := l.genLabel()
	end := l.genLabel()
	return &bound.BlockStmt{Location: s.Location, Statements: []bound.Stmt{
		&bound.CondGotoStmt{Label: elseLabel, Cond: s.Cond, JumpIfTrue: false, Location: s.Location},
		s.Then,
		&bound.GotoStmt{Label: end},
		&bound.LabelStmt{Label: elseLabel},
		s.Else,
		&bound.LabelStmt{Label: end},
	}}
}

// while c {B} -> goto continue; body: B; continue: gotoTrue body c; break:
func (l *Lowerer) lowerWhile(s *bound.WhileStmt) bound.Stmt {
	body := l.genLabel()
	return &bound.BlockStmt{Location: s.Location, Statements: []bound.Stmt{
		&bound.GotoStmt{Label: s.Loop.Continue},
		&bound.LabelStmt{Label: body},
		s.Body,
		&bound.LabelStmt{Label: s.Loop.Continue},
		&bound.CondGotoStmt{Label: body, Cond: s.Cond, JumpIfTrue: true, Location: *s.Cond.Loc()},
		&bound.LabelStmt{Label: s.Loop.Break},
	}}
}

// do {B} while c -> body: B; continue: gotoTrue body c; break:
func (l *Lowerer) lowerDoWhile(s *bound.DoWhileStmt) bound.Stmt {
	body := l.genLabel()
	return &bound.BlockStmt{Location: s.Location, Statements: []bound.Stmt{
		&bound.LabelStmt{Label: body},
		s.Body,
		&bound.LabelStmt{Label: s.Loop.Continue},
		&bound.CondGotoStmt{Label: body, Cond: s.Cond, JumpIfTrue: true, Location: *s.Cond.Loc()},
		&bound.LabelStmt{Label: s.Loop.Break},
	}}
}

// for v = lo -> hi {B} ->
//
//	{
//	    var v = lo
//	    let upperBound = hi
//	    while v <= upperBound {
//	        B
//	        continue:
//	        v = v + 1
//	    }
//	}
func (l *Lowerer) lowerFor(s *bound.ForStmt) bound.Stmt {
	upper := symbols.NewVariable("upperBound", s.Variable.Kind, types.Int, false)
	v := &bound.VariableExpr{Variable: s.Variable, Location: s.Location}

	cond := &bound.BinaryExpr{
		Left:     v,
		Op:       mustBinary(tokens.LESS_EQUAL_TOKEN, types.Int, types.Int),
		Right:    &bound.VariableExpr{Variable: upper, Location: s.Location},
		Location: s.Location,
	}
	increment := &bound.ExprStmt{X: &bound.AssignExpr{
		Variable: s.Variable,
		Value: &bound.BinaryExpr{
			Left:  v,
			Op:    mustBinary(tokens.PLUS_TOKEN, types.Int, types.Int),
			Right: &bound.LiteralExpr{Value: int64(1)},
		},
		Location: s.Location,
	}}

	loop := &bound.WhileStmt{
		Cond: cond,
		Body: &bound.BlockStmt{Statements: []bound.Stmt{
			s.Body,
			&bound.LabelStmt{Label: s.Loop.Continue},
			increment,
		}},
		Loop:     bound.Loop{Break: s.Loop.Break, Continue: l.genLabel()},
		Location: s.Location,
	}

	return &bound.BlockStmt{Location: s.Location, Statements: []bound.Stmt{
		&bound.VarDecl{Variable: s.Variable, Init: s.Lower, Location: s.Location},
		&bound.VarDecl{Variable: upper, Init: s.Upper, Location: s.Location},
		loop,
	}}
}

// for x[, i] in arr {B} ->
//
//	{
//	    let $array = arr
//	    for i = 0 -> (+$array) - 1 {
//	        let x = $array[i]
//	        B
//	    }
//	}
//
// $i stands in for i when no index binder is written.
func (l *Lowerer) lowerForEach(s *bound.ForEachStmt) bound.Stmt {
	arrayType := s.Iterable.Type()
	array := symbols.NewVariable("$array", s.Variable.Kind, arrayType, false)
	index := s.Index
	if index == nil {
		index = symbols.NewVariable("$i", s.Variable.Kind, types.Int, true)
	}
	arrayRef := &bound.VariableExpr{Variable: array, Location: s.Location}

	length := &bound.UnaryExpr{Op: mustUnary(tokens.PLUS_TOKEN, arrayType), Operand: arrayRef}
	last := &bound.BinaryExpr{
		Left:  length,
		Op:    mustBinary(tokens.MINUS_TOKEN, types.Int, types.Int),
		Right: &bound.LiteralExpr{Value: int64(1)},
	}
	element := &bound.VarDecl{
		Variable: s.Variable,
		Init:     &bound.IndexExpr{Array: arrayRef, Index: &bound.VariableExpr{Variable: index}},
		Location: s.Location,
	}

	return &bound.BlockStmt{Location: s.Location, Statements: []bound.Stmt{
		&bound.VarDecl{Variable: array, Init: s.Iterable, Location: s.Location},
		&bound.ForStmt{
			Variable: index,
			Lower:    &bound.LiteralExpr{Value: int64(0)},
			Upper:    last,
			Body:     &bound.BlockStmt{Statements: []bound.Stmt{element, s.Body}},
			Loop:     s.Loop,
			Location: s.Location,
		},
	}}
}

func mustUnary(tok tokens.TOKEN, operand *types.TypeSymbol) *operators.UnaryOperator {
	op, ok := operators.BindUnary(tok, operand)
	if !ok {
		panic(fmt.Sprintf("lowerer: no unary %s for %s", tok, operand))
	}
	return op
}

func mustBinary(tok tokens.TOKEN, left, right *types.TypeSymbol) *operators.BinaryOperator {
	op, ok := operators.BindBinary(tok, left, right)
	if !ok {
		panic(fmt.Sprintf("lowerer: no binary %s for %s and %s", tok, left, right))
	}
	return op
}
