package bound

import "fmt"

// Rewriter rebuilds a bound tree bottom-up. Any node whose children are all
// unchanged is returned as is, so callers can compare pointers to learn whether
// a subtree changed.
//
// A specialisation sets Stmt and/or Expr. Each hook is offered a node before the
// structural rewrite; returning false falls back to the structural rewrite.
type Rewriter struct {
	Stmt func(Stmt) (Stmt, bool)
	Expr func(Expr) (Expr, bool)
}

// RewriteStmt rewrites one statement.
func (r *Rewriter) RewriteStmt(s Stmt) Stmt {
	if s == nil {
		return nil
	}
	if r.Stmt != nil {
		if out, ok := r.Stmt(s); ok {
			return out
		}
	}
	return r.RewriteStmtChildren(s)
}

// RewriteExpr rewrites one expression.
func (r *Rewriter) RewriteExpr(e Expr) Expr {
	if e == nil {
		return nil
	}
	if r.Expr != nil {
		if out, ok := r.Expr(e); ok {
			return out
		}
	}
	return r.RewriteExprChildren(e)
}

// RewriteBlock rewrites a block, keeping the *BlockStmt type.
func (r *Rewriter) RewriteBlock(b *BlockStmt) *BlockStmt {
	out := r.RewriteStmt(b)
	if block, ok := out.(*BlockStmt); ok {
		return block
	}
	return &BlockStmt{Statements: []Stmt{out}, Location: b.Location}
}

// RewriteStmtChildren applies the rewrite to the children of s only.
func (r *Rewriter) RewriteStmtChildren(s Stmt) Stmt {
	switch s := s.(type) {
	case *BlockStmt:
		stmts, changed := r.rewriteStmts(s.Statements)
		if !changed {
			return s
		}
		return &BlockStmt{Statements: stmts, Location: s.Location}
	case *VarDecl:
		init := r.RewriteExpr(s.Init)
		if init == s.Init {
			return s
		}
		return &VarDecl{Variable: s.Variable, Init: init, Location: s.Location}
	case *ExprStmt:
		x := r.RewriteExpr(s.X)
		if x == s.X {
			return s
		}
		return &ExprStmt{X: x, Location: s.Location}
	case *IfStmt:
		cond := r.RewriteExpr(s.Cond)
		then := r.RewriteStmt(s.Then)
		els := r.RewriteStmt(s.Else)
		if cond == s.Cond && then == s.Then && els == s.Else {
			return s
		}
		return &IfStmt{Cond: cond, Then: then, Else: els, Location: s.Location}
	case *WhileStmt:
		cond := r.RewriteExpr(s.Cond)
		body := r.RewriteStmt(s.Body)
		if cond == s.Cond && body == s.Body {
			return s
		}
		return &WhileStmt{Cond: cond, Body: body, Loop: s.Loop, Location: s.Location}
	case *DoWhileStmt:
		body := r.RewriteStmt(s.Body)
		cond := r.RewriteExpr(s.Cond)
		if cond == s.Cond && body == s.Body {
			return s
		}
		return &DoWhileStmt{Body: body, Cond: cond, Loop: s.Loop, Location: s.Location}
	case *ForStmt:
		lower := r.RewriteExpr(s.Lower)
		upper := r.RewriteExpr(s.Upper)
		body := r.RewriteStmt(s.Body)
		if lower == s.Lower && upper == s.Upper && body == s.Body {
			return s
		}
		return &ForStmt{Variable: s.Variable, Lower: lower, Upper: upper, Body: body, Loop: s.Loop, Location: s.Location}
	case *ForEachStmt:
		iterable := r.RewriteExpr(s.Iterable)
		body := r.RewriteStmt(s.Body)
		if iterable == s.Iterable && body == s.Body {
			return s
		}
		return &ForEachStmt{Variable: s.Variable, Index: s.Index, Iterable: iterable, Body: body, Loop: s.Loop, Location: s.Location}
	case *CondGotoStmt:
		cond := r.RewriteExpr(s.Cond)
		if cond == s.Cond {
			return s
		}
		return &CondGotoStmt{Label: s.Label, Cond: cond, JumpIfTrue: s.JumpIfTrue, Location: s.Location}
	case *ReturnStmt:
		value := r.RewriteExpr(s.Value)
		if value == s.Value {
			return s
		}
		return &ReturnStmt{Value: value, Location: s.Location}
	case *LabelStmt, *GotoStmt, *ErrorStmt:
		return s
	}
	panic(fmt.Sprintf("bound: unexpected statement %T", s))
}

// RewriteExprChildren applies the rewrite to the children of e only.
func (r *Rewriter) RewriteExprChildren(e Expr) Expr {
	switch e := e.(type) {
	case *ErrorExpr, *LiteralExpr, *VariableExpr, *ADTMemberExpr:
		return e
	case *AssignExpr:
		value := r.RewriteExpr(e.Value)
		if value == e.Value {
			return e
		}
		return &AssignExpr{Variable: e.Variable, Value: value, Location: e.Location}
	case *IndexAssignExpr:
		index := r.RewriteExpr(e.Index)
		value := r.RewriteExpr(e.Value)
		if index == e.Index && value == e.Value {
			return e
		}
		return &IndexAssignExpr{Variable: e.Variable, Index: index, Value: value, Location: e.Location}
	case *FieldAssignExpr:
		instance := r.RewriteExpr(e.Instance)
		value := r.RewriteExpr(e.Value)
		if instance == e.Instance && value == e.Value {
			return e
		}
		return &FieldAssignExpr{Instance: instance, Field: e.Field, Value: value, Location: e.Location}
	case *UnaryExpr:
		operand := r.RewriteExpr(e.Operand)
		if operand == e.Operand {
			return e
		}
		return &UnaryExpr{Op: e.Op, Operand: operand, Location: e.Location}
	case *BinaryExpr:
		left := r.RewriteExpr(e.Left)
		right := r.RewriteExpr(e.Right)
		if left == e.Left && right == e.Right {
			return e
		}
		return &BinaryExpr{Left: left, Op: e.Op, Right: right, Location: e.Location}
	case *CallExpr:
		args, changed := r.rewriteExprs(e.Args)
		if !changed {
			return e
		}
		return &CallExpr{Function: e.Function, Args: args, Result: e.Result, Location: e.Location}
	case *MethodCallExpr:
		instance := r.RewriteExpr(e.Instance)
		args, changed := r.rewriteExprs(e.Args)
		if !changed && instance == e.Instance {
			return e
		}
		return &MethodCallExpr{Instance: instance, Method: e.Method, Args: args, Result: e.Result, Location: e.Location}
	case *NewExpr:
		args, changed := r.rewriteExprs(e.Args)
		if !changed {
			return e
		}
		return &NewExpr{Class: e.Class, Args: args, Location: e.Location}
	case *ConversionExpr:
		x := r.RewriteExpr(e.X)
		if x == e.X {
			return e
		}
		return &ConversionExpr{To: e.To, X: x, Location: e.Location}
	case *IndexExpr:
		array := r.RewriteExpr(e.Array)
		index := r.RewriteExpr(e.Index)
		if array == e.Array && index == e.Index {
			return e
		}
		return &IndexExpr{Array: array, Index: index, Location: e.Location}
	case *ArrayExpr:
		elems, changed := r.rewriteExprs(e.Elements)
		if !changed {
			return e
		}
		return &ArrayExpr{Element: e.Element, Elements: elems, Location: e.Location}
	case *FieldExpr:
		instance := r.RewriteExpr(e.Instance)
		if instance == e.Instance {
			return e
		}
		return &FieldExpr{Instance: instance, Field: e.Field, Location: e.Location}
	case *ADTIndexExpr:
		index := r.RewriteExpr(e.Index)
		if index == e.Index {
			return e
		}
		return &ADTIndexExpr{ADT: e.ADT, Index: index, Location: e.Location}
	}
	panic(fmt.Sprintf("bound: unexpected expression %T", e))
}

func (r *Rewriter) rewriteStmts(stmts []Stmt) ([]Stmt, bool) {
	var out []Stmt
	for i, s := range stmts {
		rs := r.RewriteStmt(s)
		if out == nil && rs != s {
			out = make([]Stmt, i, len(stmts))
			copy(out, stmts[:i])
		}
		if out != nil {
			out = append(out, rs)
		}
	}
	if out == nil {
		return stmts, false
	}
	return out, true
}

func (r *Rewriter) rewriteExprs(exprs []Expr) ([]Expr, bool) {
	var out []Expr
	for i, e := range exprs {
		re := r.RewriteExpr(e)
		if out == nil && re != e {
			out = make([]Expr, i, len(exprs))
			copy(out, exprs[:i])
		}
		if out != nil {
			out = append(out, re)
		}
	}
	if out == nil {
		return exprs, false
	}
	return out, true
}
