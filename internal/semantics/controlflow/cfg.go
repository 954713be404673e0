package controlflow

import (
	"fmt"
	"strings"

	"ember/internal/bound"
	"ember/internal/semantics/operators"
	"ember/internal/semantics/symbols"
	"ember/internal/tokens"
	"ember/internal/types"
)

// ControlFlowGraph represents the control flow structure of one lowered body
type ControlFlowGraph struct {
	Start    *BasicBlock // synthetic entry, holds no statements
	End      *BasicBlock // synthetic exit, every return leads here
	Blocks   []*BasicBlock
	Branches []*BasicBlockBranch
}

// BasicBlock represents a sequence of statements with single entry and exit
type BasicBlock struct {
	ID         int // Unique identifier
	IsStart    bool
	IsEnd      bool
	Statements []bound.Stmt
	Incoming   []*BasicBlockBranch
	Outgoing   []*BasicBlockBranch
}

func (b *BasicBlock) String() string {
	switch {
	case b.IsStart:
		return "<Start>"
	case b.IsEnd:
		return "<End>"
	}
	var sb strings.Builder
	for _, s := range b.Statements {
		sb.WriteString(bound.Format(s))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// BasicBlockBranch is an edge. A nil Condition means the edge is always taken.
type BasicBlockBranch struct {
	From      *BasicBlock
	To        *BasicBlock
	Condition bound.Expr
}

func (b *BasicBlockBranch) String() string {
	if b.Condition == nil {
		return ""
	}
	return bound.FormatExpr(b.Condition)
}

// Create partitions a flat, lowered statement list into basic blocks, connects
// them and prunes every block nothing can reach.
func Create(body *bound.BlockStmt) *ControlFlowGraph {
	b := &builder{}
	cfg := &ControlFlowGraph{
		Start: &BasicBlock{ID: 0, IsStart: true},
	}
	blocks := b.partition(body.Statements)
	cfg.End = &BasicBlock{ID: len(blocks) + 1, IsEnd: true}

	b.cfg = cfg
	b.connectBlocks(blocks)

	cfg.Blocks = append([]*BasicBlock{cfg.Start}, blocks...)
	cfg.Blocks = append(cfg.Blocks, cfg.End)
	cfg.removeUnreachable()
	return cfg
}

type builder struct {
	cfg     *ControlFlowGraph
	blocks  []*BasicBlock
	current []bound.Stmt
}

// partition starts a new block at every label and after every jump or return.
func (b *builder) partition(stmts []bound.Stmt) []*BasicBlock {
	for _, s := range stmts {
		switch s.(type) {
		case *bound.LabelStmt:
			b.endBlock()
			b.current = append(b.current, s)
		case *bound.GotoStmt, *bound.CondGotoStmt, *bound.ReturnStmt:
			b.current = append(b.current, s)
			b.endBlock()
		case *bound.VarDecl, *bound.ExprStmt, *bound.ErrorStmt:
			b.current = append(b.current, s)
		default:
			panic(fmt.Sprintf("controlflow: unexpected statement %T in lowered body", s))
		}
	}
	b.endBlock()
	return b.blocks
}

func (b *builder) endBlock() {
	if len(b.current) == 0 {
		return
	}
	b.blocks = append(b.blocks, &BasicBlock{ID: len(b.blocks) + 1, Statements: b.current})
	b.current = nil
}

func (b *builder) connectBlocks(blocks []*BasicBlock) {
	targets := make(map[*symbols.LabelSymbol]*BasicBlock)
	for _, block := range blocks {
		for _, s := range block.Statements {
			if l, ok := s.(*bound.LabelStmt); ok {
				targets[l.Label] = block
			}
		}
	}

	if len(blocks) == 0 {
		b.connect(b.cfg.Start, b.cfg.End, nil)
		return
	}
	b.connect(b.cfg.Start, blocks[0], nil)

	for i, block := range blocks {
		next := b.cfg.End
		if i+1 < len(blocks) {
			next = blocks[i+1]
		}
		for j, s := range block.Statements {
			isLast := j == len(block.Statements)-1
			switch s := s.(type) {
			case *bound.GotoStmt:
				b.connect(block, b.target(targets, s.Label), nil)
			case *bound.CondGotoStmt:
				negated := Negate(s.Cond)
				thenCond, elseCond := s.Cond, negated
				if !s.JumpIfTrue {
					thenCond, elseCond = negated, s.Cond
				}
				b.connect(block, b.target(targets, s.Label), thenCond)
				b.connect(block, next, elseCond)
			case *bound.ReturnStmt:
				b.connect(block, b.cfg.End, nil)
			default:
				if isLast {
					b.connect(block, next, nil)
				}
			}
		}
	}
}

func (b *builder) target(targets map[*symbols.LabelSymbol]*BasicBlock, label *symbols.LabelSymbol) *BasicBlock {
	block, ok := targets[label]
	if !ok {
		panic(fmt.Sprintf("controlflow: jump to undefined label %s", label))
	}
	return block
}

// connect adds an edge. A literal true guard becomes unconditional and a literal
// false guard drops the edge.
func (b *builder) connect(from, to *BasicBlock, cond bound.Expr) {
	if lit, ok := cond.(*bound.LiteralExpr); ok {
		if v, isBool := lit.Value.(bool); isBool {
			if !v {
				return
			}
			cond = nil
		}
	}
	branch := &BasicBlockBranch{From: from, To: to, Condition: cond}
	from.Outgoing = append(from.Outgoing, branch)
	to.Incoming = append(to.Incoming, branch)
	b.cfg.Branches = append(b.cfg.Branches, branch)
}

// Negate wraps a guard in a logical not. Literals are not folded, so the
// complement edge of a literal guard is always kept.
func Negate(cond bound.Expr) bound.Expr {
	op, ok := operators.BindUnary(tokens.NOT_TOKEN, types.Bool)
	if !ok {
		panic("controlflow: no logical negation for bool")
	}
	return &bound.UnaryExpr{Op: op, Operand: cond, Location: *cond.Loc()}
}

// removeUnreachable drops every block Start cannot reach, cycles included.
func (cfg *ControlFlowGraph) removeUnreachable() {
	live := make(map[*BasicBlock]bool)
	work := []*BasicBlock{cfg.Start}
	for len(work) > 0 {
		block := work[len(work)-1]
		work = work[:len(work)-1]
		if live[block] {
			continue
		}
		live[block] = true
		for _, branch := range block.Outgoing {
			work = append(work, branch.To)
		}
	}

	kept := make([]*BasicBlock, 0, len(cfg.Blocks))
	for _, block := range cfg.Blocks {
		if block.IsStart || block.IsEnd || live[block] {
			kept = append(kept, block)
			continue
		}
		cfg.removeBlock(block)
	}
	cfg.Blocks = kept
}

func (cfg *ControlFlowGraph) removeBlock(block *BasicBlock) {
	for _, branch := range block.Outgoing {
		branch.To.Incoming = removeBranch(branch.To.Incoming, branch)
		cfg.Branches = removeBranch(cfg.Branches, branch)
	}
	for _, branch := range block.Incoming {
		branch.From.Outgoing = removeBranch(branch.From.Outgoing, branch)
		cfg.Branches = removeBranch(cfg.Branches, branch)
	}
	block.Outgoing = nil
	block.Incoming = nil
}

func removeBranch(list []*BasicBlockBranch, b *BasicBlockBranch) []*BasicBlockBranch {
	out := list[:0]
	for _, x := range list {
		if x != b {
			out = append(out, x)
		}
	}
	return out
}

// ReachableStatements returns the set of statements that survive pruning.
func (cfg *ControlFlowGraph) ReachableStatements() map[bound.Stmt]bool {
	set := make(map[bound.Stmt]bool)
	for _, block := range cfg.Blocks {
		for _, s := range block.Statements {
			set[s] = true
		}
	}
	return set
}

// RemoveUnreachable filters body down to the statements the graph reaches,
// keeping their order. The body itself is returned when nothing was dropped.
func (cfg *ControlFlowGraph) RemoveUnreachable(body *bound.BlockStmt) *bound.BlockStmt {
	reachable := cfg.ReachableStatements()
	kept := make([]bound.Stmt, 0, len(body.Statements))
	for _, s := range body.Statements {
		if reachable[s] {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(body.Statements) {
		return body
	}
	return &bound.BlockStmt{Statements: kept, Location: body.Location}
}

// AllPathsReturn reports whether every edge into End leaves a block that ends in
// a return.
func (cfg *ControlFlowGraph) AllPathsReturn() bool {
	for _, branch := range cfg.End.Incoming {
		stmts := branch.From.Statements
		if len(stmts) == 0 {
			return false
		}
		if _, ok := stmts[len(stmts)-1].(*bound.ReturnStmt); !ok {
			return false
		}
	}
	return true
}

// String renders the graph in Graphviz dot syntax.
func (cfg *ControlFlowGraph) String() string {
	quote := func(s string) string {
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		return "\"" + strings.ReplaceAll(s, "\n", "\\l") + "\""
	}

	var sb strings.Builder
	sb.WriteString("digraph G {\n")
	for _, block := range cfg.Blocks {
		fmt.Fprintf(&sb, "    N%d [label = %s, shape = box]\n", block.ID, quote(block.String()))
	}
	for _, branch := range cfg.Branches {
		fmt.Fprintf(&sb, "    N%d -> N%d [label = %s]\n", branch.From.ID, branch.To.ID, quote(branch.String()))
	}
	sb.WriteString("}\n")
	return sb.String()
}
