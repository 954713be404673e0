package ast

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"ember/internal/source"
	"ember/internal/tokens"

	"gopkg.in/yaml.v3"
)

// Syntax trees arrive from the parser layer as YAML documents:
//
//	file: main.em
//	members:
//	  - kind: fn
//	    name: add
//	    at: "1:1-3:2"
//	    params: [{name: a, type: int}, {name: b, type: int}]
//	    returns: int
//	    body:
//	      - {kind: ret, value: {kind: binary, op: "+", left: {kind: name, name: a}, right: {kind: name, name: b}}}
//	  - {kind: call, name: print, args: ["hi"]}
//
// Scalars in expression position are literals. Expressions in statement
// position are expression statements, statements in member position are global
// statements.

var ErrUnknownKind = errors.New("unknown node kind")

type nodeCategoryDecoder func(*decoder, map[string]any, string) (Node, bool, error)

var nodeDecoders []nodeCategoryDecoder

func init() {
	nodeDecoders = []nodeCategoryDecoder{
		(*decoder).decodeDeclarationNodes,
		(*decoder).decodeStatementNodes,
		(*decoder).decodeControlFlowNodes,
		(*decoder).decodeExpressionNodes,
		(*decoder).decodeMemberAccessNodes,
	}
}

type decoder struct {
	file string
}

// ParseFile reads and decodes one syntax-tree document from disk.
func ParseFile(path string) (*Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("syntax tree: open %s: %w", path, err)
	}
	defer f.Close()
	return DecodeModule(f, path)
}

// DecodeModule decodes one syntax-tree document. filePath is used when the
// document carries no `file` key.
func DecodeModule(r io.Reader, filePath string) (*Module, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("syntax tree: parse %s: %w", filePath, err)
	}
	if file, ok := raw["file"].(string); ok && file != "" {
		filePath = file
	}

	d := &decoder{file: filePath}
	module := &Module{FilePath: filePath}
	module.Filename = &module.FilePath

	for i, item := range list(raw["members"]) {
		member, err := d.member(item)
		if err != nil {
			return nil, fmt.Errorf("syntax tree: %s: member %d: %w", filePath, i, err)
		}
		module.Members = append(module.Members, member)
	}
	return module, nil
}

func (d *decoder) node(node map[string]any) (Node, error) {
	kind, _ := node["kind"].(string)
	for _, decode := range nodeDecoders {
		decoded, handled, err := decode(d, node, kind)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		if handled {
			return decoded, nil
		}
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
}

func (d *decoder) member(v any) (Member, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a mapping, got %T", v)
	}
	n, err := d.node(m)
	if err != nil {
		return nil, err
	}
	switch n := n.(type) {
	case Member:
		return n, nil
	case Statement:
		return &GlobalStatement{Statement: n, Location: *n.Loc()}, nil
	case Expression:
		return &GlobalStatement{Statement: &ExprStmt{X: n, Location: *n.Loc()}, Location: *n.Loc()}, nil
	}
	return nil, fmt.Errorf("%T cannot appear at the top level", n)
}

func (d *decoder) statement(v any) (Statement, error) {
	if v == nil {
		return nil, nil
	}
	if items, ok := v.([]any); ok {
		return d.block(items, nil)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a statement mapping, got %T", v)
	}
	n, err := d.node(m)
	if err != nil {
		return nil, err
	}
	switch n := n.(type) {
	case Statement:
		return n, nil
	case Expression:
		return &ExprStmt{X: n, Location: *n.Loc()}, nil
	}
	return nil, fmt.Errorf("%T is not a statement", n)
}

func (d *decoder) block(items []any, at any) (*BlockStmt, error) {
	b := &BlockStmt{Location: d.span(at)}
	for _, item := range items {
		s, err := d.statement(item)
		if err != nil {
			return nil, err
		}
		b.Statements = append(b.Statements, s)
	}
	return b, nil
}

// body decodes a statement list or a {kind: block} mapping into a block.
func (d *decoder) body(v any) (*BlockStmt, error) {
	s, err := d.statement(v)
	if err != nil || s == nil {
		return &BlockStmt{}, err
	}
	if b, ok := s.(*BlockStmt); ok {
		return b, nil
	}
	return &BlockStmt{Statements: []Statement{s}, Location: *s.Loc()}, nil
}

func (d *decoder) expr(v any) (Expression, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		n, err := d.node(v)
		if err != nil {
			return nil, err
		}
		e, ok := n.(Expression)
		if !ok {
			return nil, fmt.Errorf("%T is not an expression", n)
		}
		return e, nil
	default:
		value, err := literalValue(v)
		if err != nil {
			return nil, err
		}
		return &LiteralExpr{Value: value}, nil
	}
}

func (d *decoder) exprs(v any) ([]Expression, error) {
	var out []Expression
	for _, item := range list(v) {
		e, err := d.expr(item)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (d *decoder) typeClause(v any) *TypeClause {
	name, ok := v.(string)
	if !ok || name == "" {
		return nil
	}
	t := &TypeClause{Name: name}
	if strings.HasSuffix(name, "[]") {
		t.Name = strings.TrimSuffix(name, "[]")
		t.Array = true
	}
	t.Filename = &d.file
	return t
}

// span parses "line:col" or "line:col-line:col".
func (d *decoder) span(v any) source.Location {
	loc := source.Location{Filename: &d.file}
	text, ok := v.(string)
	if !ok || text == "" {
		return loc
	}
	var sl, sc, el, ec int
	if n, _ := fmt.Sscanf(text, "%d:%d-%d:%d", &sl, &sc, &el, &ec); n == 4 {
		return *source.Span(d.file, sl, sc, el, ec)
	}
	if n, _ := fmt.Sscanf(text, "%d:%d", &sl, &sc); n == 2 {
		return *source.Span(d.file, sl, sc, sl, sc)
	}
	return loc
}

// spanOf returns at when the node carried one, otherwise the span from the
// start of first to the end of last when both are placed.
func spanOf(at source.Location, first, last Node) source.Location {
	if at.Start != nil {
		return at
	}
	from, to := first.Loc(), last.Loc()
	if from.Start == nil || to.Start == nil {
		return at
	}
	return *from.Merge(to)
}

func literalValue(v any) (any, error) {
	switch v := v.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case uint64:
		return int64(v), nil
	case float64:
		return v, nil
	case bool, string:
		return v, nil
	}
	return nil, fmt.Errorf("unsupported literal %v (%T)", v, v)
}

func list(v any) []any {
	items, _ := v.([]any)
	return items
}

func str(node map[string]any, key string) string {
	s, _ := node[key].(string)
	return s
}

func flag(node map[string]any, key string) bool {
	b, _ := node[key].(bool)
	return b
}

func (d *decoder) operator(node map[string]any, valid func(string) bool) (tokens.TOKEN, error) {
	op := str(node, "op")
	if !valid(op) {
		return "", fmt.Errorf("invalid operator %q", op)
	}
	return tokens.TOKEN(op), nil
}
