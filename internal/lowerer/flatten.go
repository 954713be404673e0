package lowerer

import (
	"ember/internal/bound"
)

// Flatten turns nested blocks into one linear statement list. With
// appendReturn set, a bare ret closes the list when control could otherwise run
// off its end.
func Flatten(s bound.Stmt, appendReturn bool) *bound.BlockStmt {
	var out []bound.Stmt
	stack := []bound.Stmt{s}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if block, ok := current.(*bound.BlockStmt); ok {
			for i := len(block.Statements) - 1; i >= 0; i-- {
				stack = append(stack, block.Statements[i])
			}
			continue
		}
		out = append(out, current)
	}

	if appendReturn && (len(out) == 0 || CanFallThrough(out[len(out)-1])) {
		out = append(out, &bound.ReturnStmt{})
	}
	return &bound.BlockStmt{Statements: out, Location: *s.Loc()}
}

// CanFallThrough reports whether control may continue past s.
func CanFallThrough(s bound.Stmt) bool {
	switch s.(type) {
	case *bound.ReturnStmt, *bound.GotoStmt:
		return false
	}
	return true
}
