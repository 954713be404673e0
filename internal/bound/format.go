package bound

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders a statement as indented pseudo-source, one statement per line.
// Lowered bodies come out as a flat goto/label listing.
func Format(s Stmt) string {
	var sb strings.Builder
	writeStmt(&sb, s, 0)
	return sb.String()
}

// FormatExpr renders an expression on one line.
func FormatExpr(e Expr) string {
	switch e := e.(type) {
	case nil:
		return ""
	case *ErrorExpr:
		return "?"
	case *LiteralExpr:
		switch v := e.Value.(type) {
		case string:
			return strconv.Quote(v)
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		default:
			return fmt.Sprint(v)
		}
	case *VariableExpr:
		return e.Variable.Name
	case *AssignExpr:
		return e.Variable.Name + " = " + FormatExpr(e.Value)
	case *IndexAssignExpr:
		return e.Variable.Name + "[" + FormatExpr(e.Index) + "] = " + FormatExpr(e.Value)
	case *FieldAssignExpr:
		return receiver(e.Instance) + e.Field.Variable.Name + " = " + FormatExpr(e.Value)
	case *UnaryExpr:
		return string(e.Op.Token) + FormatExpr(e.Operand)
	case *BinaryExpr:
		return "(" + FormatExpr(e.Left) + " " + string(e.Op.Token) + " " + FormatExpr(e.Right) + ")"
	case *CallExpr:
		return e.Function.Name + "(" + formatArgs(e.Args) + ")"
	case *MethodCallExpr:
		recv := receiver(e.Instance)
		if e.Instance == nil && e.Method.Static {
			recv = e.Method.Owner.Name + "."
		}
		return recv + e.Method.Name + "(" + formatArgs(e.Args) + ")"
	case *NewExpr:
		return e.Class.Name + "(" + formatArgs(e.Args) + ")"
	case *ConversionExpr:
		return e.To.String() + "(" + FormatExpr(e.X) + ")"
	case *IndexExpr:
		return FormatExpr(e.Array) + "[" + FormatExpr(e.Index) + "]"
	case *ArrayExpr:
		return "[" + formatArgs(e.Elements) + "]"
	case *FieldExpr:
		return receiver(e.Instance) + e.Field.Variable.Name
	case *ADTMemberExpr:
		return e.ADT.Name + "." + e.ADT.Members[e.Ordinal]
	case *ADTIndexExpr:
		return e.ADT.Name + "[" + FormatExpr(e.Index) + "]"
	}
	panic(fmt.Sprintf("bound: unexpected expression %T", e))
}

func receiver(instance Expr) string {
	if instance == nil {
		return ""
	}
	return FormatExpr(instance) + "."
}

func formatArgs(args []Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = FormatExpr(a)
	}
	return strings.Join(parts, ", ")
}

func writeStmt(sb *strings.Builder, s Stmt, depth int) {
	indent := strings.Repeat("    ", depth)
	line := func(format string, args ...any) {
		sb.WriteString(indent)
		fmt.Fprintf(sb, format, args...)
		sb.WriteByte('\n')
	}

	switch s := s.(type) {
	case *BlockStmt:
		line("{")
		for _, st := range s.Statements {
			writeStmt(sb, st, depth+1)
		}
		line("}")
	case *VarDecl:
		kw := "let"
		if s.Variable.Mutable {
			kw = "var"
		}
		line("%s %s = %s", kw, s.Variable.Name, FormatExpr(s.Init))
	case *ExprStmt:
		line("%s", FormatExpr(s.X))
	case *IfStmt:
		line("if %s", FormatExpr(s.Cond))
		writeStmt(sb, s.Then, depth+1)
		if s.Else != nil {
			line("else")
			writeStmt(sb, s.Else, depth+1)
		}
	case *WhileStmt:
		line("while %s", FormatExpr(s.Cond))
		writeStmt(sb, s.Body, depth+1)
	case *DoWhileStmt:
		line("do")
		writeStmt(sb, s.Body, depth+1)
		line("while %s", FormatExpr(s.Cond))
	case *ForStmt:
		line("for %s = %s -> %s", s.Variable.Name, FormatExpr(s.Lower), FormatExpr(s.Upper))
		writeStmt(sb, s.Body, depth+1)
	case *ForEachStmt:
		if s.Index != nil {
			line("for %s, %s in %s", s.Variable.Name, s.Index.Name, FormatExpr(s.Iterable))
		} else {
			line("for %s in %s", s.Variable.Name, FormatExpr(s.Iterable))
		}
		writeStmt(sb, s.Body, depth+1)
	case *LabelStmt:
		line("%s:", s.Label.Name)
	case *GotoStmt:
		line("goto %s", s.Label.Name)
	case *CondGotoStmt:
		op := "gotoFalse"
		if s.JumpIfTrue {
			op = "gotoTrue"
		}
		line("%s %s %s", op, s.Label.Name, FormatExpr(s.Cond))
	case *ReturnStmt:
		if s.Value == nil {
			line("ret")
		} else {
			line("ret %s", FormatExpr(s.Value))
		}
	case *ErrorStmt:
		line("?")
	default:
		panic(fmt.Sprintf("bound: unexpected statement %T", s))
	}
}
