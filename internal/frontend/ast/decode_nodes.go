package ast

import (
	"fmt"

	"ember/internal/tokens"
)

func (d *decoder) decodeDeclarationNodes(node map[string]any, kind string) (Node, bool, error) {
	switch kind {
	case "fn":
		f, err := d.function(node)
		return f, true, err
	case "class":
		c := &ClassDecl{Name: str(node, "name"), Location: d.span(node["at"])}
		for _, item := range list(node["fields"]) {
			fm, ok := item.(map[string]any)
			if !ok {
				return nil, true, fmt.Errorf("class %s: field must be a mapping", c.Name)
			}
			def, err := d.expr(fm["default"])
			if err != nil {
				return nil, true, err
			}
			c.Fields = append(c.Fields, &FieldDecl{
				Name:     str(fm, "name"),
				Mutable:  flag(fm, "mutable"),
				Private:  flag(fm, "private"),
				Type:     d.typeClause(fm["type"]),
				Default:  def,
				Location: d.span(fm["at"]),
			})
		}
		if cm, ok := node["ctor"].(map[string]any); ok {
			ctor, err := d.function(cm)
			if err != nil {
				return nil, true, err
			}
			ctor.Name = "new"
			c.Ctor = ctor
		}
		for _, item := range list(node["methods"]) {
			mm, ok := item.(map[string]any)
			if !ok {
				return nil, true, fmt.Errorf("class %s: method must be a mapping", c.Name)
			}
			m, err := d.function(mm)
			if err != nil {
				return nil, true, err
			}
			c.Methods = append(c.Methods, m)
		}
		return c, true, nil
	case "enum":
		e := &EnumDecl{Name: str(node, "name"), Location: d.span(node["at"])}
		for _, m := range list(node["members"]) {
			name, ok := m.(string)
			if !ok {
				return nil, true, fmt.Errorf("enum %s: member must be a name", e.Name)
			}
			e.Members = append(e.Members, name)
		}
		return e, true, nil
	}
	return nil, false, nil
}

func (d *decoder) function(node map[string]any) (*FuncDecl, error) {
	f := &FuncDecl{
		Name:       str(node, "name"),
		ReturnType: d.typeClause(node["returns"]),
		Private:    flag(node, "private"),
		Static:     flag(node, "static"),
		Location:   d.span(node["at"]),
	}
	for _, item := range list(node["params"]) {
		pm, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("fn %s: parameter must be a mapping", f.Name)
		}
		f.Params = append(f.Params, &Parameter{
			Name:     str(pm, "name"),
			Type:     d.typeClause(pm["type"]),
			Location: d.span(pm["at"]),
		})
	}
	if e, ok := node["expr"]; ok {
		body, err := d.expr(e)
		if err != nil {
			return nil, err
		}
		f.ExprBody = body
		return f, nil
	}
	body, err := d.body(node["body"])
	if err != nil {
		return nil, err
	}
	f.Body = body
	return f, nil
}

func (d *decoder) decodeStatementNodes(node map[string]any, kind string) (Node, bool, error) {
	at := d.span(node["at"])
	switch kind {
	case "block":
		b, err := d.block(list(node["body"]), node["at"])
		return b, true, err
	case "var", "let":
		value, err := d.expr(node["value"])
		if err != nil {
			return nil, true, err
		}
		return &VarDecl{
			Name:     str(node, "name"),
			Mutable:  kind == "var",
			Type:     d.typeClause(node["type"]),
			Value:    value,
			Location: at,
		}, true, nil
	case "expr":
		x, err := d.expr(node["expr"])
		return &ExprStmt{X: x, Location: at}, true, err
	case "ret":
		value, err := d.expr(node["value"])
		return &ReturnStmt{Value: value, Location: at}, true, err
	case "break":
		return &BreakStmt{Location: at}, true, nil
	case "continue":
		return &ContinueStmt{Location: at}, true, nil
	}
	return nil, false, nil
}

func (d *decoder) decodeControlFlowNodes(node map[string]any, kind string) (Node, bool, error) {
	at := d.span(node["at"])
	switch kind {
	case "if":
		cond, err := d.expr(node["cond"])
		if err != nil {
			return nil, true, err
		}
		then, err := d.body(node["then"])
		if err != nil {
			return nil, true, err
		}
		s := &IfStmt{Cond: cond, Body: then, Location: at}
		if els, ok := node["else"]; ok && els != nil {
			if s.Else, err = d.statement(els); err != nil {
				return nil, true, err
			}
		}
		return s, true, nil
	case "while", "do":
		cond, err := d.expr(node["cond"])
		if err != nil {
			return nil, true, err
		}
		body, err := d.body(node["body"])
		if err != nil {
			return nil, true, err
		}
		if kind == "do" {
			return &DoWhileStmt{Body: body, Cond: cond, Location: at}, true, nil
		}
		return &WhileStmt{Cond: cond, Body: body, Location: at}, true, nil
	case "for":
		lo, err := d.expr(node["from"])
		if err != nil {
			return nil, true, err
		}
		hi, err := d.expr(node["to"])
		if err != nil {
			return nil, true, err
		}
		body, err := d.body(node["body"])
		if err != nil {
			return nil, true, err
		}
		return &ForStmt{Var: str(node, "var"), Lower: lo, Upper: hi, Body: body, Location: at}, true, nil
	case "foreach":
		iterable, err := d.expr(node["in"])
		if err != nil {
			return nil, true, err
		}
		body, err := d.body(node["body"])
		if err != nil {
			return nil, true, err
		}
		return &ForEachStmt{
			Var:      str(node, "var"),
			Index:    str(node, "index"),
			Iterable: iterable,
			Body:     body,
			Location: at,
		}, true, nil
	}
	return nil, false, nil
}

func (d *decoder) decodeExpressionNodes(node map[string]any, kind string) (Node, bool, error) {
	at := d.span(node["at"])
	switch kind {
	case "literal":
		value, err := literalValue(node["value"])
		return &LiteralExpr{Value: value, Location: at}, true, err
	case "name":
		return &NameExpr{Name: str(node, "name"), Location: at}, true, nil
	case "assign":
		value, err := d.expr(node["value"])
		return &AssignExpr{Name: str(node, "name"), Value: value, Location: at}, true, err
	case "unary":
		op, err := d.operator(node, tokens.IsUnaryOperator)
		if err != nil {
			return nil, true, err
		}
		x, err := d.expr(node["operand"])
		return &UnaryExpr{Op: op, X: x, Location: at}, true, err
	case "binary":
		op, err := d.operator(node, tokens.IsBinaryOperator)
		if err != nil {
			return nil, true, err
		}
		x, err := d.expr(node["left"])
		if err != nil {
			return nil, true, err
		}
		y, err := d.expr(node["right"])
		if err != nil {
			return nil, true, err
		}
		return &BinaryExpr{X: x, Op: op, Y: y, Location: spanOf(at, x, y)}, true, nil
	case "paren":
		x, err := d.expr(node["expr"])
		return &ParenExpr{X: x, Location: at}, true, err
	case "call":
		args, err := d.exprs(node["args"])
		return &CallExpr{Name: str(node, "name"), Args: args, Location: at}, true, err
	case "array":
		elems, err := d.exprs(node["elements"])
		return &ArrayLiteral{Elements: elems, Location: at}, true, err
	}
	return nil, false, nil
}

func (d *decoder) decodeMemberAccessNodes(node map[string]any, kind string) (Node, bool, error) {
	at := d.span(node["at"])
	switch kind {
	case "index", "index_assign":
		target, err := d.expr(node["target"])
		if err != nil {
			return nil, true, err
		}
		index, err := d.expr(node["index"])
		if err != nil {
			return nil, true, err
		}
		if kind == "index" {
			return &IndexExpr{X: target, Index: index, Location: at}, true, nil
		}
		value, err := d.expr(node["value"])
		return &IndexAssignExpr{Target: target, Index: index, Value: value, Location: at}, true, err
	case "member":
		target, err := d.expr(node["target"])
		return &MemberExpr{X: target, Name: str(node, "name"), Location: at}, true, err
	case "member_call":
		target, err := d.expr(node["target"])
		if err != nil {
			return nil, true, err
		}
		args, err := d.exprs(node["args"])
		return &MemberCallExpr{X: target, Name: str(node, "name"), Args: args, Location: at}, true, err
	case "field_assign":
		object, err := d.expr(node["target"])
		if err != nil {
			return nil, true, err
		}
		value, err := d.expr(node["value"])
		return &FieldAssignExpr{Object: object, Field: str(node, "field"), Value: value, Location: at}, true, err
	}
	return nil, false, nil
}
