package ast

import (
	"encoding/json"
	"fmt"
)

// Decode reads an ESTree document (as produced by esprima or acorn with raw
// literals and locations enabled) and returns the registered tree. source
// names the input in locations.
func Decode(data []byte, source string) (*Tree, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", source, err)
	}
	d := &decoder{source: source}
	root, err := d.node(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", source, err)
	}
	if _, ok := root.(*Program); !ok {
		if e, ok := root.(Expression); ok {
			root = &Program{Body: []Statement{&ExpressionStatement{Expression: e}}}
		} else if s, ok := root.(Statement); ok {
			root = &Program{Body: []Statement{s}}
		}
	}
	return NewTree(root), nil
}

type decoder struct {
	source string
}

func (d *decoder) node(m map[string]any) (Node, error) {
	if m == nil {
		return nil, nil
	}
	typ, _ := m["type"].(string)
	var n Node
	var err error
	switch NodeKind(typ) {
	case KindProgram:
		p := &Program{}
		for _, item := range list(m["body"]) {
			s, err := d.statement(item)
			if err != nil {
				return nil, err
			}
			p.Body = append(p.Body, s)
		}
		n = p
	case KindExpressionStatement:
		es := &ExpressionStatement{}
		es.Expression, err = d.required(m, "expression")
		n = es
	case KindVariableDeclaration:
		vd := &VariableDeclaration{DeclKind: str(m["kind"])}
		for _, item := range list(m["declarations"]) {
			decl, err := d.node(item)
			if err != nil {
				return nil, err
			}
			vdr, ok := decl.(*VariableDeclarator)
			if !ok {
				return nil, fmt.Errorf("expected VariableDeclarator, got %s", decl.Kind())
			}
			vd.Declarations = append(vd.Declarations, vdr)
		}
		n = vd
	case KindVariableDeclarator:
		vdr := &VariableDeclarator{}
		id, idErr := d.expression(m["id"])
		if idErr != nil {
			return nil, idErr
		}
		ident, ok := id.(*Identifier)
		if !ok {
			return nil, fmt.Errorf("unsupported declaration pattern at %s", d.loc(m))
		}
		vdr.Name = ident
		vdr.Init, err = d.expression(m["init"])
		n = vdr
	case KindReturnStatement:
		rs := &ReturnStatement{}
		rs.Argument, err = d.expression(m["argument"])
		n = rs
	case KindIdentifier:
		n = &Identifier{Name: str(m["name"])}
	case KindLiteral:
		n = d.literal(m)
	case KindArrayExpression:
		ae := &ArrayExpression{}
		for _, item := range rawList(m["elements"]) {
			obj, _ := item.(map[string]any)
			e, err := d.expression(obj)
			if err != nil {
				return nil, err
			}
			ae.Elements = append(ae.Elements, e)
		}
		n = ae
	case KindUnaryExpression:
		ue := &UnaryExpression{Operator: str(m["operator"]), Prefix: true}
		ue.Argument, err = d.required(m, "argument")
		n = ue
	case KindUpdateExpression:
		ue := &UpdateExpression{Operator: str(m["operator"]), Prefix: boolean(m["prefix"])}
		ue.Argument, err = d.required(m, "argument")
		n = ue
	case KindBinaryExpression:
		be := &BinaryExpression{Operator: str(m["operator"])}
		be.Left, be.Right, err = d.pair(m, "left", "right")
		n = be
	case KindLogicalExpression:
		le := &LogicalExpression{Operator: str(m["operator"])}
		le.Left, le.Right, err = d.pair(m, "left", "right")
		n = le
	case KindAssignmentExpression:
		ae := &AssignmentExpression{Operator: str(m["operator"])}
		ae.Left, ae.Right, err = d.pair(m, "left", "right")
		n = ae
	case KindConditionalExpression:
		ce := &ConditionalExpression{}
		if ce.Test, err = d.required(m, "test"); err == nil {
			ce.Consequent, ce.Alternate, err = d.pair(m, "consequent", "alternate")
		}
		n = ce
	case KindMemberExpression:
		me := &MemberExpression{Computed: boolean(m["computed"])}
		me.Object, me.Property, err = d.pair(m, "object", "property")
		n = me
	case KindCallExpression:
		ce := &CallExpression{}
		if ce.Callee, err = d.required(m, "callee"); err == nil {
			ce.Arguments, err = d.expressions(m["arguments"])
		}
		n = ce
	case KindNewExpression:
		ne := &NewExpression{}
		if ne.Callee, err = d.required(m, "callee"); err == nil {
			ne.Arguments, err = d.expressions(m["arguments"])
		}
		n = ne
	default:
		return nil, fmt.Errorf("unsupported node type %q at %s", typ, d.loc(m))
	}
	if err != nil {
		return nil, err
	}
	if l, ok := n.(interface{ SetLoc(Location) }); ok {
		l.SetLoc(d.loc(m))
	}
	return n, nil
}

func (d *decoder) literal(m map[string]any) *Literal {
	l := &Literal{Raw: str(m["raw"]), Value: m["value"]}
	switch m["value"].(type) {
	case float64, string, bool, nil:
	default:
		// Regular expressions and bigints have no portable value.
		l.Value = l.Raw
	}
	if l.Raw == "" {
		l.Raw = fmt.Sprint(m["value"])
		if _, isStr := m["value"].(string); isStr {
			l.Raw = fmt.Sprintf("%q", m["value"])
		}
	}
	return l
}

func (d *decoder) statement(v any) (Statement, error) {
	m, _ := v.(map[string]any)
	n, err := d.node(m)
	if err != nil || n == nil {
		return nil, err
	}
	s, ok := n.(Statement)
	if !ok {
		return nil, fmt.Errorf("expected statement, got %s at %s", n.Kind(), d.loc(m))
	}
	return s, nil
}

func (d *decoder) expression(v any) (Expression, error) {
	m, _ := v.(map[string]any)
	n, err := d.node(m)
	if err != nil || n == nil {
		return nil, err
	}
	e, ok := n.(Expression)
	if !ok {
		return nil, fmt.Errorf("expected expression, got %s at %s", n.Kind(), d.loc(m))
	}
	return e, nil
}

func (d *decoder) expressions(v any) ([]Expression, error) {
	var out []Expression
	for _, item := range list(v) {
		e, err := d.expression(item)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// required decodes the operand stored under key. Operands the node kind
// cannot do without are an error when absent.
func (d *decoder) required(m map[string]any, key string) (Expression, error) {
	e, err := d.expression(m[key])
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%s: missing %q at %s", str(m["type"]), key, d.loc(m))
	}
	return e, nil
}

func (d *decoder) pair(m map[string]any, a, b string) (Expression, Expression, error) {
	left, err := d.required(m, a)
	if err != nil {
		return nil, nil, err
	}
	right, err := d.required(m, b)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func (d *decoder) loc(m map[string]any) Location {
	l := Location{Source: d.source}
	lm, _ := m["loc"].(map[string]any)
	if lm == nil {
		return l
	}
	l.Start = position(lm["start"])
	l.End = position(lm["end"])
	return l
}

func position(v any) Position {
	m, _ := v.(map[string]any)
	line, _ := m["line"].(float64)
	col, _ := m["column"].(float64)
	return Position{Line: int(line), Column: int(col)}
}

func list(v any) []map[string]any {
	var out []map[string]any
	for _, item := range rawList(v) {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func rawList(v any) []any {
	l, _ := v.([]any)
	return l
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func boolean(v any) bool {
	b, _ := v.(bool)
	return b
}
