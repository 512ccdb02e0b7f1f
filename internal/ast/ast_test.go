package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTreeAssignsPreOrderIDs(t *testing.T) {
	b := NewBuilder()
	sum := b.Binary("+", b.Lit("5"), b.Lit("8"))
	tree := b.Tree(sum)

	require.Equal(t, 5, tree.Len()) // Program, ExpressionStatement, Binary, 2 literals
	assert.Equal(t, NodeID(1), tree.Root.ID())
	assert.Equal(t, NodeID(3), sum.ID())
	assert.Same(t, sum, tree.Node(sum.ID()))
	assert.Nil(t, tree.Node(0))
	assert.Nil(t, tree.Node(99))

	// Registering again is stable.
	again := NewTree(tree.Root)
	assert.Equal(t, NodeID(3), sum.ID())
	assert.Equal(t, tree.Len(), again.Len())
}

func TestWalkIsPostOrder(t *testing.T) {
	b := NewBuilder()
	expr := b.Cond(b.Ident("c"), b.Lit("1"), b.Binary("*", b.Lit("2"), b.Lit("3")))
	tree := b.Tree(expr)

	var entered, left []NodeKind
	err := Walk(tree.Root,
		func(n Node) error { entered = append(entered, n.Kind()); return nil },
		func(n Node) error { left = append(left, n.Kind()); return nil })
	require.NoError(t, err)

	assert.Equal(t, []NodeKind{
		KindProgram, KindExpressionStatement, KindConditionalExpression,
		KindIdentifier, KindLiteral, KindBinaryExpression, KindLiteral, KindLiteral,
	}, entered)
	assert.Equal(t, []NodeKind{
		KindIdentifier, KindLiteral, KindLiteral, KindLiteral, KindBinaryExpression,
		KindConditionalExpression, KindExpressionStatement, KindProgram,
	}, left)
}

func TestWalkSkipsHolesAndMissingInit(t *testing.T) {
	b := NewBuilder()
	tree := b.Tree(b.Var("a", nil), b.Array(b.Lit("1"), nil, b.Lit("2")))
	count := 0
	require.NoError(t, Walk(tree.Root, nil, func(Node) error { count++; return nil }))
	assert.Equal(t, tree.Len(), count)
}

func TestBuilderLiterals(t *testing.T) {
	b := NewBuilder()
	tests := []struct {
		raw  string
		want any
	}{
		{"8", 8.0},
		{"7.0", 7.0},
		{"true", true},
		{"false", false},
		{"null", nil},
		{"'Hallo'", "Hallo"},
		{`"it's"`, "it's"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Lit(tt.raw).Value)
		})
	}
}

func TestDescribe(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, "a.b", Describe(b.Member(b.Ident("a"), "b")))
	assert.Equal(t, "xs[0]", Describe(b.Index(b.Ident("xs"), b.Lit("0"))))
	assert.Equal(t, "Math.cos(...)", Describe(b.Call(b.Member(b.Ident("Math"), "cos"))))
	assert.Equal(t, "(a + 1)", Describe(b.Binary("+", b.Ident("a"), b.Lit("1"))))
	assert.Equal(t, "typeof x", Describe(b.Unary("typeof", b.Ident("x"))))
}

func TestDecodeESTree(t *testing.T) {
	src := `{
	  "type": "Program",
	  "body": [{
	    "type": "ExpressionStatement",
	    "expression": {
	      "type": "BinaryExpression",
	      "operator": "+",
	      "left": {"type": "Literal", "value": 5, "raw": "5",
	               "loc": {"start": {"line": 1, "column": 0}, "end": {"line": 1, "column": 1}}},
	      "right": {"type": "MemberExpression", "computed": false,
	                "object": {"type": "Identifier", "name": "Math"},
	                "property": {"type": "Identifier", "name": "PI"}},
	      "loc": {"start": {"line": 1, "column": 0}, "end": {"line": 1, "column": 11}}
	    }
	  }]
	}`
	tree, err := Decode([]byte(src), "input.json")
	require.NoError(t, err)

	bin, ok := tree.FirstExpression().(*BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Operator)
	assert.Equal(t, "input.json:1:0", bin.Loc().String())

	lit := bin.Left.(*Literal)
	assert.Equal(t, "5", lit.Raw)
	assert.Equal(t, 5.0, lit.Value)

	member := bin.Right.(*MemberExpression)
	assert.Equal(t, "PI", member.PropertyName())
	assert.Equal(t, 7, tree.Len())
}

func TestDecodeDeclarationsAndHoles(t *testing.T) {
	src := `{"type": "Program", "body": [
	  {"type": "VariableDeclaration", "kind": "var", "declarations": [
	    {"type": "VariableDeclarator", "id": {"type": "Identifier", "name": "a"},
	     "init": {"type": "ArrayExpression", "elements": [{"type": "Literal", "value": 1, "raw": "1"}, null]}}
	  ]},
	  {"type": "ReturnStatement", "argument": null}
	]}`
	tree, err := Decode([]byte(src), "decl.json")
	require.NoError(t, err)

	prog := tree.Root.(*Program)
	require.Len(t, prog.Body, 2)
	decl := prog.Body[0].(*VariableDeclaration)
	assert.Equal(t, "var", decl.DeclKind)
	assert.Equal(t, "a", decl.Declarations[0].Name.Name)
	arr := decl.Declarations[0].Init.(*ArrayExpression)
	require.Len(t, arr.Elements, 2)
	assert.Nil(t, arr.Elements[1])
	assert.Nil(t, prog.Body[1].(*ReturnStatement).Argument)
}

func TestDecodeRejectsUnsupportedNodes(t *testing.T) {
	_, err := Decode([]byte(`{"type": "Program", "body": [{"type": "ForStatement"}]}`), "for.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported node type "ForStatement"`)

	_, err = Decode([]byte(`{not json`), "bad.json")
	require.Error(t, err)
}

func TestDecodeRejectsMissingOperands(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"binary right", `{"type": "BinaryExpression", "operator": "+", "left": {"type": "Identifier", "name": "a"}}`,
			`BinaryExpression: missing "right"`},
		{"unary argument", `{"type": "UnaryExpression", "operator": "-"}`,
			`UnaryExpression: missing "argument"`},
		{"update argument", `{"type": "UpdateExpression", "operator": "++", "prefix": true}`,
			`UpdateExpression: missing "argument"`},
		{"member property", `{"type": "MemberExpression", "computed": false, "object": {"type": "Identifier", "name": "Math"}}`,
			`MemberExpression: missing "property"`},
		{"call callee", `{"type": "CallExpression", "arguments": []}`,
			`CallExpression: missing "callee"`},
		{"new callee", `{"type": "NewExpression", "arguments": []}`,
			`NewExpression: missing "callee"`},
		{"conditional test", `{"type": "ConditionalExpression", "consequent": {"type": "Literal", "value": 1, "raw": "1"}, "alternate": {"type": "Literal", "value": 2, "raw": "2"}}`,
			`ConditionalExpression: missing "test"`},
		{"statement expression", `{"type": "Program", "body": [{"type": "ExpressionStatement", "loc": {"start": {"line": 3, "column": 2}}}]}`,
			`ExpressionStatement: missing "expression" at bad.json:3:2`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.src), "bad.json")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDecodeWrapsBareExpression(t *testing.T) {
	tree, err := Decode([]byte(`{"type": "Identifier", "name": "x"}`), "x.json")
	require.NoError(t, err)
	id, ok := tree.FirstExpression().(*Identifier)
	require.True(t, ok)
	assert.Equal(t, "x", id.Name)
}
