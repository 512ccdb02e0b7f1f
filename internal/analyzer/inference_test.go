package analyzer

import (
	"testing"

	"github.com/funvibe/jsti/internal/ast"
	"github.com/funvibe/jsti/internal/diagnostics"
	"github.com/funvibe/jsti/internal/typesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteralClassification(t *testing.T) {
	tests := []struct {
		lit   *ast.Literal
		typ   typesystem.Type
		value any
	}{
		{b.Lit("8"), typesystem.Int, 8.0},
		{b.Lit("7.0"), typesystem.Number, 7.0},
		{b.Lit("0.5"), typesystem.Number, 0.5},
		{b.Lit("1e3"), typesystem.Int, 1000.0},
		{b.Lit("true"), typesystem.Boolean, true},
		{b.Lit("false"), typesystem.Boolean, false},
		{b.Str("x"), typesystem.String, "x"},
		{b.Str("5"), typesystem.String, "5"},
	}
	for _, tt := range tests {
		t.Run(tt.lit.Raw, func(t *testing.T) {
			info := inferExpr(t, tt.lit, nil)
			assert.Equal(t, tt.typ, info.Type())
			assert.Equal(t, tt.value, constant(t, info))
		})
	}
}

func TestNullAndUndefinedHaveNoStoredConstant(t *testing.T) {
	null := inferExpr(t, b.Lit("null"), nil)
	assert.Equal(t, typesystem.Null, null.Type())
	assert.False(t, null.HasStoredConstant())
	assert.True(t, null.HasStaticValue())

	undef := inferExpr(t, b.Ident("undefined"), nil)
	assert.Equal(t, typesystem.Undefined, undef.Type())
	assert.False(t, undef.HasStoredConstant())
}

func TestArithmeticPromotion(t *testing.T) {
	g := globals{"i": dyn(typesystem.Int), "n": dyn(typesystem.Number)}
	tests := []struct {
		op          string
		left, right string
		want        typesystem.Type
	}{
		{"+", "i", "i", typesystem.Int},
		{"-", "i", "i", typesystem.Int},
		{"*", "i", "i", typesystem.Int},
		{"%", "i", "i", typesystem.Int},
		{"/", "i", "i", typesystem.Number},
	}
	for _, op := range []string{"+", "-", "*", "/", "%"} {
		tests = append(tests,
			struct {
				op          string
				left, right string
				want        typesystem.Type
			}{op, "i", "n", typesystem.Number},
			struct {
				op          string
				left, right string
				want        typesystem.Type
			}{op, "n", "i", typesystem.Number},
			struct {
				op          string
				left, right string
				want        typesystem.Type
			}{op, "n", "n", typesystem.Number},
		)
	}
	for _, tt := range tests {
		t.Run(tt.left+tt.op+tt.right, func(t *testing.T) {
			info := inferExpr(t, b.Binary(tt.op, b.Ident(tt.left), b.Ident(tt.right)), g)
			assert.Equal(t, tt.want, info.Type())
			assert.False(t, info.HasStaticValue())
		})
	}
}

func TestArithmeticWithNullAndBooleans(t *testing.T) {
	info := inferExpr(t, b.Binary("+", b.Lit("5"), b.Lit("null")), nil)
	assert.Equal(t, typesystem.Int, info.Type())
	assert.Equal(t, 5.0, constant(t, info))

	info = inferExpr(t, b.Binary("*", b.Lit("null"), b.Lit("2.5")), nil)
	assert.Equal(t, typesystem.Number, info.Type())
	assert.Equal(t, 0.0, constant(t, info))

	info = inferExpr(t, b.Binary("+", b.Lit("true"), b.Lit("1")), nil)
	assert.Equal(t, typesystem.Int, info.Type())
	assert.Equal(t, 2.0, constant(t, info))
}

func TestArithmeticNaN(t *testing.T) {
	info := inferExpr(t, b.Binary("+", b.Ident("a"), b.Ident("undefined")), globals{"a": dyn(typesystem.Number)})
	require.False(t, info.IsValid())
	assert.Equal(t, diagnostics.NaNError, info.Error().Kind)
	assert.Equal(t, "undefined is undefined", info.Error().Message)

	info = inferExpr(t, b.Binary("-", b.Str("a"), b.Str("b")), nil)
	assert.False(t, info.IsValid())
	assert.Equal(t, diagnostics.NaNError, info.Error().Kind)
}

func TestConstantFolding(t *testing.T) {
	sum := inferExpr(t, b.Binary("+", b.Lit("5"), b.Lit("8")), nil)
	assert.Equal(t, typesystem.Int, sum.Type())
	assert.Equal(t, 13.0, constant(t, sum))

	neg := inferExpr(t, b.Unary("-", b.Lit("8")), nil)
	assert.Equal(t, typesystem.Int, neg.Type())
	assert.Equal(t, -8.0, constant(t, neg))

	div := inferExpr(t, b.Binary("/", b.Lit("8"), b.Lit("16")), nil)
	assert.Equal(t, typesystem.Number, div.Type())
	assert.Equal(t, 0.5, constant(t, div))

	g := globals{"a": num(8), "b": num(8)}
	negVar := inferExpr(t, b.Unary("-", b.Ident("a")), g)
	assert.Equal(t, typesystem.Number, negVar.Type())
	assert.Equal(t, -8.0, constant(t, negVar))

	sumVars := inferExpr(t, b.Binary("+", b.Ident("a"), b.Ident("b")), g)
	assert.Equal(t, typesystem.Number, sumVars.Type())
	assert.Equal(t, 16.0, constant(t, sumVars))

	inc := inferExpr(t, b.Update("++", b.Ident("a"), true), globals{"a": num(8)})
	assert.Equal(t, typesystem.Number, inc.Type())
	assert.Equal(t, 9.0, constant(t, inc))
}

func TestComparisons(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expression
		want bool
	}{
		{"8.2 < 8.4", b.Binary("<", b.Lit("8.2"), b.Lit("8.4")), true},
		{"'hallo' == 'hallo'", b.Binary("==", b.Str("hallo"), b.Str("hallo")), true},
		{"'hallo' == 'hallo2'", b.Binary("==", b.Str("hallo"), b.Str("hallo2")), false},
		{"undefined !== 1.0", b.Binary("!==", b.Ident("undefined"), b.Lit("1.0")), true},
		{"undefined == undefined", b.Binary("==", b.Ident("undefined"), b.Ident("undefined")), true},
		{"undefined != undefined", b.Binary("!=", b.Ident("undefined"), b.Ident("undefined")), false},
		{"5 === 5", b.Binary("===", b.Lit("5"), b.Lit("5")), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := inferExpr(t, tt.expr, nil)
			assert.Equal(t, typesystem.Boolean, info.Type())
			assert.Equal(t, tt.want, constant(t, info))
		})
	}
}

func TestUndefinedComparisonsAreStatic(t *testing.T) {
	g := globals{"n": dyn(typesystem.Number), "o": dyn(typesystem.Object), "s": dyn(typesystem.String)}
	operands := map[string]func() ast.Expression{
		"literal":   func() ast.Expression { return b.Lit("1.0") },
		"string":    func() ast.Expression { return b.Str("x") },
		"null":      func() ast.Expression { return b.Lit("null") },
		"number":    func() ast.Expression { return b.Ident("n") },
		"object":    func() ast.Expression { return b.Ident("o") },
		"string id": func() ast.Expression { return b.Ident("s") },
	}
	for name, operand := range operands {
		t.Run(name, func(t *testing.T) {
			for _, op := range []string{"===", "==", ">", "<", ">=", "<="} {
				info := inferExpr(t, b.Binary(op, b.Ident("undefined"), operand()), g)
				assert.Equal(t, false, constant(t, info), "undefined %s %s", op, name)

				info = inferExpr(t, b.Binary(op, operand(), b.Ident("undefined")), g)
				assert.Equal(t, false, constant(t, info), "%s %s undefined", name, op)
			}
		})
	}

	both := inferExpr(t, b.Binary("===", b.Ident("undefined"), b.Ident("undefined")), nil)
	assert.Equal(t, true, constant(t, both))
}

func TestUnaryOperators(t *testing.T) {
	g := globals{
		"n":    dyn(typesystem.Number),
		"o":    dyn(typesystem.Object),
		"x":    dyn(typesystem.Any),
		"flag": dyn(typesystem.Boolean),
	}

	typeofN := inferExpr(t, b.Unary("typeof", b.Ident("n")), g)
	assert.Equal(t, typesystem.String, typeofN.Type())
	assert.Equal(t, "number", constant(t, typeofN))

	typeofUndef := inferExpr(t, b.Unary("typeof", b.Ident("undefined")), g)
	assert.Equal(t, "undefined", constant(t, typeofUndef))

	typeofAny := inferExpr(t, b.Unary("typeof", b.Ident("x")), g)
	assert.Equal(t, typesystem.String, typeofAny.Type())
	assert.False(t, typeofAny.HasStaticValue())

	notObject := inferExpr(t, b.Unary("!", b.Ident("o")), g)
	assert.Equal(t, typesystem.Boolean, notObject.Type())
	assert.Equal(t, false, constant(t, notObject))

	notFlag := inferExpr(t, b.Unary("!", b.Ident("flag")), g)
	assert.Equal(t, typesystem.Boolean, notFlag.Type())
	assert.False(t, notFlag.HasStaticValue())

	plusBool := inferExpr(t, b.Unary("+", b.Lit("true")), g)
	assert.Equal(t, typesystem.Int, plusBool.Type())
	assert.Equal(t, 1.0, constant(t, plusBool))

	minusString := inferExpr(t, b.Unary("-", b.Str("a")), g)
	assert.False(t, minusString.IsValid())
	assert.Equal(t, diagnostics.NaNError, minusString.Error().Kind)

	for _, op := range []string{"~", "void", "delete"} {
		info := inferExpr(t, b.Unary(op, b.Lit("1")), g)
		require.False(t, info.IsValid(), op)
		assert.Equal(t, op+" is not supported.", info.Error().Message)
	}
}

func TestUnsupportedBinaryOperatorIsSoft(t *testing.T) {
	info := inferExpr(t, b.Binary("<<", b.Lit("1"), b.Lit("2")), nil)
	require.False(t, info.IsValid())
	assert.Equal(t, "<< is not supported.", info.Error().Message)
}

func TestLogicalLiterals(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expression
		want typesystem.Type
	}{
		{"8.2 && 8.4", b.Logical("&&", b.Lit("8.2"), b.Lit("8.4")), typesystem.Number},
		{"undefined || 8", b.Logical("||", b.Ident("undefined"), b.Lit("8")), typesystem.Int},
		{"undefined && true", b.Logical("&&", b.Ident("undefined"), b.Lit("true")), typesystem.Undefined},
		{"null && true", b.Logical("&&", b.Lit("null"), b.Lit("true")), typesystem.Null},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inferExpr(t, tt.expr, nil).Type())
		})
	}
}

func TestLogicalFolding(t *testing.T) {
	or := func() ast.Expression { return b.Logical("||", b.Ident("a"), b.Ident("b")) }
	and := func() ast.Expression { return b.Logical("&&", b.Ident("a"), b.Ident("b")) }
	nullObject := typesystem.NewConstant(typesystem.Object, nil)
	emptyObject := typesystem.NewConstant(typesystem.Object, map[string]any{})

	tests := []struct {
		name  string
		expr  ast.Expression
		g     globals
		typ   typesystem.Type
		value any
	}{
		{"0 || 5", or(), globals{"a": num(0), "b": num(5)}, typesystem.Number, 5.0},
		{"3 || 5", or(), globals{"a": num(3), "b": num(5)}, typesystem.Number, 3.0},
		{"null object || 8", or(), globals{"a": nullObject, "b": num(8)}, typesystem.Number, 8.0},
		{"{} || 8", or(), globals{"a": emptyObject, "b": num(8)}, typesystem.Object, map[string]any{}},
		{"0 && 5", and(), globals{"a": num(0), "b": num(5)}, typesystem.Number, 0.0},
		{"1 && 5", and(), globals{"a": num(1), "b": num(5)}, typesystem.Number, 5.0},
		{"null object && 8", and(), globals{"a": nullObject, "b": num(8)}, typesystem.Object, nil},
		{"{} && 8", and(), globals{"a": emptyObject, "b": num(8)}, typesystem.Number, 8.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := inferExpr(t, tt.expr, tt.g)
			assert.Equal(t, tt.typ, info.Type())
			assert.Equal(t, tt.value, constant(t, info))
		})
	}
}

func TestLogicalDynamic(t *testing.T) {
	g := globals{"a": dyn(typesystem.Number), "flag": dyn(typesystem.Boolean), "s": dyn(typesystem.String)}

	merged := inferExpr(t, b.Logical("||", b.Ident("a"), b.Ident("flag")), g)
	assert.Equal(t, typesystem.Number, merged.Type())
	assert.False(t, merged.HasStaticValue())

	// The right side is a known falsy constant, so the type stays a's.
	orZero := inferExpr(t, b.Logical("||", b.Ident("a"), b.Str("")), g)
	assert.Equal(t, typesystem.Number, orZero.Type())

	andTrue := inferExpr(t, b.Logical("&&", b.Ident("s"), b.Lit("1")), g)
	assert.Equal(t, typesystem.String, andTrue.Type())

	poly := inferExpr(t, b.Logical("||", b.Ident("a"), b.Ident("s")), g)
	require.False(t, poly.IsValid())
	assert.Contains(t, poly.Error().Message, "polymorphic logical expression")
}

func TestLogicalSkipsUnevaluatedSide(t *testing.T) {
	bad := func() ast.Expression { return b.Array(b.Lit("1"), b.Str("x")) }

	orTrue := inferExpr(t, b.Logical("||", b.Lit("true"), bad()), nil)
	assert.Equal(t, typesystem.Boolean, orTrue.Type())
	assert.Equal(t, true, constant(t, orTrue))

	andZero := inferExpr(t, b.Logical("&&", b.Lit("0"), bad()), nil)
	assert.Equal(t, typesystem.Int, andZero.Type())
	assert.Equal(t, 0.0, constant(t, andZero))

	// The taken side is invalid: the node is poisoned without a diagnostic.
	orFalse := inferExpr(t, b.Logical("||", b.Lit("false"), bad()), nil)
	assert.False(t, orFalse.IsValid())
	assert.False(t, orFalse.HasError())

	dynamic := inferExpr(t, b.Logical("||", b.Ident("a"), bad()), globals{"a": dyn(typesystem.Number)})
	assert.False(t, dynamic.IsValid())
	assert.False(t, dynamic.HasError())
}

func TestConditional(t *testing.T) {
	decided := inferExpr(t, b.Cond(b.Binary("<", b.Lit("5"), b.Lit("8")), b.Lit("4.5"), b.Lit("3")), nil)
	assert.Equal(t, typesystem.Number, decided.Type())
	assert.Equal(t, 4.5, constant(t, decided))

	undefTest := inferExpr(t, b.Cond(b.Ident("undefined"), b.Lit("null"), b.Lit("8")), nil)
	assert.Equal(t, typesystem.Int, undefTest.Type())

	cond := func() ast.Expression { return b.Cond(b.Ident("a"), b.Ident("b"), b.Ident("c")) }

	falsy := inferExpr(t, cond(), globals{"a": num(0), "b": num(1), "c": num(2)})
	assert.Equal(t, 2.0, constant(t, falsy))

	truthy := inferExpr(t, cond(), globals{
		"a": typesystem.NewConstant(typesystem.Object, map[string]any{}),
		"b": num(1),
		"c": typesystem.NewConstant(typesystem.Boolean, false),
	})
	assert.Equal(t, typesystem.Number, truthy.Type())
	assert.Equal(t, 1.0, constant(t, truthy))

	common := inferExpr(t, cond(), globals{
		"a": dyn(typesystem.Number),
		"b": num(1),
		"c": typesystem.NewConstant(typesystem.Boolean, false),
	})
	assert.Equal(t, typesystem.Number, common.Type())
	assert.False(t, common.HasStaticValue())

	incompatible := inferExpr(t, cond(), globals{"a": dyn(typesystem.Number), "b": num(1), "c": dyn(typesystem.Object)})
	require.False(t, incompatible.IsValid())
	assert.True(t, incompatible.HasError())
	assert.False(t, incompatible.HasStaticValue())
}

func TestNullObjectIsFalsy(t *testing.T) {
	g := globals{"o": typesystem.NewConstant(typesystem.Object, nil), "p": dyn(typesystem.Object)}

	notNull := inferExpr(t, b.Unary("!", b.Ident("o")), g)
	assert.Equal(t, true, constant(t, notNull))

	notObject := inferExpr(t, b.Unary("!", b.Ident("p")), g)
	assert.Equal(t, false, constant(t, notObject))

	picked := inferExpr(t, b.Cond(b.Ident("o"), b.Lit("1"), b.Lit("2.5")), g)
	assert.Equal(t, 2.5, constant(t, picked))
}

func TestArrays(t *testing.T) {
	mixed := inferExpr(t, b.Array(b.Lit("1"), b.Str("x")), nil)
	require.False(t, mixed.IsValid())
	msg := mixed.Error().Message
	assert.Contains(t, msg, "int")
	assert.Contains(t, msg, "string")

	nums := inferExpr(t, b.Array(b.Lit("1"), b.Lit("2.5")), nil)
	require.Equal(t, typesystem.Array, nums.Type())
	assert.Equal(t, typesystem.Number, nums.Elements().Type())
	assert.Equal(t, []any{1.0, 2.5}, constant(t, nums))

	same := inferExpr(t, b.Array(b.Lit("1"), b.Lit("2")), nil)
	assert.Equal(t, typesystem.Int, same.Elements().Type())
	assert.False(t, same.Elements().HasStaticValue())

	empty := inferExpr(t, b.Array(), nil)
	assert.Equal(t, typesystem.Any, empty.Elements().Type())

	dynamic := inferExpr(t, b.Array(b.Ident("a"), b.Lit("2")), globals{"a": dyn(typesystem.Int)})
	assert.Equal(t, typesystem.Int, dynamic.Elements().Type())
	assert.False(t, dynamic.HasStaticValue())

	poisonedArr := inferExpr(t, b.Array(b.Lit("1"), b.Unary("-", b.Str("a"))), nil)
	assert.False(t, poisonedArr.IsValid())
	assert.False(t, poisonedArr.HasError(), "the cause is recorded on the element only")
}

func TestArrayIndex(t *testing.T) {
	g := globals{"i": dyn(typesystem.Int), "s": dyn(typesystem.String), "n": dyn(typesystem.Number)}
	arr := func() ast.Expression { return b.Array(b.Lit("1"), b.Lit("2.5"), b.Lit("4")) }

	folded := inferExpr(t, b.Index(arr(), b.Lit("1")), g)
	assert.Equal(t, typesystem.Number, folded.Type())
	assert.Equal(t, 2.5, constant(t, folded))

	dynamic := inferExpr(t, b.Index(arr(), b.Ident("i")), g)
	assert.Equal(t, typesystem.Number, dynamic.Type())
	assert.False(t, dynamic.HasStaticValue())

	outside := inferExpr(t, b.Index(arr(), b.Lit("7")), g)
	assert.Equal(t, typesystem.Undefined, outside.Type())

	_, err := infer(g, b.Index(arr(), b.Ident("s")))
	require.Error(t, err)
	assert.True(t, diagnostics.IsKind(err, diagnostics.TypeError))
	assert.Contains(t, err.Error(), "Expected 'int' or 'number' type for array accessor")

	for _, index := range []ast.Expression{b.Lit("1e300"), b.Lit("1e19"), b.Binary("/", b.Lit("1"), b.Lit("0"))} {
		huge := inferExpr(t, b.Index(arr(), index), g)
		assert.Equal(t, typesystem.Undefined, huge.Type())
	}

	notArray := inferExpr(t, b.Index(b.Ident("n"), b.Lit("0")), g)
	require.False(t, notArray.IsValid())
	assert.Equal(t, "no array access to object yet", notArray.Error().Message)
}
