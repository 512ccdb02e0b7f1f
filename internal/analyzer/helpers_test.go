package analyzer

import (
	"testing"

	"github.com/funvibe/jsti/internal/ast"
	"github.com/funvibe/jsti/internal/builtins"
	"github.com/funvibe/jsti/internal/symbols"
	"github.com/funvibe/jsti/internal/typesystem"
	"github.com/stretchr/testify/require"
)

var b = ast.NewBuilder()

type globals map[string]*typesystem.Annotation

func scopeWith(g globals) *symbols.Scope {
	scope, _ := builtins.StandardScope()
	for name, info := range g {
		scope.Declare(name, info)
	}
	return scope
}

func infer(g globals, items ...ast.Node) (*Result, error) {
	return Infer(b.Tree(items...), scopeWith(g))
}

// inferExpr annotates expr as a single statement and returns its annotation.
func inferExpr(t *testing.T, expr ast.Expression, g globals) *typesystem.Annotation {
	t.Helper()
	res, err := infer(g, expr)
	require.NoError(t, err)
	info := res.TypeOf(expr)
	require.NotNil(t, info, "expression is not annotated")
	return info
}

func constant(t *testing.T, info *typesystem.Annotation) any {
	t.Helper()
	v, ok := info.StaticValue()
	require.True(t, ok, "expected a static value on %s", info)
	return v
}

func num(v float64) *typesystem.Annotation { return typesystem.NewConstant(typesystem.Number, v) }
func dyn(t typesystem.Type) *typesystem.Annotation { return typesystem.New(t) }
