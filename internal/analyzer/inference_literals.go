package analyzer

import (
	"math"
	"strconv"
	"strings"

	"github.com/funvibe/jsti/internal/ast"
	"github.com/funvibe/jsti/internal/config"
	"github.com/funvibe/jsti/internal/diagnostics"
	"github.com/funvibe/jsti/internal/typesystem"
)

func (w *walker) VisitLiteral(n *ast.Literal) error {
	w.set(n, literalInfo(n))
	return nil
}

// literalInfo classifies a literal by its source text: numbers without a
// decimal point are INT, other finite numbers NUMBER. Every literal except
// null stores its value.
func literalInfo(n *ast.Literal) *typesystem.Annotation {
	raw := n.Raw
	switch v := n.Value.(type) {
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			break
		}
		if isIntText(raw, v) {
			return typesystem.NewConstant(typesystem.Int, v)
		}
		return typesystem.NewConstant(typesystem.Number, v)
	case bool:
		return typesystem.NewConstant(typesystem.Boolean, v)
	case nil:
		if raw == "" || raw == "null" {
			return typesystem.New(typesystem.Null)
		}
	case string:
		return typesystem.NewConstant(typesystem.String, v)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsInf(f, 0) {
		if isIntText(raw, f) {
			return typesystem.NewConstant(typesystem.Int, f)
		}
		return typesystem.NewConstant(typesystem.Number, f)
	}
	return typesystem.NewConstant(typesystem.String, typesystem.ToString(n.Value))
}

// isIntText reports whether a numeric literal is written without a decimal
// point. Exponent forms such as 1e-3 still need an integral value.
func isIntText(raw string, v float64) bool {
	if raw == "" {
		return v == math.Trunc(v)
	}
	return !strings.Contains(raw, ".") && v == math.Trunc(v)
}

// VisitIdentifier annotates only the undefined identifier. Other names are
// resolved by the rule of the expression that reads them.
func (w *walker) VisitIdentifier(n *ast.Identifier) error {
	if n.Name != config.UndefinedName {
		return nil
	}
	if _, bound := w.scope.Get(n.Name); !bound {
		w.set(n, typesystem.New(typesystem.Undefined))
	}
	return nil
}

func (w *walker) VisitArrayExpression(n *ast.ArrayExpression) error {
	elements, err := w.resolveAll(n.Elements)
	if err != nil {
		return err
	}
	if anyInvalid(elements...) {
		w.set(n, poisoned())
		return nil
	}

	elementType := typesystem.New(typesystem.Any)
	for i, e := range elements {
		if i == 0 {
			elementType = e.Clone()
			continue
		}
		next := &typesystem.Annotation{}
		if !next.SetCommonType(elementType, e) {
			names := make([]string, len(elements))
			for j, el := range elements {
				names[j] = el.TypeString()
			}
			w.set(n, invalid(n, diagnostics.EngineError,
				"inhomogeneous arrays are not supported: ["+strings.Join(names, ", ")+"]"))
			return nil
		}
		elementType = next
	}
	elementType.SetDynamicValue()
	elementType.ClearUniformDependencies()

	res := typesystem.New(typesystem.Array)
	res.SetElements(elementType)
	if values, ok := staticValues(elements); ok {
		res.SetStaticValue(values)
	}
	w.propagateUniforms(res, elements...)
	w.set(n, res)
	return nil
}

func staticValues(infos []*typesystem.Annotation) ([]any, bool) {
	values := make([]any, len(infos))
	for i, a := range infos {
		v, ok := a.StaticValue()
		if !ok {
			return nil, false
		}
		values[i] = v
	}
	return values, true
}
