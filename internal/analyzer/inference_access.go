package analyzer

import (
	"math"

	"github.com/funvibe/jsti/internal/ast"
	"github.com/funvibe/jsti/internal/diagnostics"
	"github.com/funvibe/jsti/internal/registry"
	"github.com/funvibe/jsti/internal/typesystem"
)

func (w *walker) VisitMemberExpression(n *ast.MemberExpression) error {
	object, err := w.resolve(n.Object)
	if err != nil {
		return err
	}
	if !object.IsValid() {
		w.set(n, poisoned())
		return nil
	}
	if n.Computed {
		return w.indexAccess(n, object)
	}

	name := n.PropertyName()
	if object.IsUndefined() {
		// e.g. var a = undefined; a.unknown;
		w.set(n, invalid(n, diagnostics.TypeError, "Cannot read property '"+name+"' of undefined"))
		return nil
	}
	if !object.IsObject() {
		// e.g. var a = 5; a.unknown;
		w.set(n, typesystem.New(typesystem.Undefined))
		return nil
	}
	if _, ok := n.Object.(*ast.Identifier); ok {
		w.set(n.Object, object)
	}

	desc, ok := w.property(object, name)
	if !ok {
		w.set(n.Property, typesystem.New(typesystem.Undefined))
		w.set(n, typesystem.New(typesystem.Undefined))
		return nil
	}
	res := desc.Info.Clone()
	if desc.Get != nil {
		if v, ok := object.StaticValue(); ok {
			if pv, ok := desc.Get(v); ok {
				res.SetStaticValue(pv)
			}
		}
	}
	w.propagateUniforms(res, object)
	w.set(n.Property, res)
	w.set(n, res)
	return nil
}

// property looks up name on the registry entry describing object.
func (w *walker) property(object *typesystem.Annotation, name string) (*registry.Descriptor, bool) {
	o, ok := registry.ObjectOf(w.registry, object)
	if !ok {
		return nil, false
	}
	return o.Property(name)
}

// indexAccess types a[i]. Only arrays can be indexed; the index must be
// numeric.
func (w *walker) indexAccess(n *ast.MemberExpression, object *typesystem.Annotation) error {
	if !object.IsArray() {
		w.set(n, invalid(n, diagnostics.EngineError, "no array access to object yet"))
		return nil
	}
	index, err := w.resolve(n.Property)
	if err != nil {
		return err
	}
	if !index.IsValid() {
		w.set(n, poisoned())
		return nil
	}
	if !index.CanNumber() {
		return diagnostics.Throw(n, diagnostics.TypeError, "Expected 'int' or 'number' type for array accessor")
	}

	res := object.Elements().Clone()
	res.SetDynamicValue()
	if values, ok := object.StaticValue(); ok {
		if iv, ok := index.StaticValue(); ok {
			res = elementAt(res, values, typesystem.ToNumber(iv))
		}
	}
	w.propagateUniforms(res, object, index)
	w.set(n, res)
	return nil
}

// elementAt folds a static index into a static array. Indices outside the
// array read undefined.
func elementAt(elementType *typesystem.Annotation, values any, index float64) *typesystem.Annotation {
	arr, ok := values.([]any)
	if !ok {
		return elementType
	}
	if index != math.Trunc(index) || index < 0 || index >= float64(len(arr)) {
		return typesystem.New(typesystem.Undefined)
	}
	v := arr[int(index)]
	if typesystem.IsUndefinedValue(v) {
		return typesystem.New(typesystem.Undefined)
	}
	res := elementType.Clone()
	if res.Is(typesystem.Any) {
		return typesystem.FromValue(v)
	}
	res.SetStaticValue(v)
	return res
}
