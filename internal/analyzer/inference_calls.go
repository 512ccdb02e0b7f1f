package analyzer

import (
	"github.com/funvibe/jsti/internal/ast"
	"github.com/funvibe/jsti/internal/diagnostics"
	"github.com/funvibe/jsti/internal/registry"
	"github.com/funvibe/jsti/internal/typesystem"
)

// VisitCallExpression types calls of registry methods (Math.cos(x)) and of
// scope functions (f(x)).
//
// A registry method that is missing or not callable aborts the pass, while
// an unbound or non-function name in scope only invalidates the call.
func (w *walker) VisitCallExpression(n *ast.CallExpression) error {
	args, err := w.resolveAll(n.Arguments)
	if err != nil {
		return err
	}
	if anyInvalid(args...) {
		w.set(n, invalid(n, diagnostics.EngineError, "Not all arguments types of call expression could be evaluated"))
		return nil
	}

	switch callee := n.Callee.(type) {
	case *ast.MemberExpression:
		return w.methodCall(n, callee, args)
	case *ast.Identifier:
		return w.functionCall(n, callee, args)
	}
	w.set(n, invalid(n, diagnostics.EngineError, "Unhandled CallExpression", string(n.Callee.Kind())))
	return nil
}

func (w *walker) methodCall(n *ast.CallExpression, callee *ast.MemberExpression, args []*typesystem.Annotation) error {
	member := w.types.Get(callee)
	if !member.IsValid() {
		w.set(n, poisoned())
		return nil
	}
	receiver, err := w.resolve(callee.Object)
	if err != nil {
		return err
	}

	name := callee.PropertyName()
	desc, ok := w.property(receiver, name)
	if !callee.Computed && ok && desc.IsFunction() {
		return w.invoke(n, desc.Callable, &registry.Call{
			Node:     n,
			Args:     args,
			Scope:    w.scope,
			Receiver: receiver,
			Registry: w.registry,
			Context:  w.ctx,
		})
	}

	if ok {
		// e.g. Math.PI()
		w.set(n, invalid(n, diagnostics.TypeError,
			"Property '"+name+"' of object #<"+receiver.TypeString()+"> is not a function"))
		return diagnostics.Throw(n, diagnostics.TypeError, member.TypeString(), "is not a function")
	}
	w.set(n, invalid(n, diagnostics.TypeError, receiver.TypeString(), "has no method '"+name+"'"))
	return diagnostics.Throw(n, diagnostics.TypeError, "undefined is not a function")
}

func (w *walker) functionCall(n *ast.CallExpression, callee *ast.Identifier, args []*typesystem.Annotation) error {
	fn, ok := w.scope.Get(callee.Name)
	if !ok {
		w.set(n, invalid(n, diagnostics.ReferenceError, callee.Name, "is not defined"))
		return nil
	}
	if !fn.IsFunction() {
		w.set(n, invalid(n, diagnostics.TypeError, fn.TypeString(), "is not a function"))
		return nil
	}
	if o, ok := registry.ObjectOf(w.registry, fn); ok && o.Constructor != nil {
		return w.invoke(n, o.Constructor, &registry.Call{
			Node:     n,
			Args:     args,
			Scope:    w.scope,
			Registry: w.registry,
			Context:  w.ctx,
		})
	}

	res := typesystem.New(typesystem.Any)
	if fn.ReturnInfo != nil {
		res = fn.ReturnInfo.Clone()
		if !res.IsValid() {
			res = poisoned()
		}
	}
	w.set(n, res)
	return nil
}

func (w *walker) VisitNewExpression(n *ast.NewExpression) error {
	callee, ok := n.Callee.(*ast.Identifier)
	if !ok {
		w.set(n, invalid(n, diagnostics.EngineError, "new", ast.Describe(n.Callee), "is not supported."))
		return nil
	}
	fn, ok := w.scope.Get(callee.Name)
	if !ok {
		return diagnostics.Throw(n, diagnostics.ReferenceError, callee.Name, "is not defined")
	}
	o, ok := registry.ObjectOf(w.registry, fn)
	if !ok || o.Constructor == nil {
		w.set(n, invalid(n, diagnostics.TypeError, callee.Name, "is not a constructor"))
		return nil
	}

	args, err := w.resolveAll(n.Arguments)
	if err != nil {
		return err
	}
	if anyInvalid(args...) {
		w.set(n, poisoned())
		return nil
	}
	return w.invoke(n, o.Constructor, &registry.Call{
		Node:     n,
		Args:     args,
		Scope:    w.scope,
		Registry: w.registry,
		Context:  w.ctx,
	})
}

// invoke evaluates a builtin for node n. The result shape comes from
// Evaluate; the constant, when the builtin can fold, from
// ComputeStaticValue. Folding failures leave the result dynamic.
func (w *walker) invoke(n ast.Node, fn registry.Callable, call *registry.Call) error {
	res := w.types.Get(n)
	res.SetDynamicValue()
	call.Result = res

	out := fn.Evaluate(call)
	if !out.IsValid() {
		w.set(n, out)
		return nil
	}
	res.Copy(out)
	res.SetDynamicValue()

	if sc, ok := fn.(registry.StaticCallable); ok {
		if v, ok := sc.ComputeStaticValue(call); ok {
			res.SetStaticValue(v)
		}
	}
	w.propagateUniforms(res, call.Args...)
	return nil
}
