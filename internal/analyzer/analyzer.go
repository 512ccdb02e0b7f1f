package analyzer

import (
	"github.com/funvibe/jsti/internal/ast"
	"github.com/funvibe/jsti/internal/builtins"
	"github.com/funvibe/jsti/internal/evaluator"
	"github.com/funvibe/jsti/internal/registry"
	"github.com/funvibe/jsti/internal/symbols"
	"github.com/funvibe/jsti/internal/typesystem"
)

// Analyzer infers annotations for syntax trees against one scope.
//
// A pass mutates the scope and the annotation table in place. When a pass
// fails with a fatal error both are left partially updated and must be
// discarded.
type Analyzer struct {
	scope    *symbols.Scope
	registry registry.Registry
	eval     *evaluator.Evaluator

	// Context is the initial context of every pass.
	Context Context
}

// New creates an analyzer over scope, resolving builtin objects in reg.
func New(scope *symbols.Scope, reg registry.Registry) *Analyzer {
	return &Analyzer{
		scope:    scope,
		registry: reg,
		eval:     evaluator.New(),
		Context:  Context{Uniforms: true},
	}
}

func (a *Analyzer) Scope() *symbols.Scope { return a.scope }

// Analyze runs one post-order pass over tree. Annotations are written to
// types, or to a fresh table when types is nil. Passing the table of an
// earlier pass re-infers the tree in place.
func (a *Analyzer) Analyze(tree *ast.Tree, types *typesystem.Table) (*Result, error) {
	if types == nil {
		types = typesystem.NewTable(tree.Len())
	}
	w := &walker{
		scope:    a.scope,
		registry: a.registry,
		eval:     a.eval,
		types:    types,
		ctx:      a.Context,
	}
	res := &Result{Tree: tree, Types: types, Scope: a.scope}
	if err := ast.Walk(tree.Root, w.enter, w.leave); err != nil {
		return res, err
	}
	return res, nil
}

// Infer annotates tree. A nil scope stands for a fresh global scope seeded
// with the standard builtins. The first fatal error aborts the pass.
func Infer(tree *ast.Tree, scope *symbols.Scope) (*Result, error) {
	reg := builtins.Standard()
	if scope == nil {
		scope = symbols.NewGlobalScope()
		builtins.Declare(scope, reg)
	}
	return New(scope, reg).Analyze(tree, nil)
}
