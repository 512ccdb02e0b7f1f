package analyzer

import (
	"github.com/funvibe/jsti/internal/ast"
	"github.com/funvibe/jsti/internal/diagnostics"
	"github.com/funvibe/jsti/internal/evaluator"
	"github.com/funvibe/jsti/internal/registry"
	"github.com/funvibe/jsti/internal/symbols"
	"github.com/funvibe/jsti/internal/typesystem"
)

// walker applies one rule per node kind, strictly after the node's
// children. It implements ast.Visitor.
type walker struct {
	scope    *symbols.Scope
	registry registry.Registry
	eval     *evaluator.Evaluator
	types    *typesystem.Table

	ctx   Context
	saved []Context
}

var _ ast.Visitor = (*walker)(nil)

func (w *walker) enter(n ast.Node) error {
	if _, ok := n.(*ast.VariableDeclaration); ok {
		w.saved = append(w.saved, w.ctx)
		w.ctx = w.ctx.Declaration()
	}
	return nil
}

func (w *walker) leave(n ast.Node) error {
	err := n.Accept(w)
	if _, ok := n.(*ast.VariableDeclaration); ok {
		w.ctx = w.saved[len(w.saved)-1]
		w.saved = w.saved[:len(w.saved)-1]
	}
	return err
}

// set replaces the annotation of n with info.
func (w *walker) set(n ast.Node, info *typesystem.Annotation) {
	w.types.Get(n).Copy(info)
}

// resolve returns what n evaluates to: the scope binding for identifiers,
// the node's own annotation otherwise. Unbound identifiers are fatal.
func (w *walker) resolve(n ast.Node) (*typesystem.Annotation, error) {
	return w.scope.Resolve(n, w.types)
}

func (w *walker) resolveAll(nodes []ast.Expression) ([]*typesystem.Annotation, error) {
	out := make([]*typesystem.Annotation, len(nodes))
	for i, n := range nodes {
		if n == nil {
			out[i] = typesystem.New(typesystem.Undefined)
			continue
		}
		info, err := w.resolve(n)
		if err != nil {
			return nil, err
		}
		out[i] = info
	}
	return out, nil
}

// poisoned is the annotation of a node with an invalid operand. The cause
// is already recorded further down the tree and is not restated.
func poisoned() *typesystem.Annotation {
	return typesystem.New(typesystem.Invalid)
}

func invalid(n ast.Node, kind diagnostics.Kind, parts ...string) *typesystem.Annotation {
	a := typesystem.New(typesystem.Invalid)
	a.SetInvalid(diagnostics.New(n, kind, parts...))
	return a
}

func anyInvalid(infos ...*typesystem.Annotation) bool {
	for _, a := range infos {
		if !a.IsValid() {
			return true
		}
	}
	return false
}

// propagateUniforms records on res the union of the operands' uniform
// dependencies.
func (w *walker) propagateUniforms(res *typesystem.Annotation, operands ...*typesystem.Annotation) {
	if !w.ctx.Uniforms || !res.IsValid() {
		return
	}
	var deps [][]string
	for _, op := range operands {
		if op.IsUniformExpression() {
			deps = append(deps, op.UniformDependencies())
		}
	}
	if len(deps) > 0 {
		res.SetUniformDependencies(deps...)
	}
}

func (w *walker) VisitProgram(*ast.Program) error { return nil }
