package symbols

import (
	"github.com/funvibe/jsti/internal/ast"
	"github.com/funvibe/jsti/internal/config"
	"github.com/funvibe/jsti/internal/diagnostics"
	"github.com/funvibe/jsti/internal/typesystem"
)

// Resolve returns the annotation a node evaluates to. Identifiers resolve
// through the scope chain and fail fatally when unbound; every other node
// yields its own annotation from table.
func (s *Scope) Resolve(n ast.Node, table *typesystem.Table) (*typesystem.Annotation, error) {
	id, ok := n.(*ast.Identifier)
	if !ok {
		return table.Get(n), nil
	}
	if info, ok := s.Get(id.Name); ok {
		return info, nil
	}
	if id.Name == config.UndefinedName {
		return table.Get(n), nil
	}
	return nil, diagnostics.Throw(n, diagnostics.ReferenceError, id.Name, "is not defined")
}

// functionScope is the nearest function scope, or the global one.
func (s *Scope) functionScope() *Scope {
	cur := s
	for cur.scopeType == ScopeBlock && cur.outer != nil {
		cur = cur.outer
	}
	return cur
}

// UpdateReturnInfo joins info into the return annotation of the enclosing
// function. A return type that cannot be joined becomes invalid.
func (s *Scope) UpdateReturnInfo(n ast.Node, info *typesystem.Annotation) {
	fs := s.functionScope()
	if fs.returnInfo == nil {
		fs.returnInfo = info.Clone()
		return
	}
	if !fs.returnInfo.IsValid() {
		return
	}
	joined := &typesystem.Annotation{}
	if joined.SetCommonType(fs.returnInfo, info) {
		fs.returnInfo = joined
		return
	}
	fs.returnInfo.SetInvalid(diagnostics.New(n, diagnostics.TypeError,
		"polymorphic return type:", fs.returnInfo.TypeString(), "and", info.TypeString()))
}

// ReturnInfo is the joined return annotation of the enclosing function,
// or nil when no return statement was seen.
func (s *Scope) ReturnInfo() *typesystem.Annotation {
	return s.functionScope().returnInfo
}
