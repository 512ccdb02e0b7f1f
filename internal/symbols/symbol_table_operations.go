package symbols

import (
	"slices"

	"github.com/funvibe/jsti/internal/ast"
	"github.com/funvibe/jsti/internal/typesystem"
)

// Declare binds name in this scope only, replacing an earlier binding of
// the same name.
func (s *Scope) Declare(name string, info *typesystem.Annotation) *Symbol {
	return s.DeclareAt(name, info, nil)
}

// DeclareAt is Declare recording the defining node.
func (s *Scope) DeclareAt(name string, info *typesystem.Annotation, def ast.Node) *Symbol {
	if _, exists := s.store[name]; !exists {
		s.order = append(s.order, name)
	}
	sym := &Symbol{Name: name, Info: info, DefinitionNode: def}
	s.store[name] = sym
	return sym
}

// Get resolves name through the scope chain.
func (s *Scope) Get(name string) (*typesystem.Annotation, bool) {
	sym, _, ok := s.Lookup(name)
	if !ok {
		return nil, false
	}
	return sym.Info, true
}

// Lookup resolves name and also returns the scope that owns the binding.
func (s *Scope) Lookup(name string) (*Symbol, *Scope, bool) {
	for cur := s; cur != nil; cur = cur.outer {
		if sym, ok := cur.store[name]; ok {
			return sym, cur, true
		}
	}
	return nil, nil, false
}


// Assign writes info into the nearest binding of name. It reports false
// when the name is unbound.
func (s *Scope) Assign(name string, info *typesystem.Annotation) bool {
	sym, _, ok := s.Lookup(name)
	if !ok {
		return false
	}
	sym.Info = info.Clone()
	return true
}

// Names lists the names bound in this scope, in declaration order.
func (s *Scope) Names() []string {
	return slices.Clone(s.order)
}
