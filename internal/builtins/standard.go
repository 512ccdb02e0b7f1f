// Package builtins is the catalogue of predefined objects available to
// analyzed code: the Math object and the VecN vector constructors.
package builtins

import (
	"github.com/funvibe/jsti/internal/registry"
	"github.com/funvibe/jsti/internal/symbols"
)

// Standard returns a registry holding every builtin object.
func Standard() *registry.Map {
	m := registry.NewMap()
	m.Register(Math())
	for n := 2; n <= 4; n++ {
		m.Register(Vector(n))
	}
	return m
}

// Declare binds every object of m in scope under its id.
func Declare(scope *symbols.Scope, m *registry.Map) {
	for _, id := range m.IDs() {
		o, _ := m.Lookup(id)
		scope.Declare(id, registry.Reference(o))
	}
}

// StandardScope returns a fresh global scope seeded with the standard
// builtins, together with their registry.
func StandardScope() (*symbols.Scope, *registry.Map) {
	m := Standard()
	scope := symbols.NewGlobalScope()
	Declare(scope, m)
	return scope, m
}
