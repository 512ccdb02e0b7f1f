package symbols

import (
	"github.com/funvibe/jsti/internal/ast"
	"github.com/funvibe/jsti/internal/typesystem"
)

type ScopeType int

const (
	ScopeGlobal ScopeType = iota // Pre-seeded globals and top-level code
	ScopeFunction
	ScopeBlock
)

func (t ScopeType) String() string {
	switch t {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	default:
		return "block"
	}
}

// Symbol is one binding of a scope.
type Symbol struct {
	Name           string
	Info           *typesystem.Annotation
	DefinitionNode ast.Node // nil for pre-seeded globals
}

// Scope owns the bindings of one lexical level and links to its parent.
type Scope struct {
	name       string
	scopeType  ScopeType
	outer      *Scope
	store      map[string]*Symbol
	order      []string
	returnInfo *typesystem.Annotation
}

// NewGlobalScope creates an empty root scope.
func NewGlobalScope() *Scope {
	return newScope("global", ScopeGlobal, nil)
}

// NewFunctionScope creates the scope of a function body. Return statements
// inside it report to this scope.
func NewFunctionScope(outer *Scope, name string) *Scope {
	return newScope(name, ScopeFunction, outer)
}

// NewBlockScope creates a nested block scope.
func NewBlockScope(outer *Scope) *Scope {
	return newScope("block", ScopeBlock, outer)
}

func newScope(name string, t ScopeType, outer *Scope) *Scope {
	return &Scope{
		name:      name,
		scopeType: t,
		outer:     outer,
		store:     make(map[string]*Symbol),
	}
}

func (s *Scope) Name() string         { return s.name }
func (s *Scope) ScopeType() ScopeType { return s.scopeType }
func (s *Scope) Outer() *Scope        { return s.outer }

func (s *Scope) IsGlobal() bool { return s.outer == nil }
