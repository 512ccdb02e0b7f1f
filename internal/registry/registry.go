// Package registry defines the contract between the inference pass and the
// catalogue of builtin objects (Math, vector constructors, ...).
package registry

import (
	"github.com/funvibe/jsti/internal/ast"
	"github.com/funvibe/jsti/internal/symbols"
	"github.com/funvibe/jsti/internal/typesystem"
)

// Context is the analysis state passed down the traversal. Builtins
// receive the state in effect at the call.
type Context struct {
	// InDeclaration is set inside a variable declaration. Assignments in
	// this mode do not write back to the scope.
	InDeclaration bool

	// Uniforms propagates uniform-dependency metadata from operands to the
	// expressions that read them.
	Uniforms bool
}

// Declaration returns a copy of c in declaration mode.
func (c Context) Declaration() Context {
	c.InDeclaration = true
	return c
}

// Call bundles everything a builtin sees when it is invoked.
type Call struct {
	Node     ast.Node                 // the call or new expression
	Result   *typesystem.Annotation   // annotation of Node, already reset to dynamic
	Args     []*typesystem.Annotation // resolved argument annotations
	Scope    *symbols.Scope
	Receiver *typesystem.Annotation // object the method was read from; nil for constructors
	Registry Registry
	Context  Context
}

// Callable computes the result shape of a call. A failure is reported as
// an INVALID annotation, never as an error.
type Callable interface {
	Evaluate(c *Call) *typesystem.Annotation
}

// StaticCallable is implemented by callables that can fold a call whose
// arguments are all static. ok is false when no constant can be derived.
type StaticCallable interface {
	Callable
	ComputeStaticValue(c *Call) (v any, ok bool)
}

// Getter folds a property read on an instance with a static value.
type Getter func(receiver any) (any, bool)

// Descriptor describes one property: a plain type fact, or a callable when
// Info is a FUNCTION.
type Descriptor struct {
	Info     *typesystem.Annotation
	Callable Callable
	Get      Getter
}

// IsFunction reports whether the property can be called.
func (d *Descriptor) IsFunction() bool {
	return d.Callable != nil
}

// Object is one registry entry.
type Object struct {
	ID          string
	Kind        typesystem.Kind
	Properties  map[string]*Descriptor
	Constructor Callable // nil when the object cannot be used with new
}

// Property returns the descriptor of name.
func (o *Object) Property(name string) (*Descriptor, bool) {
	d, ok := o.Properties[name]
	return d, ok
}

// Registry resolves builtin objects by id, and instance prototypes by kind.
type Registry interface {
	Lookup(id string) (*Object, bool)
	ForKind(kind typesystem.Kind) (*Object, bool)
}

// ObjectOf finds the entry describing the value annotated by a: its
// ObjectRef first, then its object kind.
func ObjectOf(r Registry, a *typesystem.Annotation) (*Object, bool) {
	if r == nil || a == nil || !a.IsValid() {
		return nil, false
	}
	if a.ObjectRef != "" {
		return r.Lookup(a.ObjectRef)
	}
	if k := a.Kind(); k != "" && k != typesystem.KindAny {
		return r.ForKind(k)
	}
	return nil, false
}

// Reference builds the annotation a scope binding of o carries. Objects
// with a constructor are FUNCTION bindings, the rest plain OBJECTs.
func Reference(o *Object) *typesystem.Annotation {
	if o.Constructor != nil {
		a := typesystem.New(typesystem.Function)
		a.ObjectRef = o.ID
		return a
	}
	return typesystem.NewObject(o.ID, typesystem.KindAny)
}
