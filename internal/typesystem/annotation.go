package typesystem

import (
	"fmt"
	"slices"
	"strings"

	"github.com/funvibe/jsti/internal/diagnostics"
)

// Annotation is the derived-fact record of one syntax node.
//
// The type is INVALID exactly when the node failed inference; a valid
// annotation never carries an error. NULL and UNDEFINED always count as
// statically known, with the implicit values null and undefined.
type Annotation struct {
	typ         Type
	kind        Kind
	constant    any
	hasConstant bool
	err         *diagnostics.Diagnostic

	// ObjectRef is the registry id of a builtin object (e.g. "Math").
	ObjectRef string

	elements *Annotation

	uniform    []string
	hasUniform bool

	// ReturnInfo is the joined return annotation of a FUNCTION.
	ReturnInfo *Annotation

	// Metadata consumed by later lowering stages.
	Global   bool
	Output   bool
	Source   string
	Semantic string
}

// New returns an annotation of type t.
func New(t Type) *Annotation {
	a := &Annotation{}
	a.SetType(t)
	return a
}

// NewObject returns an OBJECT annotation that refers to a registry entry.
func NewObject(ref string, kind Kind) *Annotation {
	a := &Annotation{ObjectRef: ref}
	a.SetTypeKind(Object, kind)
	return a
}

// NewConstant returns an annotation of type t holding v.
func NewConstant(t Type, v any) *Annotation {
	a := New(t)
	a.SetStaticValue(v)
	return a
}

func (a *Annotation) Type() Type { return a.typ }

// Kind returns the object subtype, or "" for non-objects.
func (a *Annotation) Kind() Kind {
	if !a.IsObject() {
		return ""
	}
	return a.kind
}

func (a *Annotation) SetKind(k Kind) { a.kind = k }

// SetType moves the annotation to t and clears any error once it is valid.
func (a *Annotation) SetType(t Type) {
	a.typ = t
	if a.IsValid() {
		a.err = nil
	}
}

// SetTypeKind is SetType plus an object subtype.
func (a *Annotation) SetTypeKind(t Type, k Kind) {
	a.SetType(t)
	if k != "" {
		a.kind = k
	}
}

// SetInvalid forces INVALID and records d. A nil d marks the node invalid
// without a diagnostic of its own, which is how a failure propagates to
// ancestors without being restated.
func (a *Annotation) SetInvalid(d *diagnostics.Diagnostic) {
	a.SetType(Invalid)
	a.hasConstant = false
	a.constant = nil
	if d != nil {
		a.err = d
	}
}

func (a *Annotation) Is(t Type) bool { return a.typ == t }

func (a *Annotation) IsValid() bool     { return a.typ != Invalid }
func (a *Annotation) IsInt() bool       { return a.typ == Int }
func (a *Annotation) IsNumber() bool    { return a.typ == Number }
func (a *Annotation) IsBool() bool      { return a.typ == Boolean }
func (a *Annotation) IsString() bool    { return a.typ == String }
func (a *Annotation) IsNull() bool      { return a.typ == Null }
func (a *Annotation) IsUndefined() bool { return a.typ == Undefined }
func (a *Annotation) IsArray() bool     { return a.typ == Array }
func (a *Annotation) IsFunction() bool  { return a.typ == Function }
func (a *Annotation) IsObject() bool    { return a.typ == Object }

func (a *Annotation) IsNullOrUndefined() bool {
	return a.IsNull() || a.IsUndefined()
}

// IsOfKind reports whether a is an OBJECT of kind k.
func (a *Annotation) IsOfKind(k Kind) bool {
	return a.IsObject() && a.kind == k
}

// Error returns the diagnostic of an INVALID annotation, if any.
func (a *Annotation) Error() *diagnostics.Diagnostic { return a.err }

func (a *Annotation) HasError() bool { return a.err != nil }

// HasStaticValue reports whether the value is known without execution.
func (a *Annotation) HasStaticValue() bool {
	return a.IsNullOrUndefined() || a.hasConstant
}

// StaticValue returns the known value; ok is false for dynamic values.
func (a *Annotation) StaticValue() (v any, ok bool) {
	switch {
	case a.IsNull():
		return nil, true
	case a.IsUndefined():
		return UndefinedValue, true
	case a.hasConstant:
		return a.constant, true
	}
	return nil, false
}

// SetStaticValue records v as the node's constant. NULL and UNDEFINED
// already have implicit values, so the call is ignored for them.
func (a *Annotation) SetStaticValue(v any) {
	if a.IsNullOrUndefined() {
		return
	}
	a.constant = Normalize(v)
	a.hasConstant = true
}

// SetDynamicValue drops any stored constant.
func (a *Annotation) SetDynamicValue() {
	a.constant = nil
	a.hasConstant = false
}

// HasStoredConstant reports whether a constant is stored explicitly, as
// opposed to the implicit null / undefined.
func (a *Annotation) HasStoredConstant() bool { return a.hasConstant }

// Elements returns the element annotation of an ARRAY.
func (a *Annotation) Elements() *Annotation {
	if !a.IsArray() {
		return nil
	}
	if a.elements == nil {
		return New(Any)
	}
	return a.elements
}

func (a *Annotation) SetElements(e *Annotation) {
	if e == nil {
		a.elements = nil
		return
	}
	a.elements = e.Clone()
}

// SetUniformDependencies replaces the dependency set with the union of the
// given names.
func (a *Annotation) SetUniformDependencies(deps ...[]string) {
	var set []string
	for _, d := range deps {
		for _, name := range d {
			if !slices.Contains(set, name) {
				set = append(set, name)
			}
		}
	}
	a.uniform = set
	a.hasUniform = true
}

func (a *Annotation) UniformDependencies() []string { return a.uniform }

// IsUniformExpression reports whether dependency metadata is present.
func (a *Annotation) IsUniformExpression() bool { return a.hasUniform }

// CanUniformExpression reports whether the value is constant or depends
// only on uniforms.
func (a *Annotation) CanUniformExpression() bool {
	return a.HasStaticValue() || a.hasUniform
}

func (a *Annotation) ClearUniformDependencies() {
	a.uniform = nil
	a.hasUniform = false
}

// Copy overwrites a with every fact of other.
func (a *Annotation) Copy(other *Annotation) {
	c := other.Clone()
	*a = *c
}

// Clone returns a copy that shares no mutable state with a.
func (a *Annotation) Clone() *Annotation {
	c := *a
	if a.elements != nil {
		c.elements = a.elements.Clone()
	}
	if a.uniform != nil {
		c.uniform = slices.Clone(a.uniform)
	}
	if a.ReturnInfo != nil {
		c.ReturnInfo = a.ReturnInfo.Clone()
	}
	return &c
}

// TypeString names the type for diagnostics, e.g. "int" or "Object #<float3>".
func (a *Annotation) TypeString() string {
	if a.IsObject() {
		if a.kind == "" || a.kind == KindAny {
			if a.ObjectRef != "" {
				return a.ObjectRef
			}
			return "Object"
		}
		return "Object #<" + string(a.kind) + ">"
	}
	return a.typ.String()
}

// JSTypeString returns the result of `typeof` for this annotation.
func (a *Annotation) JSTypeString() (string, bool) {
	return JSTypeOf(a.typ)
}

func (a *Annotation) String() string {
	var sb strings.Builder
	sb.WriteString(a.typ.String())
	if k := a.Kind(); k != "" && k != KindAny {
		sb.WriteString("/" + string(k))
	}
	if a.IsArray() && a.elements != nil {
		sb.WriteString("<" + a.elements.String() + ">")
	}
	if a.hasConstant {
		sb.WriteString(" = " + formatConstant(a.constant))
	}
	if a.err != nil {
		sb.WriteString(" (" + a.err.String() + ")")
	}
	return sb.String()
}

func formatConstant(v any) string {
	switch x := v.(type) {
	case string:
		return fmt.Sprintf("%q", x)
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = formatConstant(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := SortedKeys(x)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + formatConstant(x[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return ToString(v)
}
