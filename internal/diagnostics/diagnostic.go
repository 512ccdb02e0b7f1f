// Package diagnostics defines the two failure tiers of type inference.
//
// A Diagnostic is soft: it is attached to the annotation of the node that
// failed, and the pass continues. An Error is fatal: it is returned from the
// pass and aborts it. Both carry the same Kind and source location.
package diagnostics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/funvibe/jsti/internal/ast"
)

// Kind classifies a failure the way the host language would name it.
type Kind int

const (
	EngineError Kind = iota
	ReferenceError
	TypeError
	NaNError
)

func (k Kind) String() string {
	switch k {
	case ReferenceError:
		return "ReferenceError"
	case TypeError:
		return "TypeError"
	case NaNError:
		return "NotANumberError"
	default:
		return "Error"
	}
}

// Diagnostic is a soft failure recorded on a node's annotation.
type Diagnostic struct {
	Kind    Kind
	Message string
	Loc     ast.Location
	Node    ast.NodeID
}

// New builds a diagnostic for node n. Message parts are joined by spaces,
// skipping empty parts.
func New(n ast.Node, kind Kind, parts ...string) *Diagnostic {
	d := &Diagnostic{Kind: kind, Message: join(parts)}
	if n != nil {
		d.Loc = n.Loc()
		d.Node = n.ID()
	}
	return d
}

func (d *Diagnostic) String() string {
	if d == nil {
		return ""
	}
	msg := d.Kind.String()
	if d.Message != "" {
		msg += ": " + d.Message
	}
	if !d.Loc.IsZero() {
		msg += " (" + d.Loc.String() + ")"
	}
	return msg
}

// Error is a fatal failure that aborts the whole inference pass.
type Error struct {
	Diagnostic
}

func (e *Error) Error() string {
	return e.Diagnostic.String()
}

// Throw builds a fatal error for node n.
func Throw(n ast.Node, kind Kind, parts ...string) *Error {
	return &Error{Diagnostic: *New(n, kind, parts...)}
}

// Throwf builds a fatal error with a formatted message.
func Throwf(n ast.Node, kind Kind, format string, args ...any) *Error {
	return Throw(n, kind, fmt.Sprintf(format, args...))
}

// AsError extracts a fatal inference error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err is a fatal inference error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := AsError(err)
	return ok && e.Kind == kind
}

func join(parts []string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
