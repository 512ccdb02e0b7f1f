package typesystem

import "github.com/funvibe/jsti/internal/ast"

// Table is the annotation side table of one tree, indexed by node id.
// Annotations are created on first access.
type Table struct {
	entries  []*Annotation
	detached map[ast.Node]*Annotation
}

func NewTable(size int) *Table {
	return &Table{entries: make([]*Annotation, size+1)}
}

// Get returns the annotation of n, creating an ANY annotation on first use.
// Nodes outside any tree (id 0) get an annotation keyed by identity.
func (t *Table) Get(n ast.Node) *Annotation {
	id := n.ID()
	if id == 0 {
		if t.detached == nil {
			t.detached = make(map[ast.Node]*Annotation)
		}
		a, ok := t.detached[n]
		if !ok {
			a = New(Any)
			t.detached[n] = a
		}
		return a
	}
	t.grow(int(id))
	if t.entries[id] == nil {
		t.entries[id] = New(Any)
	}
	return t.entries[id]
}

// Lookup returns the annotation of n without creating one.
func (t *Table) Lookup(n ast.Node) (*Annotation, bool) {
	id := n.ID()
	if id == 0 {
		a, ok := t.detached[n]
		return a, ok
	}
	if int(id) >= len(t.entries) || t.entries[id] == nil {
		return nil, false
	}
	return t.entries[id], true
}

// ByID returns the annotation stored for id, or nil.
func (t *Table) ByID(id ast.NodeID) *Annotation {
	if id <= 0 || int(id) >= len(t.entries) {
		return nil
	}
	return t.entries[id]
}

// Len is the number of annotated nodes.
func (t *Table) Len() int {
	n := len(t.detached)
	for _, a := range t.entries {
		if a != nil {
			n++
		}
	}
	return n
}

func (t *Table) grow(id int) {
	if id < len(t.entries) {
		return
	}
	next := make([]*Annotation, id+1)
	copy(next, t.entries)
	t.entries = next
}
