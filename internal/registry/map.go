package registry

import (
	"maps"
	"slices"

	"github.com/funvibe/jsti/internal/typesystem"
)

// Map is an in-memory Registry.
type Map struct {
	objects map[string]*Object
	kinds   map[typesystem.Kind]*Object
}

func NewMap() *Map {
	return &Map{
		objects: make(map[string]*Object),
		kinds:   make(map[typesystem.Kind]*Object),
	}
}

// Register adds o under its id. Objects with a non-any kind also become the
// prototype of every instance of that kind.
func (m *Map) Register(o *Object) {
	m.objects[o.ID] = o
	if o.Kind != "" && o.Kind != typesystem.KindAny {
		m.kinds[o.Kind] = o
	}
}

func (m *Map) Lookup(id string) (*Object, bool) {
	o, ok := m.objects[id]
	return o, ok
}

func (m *Map) ForKind(kind typesystem.Kind) (*Object, bool) {
	o, ok := m.kinds[kind]
	return o, ok
}

// IDs lists the registered ids in sorted order.
func (m *Map) IDs() []string {
	return slices.Sorted(maps.Keys(m.objects))
}
