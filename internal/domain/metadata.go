package domain

import (
	"fmt"
	"slices"
)

// EntityType is the storage metadata of an entity class.
type EntityType struct {
	Class      string
	Table      string
	PrimaryKey string
	Columns    []string
}

// HasColumn reports whether name is a declared column (primary key included).
func (t EntityType) HasColumn(name string) bool {
	return name == t.PrimaryKey || slices.Contains(t.Columns, name)
}

// AllColumns returns the primary key followed by the declared columns.
func (t EntityType) AllColumns() []string {
	cols := make([]string, 0, len(t.Columns)+1)
	cols = append(cols, t.PrimaryKey)
	for _, c := range t.Columns {
		if c != t.PrimaryKey {
			cols = append(cols, c)
		}
	}
	return cols
}

// Registry resolves entity classes to their metadata. It is built once at
// startup and injected; there is no package-level registry.
type Registry struct {
	types map[string]EntityType
	order []string
}

// NewRegistry validates and indexes the given entity types.
func NewRegistry(types ...EntityType) (*Registry, error) {
	r := &Registry{types: make(map[string]EntityType, len(types))}
	for _, t := range types {
		if t.Class == "" || t.Table == "" {
			return nil, fmt.Errorf("entity type %q: class and table are required: %w", t.Class, ErrConfiguration)
		}
		if _, dup := r.types[t.Class]; dup {
			return nil, fmt.Errorf("entity type %q: registered twice: %w", t.Class, ErrConfiguration)
		}
		if t.PrimaryKey == "" {
			t.PrimaryKey = IDField
		}
		r.types[t.Class] = t
		r.order = append(r.order, t.Class)
	}
	return r, nil
}

// Lookup returns the metadata of class or ErrConfiguration.
func (r *Registry) Lookup(class string) (EntityType, error) {
	t, ok := r.types[class]
	if !ok {
		return EntityType{}, fmt.Errorf("entity class %q: not registered: %w", class, ErrConfiguration)
	}
	return t, nil
}

// Classes returns the registered classes in registration order.
func (r *Registry) Classes() []string {
	return slices.Clone(r.order)
}
