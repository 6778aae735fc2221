package domain

import (
	"fmt"
	"maps"
)

// IDField is the field name under which a Record keeps its identity.
const IDField = "id"

// Entity is any domain object managed by the CRUD layer.
type Entity interface {
	EntityClass() string
}

// Identifiable entities expose the identity used to label and route them.
type Identifiable interface {
	EntityID() any
}

// FieldSource entities expose their persisted fields to storage backends.
type FieldSource interface {
	FieldValues() map[string]any
	SetFieldValue(name string, value any)
}

// Record is the generic entity returned by storage backends.
// PrimaryKey names the identity field; empty means IDField.
type Record struct {
	Class      string         `json:"-"`
	PrimaryKey string         `json:"-"`
	Fields     map[string]any `json:"fields"`
}

// NewRecord creates a Record of class with a copy of fields.
func NewRecord(class string, fields map[string]any) *Record {
	r := &Record{Class: class, Fields: make(map[string]any, len(fields))}
	maps.Copy(r.Fields, fields)
	return r
}

func (r *Record) EntityClass() string { return r.Class }

// EntityID returns the primary key value, or nil before the record is persisted.
func (r *Record) EntityID() any { return r.Fields[r.IDField()] }

// IDField returns the name of the primary key field.
func (r *Record) IDField() string {
	if r.PrimaryKey == "" {
		return IDField
	}
	return r.PrimaryKey
}

// FieldValues returns the live field map.
func (r *Record) FieldValues() map[string]any { return r.Fields }

func (r *Record) SetFieldValue(name string, value any) {
	if r.Fields == nil {
		r.Fields = make(map[string]any)
	}
	r.Fields[name] = value
}

// Get returns a single field value.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// EntityIDOf returns the identity of e. Entities without an identity
// accessor, or whose id is nil, fail with ErrMissingIdentity.
func EntityIDOf(e Entity) (any, error) {
	ident, ok := e.(Identifiable)
	if !ok {
		return nil, fmt.Errorf("entity of class %q must implement EntityID(): %w", e.EntityClass(), ErrMissingIdentity)
	}
	id := ident.EntityID()
	if id == nil {
		return nil, fmt.Errorf("entity of class %q: nil id: %w", e.EntityClass(), ErrMissingIdentity)
	}
	return id, nil
}

// EntityLabel returns a human-facing label: the entity's String() when it is
// a fmt.Stringer, "Class#ID" otherwise.
func EntityLabel(e Entity) (string, error) {
	if s, ok := e.(fmt.Stringer); ok {
		return s.String(), nil
	}
	id, err := EntityIDOf(e)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s#%v", e.EntityClass(), id), nil
}
