package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FieldOptions describes how a single field is presented in a list.
type FieldOptions struct {
	Sortable bool
	Label    string
	// Extra carries display hints the core does not interpret.
	Extra map[string]any
}

// ListField is a named FieldOptions, used to build ListFields in order.
type ListField struct {
	Name string
	FieldOptions
}

// ListFields is the per-view list configuration: field name -> options, in
// declaration order. It is immutable once built.
type ListFields struct {
	order  []string
	fields map[string]FieldOptions
}

// NewListFields builds a ListFields preserving the given order.
// Empty or duplicate names are configuration errors.
func NewListFields(fields ...ListField) (ListFields, error) {
	lf := ListFields{
		order:  make([]string, 0, len(fields)),
		fields: make(map[string]FieldOptions, len(fields)),
	}
	for _, f := range fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return ListFields{}, fmt.Errorf("list field: empty name: %w", ErrConfiguration)
		}
		if _, dup := lf.fields[name]; dup {
			return ListFields{}, fmt.Errorf("list field %q: duplicate: %w", name, ErrConfiguration)
		}
		lf.order = append(lf.order, name)
		lf.fields[name] = f.FieldOptions
	}
	return lf, nil
}

// MustListFields is NewListFields for static configuration; it panics on error.
func MustListFields(fields ...ListField) ListFields {
	lf, err := NewListFields(fields...)
	if err != nil {
		panic(err)
	}
	return lf
}

// Get returns the options of a field.
func (l ListFields) Get(name string) (FieldOptions, bool) {
	opts, ok := l.fields[name]
	return opts, ok
}

// IsSortable reports whether name is configured and marked sortable.
func (l ListFields) IsSortable(name string) bool {
	opts, ok := l.fields[name]
	return ok && opts.Sortable
}

// FirstSortable returns the first sortable field in declaration order.
func (l ListFields) FirstSortable() (string, bool) {
	for _, name := range l.order {
		if l.fields[name].Sortable {
			return name, true
		}
	}
	return "", false
}

// Names returns the field names in declaration order.
func (l ListFields) Names() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Fields returns the fields in declaration order.
func (l ListFields) Fields() []ListField {
	out := make([]ListField, len(l.order))
	for i, name := range l.order {
		out[i] = ListField{Name: name, FieldOptions: l.fields[name]}
	}
	return out
}

func (l ListFields) Len() int { return len(l.order) }

type listFieldJSON struct {
	Name     string         `json:"name"`
	Label    string         `json:"label,omitempty"`
	Sortable bool           `json:"sortable"`
	Extra    map[string]any `json:"extra,omitempty"`
}

// MarshalJSON encodes the fields as an ordered array.
func (l ListFields) MarshalJSON() ([]byte, error) {
	out := make([]listFieldJSON, len(l.order))
	for i, name := range l.order {
		opts := l.fields[name]
		out[i] = listFieldJSON{Name: name, Label: opts.Label, Sortable: opts.Sortable, Extra: opts.Extra}
	}
	return json.Marshal(out)
}
