package domain

import "maps"

// Form is submitted form data. Values are keyed by field name.
type Form struct {
	Values map[string]any
	// Group is the validation group the form was submitted under.
	Group string
}

// NewForm copies values into a new Form.
func NewForm(group string, values map[string]any) *Form {
	f := &Form{Group: group, Values: make(map[string]any, len(values))}
	maps.Copy(f.Values, values)
	return f
}

// String returns the value of name as a string when it is one.
func (f *Form) String(name string) (string, bool) {
	s, ok := f.Values[name].(string)
	return s, ok
}

// Has reports whether name was submitted.
func (f *Form) Has(name string) bool {
	_, ok := f.Values[name]
	return ok
}
