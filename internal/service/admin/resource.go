package admin

import (
	"fmt"
	"slices"

	"github.com/heartmarshall/crudkit/internal/domain"
)

// Validation groups a form is checked under.
const (
	GroupCreate = "create"
	GroupEdit   = "edit"
)

// Route actions; RouteName joins them with the route prefix.
const (
	ActionList   = "list"
	ActionCreate = "create"
	ActionShow   = "show"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// FormField is one editable field and its constraints.
type FormField struct {
	Name string
	// RequiredIn lists the validation groups in which the field must be
	// submitted and non-empty.
	RequiredIn []string
	// MaxLength bounds string values; 0 means unbounded.
	MaxLength int
	// Choices restricts the value to a fixed set when non-empty.
	Choices []string
}

// ShowSection groups fields on the detail view.
type ShowSection struct {
	Name        string            `json:"name"`
	Label       string            `json:"label"`
	Description string            `json:"description,omitempty"`
	Fields      domain.ListFields `json:"fields"`
}

// Resource is the admin configuration of one entity class.
type Resource struct {
	Class        string
	RoutePrefix  string
	ListFields   domain.ListFields
	SearchFields []string
	// FilterFields may be filtered on by exact match.
	FilterFields []string
	FormFields   []FormField
	// ShowSections defaults to a single "general" section with the list fields.
	ShowSections []ShowSection
	DefaultLimit int
}

// Validate checks the resource against the entity registry. Every failure is
// a configuration error.
func (r Resource) Validate(reg *domain.Registry) error {
	et, err := reg.Lookup(r.Class)
	if err != nil {
		return err
	}
	if r.RoutePrefix == "" {
		return r.configError("route prefix is required")
	}
	if r.ListFields.Len() == 0 {
		return r.configError("at least one list field is required")
	}
	for _, name := range r.ListFields.Names() {
		if !et.HasColumn(name) {
			return r.configError(fmt.Sprintf("list field %q is not a column", name))
		}
	}
	for _, name := range r.SearchFields {
		if !et.HasColumn(name) {
			return r.configError(fmt.Sprintf("search field %q is not a column", name))
		}
	}
	for _, name := range r.FilterFields {
		if !et.HasColumn(name) {
			return r.configError(fmt.Sprintf("filter field %q is not a column", name))
		}
	}
	seen := make(map[string]bool, len(r.FormFields))
	for _, f := range r.FormFields {
		if !et.HasColumn(f.Name) {
			return r.configError(fmt.Sprintf("form field %q is not a column", f.Name))
		}
		if f.Name == et.PrimaryKey {
			return r.configError(fmt.Sprintf("form field %q is the primary key", f.Name))
		}
		if seen[f.Name] {
			return r.configError(fmt.Sprintf("form field %q declared twice", f.Name))
		}
		seen[f.Name] = true
	}
	if r.DefaultLimit < 0 {
		return r.configError("default limit must not be negative")
	}
	return nil
}

// RouteName returns "<prefix>_<action>".
func (r Resource) RouteName(action string) string {
	return r.RoutePrefix + "_" + action
}

// Sections returns the configured show sections or the default one.
func (r Resource) Sections() []ShowSection {
	if len(r.ShowSections) > 0 {
		return slices.Clone(r.ShowSections)
	}
	return []ShowSection{{
		Name:   "general",
		Label:  "General",
		Fields: r.ListFields,
	}}
}

func (r Resource) formField(name string) (FormField, bool) {
	i := slices.IndexFunc(r.FormFields, func(f FormField) bool { return f.Name == name })
	if i < 0 {
		return FormField{}, false
	}
	return r.FormFields[i], true
}

func (r Resource) configError(msg string) error {
	return fmt.Errorf("resource %q: %s: %w", r.Class, msg, domain.ErrConfiguration)
}
