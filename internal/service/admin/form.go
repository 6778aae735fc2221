package admin

import (
	"fmt"
	"slices"
	"sort"
	"unicode/utf8"

	"github.com/heartmarshall/crudkit/internal/domain"
)

// validateForm checks form against the resource's form fields under the
// form's validation group. Unknown fields are rejected.
func (r Resource) validateForm(form *domain.Form) error {
	var errs []domain.FieldError

	names := make([]string, 0, len(form.Values))
	for name := range form.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := r.formField(name); !ok {
			errs = append(errs, domain.FieldError{Field: name, Message: "is not editable"})
		}
	}

	for _, f := range r.FormFields {
		v, present := form.Values[f.Name]
		if slices.Contains(f.RequiredIn, form.Group) && (!present || isBlank(v)) {
			errs = append(errs, domain.FieldError{Field: f.Name, Message: "is required"})
			continue
		}
		s, isString := v.(string)
		if !present || !isString {
			continue
		}
		if f.MaxLength > 0 && utf8.RuneCountInString(s) > f.MaxLength {
			errs = append(errs, domain.FieldError{Field: f.Name, Message: fmt.Sprintf("must be at most %d characters", f.MaxLength)})
		}
		if len(f.Choices) > 0 && !slices.Contains(f.Choices, s) {
			errs = append(errs, domain.FieldError{Field: f.Name, Message: "is not a valid choice"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// bind copies the submitted form fields onto e.
func (r Resource) bind(e domain.Entity, form *domain.Form) error {
	src, ok := e.(domain.FieldSource)
	if !ok {
		return fmt.Errorf("entity of class %q does not expose its fields: %w", e.EntityClass(), domain.ErrConfiguration)
	}
	for _, f := range r.FormFields {
		if v, ok := form.Values[f.Name]; ok {
			src.SetFieldValue(f.Name, v)
		}
	}
	return nil
}

func isBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	}
	return false
}
