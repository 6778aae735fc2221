package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestListFields_FirstSortable_DeclaredOrder(t *testing.T) {
	t.Parallel()

	lf := MustListFields(
		ListField{Name: "name", FieldOptions: FieldOptions{Sortable: false}},
		ListField{Name: "email", FieldOptions: FieldOptions{Sortable: true}},
		ListField{Name: "role", FieldOptions: FieldOptions{Sortable: true}},
	)

	got, ok := lf.FirstSortable()
	if !ok || got != "email" {
		t.Fatalf("FirstSortable() = (%q, %v), want (email, true)", got, ok)
	}
}

func TestListFields_FirstSortable_None(t *testing.T) {
	t.Parallel()

	lf := MustListFields(ListField{Name: "name"})
	if got, ok := lf.FirstSortable(); ok {
		t.Fatalf("FirstSortable() = %q, want none", got)
	}
}

func TestListFields_IsSortable(t *testing.T) {
	t.Parallel()

	lf := MustListFields(
		ListField{Name: "name", FieldOptions: FieldOptions{Sortable: true}},
		ListField{Name: "bio"},
	)

	if !lf.IsSortable("name") {
		t.Error("name should be sortable")
	}
	if lf.IsSortable("bio") {
		t.Error("bio should not be sortable")
	}
	if lf.IsSortable("missing") {
		t.Error("unknown field should not be sortable")
	}
}

func TestNewListFields_Invalid(t *testing.T) {
	t.Parallel()

	_, err := NewListFields(ListField{Name: "a"}, ListField{Name: "a"})
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("duplicate: expected ErrConfiguration, got %v", err)
	}

	_, err = NewListFields(ListField{Name: "  "})
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("empty: expected ErrConfiguration, got %v", err)
	}
}

func TestListFields_MarshalJSON_KeepsOrder(t *testing.T) {
	t.Parallel()

	lf := MustListFields(
		ListField{Name: "title", FieldOptions: FieldOptions{Sortable: true, Label: "Title"}},
		ListField{Name: "author", FieldOptions: FieldOptions{Label: "Author"}},
	)

	raw, err := json.Marshal(lf)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `[{"name":"title","label":"Title","sortable":true},{"name":"author","label":"Author","sortable":false}]`
	if string(raw) != want {
		t.Errorf("got %s\nwant %s", raw, want)
	}
}

func TestListFields_NamesIsACopy(t *testing.T) {
	t.Parallel()

	lf := MustListFields(ListField{Name: "a"}, ListField{Name: "b"})
	names := lf.Names()
	names[0] = "z"

	if lf.Names()[0] != "a" {
		t.Error("mutating Names() result must not change ListFields")
	}
}
