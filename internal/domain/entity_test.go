package domain

import (
	"errors"
	"testing"
)

type anonymousEntity struct{}

func (anonymousEntity) EntityClass() string { return "Anonymous" }

type namedEntity struct{ name string }

func (namedEntity) EntityClass() string { return "Named" }
func (n namedEntity) String() string    { return n.name }

func TestEntityIDOf(t *testing.T) {
	t.Parallel()

	rec := NewRecord("Post", map[string]any{"id": int64(7), "title": "Hello"})
	id, err := EntityIDOf(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != int64(7) {
		t.Errorf("id = %v, want 7", id)
	}
}

func TestEntityIDOf_MissingAccessor(t *testing.T) {
	t.Parallel()

	_, err := EntityIDOf(anonymousEntity{})
	if !errors.Is(err, ErrMissingIdentity) {
		t.Fatalf("expected ErrMissingIdentity, got %v", err)
	}
}

func TestEntityIDOf_NilID(t *testing.T) {
	t.Parallel()

	_, err := EntityIDOf(NewRecord("Post", nil))
	if !errors.Is(err, ErrMissingIdentity) {
		t.Fatalf("expected ErrMissingIdentity, got %v", err)
	}
}

func TestEntityLabel(t *testing.T) {
	t.Parallel()

	label, err := EntityLabel(NewRecord("Post", map[string]any{"id": 42}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != "Post#42" {
		t.Errorf("label = %q, want Post#42", label)
	}

	label, err = EntityLabel(namedEntity{name: "Release notes"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != "Release notes" {
		t.Errorf("label = %q, want Stringer output", label)
	}

	if _, err := EntityLabel(anonymousEntity{}); !errors.Is(err, ErrMissingIdentity) {
		t.Errorf("expected ErrMissingIdentity, got %v", err)
	}
}

func TestNewRecord_CopiesFields(t *testing.T) {
	t.Parallel()

	src := map[string]any{"title": "a"}
	rec := NewRecord("Post", src)
	src["title"] = "b"

	if v, _ := rec.Get("title"); v != "a" {
		t.Errorf("record shares the source map: title = %v", v)
	}
}

func TestRecord_CustomPrimaryKey(t *testing.T) {
	t.Parallel()

	r := &Record{Class: "Tag", PrimaryKey: "slug", Fields: map[string]any{"slug": "go", "id": 3}}
	if r.IDField() != "slug" {
		t.Errorf("IDField: got %q, want slug", r.IDField())
	}
	if r.EntityID() != "go" {
		t.Errorf("EntityID: got %v, want go", r.EntityID())
	}
	if NewRecord("Tag", nil).IDField() != IDField {
		t.Errorf("default IDField should be %q", IDField)
	}
}
