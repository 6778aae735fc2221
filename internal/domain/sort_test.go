package domain

import "testing"

func sortableSet(names ...string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func TestToggleSort(t *testing.T) {
	t.Parallel()

	isSortable := sortableSet("name", "email")

	tests := []struct {
		name      string
		current   string
		dir       SortDirection
		requested string
		wantCol   string
		wantDir   SortDirection
	}{
		{"same column asc flips to desc", "name", SortAsc, "name", "name", SortDesc},
		{"same column desc flips to asc", "name", SortDesc, "name", "name", SortAsc},
		{"switch column resets to asc", "name", SortDesc, "email", "email", SortAsc},
		{"first sort from unset", "", SortAsc, "email", "email", SortAsc},
		{"non-sortable column is a no-op", "", SortAsc, "role", "", SortAsc},
		{"unknown column keeps desc", "name", SortDesc, "missing", "name", SortDesc},
		{"invalid direction on same column resets to asc", "name", SortDirection("INVALID"), "name", "name", SortAsc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			col, dir := ToggleSort(tt.current, tt.dir, tt.requested, isSortable)
			if col != tt.wantCol || dir != tt.wantDir {
				t.Errorf("ToggleSort(%q, %q, %q) = (%q, %q), want (%q, %q)",
					tt.current, tt.dir, tt.requested, col, dir, tt.wantCol, tt.wantDir)
			}
		})
	}
}

func TestToggleSort_TwiceRestoresDirection(t *testing.T) {
	t.Parallel()

	isSortable := sortableSet("name")

	col, dir := ToggleSort("name", SortAsc, "name", isSortable)
	if col != "name" || dir != SortDesc {
		t.Fatalf("first toggle: got (%q, %q), want (name, desc)", col, dir)
	}
	col, dir = ToggleSort(col, dir, "name", isSortable)
	if col != "name" || dir != SortAsc {
		t.Fatalf("second toggle: got (%q, %q), want (name, asc)", col, dir)
	}
}

func TestToggleSort_NilPredicate(t *testing.T) {
	t.Parallel()

	col, dir := ToggleSort("name", SortDesc, "name", nil)
	if col != "name" || dir != SortDesc {
		t.Errorf("got (%q, %q), want unchanged", col, dir)
	}
}

func TestNormalizeDirection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want SortDirection
	}{
		{"asc", SortAsc},
		{"desc", SortDesc},
		{"DESC", SortDesc},
		{" desc ", SortDesc},
		{"INVALID", SortAsc},
		{"", SortAsc},
	}
	for _, tt := range tests {
		if got := NormalizeDirection(tt.raw); got != tt.want {
			t.Errorf("NormalizeDirection(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
