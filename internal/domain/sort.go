package domain

import "strings"

// SortDirection is the ordering direction of a list column.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func (d SortDirection) String() string { return string(d) }

func (d SortDirection) IsValid() bool {
	return d == SortAsc || d == SortDesc
}

// Flip returns the opposite direction. Anything that is not asc flips to asc.
func (d SortDirection) Flip() SortDirection {
	if d == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// NormalizeDirection maps a raw direction value to a valid SortDirection.
// Matching is case-insensitive; every other value becomes SortAsc.
func NormalizeDirection(raw string) SortDirection {
	switch SortDirection(strings.ToLower(strings.TrimSpace(raw))) {
	case SortDesc:
		return SortDesc
	default:
		return SortAsc
	}
}

// ToggleSort computes the next (column, direction) pair after a sort request
// on requested.
//
// A column that isSortable rejects leaves the state untouched. Requesting the
// current column flips the direction; switching to another column always
// starts ascending.
func ToggleSort(current string, dir SortDirection, requested string, isSortable func(string) bool) (string, SortDirection) {
	if isSortable == nil || !isSortable(requested) {
		return current, dir
	}
	if requested == current {
		return current, dir.Flip()
	}
	return requested, SortAsc
}
