package domain

// Pages are 1-indexed. None of the helpers below validate their input against
// the total: a page past the end simply yields an empty window.

// Offset returns the number of rows to skip for page.
func Offset(page, limit int) int {
	return limit * (page - 1)
}

// MinDisplayIndex returns the 1-based index of the first row on page.
func MinDisplayIndex(page, limit int) int {
	return Offset(page, limit) + 1
}

// MaxDisplayIndex returns the 1-based index of the last row on page, clamped
// to total. With total == 0 it is 0.
func MaxDisplayIndex(page, limit, total int) int {
	return min(page*limit, total)
}

// PageWindow is the derived view of one page of a list.
type PageWindow struct {
	Offset   int `json:"offset"`
	Limit    int `json:"limit"`
	MinIndex int `json:"min_index"`
	MaxIndex int `json:"max_index"`
}

// NewPageWindow derives the window for (page, limit, total).
func NewPageWindow(page, limit, total int) PageWindow {
	return PageWindow{
		Offset:   Offset(page, limit),
		Limit:    limit,
		MinIndex: MinDisplayIndex(page, limit),
		MaxIndex: MaxDisplayIndex(page, limit, total),
	}
}

// Empty reports whether the window holds no rows ("showing 26–25 of 25").
func (w PageWindow) Empty() bool {
	return w.MinIndex > w.MaxIndex
}
