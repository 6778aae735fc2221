package listing

import (
	"context"
	"maps"
	"slices"

	"github.com/heartmarshall/crudkit/internal/domain"
)

// State is the list UI state of one interaction session.
// SortDirection is kept raw; it is normalized when the list is read.
type State struct {
	EntityClass   string         `json:"entity_class"`
	Filters       map[string]any `json:"filters"`
	SearchFields  []string       `json:"search_fields"`
	SortBy        string         `json:"sort_by,omitempty"`
	SortDirection string         `json:"sort_direction"`
	Page          int            `json:"page"`
	Limit         int            `json:"limit"`
}

// Controller holds the list state of one session and reacts to filter, sort
// and page changes. It is not safe for concurrent use; create one per session.
type Controller struct {
	pages  pageFetcher
	fields domain.ListFields
	state  State

	defaultLimit int
	maxLimit     int
}

// Option customizes a Controller.
type Option func(*Controller)

// WithLimits sets the limit used when the state has none and the upper bound
// (0 means unbounded).
func WithLimits(defaultLimit, maxLimit int) Option {
	return func(c *Controller) {
		if defaultLimit > 0 {
			c.defaultLimit = defaultLimit
		}
		if maxLimit > 0 {
			c.maxLimit = maxLimit
		}
	}
}

// NewController creates a Controller from an initial state.
// Page is clamped to >= 1 and a missing limit takes the default.
func NewController(pages pageFetcher, fields domain.ListFields, initial State, opts ...Option) *Controller {
	c := &Controller{
		pages:        pages,
		fields:       fields,
		defaultLimit: DefaultLimit,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.state = initial
	c.state.Filters = maps.Clone(initial.Filters)
	if c.state.Filters == nil {
		c.state.Filters = make(map[string]any)
	}
	c.state.SearchFields = slices.Clone(initial.SearchFields)
	if c.state.SortDirection == "" {
		c.state.SortDirection = string(domain.SortAsc)
	}
	c.state.Page = max(c.state.Page, 1)
	c.state.Limit = c.clampLimit(c.state.Limit)
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	s := c.state
	s.Filters = maps.Clone(c.state.Filters)
	s.SearchFields = slices.Clone(c.state.SearchFields)
	return s
}

// Fields returns the list configuration.
func (c *Controller) Fields() domain.ListFields { return c.fields }

// OnFilterChanged replaces the filters and returns to the first page.
func (c *Controller) OnFilterChanged(filters map[string]any) {
	c.state.Filters = maps.Clone(filters)
	if c.state.Filters == nil {
		c.state.Filters = make(map[string]any)
	}
	c.state.Page = 1
}

// OnSortRequested toggles sorting on column. Columns that are unknown or not
// sortable are ignored. The page is kept.
func (c *Controller) OnSortRequested(column string) {
	if !c.fields.IsSortable(column) {
		return
	}
	col, dir := domain.ToggleSort(c.state.SortBy, domain.SortDirection(c.state.SortDirection), column, c.fields.IsSortable)
	c.state.SortBy = col
	c.state.SortDirection = string(dir)
}

// OnPageChanged moves to page n (at least 1).
func (c *Controller) OnPageChanged(n int) {
	c.state.Page = max(n, 1)
}

// OnLimitChanged sets the page size and returns to the first page.
func (c *Controller) OnLimitChanged(n int) {
	c.state.Limit = c.clampLimit(n)
	c.state.Page = 1
}

// CurrentPage fetches the page described by the state.
//
// Reading corrects the state in place: the direction is normalized, a SortBy
// that is not a sortable field is dropped, and when no SortBy is set the first
// sortable field in declared order becomes the sort column. The corrected
// values stay visible through State after the call.
func (c *Controller) CurrentPage(ctx context.Context) (*Paginator, error) {
	dir := domain.NormalizeDirection(c.state.SortDirection)
	c.state.SortDirection = string(dir)

	if c.state.SortBy != "" && !c.fields.IsSortable(c.state.SortBy) {
		c.state.SortBy = ""
	}
	if c.state.SortBy == "" {
		if field, ok := c.fields.FirstSortable(); ok {
			c.state.SortBy = field
		}
	}

	return c.pages.FetchPage(ctx, Request{
		EntityClass:   c.state.EntityClass,
		Filters:       c.state.Filters,
		SearchFields:  c.state.SearchFields,
		SortBy:        c.state.SortBy,
		SortDirection: dir,
		Page:          c.state.Page,
		Limit:         c.state.Limit,
	})
}

// DisplayBounds returns the 1-based first and last row indexes shown on the
// current page. min > max means the page is empty.
func (c *Controller) DisplayBounds(total int) (int, int) {
	return c.MinIndex(), c.MaxIndex(total)
}

func (c *Controller) MinIndex() int {
	return domain.MinDisplayIndex(c.state.Page, c.state.Limit)
}

func (c *Controller) MaxIndex(total int) int {
	return domain.MaxDisplayIndex(c.state.Page, c.state.Limit, total)
}

func (c *Controller) clampLimit(n int) int {
	if n < 1 {
		n = c.defaultLimit
	}
	if c.maxLimit > 0 && n > c.maxLimit {
		n = c.maxLimit
	}
	return n
}
