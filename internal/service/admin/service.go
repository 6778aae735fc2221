// Package admin composes the list engine and the lifecycle manager into one
// configured resource: list, show, create, edit and delete.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/heartmarshall/crudkit/internal/domain"
	"github.com/heartmarshall/crudkit/internal/event"
	"github.com/heartmarshall/crudkit/internal/service/lifecycle"
	"github.com/heartmarshall/crudkit/internal/service/listing"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type querySource interface {
	NewQuery(ctx context.Context, class string) (domain.Query, error)
}

type eventDispatcher interface {
	Dispatch(ctx context.Context, evt event.Event) (event.Event, error)
}

// UnitOfWorkFactory opens a fresh unit of work for one request.
type UnitOfWorkFactory func() domain.PersistenceHandler

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service serves one Resource. It holds no per-request state.
type Service struct {
	log       *slog.Logger
	resource  Resource
	et        domain.EntityType
	queries   querySource
	events    eventDispatcher
	newUoW    UnitOfWorkFactory
	pages     *listing.Provider
	maxLimit  int
	baseLimit int
}

// Option customizes a Service.
type Option func(*Service)

// WithLimits sets the fallback page size used when the resource has no
// default limit, and the largest page size a caller may request.
func WithLimits(defaultLimit, maxLimit int) Option {
	return func(s *Service) {
		if defaultLimit > 0 {
			s.baseLimit = defaultLimit
		}
		if maxLimit > 0 {
			s.maxLimit = maxLimit
		}
	}
}

// NewService validates resource against registry and creates a Service.
func NewService(
	log *slog.Logger,
	resource Resource,
	registry *domain.Registry,
	queries querySource,
	events eventDispatcher,
	newUoW UnitOfWorkFactory,
	opts ...Option,
) (*Service, error) {
	if err := resource.Validate(registry); err != nil {
		return nil, err
	}
	et, err := registry.Lookup(resource.Class)
	if err != nil {
		return nil, err
	}
	s := &Service{
		log:       log.With("service", "admin", "resource", resource.RoutePrefix),
		resource:  resource,
		et:        et,
		queries:   queries,
		events:    events,
		newUoW:    newUoW,
		pages:     listing.NewProvider(queries, events),
		baseLimit: listing.DefaultLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Resource returns the served resource configuration.
func (s *Service) Resource() Resource { return s.resource }

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

// ListInput is one list request. ToggleSort, when set, is applied as a
// column-header click after the state is restored.
type ListInput struct {
	State      listing.State
	ToggleSort string
}

// ListResult is one rendered list page.
type ListResult struct {
	Items        []domain.Entity
	Total        int
	Window       domain.PageWindow
	State        listing.State
	Fields       domain.ListFields
	SearchFields []string
}

// List reads one page of the resource. Filters other than the search term
// and the resource's filter fields are dropped.
func (s *Service) List(ctx context.Context, in ListInput) (*ListResult, error) {
	state := in.State
	state.EntityClass = s.resource.Class
	state.SearchFields = s.resource.SearchFields
	state.Filters = s.allowedFilters(in.State.Filters)

	limit := s.baseLimit
	if s.resource.DefaultLimit > 0 {
		limit = s.resource.DefaultLimit
	}
	ctrl := listing.NewController(s.pages, s.resource.ListFields, state, listing.WithLimits(limit, s.maxLimit))
	if in.ToggleSort != "" {
		ctrl.OnSortRequested(in.ToggleSort)
	}

	page, err := ctrl.CurrentPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.resource.Class, err)
	}
	items, err := page.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.resource.Class, err)
	}
	total, err := page.Total(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.resource.Class, err)
	}

	return &ListResult{
		Items:        items,
		Total:        total,
		Window:       domain.NewPageWindow(page.Page(), page.Limit(), total),
		State:        ctrl.State(),
		Fields:       s.resource.ListFields,
		SearchFields: slices.Clone(s.resource.SearchFields),
	}, nil
}

func (s *Service) allowedFilters(filters map[string]any) map[string]any {
	out := make(map[string]any, len(filters))
	for k, v := range filters {
		if k == listing.SearchFilterKey || slices.Contains(s.resource.FilterFields, k) {
			out[k] = v
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Read
// ---------------------------------------------------------------------------

// Find loads the entity whose primary key equals id.
func (s *Service) Find(ctx context.Context, id any) (domain.Entity, error) {
	q, err := s.queries.NewQuery(ctx, s.resource.Class)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", s.resource.Class, err)
	}
	q.Where(domain.Eq(s.et.PrimaryKey, id))
	items, err := q.Fetch(ctx, 0, 1)
	if err != nil {
		return nil, fmt.Errorf("find %s %v: %w", s.resource.Class, id, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%s %v: %w", s.resource.Class, id, domain.ErrNotFound)
	}
	return items[0], nil
}

// ShowResult is the detail view of one entity.
type ShowResult struct {
	Entity   domain.Entity
	Label    string
	Sections []ShowSection
}

// Show loads an entity together with its label and display sections.
func (s *Service) Show(ctx context.Context, id any) (*ShowResult, error) {
	e, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	label, err := domain.EntityLabel(e)
	if err != nil {
		return nil, err
	}
	return &ShowResult{Entity: e, Label: label, Sections: s.resource.Sections()}, nil
}

// NewEntity returns an empty entity of the resource's class.
func (s *Service) NewEntity() *domain.Record {
	return &domain.Record{
		Class:      s.resource.Class,
		PrimaryKey: s.et.PrimaryKey,
		Fields:     make(map[string]any),
	}
}

// ---------------------------------------------------------------------------
// Mutations
// ---------------------------------------------------------------------------

// FormResult is the outcome of a form submission. Redirect is set only when
// the submission succeeded.
type FormResult struct {
	Redirect string
	Message  string
	Entity   domain.Entity
}

// Create validates form in the create group, binds it onto e and persists e.
func (s *Service) Create(ctx context.Context, e domain.Entity, form *domain.Form, req *http.Request) (*FormResult, error) {
	return s.submit(ctx, e, form, GroupCreate, "created", func(m *lifecycle.Manager) error {
		return m.Create(ctx, e, form, req)
	})
}

// Update validates form in the edit group, binds it onto e and persists e.
func (s *Service) Update(ctx context.Context, e domain.Entity, form *domain.Form, req *http.Request) (*FormResult, error) {
	return s.submit(ctx, e, form, GroupEdit, "updated", func(m *lifecycle.Manager) error {
		return m.Update(ctx, e, form, req)
	})
}

// Delete removes e.
func (s *Service) Delete(ctx context.Context, e domain.Entity, req *http.Request) (*FormResult, error) {
	label, err := domain.EntityLabel(e)
	if err != nil {
		return &FormResult{Entity: e}, err
	}
	m := lifecycle.NewManager(s.newUoW(), s.events)
	if err := m.Delete(ctx, e, req); err != nil {
		s.log.WarnContext(ctx, "delete failed", slog.String("entity", label), slog.String("error", err.Error()))
		return &FormResult{Entity: e}, err
	}
	return &FormResult{
		Redirect: s.resource.RouteName(ActionList),
		Message:  label + " deleted",
		Entity:   e,
	}, nil
}

func (s *Service) submit(
	ctx context.Context,
	e domain.Entity,
	form *domain.Form,
	group, verb string,
	persist func(*lifecycle.Manager) error,
) (*FormResult, error) {
	if e.EntityClass() != s.resource.Class {
		return nil, fmt.Errorf("entity of class %q submitted to resource %q: %w", e.EntityClass(), s.resource.Class, domain.ErrConfiguration)
	}
	if form == nil {
		form = domain.NewForm(group, nil)
	}
	form.Group = group

	res := &FormResult{Entity: e}
	if err := s.resource.validateForm(form); err != nil {
		return res, err
	}
	if err := s.resource.bind(e, form); err != nil {
		return res, err
	}

	if err := persist(lifecycle.NewManager(s.newUoW(), s.events)); err != nil {
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			s.log.WarnContext(ctx, "form submission failed", slog.String("group", group), slog.String("error", err.Error()))
		}
		return res, err
	}

	label, err := domain.EntityLabel(e)
	if err != nil {
		label = s.resource.Class
	}
	res.Redirect = s.resource.RouteName(ActionList)
	res.Message = fmt.Sprintf("%s %s", label, verb)
	return res, nil
}
