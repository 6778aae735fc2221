package rest

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/crudkit/internal/domain"
	"github.com/heartmarshall/crudkit/internal/service/admin"
	"github.com/heartmarshall/crudkit/internal/service/listing"
)

// MessageHeader carries the flash message of body-less responses.
const MessageHeader = "X-Message"

type adminService interface {
	Resource() admin.Resource
	List(ctx context.Context, in admin.ListInput) (*admin.ListResult, error)
	Find(ctx context.Context, id any) (domain.Entity, error)
	Show(ctx context.Context, id any) (*admin.ShowResult, error)
	NewEntity() *domain.Record
	Create(ctx context.Context, e domain.Entity, form *domain.Form, req *http.Request) (*admin.FormResult, error)
	Update(ctx context.Context, e domain.Entity, form *domain.Form, req *http.Request) (*admin.FormResult, error)
	Delete(ctx context.Context, e domain.Entity, req *http.Request) (*admin.FormResult, error)
}

// ResourceHandler serves the JSON endpoints of one admin resource.
type ResourceHandler struct {
	svc adminService
	log *slog.Logger
}

// NewResourceHandler creates a ResourceHandler.
func NewResourceHandler(svc adminService, logger *slog.Logger) *ResourceHandler {
	return &ResourceHandler{
		svc: svc,
		log: logger.With("handler", "resource", "resource", svc.Resource().RoutePrefix),
	}
}

// Routes returns the resource router, to be mounted at /admin/{prefix}.
func (h *ResourceHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Show)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}

// ListResponse is the JSON body of a list request.
type ListResponse struct {
	Items         []any             `json:"items"`
	Total         int               `json:"total"`
	Page          int               `json:"page"`
	Limit         int               `json:"limit"`
	SortBy        string            `json:"sort_by"`
	SortDirection string            `json:"sort_direction"`
	MinIndex      int               `json:"min_index"`
	MaxIndex      int               `json:"max_index"`
	Fields        domain.ListFields `json:"fields"`
	SearchFields  []string          `json:"search_fields"`
}

// List returns one page of the resource.
// GET /admin/{prefix}?q=&page=&limit=&sort_by=&sort_dir=&sort=&filter[field]=
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := admin.ListInput{
		State: listing.State{
			Filters:       parseFilters(q),
			SortBy:        q.Get("sort_by"),
			SortDirection: q.Get("sort_dir"),
			Page:          queryInt(r, "page"),
			Limit:         queryInt(r, "limit"),
		},
		ToggleSort: q.Get("sort"),
	}

	res, err := h.svc.List(r.Context(), in)
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}

	items := make([]any, len(res.Items))
	for i, e := range res.Items {
		items[i] = entityBody(e)
	}
	writeJSON(w, http.StatusOK, ListResponse{
		Items:         items,
		Total:         res.Total,
		Page:          res.State.Page,
		Limit:         res.State.Limit,
		SortBy:        res.State.SortBy,
		SortDirection: res.State.SortDirection,
		MinIndex:      res.Window.MinIndex,
		MaxIndex:      res.Window.MaxIndex,
		Fields:        res.Fields,
		SearchFields:  res.SearchFields,
	})
}

// ShowResponse is the JSON body of a show request.
type ShowResponse struct {
	Entity   any                 `json:"entity"`
	Label    string              `json:"label"`
	Sections []admin.ShowSection `json:"sections"`
}

// Show returns one entity with its display sections.
// GET /admin/{prefix}/{id}
func (h *ResourceHandler) Show(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Show(r.Context(), parseID(chi.URLParam(r, "id")))
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ShowResponse{
		Entity:   entityBody(res.Entity),
		Label:    res.Label,
		Sections: res.Sections,
	})
}

// FormRequest is the JSON body of create and update requests.
type FormRequest struct {
	Values map[string]any `json:"values"`
}

// FormResponse is the JSON body of a successful create or update.
type FormResponse struct {
	Entity   any    `json:"entity"`
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

// Create persists a new entity.
// POST /admin/{prefix}
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, ok := h.readForm(w, r, admin.GroupCreate)
	if !ok {
		return
	}

	res, err := h.svc.Create(r.Context(), h.svc.NewEntity(), form, r)
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, formResponse(res))
}

// Update changes an existing entity.
// PUT /admin/{prefix}/{id}
func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.Find(r.Context(), parseID(chi.URLParam(r, "id")))
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	form, ok := h.readForm(w, r, admin.GroupEdit)
	if !ok {
		return
	}

	res, err := h.svc.Update(r.Context(), e, form, r)
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, formResponse(res))
}

// Delete removes an entity.
// DELETE /admin/{prefix}/{id}
func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.Find(r.Context(), parseID(chi.URLParam(r, "id")))
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}

	res, err := h.svc.Delete(r.Context(), e, r)
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	w.Header().Set(MessageHeader, res.Message)
	w.WriteHeader(http.StatusNoContent)
}

func (h *ResourceHandler) readForm(w http.ResponseWriter, r *http.Request, group string) (*domain.Form, bool) {
	var req FormRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return nil, false
	}
	values, _ := normalizeNumbers(req.Values).(map[string]any)
	return domain.NewForm(group, values), true
}

func formResponse(res *admin.FormResult) FormResponse {
	return FormResponse{
		Entity:   entityBody(res.Entity),
		Message:  res.Message,
		Redirect: res.Redirect,
	}
}

// entityBody renders an entity as its field map when it exposes one.
func entityBody(e domain.Entity) any {
	if src, ok := e.(domain.FieldSource); ok {
		return src.FieldValues()
	}
	return e
}

// parseFilters collects "q" and every filter[<field>] parameter.
func parseFilters(q url.Values) map[string]any {
	filters := make(map[string]any)
	if term := q.Get(listing.SearchFilterKey); term != "" {
		filters[listing.SearchFilterKey] = term
	}
	for key, vals := range q {
		if !strings.HasPrefix(key, "filter[") || !strings.HasSuffix(key, "]") || len(vals) == 0 {
			continue
		}
		field := key[len("filter[") : len(key)-1]
		if field == "" {
			continue
		}
		if len(vals) == 1 {
			filters[field] = vals[0]
			continue
		}
		filters[field] = vals
	}
	return filters
}
