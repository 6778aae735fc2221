package config

import (
	"fmt"
	"slices"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverPostgres:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database.dsn is required when storage.driver is %q", DriverPostgres)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("storage.driver must be %q or %q (got %q)", DriverPostgres, DriverMemory, c.Storage.Driver)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.WriteRateLimit < 0 {
		return fmt.Errorf("server.write_rate_limit must be >= 0 (got %d)", c.Server.WriteRateLimit)
	}

	if c.List.DefaultLimit < 1 {
		return fmt.Errorf("list.default_limit must be >= 1 (got %d)", c.List.DefaultLimit)
	}
	if c.List.MaxLimit < c.List.DefaultLimit {
		return fmt.Errorf("list.max_limit must be >= list.default_limit (got %d < %d)", c.List.MaxLimit, c.List.DefaultLimit)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with / (got %q)", c.Metrics.Path)
	}

	if len(c.Resources) == 0 {
		c.Resources = DefaultResources()
	}
	seenClass := make(map[string]bool, len(c.Resources))
	seenPrefix := make(map[string]bool, len(c.Resources))
	for i := range c.Resources {
		r := &c.Resources[i]
		if err := r.validate(); err != nil {
			return fmt.Errorf("resources[%d]: %w", i, err)
		}
		if seenClass[r.Class] {
			return fmt.Errorf("resources[%d]: class %q declared twice", i, r.Class)
		}
		if seenPrefix[r.RoutePrefix] {
			return fmt.Errorf("resources[%d]: route_prefix %q declared twice", i, r.RoutePrefix)
		}
		seenClass[r.Class] = true
		seenPrefix[r.RoutePrefix] = true
	}

	return nil
}

func (r *ResourceConfig) validate() error {
	if r.Class == "" || r.Table == "" {
		return fmt.Errorf("class and table are required")
	}
	if r.PrimaryKey == "" {
		r.PrimaryKey = "id"
	}
	if r.RoutePrefix == "" {
		r.RoutePrefix = strings.ToLower(r.Class)
	}
	if len(r.ListFields) == 0 {
		return fmt.Errorf("%s: at least one list field is required", r.Class)
	}
	if r.DefaultLimit < 0 {
		return fmt.Errorf("%s: default_limit must be >= 0 (got %d)", r.Class, r.DefaultLimit)
	}
	for _, f := range r.FormFields {
		for _, g := range f.RequiredIn {
			if !slices.Contains([]string{"create", "edit"}, g) {
				return fmt.Errorf("%s: form field %q: unknown validation group %q", r.Class, f.Name, g)
			}
		}
	}
	return nil
}

// DefaultResources describes the tables created by the bundled migrations.
func DefaultResources() []ResourceConfig {
	return []ResourceConfig{
		{
			Class:       "Post",
			Table:       "posts",
			PrimaryKey:  "id",
			Columns:     []string{"title", "body", "status", "views", "created_at"},
			RoutePrefix: "post",
			ListFields: []ListFieldConfig{
				{Name: "id", Label: "ID", Sortable: true},
				{Name: "title", Label: "Title", Sortable: true},
				{Name: "status", Label: "Status"},
				{Name: "views", Label: "Views", Sortable: true},
				{Name: "created_at", Label: "Created", Sortable: true},
			},
			SearchFields: []string{"title", "body"},
			FilterFields: []string{"status"},
			FormFields: []FormFieldConfig{
				{Name: "title", RequiredIn: []string{"create", "edit"}, MaxLength: 200},
				{Name: "body"},
				{Name: "status", Choices: []string{"draft", "published", "archived"}},
			},
			ShowSections: []ShowSectionConfig{
				{Name: "content", Label: "Content", Fields: []string{"title", "body"}},
				{Name: "meta", Label: "Metadata", Fields: []string{"id", "status", "views", "created_at"}},
			},
		},
		{
			Class:       "Comment",
			Table:       "comments",
			PrimaryKey:  "id",
			Columns:     []string{"post_id", "author", "body"},
			RoutePrefix: "comment",
			ListFields: []ListFieldConfig{
				{Name: "id", Label: "ID", Sortable: true},
				{Name: "post_id", Label: "Post", Sortable: true},
				{Name: "author", Label: "Author", Sortable: true},
			},
			SearchFields: []string{"author", "body"},
			FilterFields: []string{"post_id"},
			FormFields: []FormFieldConfig{
				{Name: "post_id", RequiredIn: []string{"create"}},
				{Name: "author", RequiredIn: []string{"create", "edit"}, MaxLength: 100},
				{Name: "body", RequiredIn: []string{"create"}},
			},
		},
	}
}
