package app

import (
	"fmt"

	"github.com/heartmarshall/crudkit/internal/config"
	"github.com/heartmarshall/crudkit/internal/domain"
	"github.com/heartmarshall/crudkit/internal/service/admin"
)

// BuildRegistry turns the configured resources into entity metadata.
func BuildRegistry(resources []config.ResourceConfig) (*domain.Registry, error) {
	types := make([]domain.EntityType, 0, len(resources))
	for _, rc := range resources {
		types = append(types, domain.EntityType{
			Class:      rc.Class,
			Table:      rc.Table,
			PrimaryKey: rc.PrimaryKey,
			Columns:    rc.Columns,
		})
	}
	return domain.NewRegistry(types...)
}

// BuildResource turns one resource config into an admin resource.
func BuildResource(rc config.ResourceConfig) (admin.Resource, error) {
	listFields, err := buildListFields(rc.ListFields)
	if err != nil {
		return admin.Resource{}, fmt.Errorf("resource %s: list fields: %w", rc.Class, err)
	}

	formFields := make([]admin.FormField, 0, len(rc.FormFields))
	for _, f := range rc.FormFields {
		formFields = append(formFields, admin.FormField{
			Name:       f.Name,
			RequiredIn: f.RequiredIn,
			MaxLength:  f.MaxLength,
			Choices:    f.Choices,
		})
	}

	sections := make([]admin.ShowSection, 0, len(rc.ShowSections))
	for _, s := range rc.ShowSections {
		fields := make([]domain.ListField, 0, len(s.Fields))
		for _, name := range s.Fields {
			opts, _ := listFields.Get(name)
			fields = append(fields, domain.ListField{Name: name, FieldOptions: opts})
		}
		lf, err := domain.NewListFields(fields...)
		if err != nil {
			return admin.Resource{}, fmt.Errorf("resource %s: section %s: %w", rc.Class, s.Name, err)
		}
		sections = append(sections, admin.ShowSection{
			Name:        s.Name,
			Label:       s.Label,
			Description: s.Description,
			Fields:      lf,
		})
	}

	return admin.Resource{
		Class:        rc.Class,
		RoutePrefix:  rc.RoutePrefix,
		ListFields:   listFields,
		SearchFields: rc.SearchFields,
		FilterFields: rc.FilterFields,
		FormFields:   formFields,
		ShowSections: sections,
		DefaultLimit: rc.DefaultLimit,
	}, nil
}

func buildListFields(cfg []config.ListFieldConfig) (domain.ListFields, error) {
	fields := make([]domain.ListField, 0, len(cfg))
	for _, f := range cfg {
		fields = append(fields, domain.ListField{
			Name:         f.Name,
			FieldOptions: domain.FieldOptions{Label: f.Label, Sortable: f.Sortable},
		})
	}
	return domain.NewListFields(fields...)
}

// filterFieldsByClass collects the exact-match filter fields of every resource.
func filterFieldsByClass(resources []config.ResourceConfig) map[string][]string {
	out := make(map[string][]string, len(resources))
	for _, rc := range resources {
		if len(rc.FilterFields) > 0 {
			out[rc.Class] = rc.FilterFields
		}
	}
	return out
}
