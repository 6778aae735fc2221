package listener

import (
	"context"
	"reflect"

	"github.com/heartmarshall/crudkit/internal/domain"
	"github.com/heartmarshall/crudkit/internal/event"
)

// ExactMatch returns a list-query listener that turns configured filter
// fields present in the filters into equality predicates. A list value
// becomes an IN predicate. Empty values and the search term are ignored.
func ExactMatch(fieldsByClass map[string][]string) event.Listener {
	return event.ListenerFunc(func(_ context.Context, evt event.Event) error {
		e, ok := evt.(*event.ListQueryEvent)
		if !ok {
			return nil
		}
		for _, field := range fieldsByClass[e.EntityClass] {
			v, ok := e.Filters[field]
			if !ok || isEmpty(v) {
				continue
			}
			if values, ok := asList(v); ok {
				e.Query.Where(domain.In(field, values))
				continue
			}
			e.Query.Where(domain.Eq(field, v))
		}
		return nil
	})
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Slice && rv.Len() == 0
}

func asList(v any) ([]any, bool) {
	switch vs := v.(type) {
	case []any:
		return vs, true
	case []string:
		out := make([]any, len(vs))
		for i, s := range vs {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}
