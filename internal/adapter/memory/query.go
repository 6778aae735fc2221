package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/crudkit/internal/domain"
)

type condition func(row map[string]any) bool

type query struct {
	store  *Store
	entity domain.EntityType

	conds   []condition
	orderBy string
	dir     domain.SortDirection
	err     error
}

func (q *query) EntityClass() string { return q.entity.Class }

func (q *query) Where(preds ...domain.Predicate) {
	for _, p := range preds {
		c, err := q.compile(p)
		if err != nil {
			q.fail(err)
			return
		}
		q.conds = append(q.conds, c)
	}
}

func (q *query) WhereAny(preds ...domain.Predicate) {
	if len(preds) == 0 {
		return
	}
	alts := make([]condition, 0, len(preds))
	for _, p := range preds {
		c, err := q.compile(p)
		if err != nil {
			q.fail(err)
			return
		}
		alts = append(alts, c)
	}
	q.conds = append(q.conds, func(row map[string]any) bool {
		for _, c := range alts {
			if c(row) {
				return true
			}
		}
		return false
	})
}

func (q *query) OrderBy(field string, dir domain.SortDirection) {
	if !q.entity.HasColumn(field) {
		q.fail(fmt.Errorf("order by %q on %s: %w", field, q.entity.Class, domain.ErrUnknownField))
		return
	}
	q.orderBy, q.dir = field, dir
}

func (q *query) Count(_ context.Context) (int, error) {
	rows, err := q.matching()
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (q *query) Fetch(_ context.Context, offset, limit int) ([]domain.Entity, error) {
	rows, err := q.matching()
	if err != nil {
		return nil, err
	}
	if q.orderBy != "" {
		slices.SortStableFunc(rows, func(a, b map[string]any) int {
			c := compareValues(a[q.orderBy], b[q.orderBy])
			if q.dir == domain.SortDesc {
				return -c
			}
			return c
		})
	}

	offset, limit = max(offset, 0), max(limit, 0)
	out := make([]domain.Entity, 0, limit)
	if offset >= len(rows) || limit == 0 {
		return out, nil
	}
	for _, r := range rows[offset:min(offset+limit, len(rows))] {
		out = append(out, &domain.Record{Class: q.entity.Class, PrimaryKey: q.entity.PrimaryKey, Fields: r})
	}
	return out, nil
}

func (q *query) matching() ([]map[string]any, error) {
	if q.err != nil {
		return nil, q.err
	}
	rows := q.store.snapshot(q.entity.Class)
	return slices.DeleteFunc(rows, func(r map[string]any) bool {
		for _, c := range q.conds {
			if !c(r) {
				return true
			}
		}
		return false
	}), nil
}

func (q *query) fail(err error) {
	if q.err == nil {
		q.err = err
	}
}

func (q *query) compile(p domain.Predicate) (condition, error) {
	if !q.entity.HasColumn(p.Field) {
		return nil, fmt.Errorf("filter on %q of %s: %w", p.Field, q.entity.Class, domain.ErrUnknownField)
	}
	field, v := p.Field, p.Value

	switch p.Op {
	case domain.OpEq:
		return func(r map[string]any) bool { return equalValues(r[field], v) }, nil
	case domain.OpNotEq:
		return func(r map[string]any) bool { return !equalValues(r[field], v) }, nil
	case domain.OpContains:
		term := fmt.Sprint(v)
		return func(r map[string]any) bool {
			return r[field] != nil && strings.Contains(fmt.Sprint(r[field]), term)
		}, nil
	case domain.OpLt:
		return func(r map[string]any) bool { return r[field] != nil && compareValues(r[field], v) < 0 }, nil
	case domain.OpLte:
		return func(r map[string]any) bool { return r[field] != nil && compareValues(r[field], v) <= 0 }, nil
	case domain.OpGt:
		return func(r map[string]any) bool { return r[field] != nil && compareValues(r[field], v) > 0 }, nil
	case domain.OpGte:
		return func(r map[string]any) bool { return r[field] != nil && compareValues(r[field], v) >= 0 }, nil
	case domain.OpIn:
		values, ok := v.([]any)
		if !ok {
			return nil, domain.NewValidationError(field, "in requires a list of values")
		}
		return func(r map[string]any) bool {
			return slices.ContainsFunc(values, func(x any) bool { return equalValues(r[field], x) })
		}, nil
	default:
		return nil, domain.NewValidationError(field, fmt.Sprintf("unsupported operator %q", p.Op))
	}
}

func equalValues(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return compareValues(a, b) == 0
}

// compareValues orders numbers numerically, times chronologically and
// everything else by its string form. nil sorts first.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if x, ok := toFloat(a); ok {
		if y, ok := toFloat(b); ok {
			return cmp.Compare(x, y)
		}
	}
	if x, ok := a.(time.Time); ok {
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
