package crud

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/heartmarshall/crudkit/internal/adapter/postgres"
	"github.com/heartmarshall/crudkit/internal/domain"
)

type query struct {
	db     postgres.Querier
	entity domain.EntityType

	conds   []sq.Sqlizer
	orderBy string
	dir     domain.SortDirection
	err     error
}

func (q *query) EntityClass() string { return q.entity.Class }

func (q *query) Where(preds ...domain.Predicate) {
	for _, p := range preds {
		cond, err := q.predicate(p)
		if err != nil {
			q.fail(err)
			return
		}
		q.conds = append(q.conds, cond)
	}
}

func (q *query) WhereAny(preds ...domain.Predicate) {
	if len(preds) == 0 {
		return
	}
	or := make(sq.Or, 0, len(preds))
	for _, p := range preds {
		cond, err := q.predicate(p)
		if err != nil {
			q.fail(err)
			return
		}
		or = append(or, cond)
	}
	q.conds = append(q.conds, or)
}

func (q *query) OrderBy(field string, dir domain.SortDirection) {
	if !q.entity.HasColumn(field) {
		q.fail(fmt.Errorf("order by %q on %s: %w", field, q.entity.Class, domain.ErrUnknownField))
		return
	}
	q.orderBy, q.dir = field, dir
}

// Count runs SELECT COUNT(*) with the accumulated conditions.
func (q *query) Count(ctx context.Context) (int, error) {
	if q.err != nil {
		return 0, q.err
	}

	b := q.where(psql.Select("COUNT(*)").From(quoteTable(q.entity.Table)))
	sql, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count %s: %w", q.entity.Class, err)
	}

	var n int64
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, q.db), &n, sql, args...); err != nil {
		return 0, postgres.MapError(err, q.entity.Class, "count")
	}
	return int(n), nil
}

// Fetch returns one window of rows as records. Rows are ordered by the
// requested field, then by primary key so that pages are stable.
func (q *query) Fetch(ctx context.Context, offset, limit int) ([]domain.Entity, error) {
	if q.err != nil {
		return nil, q.err
	}

	cols := q.entity.AllColumns()
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
	}

	b := q.where(psql.Select(quoted...).From(quoteTable(q.entity.Table)))
	if q.orderBy != "" && q.orderBy != q.entity.PrimaryKey {
		b = b.OrderBy(quoteIdent(q.orderBy) + " " + sqlDirection(q.dir))
	}
	pkDir := "ASC"
	if q.orderBy == q.entity.PrimaryKey {
		pkDir = sqlDirection(q.dir)
	}
	b = b.OrderBy(quoteIdent(q.entity.PrimaryKey) + " " + pkDir).
		Limit(uint64(max(limit, 0))).
		Offset(uint64(max(offset, 0)))

	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build fetch %s: %w", q.entity.Class, err)
	}

	var rows []map[string]any
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, q.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, q.entity.Class, "fetch")
	}

	out := make([]domain.Entity, len(rows))
	for i, r := range rows {
		out[i] = &domain.Record{Class: q.entity.Class, PrimaryKey: q.entity.PrimaryKey, Fields: r}
	}
	return out, nil
}

func (q *query) where(b sq.SelectBuilder) sq.SelectBuilder {
	for _, c := range q.conds {
		b = b.Where(c)
	}
	return b
}

func (q *query) fail(err error) {
	if q.err == nil {
		q.err = err
	}
}

func (q *query) predicate(p domain.Predicate) (sq.Sqlizer, error) {
	if !q.entity.HasColumn(p.Field) {
		return nil, fmt.Errorf("filter on %q of %s: %w", p.Field, q.entity.Class, domain.ErrUnknownField)
	}
	col := quoteIdent(p.Field)

	switch p.Op {
	case domain.OpEq:
		return sq.Eq{col: p.Value}, nil
	case domain.OpNotEq:
		return sq.NotEq{col: p.Value}, nil
	case domain.OpContains:
		// Cast so that search also works on non-text columns.
		return sq.Like{col + "::text": domain.LikePattern(fmt.Sprint(p.Value))}, nil
	case domain.OpLt:
		return sq.Lt{col: p.Value}, nil
	case domain.OpLte:
		return sq.LtOrEq{col: p.Value}, nil
	case domain.OpGt:
		return sq.Gt{col: p.Value}, nil
	case domain.OpGte:
		return sq.GtOrEq{col: p.Value}, nil
	case domain.OpIn:
		values, ok := p.Value.([]any)
		if !ok {
			return nil, domain.NewValidationError(p.Field, "in requires a list of values")
		}
		return sq.Eq{col: values}, nil
	default:
		return nil, domain.NewValidationError(p.Field, fmt.Sprintf("unsupported operator %q", p.Op))
	}
}

func sqlDirection(d domain.SortDirection) string {
	if d == domain.SortDesc {
		return "DESC"
	}
	return "ASC"
}
