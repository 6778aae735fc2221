package listing

import (
	"context"
	"fmt"
	"sync"

	"github.com/heartmarshall/crudkit/internal/domain"
)

// recordingQuery is a domain.Query that records every builder call in order.
type recordingQuery struct {
	class string

	mu       sync.Mutex
	ops      []string
	where    []domain.Predicate
	whereAny [][]domain.Predicate
	orderBy  []string
	fetches  [][2]int
	counts   int

	rows     []domain.Entity
	countErr error
	fetchErr error
}

var _ domain.Query = (*recordingQuery)(nil)

func newRecordingQuery(class string, rows ...domain.Entity) *recordingQuery {
	return &recordingQuery{class: class, rows: rows}
}

func (q *recordingQuery) EntityClass() string { return q.class }

func (q *recordingQuery) Where(preds ...domain.Predicate) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ops = append(q.ops, "where")
	q.where = append(q.where, preds...)
}

func (q *recordingQuery) WhereAny(preds ...domain.Predicate) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ops = append(q.ops, "where_any")
	q.whereAny = append(q.whereAny, preds)
}

func (q *recordingQuery) OrderBy(field string, dir domain.SortDirection) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ops = append(q.ops, "order_by")
	q.orderBy = append(q.orderBy, fmt.Sprintf("%s %s", field, dir))
}

func (q *recordingQuery) Count(context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.counts++
	if q.countErr != nil {
		return 0, q.countErr
	}
	return len(q.rows), nil
}

func (q *recordingQuery) Fetch(_ context.Context, offset, limit int) ([]domain.Entity, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.fetches = append(q.fetches, [2]int{offset, limit})
	if q.fetchErr != nil {
		return nil, q.fetchErr
	}
	if offset >= len(q.rows) {
		return []domain.Entity{}, nil
	}
	end := min(offset+limit, len(q.rows))
	return q.rows[offset:end], nil
}
