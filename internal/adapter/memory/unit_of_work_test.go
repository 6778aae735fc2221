package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/crudkit/internal/domain"
)

func countPosts(t *testing.T, s *Store) int {
	t.Helper()
	q, err := s.NewQuery(context.Background(), "Post")
	require.NoError(t, err)
	n, err := q.Count(context.Background())
	require.NoError(t, err)
	return n
}

func TestUnitOfWork_PersistAssignsID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	uow := s.NewUnitOfWork()

	post := domain.NewRecord("Post", map[string]any{"title": "New"})
	require.NoError(t, uow.Persist(ctx, post))
	assert.Nil(t, post.EntityID(), "id must not be visible before flush")
	assert.Equal(t, 4, countPosts(t, s))

	require.NoError(t, uow.Flush(ctx))
	assert.Equal(t, int64(5), post.EntityID())
	assert.Equal(t, 5, countPosts(t, s))
	assert.Zero(t, uow.Pending())
}

func TestUnitOfWork_Update(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	uow := s.NewUnitOfWork()

	post := domain.NewRecord("Post", map[string]any{"id": "2", "title": "Renamed"})
	require.NoError(t, uow.Update(ctx, post))
	require.NoError(t, uow.Flush(ctx))

	q, err := s.NewQuery(ctx, "Post")
	require.NoError(t, err)
	q.Where(domain.Eq("id", 2))
	items, err := q.Fetch(ctx, 0, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)

	rec := items[0].(*domain.Record)
	assert.Equal(t, "Renamed", rec.Fields["title"])
	assert.Equal(t, "table tests", rec.Fields["body"], "untouched fields are kept")
}

func TestUnitOfWork_Delete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	uow := s.NewUnitOfWork()

	require.NoError(t, uow.Delete(ctx, domain.NewRecord("Post", map[string]any{"id": int64(1)})))
	require.NoError(t, uow.Flush(ctx))
	assert.Equal(t, 3, countPosts(t, s))
}

func TestUnitOfWork_FlushIsAtomic(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	uow := s.NewUnitOfWork()

	inserted := domain.NewRecord("Post", map[string]any{"title": "staged"})
	require.NoError(t, uow.Persist(ctx, inserted))
	require.NoError(t, uow.Delete(ctx, domain.NewRecord("Post", map[string]any{"id": 99})))

	err := uow.Flush(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 4, countPosts(t, s), "no staged change may be applied")
	assert.Nil(t, inserted.EntityID())
	assert.Zero(t, uow.Pending())
}

func TestUnitOfWork_DuplicateID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	uow := s.NewUnitOfWork()

	require.NoError(t, uow.Persist(ctx, domain.NewRecord("Post", map[string]any{"id": int64(1), "title": "dup"})))
	assert.ErrorIs(t, uow.Flush(ctx), domain.ErrAlreadyExists)
}

func TestUnitOfWork_GeneratedIDSkipsExplicitKeys(t *testing.T) {
	tests := []struct {
		name     string
		explicit any
		wantID   int64
	}{
		{"int", 1, 2},
		{"int32", int32(4), 5},
		{"float64", float64(6), 7},
		{"numeric string", "9", 10},
		{"unsigned", uint8(1), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			reg, err := domain.NewRegistry(domain.EntityType{Class: "Post", Table: "posts", Columns: []string{"title"}})
			require.NoError(t, err)
			s := NewStore(reg)
			require.NoError(t, s.Seed(ctx, "Post", map[string]any{"id": tt.explicit, "title": "seeded"}))

			uow := s.NewUnitOfWork()
			post := domain.NewRecord("Post", map[string]any{"title": "generated"})
			require.NoError(t, uow.Persist(ctx, post))
			require.NoError(t, uow.Flush(ctx))

			assert.Equal(t, tt.wantID, post.EntityID())

			q, err := s.NewQuery(ctx, "Post")
			require.NoError(t, err)
			q.Where(domain.Eq("id", tt.explicit))
			n, err := q.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 1, n, "explicit id must stay unique")
		})
	}
}

func TestUnitOfWork_StageErrors(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	uow := s.NewUnitOfWork()

	assert.ErrorIs(t, uow.Persist(ctx, domain.NewRecord("Comment", nil)), domain.ErrConfiguration)
	assert.ErrorIs(t, uow.Persist(ctx, domain.NewRecord("Post", map[string]any{"password": "x"})), domain.ErrUnknownField)
	assert.ErrorIs(t, uow.Update(ctx, domain.NewRecord("Post", map[string]any{"title": "x"})), domain.ErrMissingIdentity)
	assert.Zero(t, uow.Pending())
}

type opaqueEntity struct{}

func (opaqueEntity) EntityClass() string { return "Post" }

func TestUnitOfWork_EntityWithoutFields(t *testing.T) {
	uow := newTestStore(t).NewUnitOfWork()
	assert.ErrorIs(t, uow.Persist(context.Background(), opaqueEntity{}), domain.ErrConfiguration)
}
