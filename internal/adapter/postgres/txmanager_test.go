package postgres_test

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/crudkit/internal/adapter/postgres"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestRunInTx_Commit(t *testing.T) {
	mock := newMockPool(t)
	tm := postgres.NewTxManager(mock)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO posts`).
		WithArgs("hello").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		assert.True(t, postgres.InTx(ctx))
		q := postgres.QuerierFromCtx(ctx, mock)
		_, err := q.Exec(ctx, `INSERT INTO posts (title) VALUES ($1)`, "hello")
		return err
	})
	require.NoError(t, err)
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	mock := newMockPool(t)
	tm := postgres.NewTxManager(mock)
	sentinel := errors.New("business logic error")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	mock := newMockPool(t)
	tm := postgres.NewTxManager(mock)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "test panic", func() {
		_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
			panic("test panic")
		})
	})
}

func TestRunInTx_BeginError(t *testing.T) {
	mock := newMockPool(t)
	tm := postgres.NewTxManager(mock)
	boom := errors.New("connection refused")

	mock.ExpectBegin().WillReturnError(boom)

	called := false
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
}

func TestRunInTx_NestedReusesOuter(t *testing.T) {
	mock := newMockPool(t)
	tm := postgres.NewTxManager(mock)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return tm.RunInTx(ctx, func(ctx context.Context) error {
			assert.True(t, postgres.InTx(ctx))
			return nil
		})
	})
	require.NoError(t, err)
}

func TestQuerierFromCtx_FallsBack(t *testing.T) {
	mock := newMockPool(t)

	assert.False(t, postgres.InTx(context.Background()))
	assert.Equal(t, postgres.Querier(mock), postgres.QuerierFromCtx(context.Background(), mock))
}

func TestRunInTx_RollbackAfterCancel(t *testing.T) {
	mock := newMockPool(t)
	tm := postgres.NewTxManager(mock)

	mock.ExpectBegin()
	mock.ExpectRollback()

	ctx, cancel := context.WithCancel(context.Background())
	err := tm.RunInTx(ctx, func(ctx context.Context) error {
		cancel()
		return ctx.Err()
	})
	assert.ErrorIs(t, err, context.Canceled)
}
