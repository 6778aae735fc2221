package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/crudkit/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/crudkit/internal/config"
)

func TestApp_PostgresEndToEnd(t *testing.T) {
	dsn := testhelper.SetupTestDSN(t)

	cfg := memoryConfig(t)
	cfg.Storage.Driver = config.DriverPostgres
	cfg.Server.WriteRateLimit = 0
	cfg.Database = config.DatabaseConfig{DSN: dsn, MaxConns: 4, MinConns: 1}
	require.NoError(t, cfg.Validate())

	a, err := New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(a.Close)
	h := a.Handler()

	tag := uuid.NewString()[:8]
	rec := request(h, http.MethodPost, "/admin/post", fmt.Sprintf(`{"values":{"title":"pg %s","status":"published"}}`, tag))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Entity map[string]any `json:"entity"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	id, ok := created.Entity["id"].(float64)
	require.True(t, ok, "generated id written back: %v", created.Entity)

	rec = request(h, http.MethodGet, "/admin/post?q="+tag, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)

	rec = request(h, http.MethodPut, fmt.Sprintf("/admin/post/%d", int64(id)), `{"values":{"title":"pg renamed","status":"gone"}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// A comment pointing at a missing post violates the foreign key.
	rec = request(h, http.MethodPost, "/admin/comment", `{"values":{"post_id":999999999,"author":"a","body":"b"}}`)
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	rec = request(h, http.MethodDelete, fmt.Sprintf("/admin/post/%d", int64(id)), "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	defer pool.Close()

	var actions []string
	rows, err := pool.Query(context.Background(),
		`SELECT action FROM audit_log WHERE entity_class = 'Post' AND entity_id = $1 ORDER BY created_at`,
		fmt.Sprint(int64(id)))
	require.NoError(t, err)
	for rows.Next() {
		var action string
		require.NoError(t, rows.Scan(&action))
		actions = append(actions, action)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"CREATE", "DELETE"}, actions)
}
