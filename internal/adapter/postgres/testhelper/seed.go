package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedPost inserts a post and returns its id. The title gets a unique suffix
// so that tests sharing the container can filter on their own rows.
func SeedPost(t *testing.T, pool *pgxpool.Pool, title, body string) (int64, string) {
	t.Helper()

	title = title + " " + uniqueSuffix()
	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO posts (title, body) VALUES ($1, $2) RETURNING id`,
		title, body,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: seed post: %v", err)
	}
	return id, title
}
