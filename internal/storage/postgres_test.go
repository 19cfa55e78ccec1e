package storage

import (
	"context"
	"errors"
	"os"
	"testing"

	"cartkeep/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
)

func TestPostgresSlotRoundTrip(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE cart_slots`); err != nil {
		t.Fatalf("truncate cart_slots: %v", err)
	}

	opener := NewPostgresOpener(pool)
	slot := opener.Open("it-session")

	if _, err := slot.Load(ctx); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty on fresh slot, got %v", err)
	}

	if err := slot.Save(ctx, []byte(`[{"variantId":"a","quantity":2}]`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := slot.Save(ctx, []byte(`[]`)); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}

	data, err := slot.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != `[]` {
		t.Fatalf("expected overwritten snapshot, got %s", data)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}
