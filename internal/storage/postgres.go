package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresOpener stores one row per slot key in the cart_slots table.
type PostgresOpener struct {
	pool *pgxpool.Pool
}

func NewPostgresOpener(pool *pgxpool.Pool) *PostgresOpener {
	return &PostgresOpener{pool: pool}
}

func (o *PostgresOpener) Open(key string) Slot {
	return &postgresSlot{pool: o.pool, key: key}
}

type postgresSlot struct {
	pool *pgxpool.Pool
	key  string
}

func (s *postgresSlot) Load(ctx context.Context) ([]byte, error) {
	const q = `
SELECT data
FROM cart_slots
WHERE key = $1
`
	var data []byte
	if err := s.pool.QueryRow(ctx, q, s.key).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmpty
		}
		return nil, err
	}
	return data, nil
}

func (s *postgresSlot) Save(ctx context.Context, data []byte) error {
	const q = `
INSERT INTO cart_slots (key, data, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
`
	_, err := s.pool.Exec(ctx, q, s.key, data)
	return err
}
