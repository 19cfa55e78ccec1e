package catalog

import (
	"context"
	"errors"
	"io"
	"log"

	"cartkeep/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLookup serves the catalog from the local products table, fed by
// the seeder or the CSV importer. Country does not affect pricing here;
// every market sees the stored price.
type PostgresLookup struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgresLookup(pool *pgxpool.Pool, logger *log.Logger) *PostgresLookup {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &PostgresLookup{pool: pool, logger: logger}
}

func (l *PostgresLookup) ResolveHandle(ctx context.Context, handle, countryCode string) (*domain.Product, error) {
	const q = `
SELECT id::text, handle, variant_id, title, price_cents, currency, available, COALESCE(image_src, ''), COALESCE(image_alt, ''), created_at
FROM products
WHERE handle = $1
`
	var p domain.Product
	var imageSrc, imageAlt string
	err := l.pool.QueryRow(ctx, q, handle).Scan(
		&p.ID,
		&p.Handle,
		&p.VariantID,
		&p.Title,
		&p.UnitPriceCents,
		&p.CurrencyCode,
		&p.Available,
		&imageSrc,
		&imageAlt,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			l.logger.Printf("catalog: handle=%s country=%s not found", handle, countryCode)
			return nil, domain.ErrNotFound
		}
		l.logger.Printf("catalog: handle=%s error=%v", handle, err)
		return nil, err
	}
	if imageSrc != "" {
		p.Image = &domain.LineImage{Src: imageSrc, Alt: imageAlt}
	}
	return &p, nil
}

// Upsert inserts or refreshes a product row, keyed by handle. Used by the
// seeder and the importer.
func (l *PostgresLookup) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (handle, variant_id, title, price_cents, currency, available, image_src, image_alt)
VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''))
ON CONFLICT (handle) DO UPDATE SET
	variant_id = EXCLUDED.variant_id,
	title = EXCLUDED.title,
	price_cents = EXCLUDED.price_cents,
	currency = EXCLUDED.currency,
	available = EXCLUDED.available,
	image_src = EXCLUDED.image_src,
	image_alt = EXCLUDED.image_alt
RETURNING id::text, created_at
`
	var imageSrc, imageAlt string
	if p.Image != nil {
		imageSrc = p.Image.Src
		imageAlt = p.Image.Alt
	}
	if err := l.pool.QueryRow(ctx, q,
		p.Handle, p.VariantID, p.Title, p.UnitPriceCents, p.CurrencyCode, p.Available, imageSrc, imageAlt,
	).Scan(&p.ID, &p.CreatedAt); err != nil {
		l.logger.Printf("catalog: upsert handle=%s error=%v", p.Handle, err)
		return nil, err
	}
	return &p, nil
}
