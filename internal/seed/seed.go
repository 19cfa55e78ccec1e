package seed

import (
	"context"
	"fmt"
	"log"

	"cartkeep/internal/catalog"
	"cartkeep/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Apply inserts basic catalog rows for manual testing. It is idempotent via
// the catalog upsert.
func Apply(ctx context.Context, pool *pgxpool.Pool, logger *log.Logger) error {
	products := []domain.Product{
		{
			Handle:         "studio-tee",
			VariantID:      "var-studio-tee-m",
			Title:          "Studio T-Shirt",
			UnitPriceCents: 3900,
			CurrencyCode:   "EUR",
			Available:      true,
			Image:          &domain.LineImage{Src: "https://cdn.example.com/studio-tee.jpg", Alt: "Studio T-Shirt"},
		},
		{
			Handle:         "studio-mug",
			VariantID:      "var-studio-mug",
			Title:          "Studio Mug",
			UnitPriceCents: 1400,
			CurrencyCode:   "EUR",
			Available:      true,
		},
		{
			Handle:         "poster-archive",
			VariantID:      "var-poster-archive",
			Title:          "Archive Poster",
			UnitPriceCents: 2500,
			CurrencyCode:   "EUR",
			Available:      false,
		},
	}

	lookup := catalog.NewPostgresLookup(pool, logger)
	for _, p := range products {
		if _, err := lookup.Upsert(ctx, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Handle, err)
		}
	}

	return nil
}
