package catalog

import (
	"context"
	"errors"

	"cartkeep/internal/domain"
)

// ErrNotConfigured indicates no catalog backend is wired. Callers degrade
// to the storefront-link fallback instead of surfacing an error.
var ErrNotConfigured = errors.New("catalog not configured")

// Lookup resolves a product handle for a shopper's country into live
// identity, price, and availability.
type Lookup interface {
	ResolveHandle(ctx context.Context, handle, countryCode string) (*domain.Product, error)
}
