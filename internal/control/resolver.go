package control

import (
	"context"
	"io"
	"log"
	"strings"

	"cartkeep/internal/cart"
	"cartkeep/internal/catalog"
)

// ActionKind says what the add-to-cart control should do for a product.
type ActionKind string

const (
	// ActionAdd means the catalog resolved and the item can go into the cart.
	ActionAdd ActionKind = "add"
	// ActionLink means the control degrades to a plain outbound storefront
	// link; the cart is not involved.
	ActionLink ActionKind = "link"
)

// Action is the resolved behavior for one product handle.
type Action struct {
	Kind ActionKind
	Item *cart.ItemInput
	URL  string
}

// Resolver decides, per product handle, between the integrated add-to-cart
// path and the storefront-link fallback. Catalog failures never surface as
// errors: the control must be usable with or without the catalog reachable.
type Resolver struct {
	lookup        catalog.Lookup
	storefrontURL string
	logger        *log.Logger
}

func NewResolver(lookup catalog.Lookup, storefrontURL string, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Resolver{
		lookup:        lookup,
		storefrontURL: strings.TrimRight(strings.TrimSpace(storefrontURL), "/"),
		logger:        logger,
	}
}

// Resolve looks the handle up in the catalog. Lookup failure, a missing
// catalog integration, or an unavailable variant all fall back to the
// storefront link.
func (r *Resolver) Resolve(ctx context.Context, handle, countryCode string) Action {
	if r.lookup == nil {
		return r.fallback(handle)
	}

	product, err := r.lookup.ResolveHandle(ctx, handle, countryCode)
	if err != nil {
		if err != catalog.ErrNotConfigured {
			r.logger.Printf("resolve handle %s: %v", handle, err)
		}
		return r.fallback(handle)
	}
	if !product.Available {
		return r.fallback(handle)
	}

	return Action{
		Kind: ActionAdd,
		Item: &cart.ItemInput{
			ID:             product.ID,
			VariantID:      product.VariantID,
			Title:          product.Title,
			UnitPriceCents: product.UnitPriceCents,
			CurrencyCode:   product.CurrencyCode,
			CountryCode:    countryCode,
			Image:          product.Image,
		},
	}
}

func (r *Resolver) fallback(handle string) Action {
	return Action{Kind: ActionLink, URL: r.storefrontURL + "/products/" + handle}
}
