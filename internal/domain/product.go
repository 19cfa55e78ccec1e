package domain

import "time"

// Product is a catalog entry resolved for a handle and country. Price and
// availability are a point-in-time view; the cart captures them at add time
// and does not refresh them afterward.
type Product struct {
	ID             string     `json:"id"`
	Handle         string     `json:"handle"`
	VariantID      string     `json:"variantId"`
	Title          string     `json:"title"`
	UnitPriceCents int64      `json:"unitPriceCents"`
	CurrencyCode   string     `json:"currencyCode"`
	Available      bool       `json:"available"`
	Image          *LineImage `json:"image,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}
