package domain

// MaxLineQuantity caps the quantity of any single line item. Requests above
// the cap are clamped, not rejected.
const MaxLineQuantity = 10

// LineItem is one purchasable variant in the cart. VariantID is the
// uniqueness key; ID identifies the parent product and is display-only.
type LineItem struct {
	ID             string     `json:"id"`
	VariantID      string     `json:"variantId"`
	Title          string     `json:"title"`
	UnitPriceCents int64      `json:"unitPriceCents"`
	CurrencyCode   string     `json:"currencyCode"`
	CountryCode    string     `json:"countryCode"`
	Quantity       int        `json:"quantity"`
	Image          *LineImage `json:"image,omitempty"`
}

// LineImage is a display thumbnail captured at add time.
type LineImage struct {
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

// TotalCents is the quantity-extended price of the line.
func (l LineItem) TotalCents() int64 {
	return l.UnitPriceCents * int64(l.Quantity)
}
