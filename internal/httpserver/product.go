package httpserver

import (
	"net/http"

	"cartkeep/internal/control"
	"github.com/gin-gonic/gin"
)

type productActionResponse struct {
	Action string          `json:"action"`
	URL    string          `json:"url,omitempty"`
	Item   *actionLineItem `json:"item,omitempty"`
}

type actionLineItem struct {
	ID             string `json:"id"`
	VariantID      string `json:"variantId"`
	Title          string `json:"title"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	CurrencyCode   string `json:"currencyCode"`
	CountryCode    string `json:"countryCode"`
	ImageSrc       string `json:"imageSrc,omitempty"`
	ImageAlt       string `json:"imageAlt,omitempty"`
}

// productActionHandler resolves the add-to-cart control for a handle:
// either the item descriptor ready for the add endpoint, or a storefront
// link when the catalog cannot serve the product.
func productActionHandler(resolver *control.Resolver, defaultCountry string) gin.HandlerFunc {
	return func(c *gin.Context) {
		country := c.Query("country")
		if country == "" {
			country = defaultCountry
		}

		action := resolver.Resolve(c.Request.Context(), c.Param("handle"), country)
		resp := productActionResponse{Action: string(action.Kind), URL: action.URL}
		if action.Item != nil {
			resp.Item = &actionLineItem{
				ID:             action.Item.ID,
				VariantID:      action.Item.VariantID,
				Title:          action.Item.Title,
				UnitPriceCents: action.Item.UnitPriceCents,
				CurrencyCode:   action.Item.CurrencyCode,
				CountryCode:    action.Item.CountryCode,
			}
			if action.Item.Image != nil {
				resp.Item.ImageSrc = action.Item.Image.Src
				resp.Item.ImageAlt = action.Item.Image.Alt
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}
