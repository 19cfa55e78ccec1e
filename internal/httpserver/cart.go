package httpserver

import (
	"errors"
	"log"
	"net/http"

	"cartkeep/internal/cart"
	"cartkeep/internal/checkout"
	"cartkeep/internal/domain"
	"github.com/gin-gonic/gin"
)

type cartResponse struct {
	LineItems     []domain.LineItem `json:"lineItems"`
	ItemCount     int               `json:"itemCount"`
	SubtotalCents int64             `json:"subtotalCents"`
	CurrencyCode  string            `json:"currencyCode"`
	DrawerOpen    bool              `json:"drawerOpen"`
	Hydrated      bool              `json:"hydrated"`
}

func cartResponseFrom(store *cart.Store) cartResponse {
	items := store.Items()
	if items == nil {
		items = []domain.LineItem{}
	}
	return cartResponse{
		LineItems:     items,
		ItemCount:     store.ItemCount(),
		SubtotalCents: store.SubtotalCents(),
		CurrencyCode:  store.CurrencyCode(),
		DrawerOpen:    store.DrawerOpen(),
		Hydrated:      store.Hydrated(),
	}
}

func getCartHandler(c *gin.Context) {
	entry := sessionFrom(c)
	if entry == nil {
		return
	}
	c.JSON(http.StatusOK, cartResponseFrom(entry.store))
}

type addLineRequest struct {
	ID             string `json:"id"`
	VariantID      string `json:"variantId" binding:"required"`
	Title          string `json:"title"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	CurrencyCode   string `json:"currencyCode" binding:"required"`
	CountryCode    string `json:"countryCode"`
	Quantity       int    `json:"quantity"`
	Image          *struct {
		Src string `json:"src"`
		Alt string `json:"alt"`
	} `json:"image"`
}

func addLineHandler(c *gin.Context) {
	entry := sessionFrom(c)
	if entry == nil {
		return
	}

	var req addLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	input := cart.ItemInput{
		ID:             req.ID,
		VariantID:      req.VariantID,
		Title:          req.Title,
		UnitPriceCents: req.UnitPriceCents,
		CurrencyCode:   req.CurrencyCode,
		CountryCode:    req.CountryCode,
	}
	if req.Image != nil && req.Image.Src != "" {
		input.Image = &domain.LineImage{Src: req.Image.Src, Alt: req.Image.Alt}
	}

	if err := entry.store.AddItem(c.Request.Context(), input, quantity); err != nil {
		if errors.Is(err, domain.ErrCurrencyMismatch) {
			c.JSON(http.StatusConflict, gin.H{"error": "currency mismatch"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cartResponseFrom(entry.store))
}

type updateLineRequest struct {
	Quantity int `json:"quantity"`
}

func updateLineHandler(c *gin.Context) {
	entry := sessionFrom(c)
	if entry == nil {
		return
	}

	var req updateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry.store.UpdateQuantity(c.Request.Context(), c.Param("variantId"), req.Quantity)
	c.JSON(http.StatusOK, cartResponseFrom(entry.store))
}

func removeLineHandler(c *gin.Context) {
	entry := sessionFrom(c)
	if entry == nil {
		return
	}
	entry.store.RemoveItem(c.Request.Context(), c.Param("variantId"))
	c.JSON(http.StatusOK, cartResponseFrom(entry.store))
}

func clearCartHandler(c *gin.Context) {
	entry := sessionFrom(c)
	if entry == nil {
		return
	}
	entry.store.Clear(c.Request.Context())
	c.JSON(http.StatusOK, cartResponseFrom(entry.store))
}

type drawerRequest struct {
	Open bool `json:"open"`
}

func drawerHandler(c *gin.Context) {
	entry := sessionFrom(c)
	if entry == nil {
		return
	}
	var req drawerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry.store.SetDrawerOpen(req.Open)
	c.JSON(http.StatusOK, cartResponseFrom(entry.store))
}

// checkoutHandler packages the cart lines and hands them to the checkout
// service. Failure leaves the cart untouched; the shopper stays where they
// are with the checkout control usable again.
func checkoutHandler(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		entry := sessionFrom(c)
		if entry == nil {
			return
		}
		if entry.handoff == nil {
			c.JSON(http.StatusNotImplemented, gin.H{"error": "checkout not configured"})
			return
		}

		items := entry.store.Items()
		if len(items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			return
		}

		lines := make([]checkout.Line, 0, len(items))
		for _, it := range items {
			lines = append(lines, checkout.Line{VariantID: it.VariantID, Quantity: it.Quantity})
		}

		url, err := entry.handoff.Begin(c.Request.Context(), lines, items[0].CountryCode)
		if err != nil {
			if errors.Is(err, checkout.ErrPending) {
				c.JSON(http.StatusConflict, gin.H{"error": "checkout already pending"})
				return
			}
			logger.Printf("checkout: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "checkout unavailable"})
			return
		}

		// The cart stays populated: navigating to the URL is the implicit
		// transaction-pending state.
		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}
