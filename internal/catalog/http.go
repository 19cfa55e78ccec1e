package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cartkeep/internal/domain"
)

// HTTPLookup queries an external catalog service. An empty base URL means
// the integration is not configured and every resolve fails fast with
// ErrNotConfigured.
type HTTPLookup struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPLookup(baseURL string) *HTTPLookup {
	return &HTTPLookup{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type productPayload struct {
	ID             string `json:"id"`
	Handle         string `json:"handle"`
	VariantID      string `json:"variantId"`
	Title          string `json:"title"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	CurrencyCode   string `json:"currencyCode"`
	Available      bool   `json:"available"`
	Image          *struct {
		Src string `json:"src"`
		Alt string `json:"alt"`
	} `json:"image"`
}

func (l *HTTPLookup) ResolveHandle(ctx context.Context, handle, countryCode string) (*domain.Product, error) {
	if l.baseURL == "" {
		return nil, ErrNotConfigured
	}

	endpoint := l.baseURL + "/products/" + url.PathEscape(handle)
	if countryCode != "" {
		endpoint += "?country=" + url.QueryEscape(countryCode)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call catalog: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return nil, domain.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("catalog returned %d", resp.StatusCode)
	}

	var payload productPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}

	p := &domain.Product{
		ID:             payload.ID,
		Handle:         payload.Handle,
		VariantID:      payload.VariantID,
		Title:          payload.Title,
		UnitPriceCents: payload.UnitPriceCents,
		CurrencyCode:   payload.CurrencyCode,
		Available:      payload.Available,
	}
	if payload.Image != nil && payload.Image.Src != "" {
		p.Image = &domain.LineImage{Src: payload.Image.Src, Alt: payload.Image.Alt}
	}
	return p, nil
}
