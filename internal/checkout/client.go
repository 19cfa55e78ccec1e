package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrPending indicates a checkout is already in flight. The call is
	// ignored, not queued.
	ErrPending = errors.New("checkout already pending")

	// ErrNotConfigured indicates no checkout endpoint is set.
	ErrNotConfigured = errors.New("checkout not configured")
)

// Line is the variant/quantity pair handed to the checkout service.
type Line struct {
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

// Client exchanges cart lines for a redirect URL at the external checkout
// service. It never retries: a failure leaves the caller on the cart with
// nothing changed. Client is stateless; the per-cart re-entrancy guard
// lives in Handoff.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type sessionRequest struct {
	Lines       []Line `json:"lines"`
	CountryCode string `json:"countryCode"`
}

type sessionResponse struct {
	URL string `json:"url"`
}

// Begin posts the lines and country to the checkout service and returns the
// absolute redirect URL.
func (c *Client) Begin(ctx context.Context, lines []Line, countryCode string) (string, error) {
	if c.baseURL == "" {
		return "", ErrNotConfigured
	}
	if len(lines) == 0 {
		return "", errors.New("empty cart")
	}

	body, err := json.Marshal(sessionRequest{Lines: lines, CountryCode: countryCode})
	if err != nil {
		return "", fmt.Errorf("encode checkout request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build checkout request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call checkout service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("checkout service returned %d", resp.StatusCode)
	}

	var out sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode checkout response: %w", err)
	}
	if strings.TrimSpace(out.URL) == "" {
		return "", errors.New("checkout response missing url")
	}
	return out.URL, nil
}
