package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientBeginSuccess(t *testing.T) {
	var got sessionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/checkout/sessions" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(sessionResponse{URL: "https://pay.example.com/s/abc"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	url, err := client.Begin(context.Background(), []Line{{VariantID: "v1", Quantity: 2}}, "DE")
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if url != "https://pay.example.com/s/abc" {
		t.Fatalf("unexpected url %s", url)
	}
	if got.CountryCode != "DE" || len(got.Lines) != 1 || got.Lines[0].VariantID != "v1" || got.Lines[0].Quantity != 2 {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestClientBeginUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.Begin(context.Background(), []Line{{VariantID: "v1", Quantity: 1}}, "DE"); err == nil {
		t.Fatalf("expected error on upstream failure")
	}
}

func TestClientBeginMissingURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.Begin(context.Background(), []Line{{VariantID: "v1", Quantity: 1}}, "DE"); err == nil {
		t.Fatalf("expected error on missing url")
	}
}

func TestClientBeginNotConfigured(t *testing.T) {
	client := NewClient("")
	_, err := client.Begin(context.Background(), []Line{{VariantID: "v1", Quantity: 1}}, "DE")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestClientBeginEmptyCart(t *testing.T) {
	client := NewClient("http://localhost:1")
	if _, err := client.Begin(context.Background(), nil, "DE"); err == nil {
		t.Fatalf("expected error on empty lines")
	}
}
