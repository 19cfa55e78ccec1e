package importer

import (
	"context"
	"strings"
	"testing"

	"cartkeep/internal/domain"
)

type stubProductWriter struct {
	items []domain.Product
}

func (s *stubProductWriter) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.items = append(s.items, p)
	return &p, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `handle,variant_id,title,price_cents,currency,available,image_src,image_alt
studio-tee,var-tee-m,Studio T-Shirt,3900,EUR,true,https://cdn.example.com/tee.jpg,Studio T-Shirt
,,,,,,,
poster-archive,var-poster,Archive Poster,2500,EUR,false,,`

	writer := &stubProductWriter{}
	imp := NewCSVImporter(strings.NewReader(csvData), writer)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 products imported, got %d", count)
	}

	first := writer.items[0]
	if first.Handle != "studio-tee" || first.VariantID != "var-tee-m" || first.UnitPriceCents != 3900 || first.CurrencyCode != "EUR" {
		t.Fatalf("unexpected product data: %+v", first)
	}
	if first.Image == nil || first.Image.Src != "https://cdn.example.com/tee.jpg" {
		t.Fatalf("expected image on first product, got %+v", first.Image)
	}

	second := writer.items[1]
	if second.Available {
		t.Fatalf("expected second product unavailable")
	}
	if second.Image != nil {
		t.Fatalf("expected no image on second product")
	}
}

func TestCSVImporter_BadPrice(t *testing.T) {
	csvData := `handle,variant_id,title,price_cents,currency
ok-row,var-1,Ok,100,EUR
bad-row,var-2,Bad,not-a-number,EUR`

	writer := &stubProductWriter{}
	imp := NewCSVImporter(strings.NewReader(csvData), writer)

	count, err := imp.Run(context.Background())
	if err == nil {
		t.Fatalf("expected error for malformed price")
	}
	if count != 1 {
		t.Fatalf("expected 1 product imported before the failure, got %d", count)
	}
}

func TestCSVImporter_HeaderOrderFree(t *testing.T) {
	csvData := `currency,price_cents,title,handle,variant_id
USD,1500,Reordered,reordered,var-r`

	writer := &stubProductWriter{}
	imp := NewCSVImporter(strings.NewReader(csvData), writer)

	if _, err := imp.Run(context.Background()); err != nil {
		t.Fatalf("import run: %v", err)
	}
	if len(writer.items) != 1 || writer.items[0].Handle != "reordered" || writer.items[0].CurrencyCode != "USD" {
		t.Fatalf("unexpected product: %+v", writer.items)
	}
	if !writer.items[0].Available {
		t.Fatalf("available should default to true when column is absent")
	}
}
