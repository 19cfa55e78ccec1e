package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cartkeep/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads storefront product exports and inserts/updates catalog
// rows. One row per product; header order is free.
type CSVImporter struct {
	reader *csv.Reader
	writer ProductWriter
}

func NewCSVImporter(r io.Reader, writer ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{reader: csvr, writer: writer}
}

// Run parses rows and upserts products keyed by handle. It stops at the
// first malformed row and reports how many products made it in.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		product, err := parseRow(record, index)
		if err != nil {
			return imported, err
		}
		if product == nil {
			continue
		}
		if _, err := i.writer.Upsert(ctx, *product); err != nil {
			return imported, fmt.Errorf("upsert product %s: %w", product.Handle, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseRow(record []string, index map[string]int) (*domain.Product, error) {
	handle := field(record, index, "handle")
	if handle == "" {
		return nil, nil // blank or separator row
	}

	centsRaw := field(record, index, "price_cents")
	cents, err := strconv.ParseInt(centsRaw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("product %s: parse price %q: %w", handle, centsRaw, err)
	}

	available := true
	if raw := field(record, index, "available"); raw != "" {
		available, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("product %s: parse available %q: %w", handle, raw, err)
		}
	}

	p := &domain.Product{
		Handle:         handle,
		VariantID:      field(record, index, "variant_id"),
		Title:          field(record, index, "title"),
		UnitPriceCents: cents,
		CurrencyCode:   field(record, index, "currency"),
		Available:      available,
	}
	if src := field(record, index, "image_src"); src != "" {
		p.Image = &domain.LineImage{Src: src, Alt: field(record, index, "image_alt")}
	}
	return p, nil
}
