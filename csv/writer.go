// Package csv writes product records in a fixed tabular schema for
// downstream analytics ingestion.
package csv

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/fwojciec/pricewatch"
)

// Ensure Writer implements pricewatch.ProductWriter at compile time.
var _ pricewatch.ProductWriter = (*Writer)(nil)

// Writer writes products as CSV rows with the column order defined by
// pricewatch.Columns. The header row is always emitted, so an empty result
// still produces a schema-conformant file (zero rows, same columns).
type Writer struct {
	mu          sync.Mutex
	w           *csv.Writer
	wroteHeader bool
}

// NewWriter creates a new Writer targeting w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: csv.NewWriter(w)}
}

// CreateProducts appends one CSV row per product, writing the header first
// if it hasn't been written yet. An empty slice still triggers the header.
func (w *Writer) CreateProducts(ctx context.Context, products []*pricewatch.Product) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.writeHeader(); err != nil {
		return err
	}

	for _, p := range products {
		row := []string{
			p.Name,
			formatFloat(p.CurrentPrice),
			formatFloat(p.MRP),
			p.Discount,
			formatFloat(p.Rating),
			string(p.Availability),
			p.ScrapedAt.UTC().Format(time.RFC3339),
			p.SourceURL,
		}
		if err := w.w.Write(row); err != nil {
			return err
		}
	}

	w.w.Flush()
	return w.w.Error()
}

// Close flushes buffered rows, writing the header if nothing was ever
// written. Must be called when the Writer is no longer needed.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.writeHeader(); err != nil {
		return err
	}
	w.w.Flush()
	return w.w.Error()
}

func (w *Writer) writeHeader() error {
	if w.wroteHeader {
		return nil
	}
	w.wroteHeader = true
	return w.w.Write(pricewatch.Columns)
}

// formatFloat renders an optional numeric field, empty when absent.
func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
