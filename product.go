package pricewatch

import (
	"context"
	"time"
)

// Availability is the stock status of a product. The values form a fixed
// vocabulary; consumers must never see free text here.
type Availability string

// Availability states.
const (
	AvailabilityInStock    Availability = "In Stock"
	AvailabilityOutOfStock Availability = "Out of Stock"
	AvailabilityUnknown    Availability = "Unknown"
)

// Columns is the fixed column order for tabular export of products.
// An empty result set still conforms to this schema (zero rows, same
// columns).
var Columns = []string{
	"product_name",
	"current_price",
	"mrp",
	"discount",
	"rating",
	"availability",
	"scrape_timestamp_utc",
	"source_url",
}

// Product represents one extracted product record. Pointer fields are
// optional: nil means the field could not be extracted. A record is
// assembled once per container during an extraction pass and never mutated
// afterwards.
type Product struct {
	ID           string       `json:"id"`
	Name         string       `json:"productName"`
	CurrentPrice *float64     `json:"currentPrice"`
	MRP          *float64     `json:"mrp"`
	Discount     string       `json:"discount"`
	Rating       *float64     `json:"rating"`
	Availability Availability `json:"availability"`
	ScrapedAt    time.Time    `json:"scrapedAt"`
	SourceURL    string       `json:"sourceUrl"`
}

// Validate returns an error if the product contains invalid fields.
// Name presence is the sole validity gate for surfacing a record.
func (p *Product) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "product name required")
	}
	if p.SourceURL == "" {
		return Errorf(EINVALID, "product source URL required")
	}
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5) {
		return Errorf(EINVALID, "product rating %v outside [0, 5]", *p.Rating)
	}
	switch p.Availability {
	case AvailabilityInStock, AvailabilityOutOfStock, AvailabilityUnknown:
	default:
		return Errorf(EINVALID, "invalid availability %q", p.Availability)
	}
	return nil
}

// ProductWriter persists extracted product records.
type ProductWriter interface {
	CreateProducts(ctx context.Context, products []*Product) error
}

// ProductService represents a service for managing stored product records.
type ProductService interface {
	// CreateProducts stores new product records.
	CreateProducts(ctx context.Context, products []*Product) error

	// FindProducts retrieves products matching the filter.
	FindProducts(ctx context.Context, filter ProductFilter) ([]*Product, error)

	// DeleteProductsBySource removes all products scraped from a source URL.
	DeleteProductsBySource(ctx context.Context, sourceURL string) error
}

// ProductFilter represents a filter for FindProducts.
type ProductFilter struct {
	ID           *string       `json:"id"`
	SourceURL    *string       `json:"sourceUrl"`
	Availability *Availability `json:"availability"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
