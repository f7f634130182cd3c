package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/pricewatch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var (
	_ pricewatch.ProductService = (*ProductService)(nil)
	_ pricewatch.ProductWriter  = (*ProductService)(nil)
)

// ProductService implements pricewatch.ProductService using SQLite.
type ProductService struct {
	db *DB
}

// NewProductService creates a new ProductService.
func NewProductService(db *DB) *ProductService {
	return &ProductService{db: db}
}

// CreateProducts stores new product records, assigning each a generated ID.
// Records are inserted in slice order so a later scrape of the same source
// sorts deterministically.
func (s *ProductService) CreateProducts(ctx context.Context, products []*pricewatch.Product) error {
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return err
		}
	}

	for pos, p := range products {
		p.ID = uuid.New().String()

		_, err := s.db.ExecContext(ctx, `
			INSERT INTO products (id, name, current_price, mrp, discount, rating, availability, scraped_at, source_url, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, p.ID, p.Name, nullFloat(p.CurrentPrice), nullFloat(p.MRP), p.Discount,
			nullFloat(p.Rating), string(p.Availability), p.ScrapedAt.UTC().Format(time.RFC3339), p.SourceURL, pos)
		if err != nil {
			return err
		}
	}

	return nil
}

// FindProducts retrieves products matching the filter, ordered by scrape
// time (newest first) and then by extraction position.
func (s *ProductService) FindProducts(ctx context.Context, filter pricewatch.ProductFilter) ([]*pricewatch.Product, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, name, current_price, mrp, discount, rating, availability, scraped_at, source_url FROM products WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.Availability != nil {
		query.WriteString(" AND availability = ?")
		args = append(args, string(*filter.Availability))
	}

	query.WriteString(" ORDER BY scraped_at DESC, position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*pricewatch.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// DeleteProductsBySource removes all products scraped from a source URL.
func (s *ProductService) DeleteProductsBySource(ctx context.Context, sourceURL string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE source_url = ?", sourceURL)
	return err
}

func scanProduct(rows *sql.Rows) (*pricewatch.Product, error) {
	var p pricewatch.Product
	var currentPrice, mrp, rating sql.NullFloat64
	var availability, scrapedAt string

	if err := rows.Scan(&p.ID, &p.Name, &currentPrice, &mrp, &p.Discount,
		&rating, &availability, &scrapedAt, &p.SourceURL); err != nil {
		return nil, err
	}

	p.CurrentPrice = floatPtr(currentPrice)
	p.MRP = floatPtr(mrp)
	p.Rating = floatPtr(rating)
	p.Availability = pricewatch.Availability(availability)

	var err error
	p.ScrapedAt, err = parseRFC3339(scrapedAt, "scraped_at")
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
