package pricewatch

import (
	"log/slog"
	"strings"
	"time"
)

// Extractor assembles product records from a parsed listing page. The zero
// value is usable; Now and Logger exist so tests can pin the clock and
// capture diagnostics.
type Extractor struct {
	// Now returns the timestamp stamped on extracted records.
	// Defaults to time.Now when nil.
	Now func() time.Time

	// Logger receives diagnostics for containers that fail to extract.
	// Defaults to slog.Default when nil.
	Logger *slog.Logger
}

// ExtractRecord builds a single product record from one container node.
// Each field is located with its ordered pattern list and normalized
// independently; a field that cannot be located or parsed is simply absent.
// When no discount was extracted but both prices are present and mrp is
// higher, the discount is derived from the price gap. The derivation never
// overwrites an extracted discount, even one that looks inconsistent with
// the prices. The record is returned unconditionally, including with an
// empty name; the validity filter belongs to ExtractListing.
func (e *Extractor) ExtractRecord(container Node, sourceURL string) *Product {
	p := &Product{
		ScrapedAt: e.now().UTC(),
		SourceURL: sourceURL,
	}

	if n, ok := FindByPatterns(container, NamePatterns); ok {
		p.Name = strings.TrimSpace(n.Text())
	}
	if n, ok := FindByPatterns(container, CurrentPricePatterns); ok {
		if v, ok := ParsePrice(n.Text()); ok {
			p.CurrentPrice = &v
		}
	}
	if n, ok := FindByPatterns(container, MRPPatterns); ok {
		if v, ok := ParsePrice(n.Text()); ok {
			p.MRP = &v
		}
	}
	if n, ok := FindByPatterns(container, DiscountPatterns); ok {
		p.Discount = NormalizeDiscount(strings.TrimSpace(n.Text()))
	}
	if n, ok := FindByPatterns(container, RatingPatterns); ok {
		if v, ok := ParseRating(n.Text()); ok {
			p.Rating = &v
		}
	}

	// Availability gets the matched node itself, not just its text: stock
	// hints often live in class names or data attributes.
	if n, ok := FindByPatterns(container, AvailabilityPatterns); ok {
		p.Availability = ClassifyAvailability(strings.TrimSpace(n.Text()), n.Markup())
	} else {
		p.Availability = AvailabilityUnknown
	}

	if p.Discount == "" && p.MRP != nil && p.CurrentPrice != nil && *p.MRP > *p.CurrentPrice {
		p.Discount = DeriveDiscount(*p.MRP, *p.CurrentPrice)
	}

	return p
}

// ExtractListing extracts all product records from a listing page document.
// Containers are located once; each is extracted independently and a
// failure in one container never aborts the rest of the page. Records
// without a product name are filtered out. Output preserves the containers'
// document order and is identical across calls for the same tree, except
// for the timestamp.
func (e *Extractor) ExtractListing(doc Node, sourceURL string) []*Product {
	containers := LocateContainers(doc)

	products := make([]*Product, 0, len(containers))
	for i, container := range containers {
		p, err := e.extractContainer(container, sourceURL)
		if err != nil {
			e.logger().Warn("product extraction failed",
				"source", sourceURL,
				"container", i,
				"err", ErrorMessage(err),
			)
			continue
		}
		if p.Name == "" {
			continue
		}
		products = append(products, p)
	}

	return products
}

// extractContainer recovers from panics raised while reading malformed
// nodes so a single bad container degrades to a skipped record.
func (e *Extractor) extractContainer(container Node, sourceURL string) (p *Product, err error) {
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, Errorf(EINTERNAL, "container extraction panicked: %v", r)
		}
	}()
	return e.ExtractRecord(container, sourceURL), nil
}

func (e *Extractor) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Extractor) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}
