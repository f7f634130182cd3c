package pricewatch

// Per-field search patterns, ordered most reliable first. The lists are
// generalized across e-commerce platforms rather than tied to one site;
// FindByPatterns evaluates them in order and stops at the first hit.
var (
	// NamePatterns locate the product name element.
	NamePatterns = []Pattern{
		TagPattern("h2"),
		TagPattern("h3"),
		ClassPattern("a", `title|name|product`),
		ClassPattern("span", `title|name|product`),
		ClassPattern("div", `title|name|product`),
	}

	// CurrentPricePatterns locate the selling-price element.
	CurrentPricePatterns = []Pattern{
		ClassPattern("span", `price|cost|sale|final`),
		ClassPattern("div", `price|cost|sale|final`),
		AttrPattern("", "data-price"),
	}

	// MRPPatterns locate the list-price element, typically struck through.
	MRPPatterns = []Pattern{
		ClassPattern("span", `mrp|original|strike|was|old`),
		TagPattern("del"),
		TagPattern("s"),
		TagPattern("strike"),
	}

	// DiscountPatterns locate the discount badge or label.
	DiscountPatterns = []Pattern{
		ClassPattern("span", `discount|off|save|percent`),
		ClassPattern("div", `discount|off|save|percent`),
	}

	// RatingPatterns locate the star-rating element.
	RatingPatterns = []Pattern{
		ClassPattern("span", `rating|star|review`),
		ClassPattern("div", `rating|star|review`),
		AttrPattern("", "data-rating"),
	}

	// AvailabilityPatterns locate the stock-status element.
	AvailabilityPatterns = []Pattern{
		ClassPattern("span", `stock|avail|inventory`),
		ClassPattern("div", `stock|avail|inventory`),
	}
)

// ContainerPatterns identify the repeating product-container nodes on a
// listing page. Generic card/tile/item conventions come first; the last two
// are platform-specific fallbacks (Amazon search results, Flipkart's
// obfuscated class).
var ContainerPatterns = []Pattern{
	ClassPattern("", `product[-_]?card`),
	ClassPattern("", `product[-_]?item`),
	ClassPattern("", `product[-_]?tile`),
	ClassPattern("", `search[-_]?result`),
	ExactAttrPattern("", "data-component-type", "s-search-result"),
	ClassPattern("", `_1AtVbE`),
}

// LocateContainers returns the product containers found in the document.
// Patterns are evaluated strictly in order; the first pattern yielding one
// or more matches wins and its full match set is returned in document
// order. Remaining patterns are never tried, even if they would match more
// nodes — mixing matches from different page templates produces garbage
// records. Returns an empty slice when no pattern matches.
func LocateContainers(doc Node) []Node {
	for _, p := range ContainerPatterns {
		if nodes := doc.FindAll(p); len(nodes) > 0 {
			return nodes
		}
	}
	return nil
}
