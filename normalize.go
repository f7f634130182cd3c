package pricewatch

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nonPriceRE = regexp.MustCompile(`[^\d.,]`)
	percentRE  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	amountRE   = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)
	ratingRE   = regexp.MustCompile(`(\d(?:\.\d)?)`)
)

// ParsePrice extracts a numeric price from text containing currency symbols
// (e.g., "₹12,999", "$999.99", "Rs 15,000"). Commas are treated as
// thousands separators and "." as the decimal separator regardless of
// locale, so a period in a currency label (as in "Rs.") is kept and read
// as a decimal point. Returns false when no parseable number remains.
func ParsePrice(text string) (float64, bool) {
	cleaned := nonPriceRE.ReplaceAllString(strings.TrimSpace(text), "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// NormalizeDiscount extracts a discount from text like "20% off" or
// "Save ₹2,000". A number immediately followed by "%" always wins over an
// absolute amount; the matched number is returned verbatim as "<number>%".
// Otherwise a numeric substring is returned as "₹<amount>" with commas
// stripped. Failing both, the trimmed input is returned as-is. Empty string
// means no discount.
func NormalizeDiscount(text string) string {
	if m := percentRE.FindStringSubmatch(text); m != nil {
		return m[1] + "%"
	}
	if m := amountRE.FindString(text); m != "" {
		return "₹" + strings.ReplaceAll(m, ",", "")
	}
	return strings.TrimSpace(text)
}

// ParseRating extracts a star rating from text like "4.5 out of 5". Only
// the first numeral of the form digit or digit.digit is inspected; later
// numerals in the same text are ignored. Values outside [0, 5] are
// rejected.
func ParseRating(text string) (float64, bool) {
	m := ratingRE.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	if v < 0 || v > 5 {
		return 0, false
	}
	return v, true
}

// Out-of-stock phrases are checked before in-stock phrases so that
// ambiguous text containing both leans out of stock. Note "unavailable"
// must precede the in-stock check since it contains "available".
var outOfStockPhrases = []string{
	"out of stock", "sold out", "unavailable", "not available",
	"currently unavailable", "out-of-stock", "soldout",
}

var inStockPhrases = []string{
	"in stock", "available", "add to cart", "buy now",
	"in-stock", "instock",
}

// ClassifyAvailability determines stock status from the element's visible
// text and raw markup. The markup is included in the search space because
// stock hints often live in class names or data attributes rather than
// text. Returns AvailabilityUnknown when both inputs are empty or neither
// phrase list matches.
func ClassifyAvailability(text, markup string) Availability {
	if text == "" && markup == "" {
		return AvailabilityUnknown
	}

	search := strings.ToLower(text)
	if markup != "" {
		search += " " + strings.ToLower(markup)
	}

	for _, phrase := range outOfStockPhrases {
		if strings.Contains(search, phrase) {
			return AvailabilityOutOfStock
		}
	}
	for _, phrase := range inStockPhrases {
		if strings.Contains(search, phrase) {
			return AvailabilityInStock
		}
	}
	return AvailabilityUnknown
}

// DeriveDiscount computes a discount percentage from the list price and the
// current price, rounded to one decimal (e.g., "20.0%"). Callers must only
// derive when no discount was extracted directly and mrp > price.
func DeriveDiscount(mrp, price float64) string {
	pct := (mrp - price) / mrp * 100
	return strconv.FormatFloat(pct, 'f', 1, 64) + "%"
}
