package pricewatch

import "context"

// Fetcher retrieves raw HTML for listing pages. The extraction core never
// fetches; a page that cannot be fetched degrades to zero records upstream.
type Fetcher interface {
	// Fetch retrieves the HTML content of the given URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// DomainLimiter provides per-domain rate limiting for polite scraping.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
