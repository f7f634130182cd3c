// Package scrape provides listing-page scraping orchestration. It
// coordinates fetching, parsing, record extraction, and storage of product
// listing pages.
package scrape

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pricewatch"
	"github.com/fwojciec/pricewatch/bloom"
	"golang.org/x/sync/errgroup"
)

// Scraper orchestrates scraping of product listing pages. Each page is
// fetched and parsed into an independent document tree, so pages can be
// processed concurrently without shared mutable state.
type Scraper struct {
	Fetcher     pricewatch.Fetcher
	Parser      pricewatch.Parser
	Products    pricewatch.ProductWriter
	RateLimiter pricewatch.DomainLimiter
	Seen        *bloom.Filter
	Pages       pricewatch.PageStore // optional raw HTML snapshots
	Extractor   *pricewatch.Extractor
	Concurrency int
	RetryDelays []time.Duration
	Logger      *slog.Logger
}

// Result holds the outcome of a scrape operation.
type Result struct {
	Pages    int // pages scraped and saved
	Failed   int // pages that could not be fetched, parsed, or saved
	Skipped  int // duplicate URLs never fetched
	Products int // product records written
	Bytes    int // raw HTML bytes fetched
}

// ProgressEvent reports progress during a scrape operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single listing page.
type pageResult struct {
	position int
	url      string
	hash     string
	bytes    int
	products []*pricewatch.Product
	err      error
}

// ScrapeListings scrapes all given listing URLs and writes the extracted
// products. Duplicate URLs are fetched once; a page that fails never aborts
// the rest of the run. Product output follows the input URL order and, per
// page, the containers' document order.
func (s *Scraper) ScrapeListings(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	var skipped int
	pending := make([]string, 0, len(urls))
	for _, u := range urls {
		if s.Seen != nil && !s.Seen.AddIfNew(u) {
			s.logger().Debug("skipping duplicate listing URL", "url", u)
			skipped++
			continue
		}
		pending = append(pending, u)
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	resultCh := make(chan pageResult, len(pending))

	var completed atomic.Int64
	total := len(pending)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range pending {
			i, u := i, u
			g.Go(func() error {
				resultCh <- s.processPage(gctx, i, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results by position so output order matches input order.
	results := make([]pageResult, len(pending))
	var failedCount int
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		if result.err != nil {
			failedCount++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					URL:       result.url,
					Error:     result.err,
				})
			}
		} else if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       result.url,
			})
		}
	}

	// Write products and accumulate stats in input order.
	var pageCount, productCount, totalBytes int
	for _, result := range results {
		if result.err != nil {
			continue
		}

		if s.Products != nil {
			if err := s.Products.CreateProducts(ctx, result.products); err != nil {
				s.logger().Error("failed to save products",
					"url", result.url,
					"err", err.Error(),
				)
				failedCount++
				continue
			}
		}

		s.logger().Info("listing scraped",
			"url", result.url,
			"products", len(result.products),
			"bytes", result.bytes,
			"hash", result.hash,
		)

		pageCount++
		productCount += len(result.products)
		totalBytes += result.bytes
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return &Result{
		Pages:    pageCount,
		Failed:   failedCount,
		Skipped:  skipped,
		Products: productCount,
		Bytes:    totalBytes,
	}, nil
}

// processPage fetches, parses, and extracts a single listing page.
func (s *Scraper) processPage(ctx context.Context, position int, pageURL string) pageResult {
	result := pageResult{
		position: position,
		url:      pageURL,
	}

	if s.RateLimiter != nil {
		if domain := hostOf(pageURL); domain != "" {
			if err := s.RateLimiter.Wait(ctx, domain); err != nil {
				result.err = err
				return result
			}
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, pageURL, s.Fetcher.Fetch, s.logger(), delays)
	if err != nil {
		result.err = err
		return result
	}

	if s.Pages != nil {
		page := &pricewatch.Page{URL: pageURL, HTML: html, FetchedAt: time.Now().UTC()}
		if err := s.Pages.Save(ctx, page); err != nil {
			// Snapshots are diagnostics; a failed save never fails the page.
			s.logger().Warn("failed to save page snapshot",
				"url", pageURL,
				"err", err.Error(),
			)
		}
	}

	doc, err := s.Parser.Parse(html)
	if err != nil {
		result.err = err
		return result
	}

	extractor := s.Extractor
	if extractor == nil {
		extractor = &pricewatch.Extractor{Logger: s.logger()}
	}

	result.products = extractor.ExtractListing(doc, pageURL)
	result.bytes = len(html)
	result.hash = hashPage(html)
	return result
}

// hashPage computes a short fingerprint of the fetched HTML so runs against
// unchanged pages are recognizable in the logs.
func hashPage(html string) string {
	return strconv.FormatUint(xxhash.Sum64String(html), 16)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
