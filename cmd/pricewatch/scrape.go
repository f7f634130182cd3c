package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fwojciec/pricewatch"
	"github.com/fwojciec/pricewatch/csv"
	"github.com/fwojciec/pricewatch/scrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	// Fresh mode: drop previously stored records for each source first.
	if c.Fresh {
		for _, u := range c.URLs {
			if err := deps.Products.DeleteProductsBySource(deps.Ctx, u); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", pricewatch.ErrorMessage(err))
				return err
			}
		}
	}

	// Optional CSV output alongside the database.
	if c.Out != "" {
		f, err := os.Create(c.Out)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: cannot create %s: %v\n", c.Out, err)
			return err
		}
		defer f.Close()

		w := csv.NewWriter(f)
		defer w.Close()

		deps.Scraper.Products = multiWriter{deps.Scraper.Products, w}
	}

	progress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Scraping %d pages\n", event.Total)
		case scrape.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	result, err := deps.Scraper.ScrapeListings(deps.Ctx, c.URLs, progress)
	if err != nil {
		if deps.Pages != nil {
			_ = deps.Pages.Abort()
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricewatch.ErrorMessage(err))
		return err
	}

	if deps.Pages != nil {
		if err := deps.Pages.Commit(); err != nil {
			fmt.Fprintf(deps.Stderr, "error: cannot commit page snapshots: %v\n", err)
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Saved %d products from %d pages (%s)\n",
		result.Products, result.Pages, scrape.FormatBytes(result.Bytes))
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "  %d pages failed\n", result.Failed)
	}
	if result.Skipped > 0 {
		fmt.Fprintf(deps.Stdout, "  %d duplicate URLs skipped\n", result.Skipped)
	}

	return nil
}

// multiWriter fans product batches out to several writers. The first
// error aborts the write so the database stays authoritative.
type multiWriter []pricewatch.ProductWriter

func (m multiWriter) CreateProducts(ctx context.Context, products []*pricewatch.Product) error {
	for _, w := range m {
		if err := w.CreateProducts(ctx, products); err != nil {
			return err
		}
	}
	return nil
}
