package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/pricewatch"
	"github.com/fwojciec/pricewatch/scrape"
	"github.com/fwojciec/pricewatch/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Products pricewatch.ProductService
	Scraper  *scrape.Scraper
	Pages    pricewatch.PageStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB string `help:"Database path (overrides PRICEWATCH_DB)"`

	Scrape   ScrapeCmd   `cmd:"" help:"Scrape product listings from the given URLs"`
	Products ProductsCmd `cmd:"" help:"List stored product records"`
	Export   ExportCmd   `cmd:"" help:"Export stored product records to CSV"`
	Delete   DeleteCmd   `cmd:"" help:"Delete stored records for a source URL"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URLs        []string      `arg:"" name:"urls" help:"Listing page URLs to scrape"`
	Out         string        `short:"o" help:"Also write extracted records to a CSV file"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent fetch limit"`
	Timeout     time.Duration `default:"30s" help:"Per-request HTTP timeout"`
	RPS         float64       `name:"rps" default:"1" help:"Requests per second per domain"`
	Fresh       bool          `help:"Delete previously stored records for each URL first"`
	SavePages   string        `name:"save-pages" placeholder:"DIR" help:"Save raw HTML snapshots to a directory"`
	Verbose     bool          `short:"v" help:"Enable debug logging"`
}

// ProductsCmd is the "products" subcommand.
type ProductsCmd struct {
	Source       string `help:"Filter by source URL"`
	Availability string `help:"Filter by availability (In Stock, Out of Stock, Unknown)"`
	Limit        int    `default:"50" help:"Maximum rows to show"`
	Offset       int    `help:"Rows to skip"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Out    string `short:"o" required:"" help:"Output CSV file path"`
	Source string `help:"Filter by source URL"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Source string `arg:"" help:"Source URL whose records to delete"`
	Force  bool   `help:"Confirm deletion"`
}
