// Command pwprobe fetches a single listing page and shows what the
// extractor sees: how many product containers were located and the fields
// recovered from each. Useful when tuning patterns against a new site.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pricewatch"
	"github.com/fwojciec/pricewatch/goquery"
	pwhttp "github.com/fwojciec/pricewatch/http"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL     string        `arg:"" optional:"" help:"Listing page URL to probe"`
	File    string        `short:"f" help:"Read HTML from a local file instead of fetching"`
	Timeout time.Duration `default:"30s" help:"Per-request HTTP timeout"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pwprobe"),
		kong.Description("Probe a product listing page and show extracted records"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no URL or file provided")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	html, sourceURL, err := loadHTML(ctx, cli)
	if err != nil {
		return err
	}

	doc, err := goquery.NewParser().Parse(html)
	if err != nil {
		return err
	}

	containers := pricewatch.LocateContainers(doc)
	fmt.Fprintf(stdout, "Found %d product containers\n", len(containers))

	extractor := &pricewatch.Extractor{}
	for i, container := range containers {
		printProduct(stdout, i, extractor.ExtractRecord(container, sourceURL))
	}

	return nil
}

func loadHTML(ctx context.Context, cli *CLI) (html, sourceURL string, err error) {
	if cli.File != "" {
		data, err := os.ReadFile(cli.File)
		if err != nil {
			return "", "", err
		}
		return string(data), "file://" + cli.File, nil
	}

	if cli.URL == "" {
		return "", "", fmt.Errorf("a URL argument or --file is required")
	}

	fetcher := pwhttp.NewFetcher(pwhttp.WithTimeout(cli.Timeout))
	defer fetcher.Close()

	html, err = fetcher.Fetch(ctx, cli.URL)
	if err != nil {
		return "", "", err
	}
	return html, cli.URL, nil
}

func printProduct(w io.Writer, i int, p *pricewatch.Product) {
	fmt.Fprintf(w, "[%d] name:         %s\n", i, orMissing(p.Name))
	fmt.Fprintf(w, "    price:        %s\n", formatFloat(p.CurrentPrice))
	fmt.Fprintf(w, "    mrp:          %s\n", formatFloat(p.MRP))
	fmt.Fprintf(w, "    discount:     %s\n", orMissing(p.Discount))
	fmt.Fprintf(w, "    rating:       %s\n", formatFloat(p.Rating))
	fmt.Fprintf(w, "    availability: %s\n", p.Availability)
}

func orMissing(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func formatFloat(v *float64) string {
	if v == nil {
		return "(none)"
	}
	return fmt.Sprintf("%g", *v)
}
