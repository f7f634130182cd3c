package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pricewatch"
	"github.com/fwojciec/pricewatch/bloom"
	"github.com/fwojciec/pricewatch/fs"
	"github.com/fwojciec/pricewatch/goquery"
	pwhttp "github.com/fwojciec/pricewatch/http"
	"github.com/fwojciec/pricewatch/scrape"
	pwslog "github.com/fwojciec/pricewatch/slog"
	"github.com/fwojciec/pricewatch/sqlite"
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
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ProductService pricewatch.ProductService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pricewatch"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pricewatch --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// First word of the resolved command, e.g. "scrape" from "scrape <urls>".
	cmd := strings.Fields(kongCtx.Command())[0]

	// --db overrides the environment/default database path.
	if cli.DB != "" {
		m.DBPath = cli.DB
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PRICEWATCH_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.ProductService = sqlite.NewProductService(m.DB)
	deps.DB = m.DB
	deps.Products = m.ProductService

	if cmd == "scrape" {
		logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
			Level: logLevel(cli.Scrape.Verbose),
		}))

		fetcher := pwslog.NewLoggingFetcher(
			pwhttp.NewFetcher(pwhttp.WithTimeout(cli.Scrape.Timeout)),
			logger,
		)
		defer fetcher.Close()

		deps.Scraper = &scrape.Scraper{
			Fetcher:     fetcher,
			Parser:      goquery.NewParser(),
			Products:    m.ProductService,
			RateLimiter: scrape.NewDomainLimiter(cli.Scrape.RPS),
			Seen:        bloom.NewFilter(100_000, 0.001),
			Concurrency: cli.Scrape.Concurrency,
			Logger:      logger,
		}

		if dir := cli.Scrape.SavePages; dir != "" {
			store := fs.NewFileStore(filepath.Dir(dir), filepath.Base(dir))
			deps.Scraper.Pages = store
			deps.Pages = store
		}
	}

	return kongCtx.Run(deps)
}

func logLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func defaultDBPath() string {
	if path := os.Getenv("PRICEWATCH_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pricewatch.db"
	}
	dir := filepath.Join(home, ".pricewatch")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pricewatch.db")
}
