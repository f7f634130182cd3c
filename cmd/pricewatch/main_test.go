package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	main "github.com/fwojciec/pricewatch/cmd/pricewatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingPage = `<!DOCTYPE html>
<html>
<body>
	<div class="product-card">
		<h2>Acme Phone X</h2>
		<span class="sale-price">₹12,999</span>
		<span class="mrp-strike">₹15,999</span>
		<div class="rating-stars">4.3 out of 5 stars</div>
		<span class="stock-status">In stock</span>
	</div>
	<div class="product-card">
		<h2>Acme Phone Y</h2>
		<span class="sale-price">₹8,499</span>
		<span class="stock-status">Currently unavailable</span>
	</div>
</body>
</html>`

// runCmd executes a single CLI invocation against the given database.
func runCmd(t *testing.T, dbPath string, args ...string) (string, string, error) {
	t.Helper()

	m := main.NewMain()
	m.DBPath = dbPath

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := m.Run(context.Background(), args, stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func newListingServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(listingPage))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestMain_ScrapeAndQuery(t *testing.T) {
	t.Parallel()

	srv := newListingServer(t)
	dbPath := filepath.Join(t.TempDir(), "test.db")

	stdout, stderr, err := runCmd(t, dbPath, "scrape", srv.URL, "--rps", "100")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Saved 2 products from 1 pages")

	stdout, _, err = runCmd(t, dbPath, "products")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Acme Phone X")
	assert.Contains(t, stdout, "Acme Phone Y")
	assert.Contains(t, stdout, "In Stock")
	assert.Contains(t, stdout, "Out of Stock")

	stdout, _, err = runCmd(t, dbPath, "products", "--availability", "In Stock")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Acme Phone X")
	assert.NotContains(t, stdout, "Acme Phone Y")

	stdout, _, err = runCmd(t, dbPath, "products", "--source", "https://other.example.com")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No products found")
}

func TestMain_ScrapeWritesCSV(t *testing.T) {
	t.Parallel()

	srv := newListingServer(t)
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	outPath := filepath.Join(dir, "out.csv")

	_, stderr, err := runCmd(t, dbPath, "scrape", srv.URL, "-o", outPath, "--rps", "100")
	require.NoError(t, err, "stderr: %s", stderr)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "product_name,current_price,mrp,discount,rating,availability,scrape_timestamp_utc,source_url", lines[0])
	assert.Contains(t, lines[1], "Acme Phone X,12999,15999,18.8%,4.3,In Stock")
	assert.Contains(t, lines[2], "Acme Phone Y,8499,,,,Out of Stock")
}

func TestMain_Export(t *testing.T) {
	t.Parallel()

	srv := newListingServer(t)
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	outPath := filepath.Join(dir, "export.csv")

	_, stderr, err := runCmd(t, dbPath, "scrape", srv.URL, "--rps", "100")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, _, err := runCmd(t, dbPath, "export", "-o", outPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Exported 2 products")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "product_name,current_price,mrp,discount,rating,availability,scrape_timestamp_utc,source_url", lines[0])

	t.Run("header is written even when no rows match", func(t *testing.T) {
		emptyPath := filepath.Join(dir, "empty.csv")
		_, _, err := runCmd(t, dbPath, "export", "-o", emptyPath, "--source", "https://other.example.com")
		require.NoError(t, err)

		data, err := os.ReadFile(emptyPath)
		require.NoError(t, err)
		assert.Equal(t, "product_name,current_price,mrp,discount,rating,availability,scrape_timestamp_utc,source_url\n", string(data))
	})
}

func TestMain_ScrapeSavesPageSnapshots(t *testing.T) {
	t.Parallel()

	srv := newListingServer(t)
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	pagesDir := filepath.Join(dir, "snapshots")

	_, stderr, err := runCmd(t, dbPath, "scrape", srv.URL, "--save-pages", pagesDir, "--rps", "100")
	require.NoError(t, err, "stderr: %s", stderr)

	data, err := os.ReadFile(filepath.Join(pagesDir, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, listingPage, string(data))
}

func TestMain_Delete(t *testing.T) {
	t.Parallel()

	srv := newListingServer(t)
	dbPath := filepath.Join(t.TempDir(), "test.db")

	_, stderr, err := runCmd(t, dbPath, "scrape", srv.URL, "--rps", "100")
	require.NoError(t, err, "stderr: %s", stderr)

	t.Run("requires force flag", func(t *testing.T) {
		_, stderr, err := runCmd(t, dbPath, "delete", srv.URL)
		require.Error(t, err)
		assert.Contains(t, stderr, "use --force to confirm deletion")
	})

	t.Run("deletes records for the source", func(t *testing.T) {
		stdout, _, err := runCmd(t, dbPath, "delete", srv.URL, "--force")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Deleted 2 records")

		stdout, _, err = runCmd(t, dbPath, "products")
		require.NoError(t, err)
		assert.Contains(t, stdout, "No products found")
	})

	t.Run("unknown source is an error", func(t *testing.T) {
		_, stderr, err := runCmd(t, dbPath, "delete", "https://other.example.com", "--force")
		require.Error(t, err)
		assert.Contains(t, stderr, "no records for")
	})
}

func TestMain_DBFlagOverridesPath(t *testing.T) {
	t.Parallel()

	srv := newListingServer(t)
	dir := t.TempDir()
	defaultPath := filepath.Join(dir, "default.db")
	overridePath := filepath.Join(dir, "override.db")

	_, stderr, err := runCmd(t, defaultPath, "--db", overridePath, "scrape", srv.URL, "--rps", "100")
	require.NoError(t, err, "stderr: %s", stderr)

	_, statErr := os.Stat(overridePath)
	assert.NoError(t, statErr)
	_, statErr = os.Stat(defaultPath)
	assert.True(t, os.IsNotExist(statErr))
}
