// Package fs provides file-based storage for page snapshots.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pricewatch"
)

// Ensure FileStore implements pricewatch.PageStore at compile time.
var _ pricewatch.PageStore = (*FileStore)(nil)

// FileStore implements pricewatch.PageStore with atomic update semantics.
// Snapshots are saved to a temporary directory, then moved atomically on
// Commit, so a crashed run never leaves a half-written snapshot set.
type FileStore struct {
	baseDir string
	name    string
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes the raw HTML of a page under a path derived from its URL.
func (s *FileStore) Save(ctx context.Context, page *pricewatch.Page) error {
	relPath, err := URLToPath(page.URL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(page.HTML), 0644)
}

// Commit atomically replaces the final directory with the pending snapshots.
// Committing with no saved pages produces an empty snapshot directory.
func (s *FileStore) Commit() error {
	if _, err := os.Stat(s.tempDir()); os.IsNotExist(err) {
		if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
			return err
		}
	}

	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards pending snapshots.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// URLToPath converts a listing URL to a relative file path.
// Example: https://shop.example.com/s?k=phones → s/k=phones.html
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := u.Path
	if u.RawQuery != "" {
		path = path + "/" + u.RawQuery
	}

	// Root or trailing slash becomes index.html
	if path == "" || path == "/" {
		return "index.html", nil
	}

	path = strings.TrimPrefix(path, "/")
	if strings.HasSuffix(path, "/") {
		return path + "index.html", nil
	}

	return path + ".html", nil
}
