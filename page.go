package pricewatch

import (
	"context"
	"time"
)

// Page represents a fetched listing page snapshot.
type Page struct {
	URL       string
	HTML      string
	FetchedAt time.Time
}

// PageStore persists page snapshots with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type PageStore interface {
	Save(ctx context.Context, page *Page) error
	Commit() error
	Abort() error
}
