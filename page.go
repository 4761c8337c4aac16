package pagetext

import (
	"context"
	"time"
)

// Page is the extracted output for one fetched URL.
type Page struct {
	URL       string
	Content   string
	Links     []string
	FetchedAt time.Time
}

// PageStore persists pages to storage with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type PageStore interface {
	Save(ctx context.Context, page *Page) error
	Commit() error
	Abort() error
}
