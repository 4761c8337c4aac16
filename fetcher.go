package pagetext

import "context"

// Fetcher retrieves and parses HTML pages.
type Fetcher interface {
	// Fetch performs a single request for the URL and returns the parsed page.
	// Failures are returned as *Error classified with ECONNECT, ETIMEOUT,
	// EHTTP, ETRANSPORT or EINTERNAL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Document, error)

	// Close releases resources held by the Fetcher.
	Close() error
}
