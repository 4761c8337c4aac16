package mock

import (
	"context"

	"github.com/fwojciec/pagetext"
)

var _ pagetext.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of pagetext.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*pagetext.Document, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*pagetext.Document, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
