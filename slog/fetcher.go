// Package slog provides log/slog decorators for pagetext services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagetext"
)

var _ pagetext.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher and writes one record per fetch.
// Failures are logged at Warn with their code, successes at Info.
type LoggingFetcher struct {
	next   pagetext.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next pagetext.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (doc *pagetext.Document, err error) {
	defer func(begin time.Time) {
		if err != nil {
			attrs := []any{
				"url", url,
				"code", pagetext.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			}
			if status := pagetext.ErrorStatus(err); status != 0 {
				attrs = append(attrs, "status", status)
			}
			f.logger.WarnContext(ctx, "fetch failed", attrs...)
			return
		}
		f.logger.InfoContext(ctx, "fetch",
			"url", url,
			"duration", time.Since(begin),
		)
	}(time.Now())

	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
