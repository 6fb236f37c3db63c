// Package slog provides logging decorators for the sitecrawl service
// interfaces.
package slog

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitecrawl"
)

// Ensure LoggingFetcher implements sitecrawl.Fetcher.
var _ sitecrawl.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging. Each fetch is logged with a
// content hash so the same page served under different URLs is easy to spot.
type LoggingFetcher struct {
	next   sitecrawl.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next sitecrawl.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string, header http.Header) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
		}
		if err != nil {
			f.logger.Info("fetch", append(attrs, "err", err)...)
			return
		}
		f.logger.Info("fetch", append(attrs, "hash", ContentHash(html))...)
	}(time.Now())
	return f.next.Fetch(ctx, url, header)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// ContentHash returns the hex xxhash of s.
func ContentHash(s string) string {
	return strconv.FormatUint(xxhash.Sum64String(s), 16)
}
