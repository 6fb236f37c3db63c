package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitecrawl"
)

var _ sitecrawl.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService logs every sitemap read together with the patterns
// used to filter it. Failed reads are logged at error level.
type LoggingSitemapService struct {
	next   sitecrawl.SitemapService
	logger *slog.Logger
}

func NewLoggingSitemapService(next sitecrawl.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, sitemapURL string, filter *sitecrawl.URLMatcher) (urls []string, err error) {
	begin := time.Now()
	urls, err = s.next.DiscoverURLs(ctx, sitemapURL, filter)

	attrs := []any{"sitemap", sitemapURL}
	if filter != nil {
		scheme, domain, path := filter.Patterns()
		attrs = append(attrs, slog.Group("filter",
			"scheme", scheme,
			"domain", domain,
			"path", path,
		))
	}
	attrs = append(attrs, "took", time.Since(begin))

	if err != nil {
		s.logger.Error("sitemap read failed", append(attrs, "err", err)...)
		return nil, err
	}
	s.logger.Info("sitemap read", append(attrs, "urls", len(urls))...)
	return urls, nil
}
