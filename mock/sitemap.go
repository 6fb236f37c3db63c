package mock

import (
	"context"

	"github.com/fwojciec/sitecrawl"
)

var _ sitecrawl.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of sitecrawl.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, sitemapURL string, filter *sitecrawl.URLMatcher) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, sitemapURL string, filter *sitecrawl.URLMatcher) ([]string, error) {
	return s.DiscoverURLsFn(ctx, sitemapURL, filter)
}
