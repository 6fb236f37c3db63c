package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/sitecrawl"
)

// DefaultSitemapPath is requested when a sitemap location names only a site.
const DefaultSitemapPath = "/sitemap.xml"

// Ensure SitemapService implements sitecrawl.SitemapService.
var _ sitecrawl.SitemapService = (*SitemapService)(nil)

// SitemapService reads page URLs from XML sitemaps over HTTP.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs returns the page URLs listed in the sitemap at sitemapURL,
// following sitemap indexes. A location without a path resolves to
// DefaultSitemapPath on that host. URLs are deduplicated, kept in sitemap
// order, and, if filter is non-nil, restricted to those it includes.
//
// Returns an empty slice (not nil) if the sitemap lists nothing.
func (s *SitemapService) DiscoverURLs(ctx context.Context, sitemapURL string, filter *sitecrawl.URLMatcher) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loc, err := url.Parse(sitemapURL)
	if err != nil || loc.Scheme == "" || loc.Host == "" {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "invalid sitemap URL %q", sitemapURL)
	}
	if loc.Path == "" || loc.Path == "/" {
		loc.Path = DefaultSitemapPath
	}

	urls, err := s.processSitemap(ctx, loc.String(), make(map[string]bool))
	if err != nil {
		return nil, err
	}

	result := []string{}
	seen := make(map[string]bool)
	for _, u := range urls {
		if seen[u] {
			continue
		}
		seen[u] = true
		if filter != nil && !filter.IsIncluded(u) {
			continue
		}
		result = append(result, u)
	}
	return result, nil
}

// processSitemap fetches and parses a sitemap, handling both urlset and sitemapindex.
func (s *SitemapService) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.fetchURL(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "parsing sitemap %s: %v", sitemapURL, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "empty sitemap %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		return s.processSitemapIndex(ctx, root, seen)
	}
	return locs(root, "url"), nil
}

// processSitemapIndex processes a <sitemapindex> element recursively.
func (s *SitemapService) processSitemapIndex(ctx context.Context, root *etree.Element, seen map[string]bool) ([]string, error) {
	var all []string
	for _, child := range locs(root, "sitemap") {
		urls, err := s.processSitemap(ctx, child, seen)
		if err != nil {
			return nil, err
		}
		all = append(all, urls...)
	}
	return all, nil
}

// locs returns the non-empty <loc> text of every tag child of root.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// fetchURL fetches a URL and returns the response body.
func (s *SitemapService) fetchURL(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		if resp.StatusCode == http.StatusNotFound {
			return nil, sitecrawl.Errorf(sitecrawl.ENOTFOUND, "sitemap %s not found", targetURL)
		}
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}

	return resp.Body, nil
}
