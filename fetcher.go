package sitecrawl

import (
	"context"
	"net/http"
)

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch requests the URL with the given header set and returns the
	// response body as HTML. Non-success responses are errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string, header http.Header) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// HeaderProvider produces the request headers sent with each fetch.
type HeaderProvider interface {
	// Header returns a fresh header set for a request to url.
	Header(url string) http.Header
}

// LinkFinder collects hyperlink targets from a parsed page.
type LinkFinder interface {
	// Links returns every href target found in the document, in document
	// order and without any normalization.
	Links(doc *Document) ([]string, error)
}

// SitemapService discovers URLs listed in an XML sitemap.
type SitemapService interface {
	// DiscoverURLs fetches the sitemap at sitemapURL, following sitemap
	// indexes, and returns the listed page URLs in order. URLs rejected by
	// filter are dropped; a nil filter keeps everything.
	DiscoverURLs(ctx context.Context, sitemapURL string, filter *URLMatcher) ([]string, error)
}
