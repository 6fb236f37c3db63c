package mock

import (
	"context"
	"net/http"

	"github.com/fwojciec/sitecrawl"
)

var _ sitecrawl.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of sitecrawl.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string, header http.Header) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string, header http.Header) (string, error) {
	return f.FetchFn(ctx, url, header)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ sitecrawl.HeaderProvider = (*HeaderProvider)(nil)

// HeaderProvider is a mock implementation of sitecrawl.HeaderProvider.
type HeaderProvider struct {
	HeaderFn func(url string) http.Header
}

func (p *HeaderProvider) Header(url string) http.Header {
	return p.HeaderFn(url)
}

var _ sitecrawl.LinkFinder = (*LinkFinder)(nil)

// LinkFinder is a mock implementation of sitecrawl.LinkFinder.
type LinkFinder struct {
	LinksFn func(doc *sitecrawl.Document) ([]string, error)
}

func (f *LinkFinder) Links(doc *sitecrawl.Document) ([]string, error) {
	return f.LinksFn(doc)
}
