// Package rod implements sitecrawl.Fetcher with a headless Chrome browser,
// for pages that only produce their content after running JavaScript.
package rod

import (
	"context"
	"net/http"
	"time"

	"github.com/fwojciec/sitecrawl"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout is the default time allowed for loading one page.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements sitecrawl.Fetcher at compile time.
var _ sitecrawl.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Fetcher is not safe for concurrent use.
type Fetcher struct {
	browser  *browser
	timeout  time.Duration
	maxPages int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the time allowed for loading one page.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxPages sets how many pages are loaded before the browser is
// restarted. Zero disables recycling.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	b, err := launchBrowser(f.maxPages)
	if err != nil {
		return nil, err
	}
	f.browser = b
	return f, nil
}

// Fetch navigates to url with the given headers and returns the rendered
// HTML once the page has loaded. The User-Agent header overrides the
// browser's; Host is left to the browser.
func (f *Fetcher) Fetch(ctx context.Context, url string, header http.Header) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.browser.browser == nil {
		return "", sitecrawl.Errorf(sitecrawl.EINVALID, "fetcher is closed")
	}

	page, err := f.browser.current().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)
	if f.timeout > 0 {
		page = page.Timeout(f.timeout)
	}

	if ua := header.Get("User-Agent"); ua != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: ua}); err != nil {
			return "", err
		}
	}
	if extra := extraHeaders(header); len(extra) > 0 {
		cleanup, err := page.SetExtraHeaders(extra)
		if err != nil {
			return "", err
		}
		defer cleanup()
	}

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	return page.HTML()
}

// Close shuts the browser down and kills its process. Close is safe to call
// multiple times.
func (f *Fetcher) Close() error {
	return f.browser.close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.browser.pid()
}

// extraHeaders flattens header into rod's key/value list, leaving out the
// headers Chrome manages itself.
func extraHeaders(header http.Header) []string {
	var out []string
	for k, vs := range header {
		switch http.CanonicalHeaderKey(k) {
		case "Host", "User-Agent", "Connection":
			continue
		}
		for _, v := range vs {
			out = append(out, k, v)
		}
	}
	return out
}
