package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/sitecrawl"
	"github.com/fwojciec/sitecrawl/mock"
	crawlslog "github.com/fwojciec/sitecrawl/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSitemapService_logs_filter_patterns(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	filter, err := sitecrawl.NewURLMatcher("https", `docs\.example\.com`, "/guide")
	require.NoError(t, err)

	svc := crawlslog.NewLoggingSitemapService(&mock.SitemapService{
		DiscoverURLsFn: func(_ context.Context, _ string, f *sitecrawl.URLMatcher) ([]string, error) {
			assert.Same(t, filter, f)
			return []string{"https://docs.example.com/guide/a", "https://docs.example.com/guide/b"}, nil
		},
	}, slog.New(slog.NewTextHandler(&buf, nil)))

	urls, err := svc.DiscoverURLs(context.Background(), "https://docs.example.com/sitemap.xml", filter)
	require.NoError(t, err)
	assert.Len(t, urls, 2)

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, `msg="sitemap read"`)
	assert.Contains(t, out, "sitemap=https://docs.example.com/sitemap.xml")
	assert.Contains(t, out, "filter.scheme=https")
	assert.Contains(t, out, "filter.path=/guide")
	assert.Contains(t, out, "urls=2")
}

func TestLoggingSitemapService_no_filter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	svc := crawlslog.NewLoggingSitemapService(&mock.SitemapService{
		DiscoverURLsFn: func(context.Context, string, *sitecrawl.URLMatcher) ([]string, error) {
			return []string{}, nil
		},
	}, slog.New(slog.NewTextHandler(&buf, nil)))

	_, err := svc.DiscoverURLs(context.Background(), "https://example.com", nil)
	require.NoError(t, err)

	assert.NotContains(t, buf.String(), "filter.")
	assert.Contains(t, buf.String(), "urls=0")
}

func TestLoggingSitemapService_failure_is_an_error(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	svc := crawlslog.NewLoggingSitemapService(&mock.SitemapService{
		DiscoverURLsFn: func(context.Context, string, *sitecrawl.URLMatcher) ([]string, error) {
			return []string{"partial"}, errors.New("connection refused")
		},
	}, slog.New(slog.NewTextHandler(&buf, nil)))

	urls, err := svc.DiscoverURLs(context.Background(), "https://example.com", nil)

	require.EqualError(t, err, "connection refused")
	assert.Nil(t, urls)
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), `err="connection refused"`)
	assert.NotContains(t, buf.String(), "urls=")
}
