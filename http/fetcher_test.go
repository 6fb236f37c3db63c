package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/sitecrawl"
	sitecrawlhttp "github.com/fwojciec/sitecrawl/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time verification that Fetcher implements sitecrawl.Fetcher
var _ sitecrawl.Fetcher = (*sitecrawlhttp.Fetcher)(nil)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := sitecrawlhttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", html)
	})

	t.Run("sends the given headers", func(t *testing.T) {
		t.Parallel()

		var got *http.Request
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r
		}))
		defer server.Close()

		fetcher := sitecrawlhttp.NewFetcher()
		defer fetcher.Close()

		header := http.Header{}
		header.Set("User-Agent", "test-agent/1.0")
		header.Set("Referer", server.URL)
		header.Set("Host", "example.test")

		_, err := fetcher.Fetch(context.Background(), server.URL, header)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "test-agent/1.0", got.UserAgent())
		assert.Equal(t, server.URL, got.Referer())
		assert.Equal(t, "example.test", got.Host)
	})

	t.Run("decodes the declared charset", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			_, _ = w.Write([]byte("<p>caf\xe9</p>"))
		}))
		defer server.Close()

		fetcher := sitecrawlhttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, "<p>café</p>", html)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := sitecrawlhttp.NewFetcher(sitecrawlhttp.WithTimeout(10 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL, nil)
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := sitecrawlhttp.NewFetcher()
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Fetch(ctx, server.URL, nil)
		require.Error(t, err)
	})

	t.Run("returns error for non-200 status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		fetcher := sitecrawlhttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL, nil)
		require.Error(t, err)
		assert.Equal(t, "HTTP 404 for "+server.URL, err.Error())
	})

	t.Run("rejects malformed URLs", func(t *testing.T) {
		t.Parallel()

		fetcher := sitecrawlhttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), "http://[::1", nil)
		assert.Equal(t, sitecrawl.EINVALID, sitecrawl.ErrorCode(err))
	})

	t.Run("routes requests through the configured transport", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		fetcher := sitecrawlhttp.NewFetcher(
			sitecrawlhttp.WithTransport(server.Client().Transport),
			sitecrawlhttp.WithCloudflareBypass(),
		)
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, "ok", html)
	})
}
