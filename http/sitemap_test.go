package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/sitecrawl"
	sitecrawlhttp "github.com/fwojciec/sitecrawl/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapService_DiscoverURLs_DefaultLocation(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/docs/intro</loc></url>
  <url><loc> {{BASE}}/docs/guide </loc></url>
  <url><loc></loc></url>
  <url><loc>{{BASE}}/docs/intro</loc></url>
</urlset>`,
	})
	defer srv.Close()

	svc := sitecrawlhttp.NewSitemapService(srv.Client())
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/docs/intro", srv.URL + "/docs/guide"}, urls)
}

func TestSitemapService_DiscoverURLs_SitemapIndex(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{
		"/index.xml": `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>{{BASE}}/sitemap-docs.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/sitemap-api.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/index.xml</loc></sitemap>
</sitemapindex>`,
		"/sitemap-docs.xml": `<urlset><url><loc>{{BASE}}/docs/intro</loc></url></urlset>`,
		"/sitemap-api.xml":  `<urlset><url><loc>{{BASE}}/api/ref</loc></url></urlset>`,
	})
	defer srv.Close()

	svc := sitecrawlhttp.NewSitemapService(srv.Client())
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL+"/index.xml", nil)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/docs/intro", srv.URL + "/api/ref"}, urls)
}

func TestSitemapService_DiscoverURLs_Filter(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": `<urlset>
  <url><loc>{{BASE}}/docs/intro</loc></url>
  <url><loc>{{BASE}}/blog/post</loc></url>
  <url><loc>https://other.example/docs/x</loc></url>
</urlset>`,
	})
	defer srv.Close()

	_, host, _ := sitecrawl.SplitURL(srv.URL)
	filter, err := sitecrawl.NewURLMatcher("http", strings.ReplaceAll(host, ".", `\.`), "/docs")
	require.NoError(t, err)

	svc := sitecrawlhttp.NewSitemapService(srv.Client())
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL+"/sitemap.xml", filter)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/docs/intro"}, urls)
}

func TestSitemapService_DiscoverURLs_Errors(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{
		"/broken.xml": `<urlset><<</urlset>`,
		"/empty.xml":  `<urlset></urlset>`,
	})
	t.Cleanup(srv.Close)
	svc := sitecrawlhttp.NewSitemapService(srv.Client())

	t.Run("missing sitemap", func(t *testing.T) {
		t.Parallel()

		_, err := svc.DiscoverURLs(context.Background(), srv.URL, nil)
		assert.Equal(t, sitecrawl.ENOTFOUND, sitecrawl.ErrorCode(err))
	})

	t.Run("malformed XML", func(t *testing.T) {
		t.Parallel()

		_, err := svc.DiscoverURLs(context.Background(), srv.URL+"/broken.xml", nil)
		assert.Equal(t, sitecrawl.EINVALID, sitecrawl.ErrorCode(err))
	})

	t.Run("empty sitemap yields empty slice", func(t *testing.T) {
		t.Parallel()

		urls, err := svc.DiscoverURLs(context.Background(), srv.URL+"/empty.xml", nil)
		require.NoError(t, err)
		assert.NotNil(t, urls)
		assert.Empty(t, urls)
	})

	t.Run("invalid location", func(t *testing.T) {
		t.Parallel()

		_, err := svc.DiscoverURLs(context.Background(), "not a url", nil)
		assert.Equal(t, sitecrawl.EINVALID, sitecrawl.ErrorCode(err))
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := svc.DiscoverURLs(ctx, srv.URL, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func newTestServer(t *testing.T, content map[string]string) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := content[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(strings.ReplaceAll(body, "{{BASE}}", srv.URL)))
	}))

	return srv
}
