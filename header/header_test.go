package header_test

import (
	"math/rand/v2"
	"testing"

	"github.com/fwojciec/sitecrawl/header"
	"github.com/stretchr/testify/assert"
)

func TestProvider_Header(t *testing.T) {
	t.Parallel()

	t.Run("builds a browser-like header set", func(t *testing.T) {
		t.Parallel()

		h := header.NewProvider().Header("https://user@example.com:8080/docs?q=1")

		assert.Equal(t, "user@example.com:8080", h.Get("Host"))
		assert.Equal(t, "keep-alive", h.Get("Connection"))
		assert.Equal(t, header.Accept, h.Get("Accept"))
		assert.Equal(t, header.AcceptLanguage, h.Get("Accept-Language"))
		assert.Equal(t, "https://user@example.com:8080/docs?q=1", h.Get("Referer"))
		assert.Contains(t, header.UserAgents, h.Get("User-Agent"))
		assert.Empty(t, h.Get("Accept-Encoding"))
	})

	t.Run("is deterministic with a seeded source", func(t *testing.T) {
		t.Parallel()

		a := header.NewProvider(header.WithRand(rand.New(rand.NewPCG(1, 2))))
		b := header.NewProvider(header.WithRand(rand.New(rand.NewPCG(1, 2))))

		for range 10 {
			assert.Equal(t, a.Header("https://x/").Get("User-Agent"), b.Header("https://x/").Get("User-Agent"))
		}
	})

	t.Run("uses a custom user agent pool", func(t *testing.T) {
		t.Parallel()

		h := header.NewProvider(header.WithUserAgents("only/1.0")).Header("https://x/")

		assert.Equal(t, "only/1.0", h.Get("User-Agent"))
	})

	t.Run("omits host for unparseable URLs", func(t *testing.T) {
		t.Parallel()

		h := header.NewProvider().Header("")

		assert.Empty(t, h.Get("Host"))
		assert.Empty(t, h.Get("Referer"))
	})
}
