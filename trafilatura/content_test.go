package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/sitecrawl"
	"github.com/fwojciec/sitecrawl/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContent(t *testing.T) {
	t.Parallel()

	t.Run("extracts main content", func(t *testing.T) {
		t.Parallel()

		doc, err := sitecrawl.ParseHTML("https://x/guide", `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav>Navigation here</nav>
<article>
<h1>Main Article</h1>
<p>This is the important content that should be extracted from the page.
It has enough words in it to be recognised as the body of the document.</p>
<p>Another paragraph with more details about the topic being discussed here.</p>
</article>
<footer>Footer content</footer>
</body>
</html>`)
		require.NoError(t, err)

		got, _, err := trafilatura.Content()("https://x/guide", doc)

		require.NoError(t, err)
		assert.Contains(t, got, "important content")
	})

	t.Run("leaves the document unchanged", func(t *testing.T) {
		t.Parallel()

		doc, err := sitecrawl.ParseHTML("u", `<nav>menu</nav><article><p>Some body text for the page.</p></article>`)
		require.NoError(t, err)
		before, err := doc.HTML()
		require.NoError(t, err)

		_, _, _ = trafilatura.Content()("u", doc)

		after, err := doc.HTML()
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("fails on an empty page", func(t *testing.T) {
		t.Parallel()

		_, _, err := trafilatura.Content()("", sitecrawl.EmptyDocument(""))

		assert.Error(t, err)
	})
}
