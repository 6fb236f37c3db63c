// Package readability provides an article field backed by go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/sitecrawl"
	"github.com/go-shiori/go-readability"
)

// Article returns a field holding the plain text of the page's readable
// article content.
func Article() sitecrawl.FieldFunc {
	return func(pageURL string, doc *sitecrawl.Document) (any, string, error) {
		raw, err := doc.HTML()
		if err != nil {
			return nil, "", err
		}

		// A nil URL is accepted; it only affects resolution of relative links.
		u, _ := url.Parse(pageURL)

		article, err := readability.FromReader(strings.NewReader(raw), u)
		if err != nil {
			return nil, "", sitecrawl.Errorf(sitecrawl.ENOTFOUND, "no article: %v", err)
		}

		text := strings.TrimSpace(article.TextContent)
		if text == "" {
			return nil, "", sitecrawl.Errorf(sitecrawl.ENOTFOUND, "no article")
		}

		var msg string
		if article.Title != "" {
			msg = "Article: " + article.Title
		}
		return text, msg, nil
	}
}
