// Package trafilatura provides a main-text field backed by go-trafilatura.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/sitecrawl"
	"github.com/markusmobius/go-trafilatura"
)

// Content returns a field holding the main text of the page with
// navigation, footers, and other boilerplate removed.
//
// The document is rendered and re-parsed so the shared tree seen by other
// fields is left untouched.
func Content() sitecrawl.FieldFunc {
	return func(_ string, doc *sitecrawl.Document) (any, string, error) {
		raw, err := doc.HTML()
		if err != nil {
			return nil, "", err
		}

		result, err := trafilatura.Extract(strings.NewReader(raw), trafilatura.Options{
			EnableFallback: true,
		})
		if err != nil {
			return nil, "", sitecrawl.Errorf(sitecrawl.ENOTFOUND, "no main content: %v", err)
		}

		text := strings.TrimSpace(result.ContentText)
		if text == "" {
			return nil, "", sitecrawl.Errorf(sitecrawl.ENOTFOUND, "no main content")
		}
		return text, "", nil
	}
}
