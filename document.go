package sitecrawl

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Document is a parsed HTML page handed to extractors and link finders.
type Document struct {
	// URL is the address the page was fetched from.
	// Empty for the placeholder document used after a failed fetch.
	URL string

	// Root is the root node of the parsed tree.
	Root *html.Node
}

// ParseDocument parses HTML read from r.
func ParseDocument(url string, r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, Errorf(EINVALID, "failed to parse HTML from %s: %v", url, err)
	}
	return &Document{URL: url, Root: root}, nil
}

// ParseHTML is a convenience wrapper around ParseDocument for string input.
func ParseHTML(url, content string) (*Document, error) {
	return ParseDocument(url, strings.NewReader(content))
}

// EmptyDocument returns a document with an empty html/head/body skeleton.
// The crawler substitutes it for pages that could not be fetched so that
// extraction and link discovery still run and report per-field failures.
func EmptyDocument(url string) *Document {
	doc, err := ParseHTML(url, "")
	if err != nil {
		return &Document{URL: url, Root: &html.Node{Type: html.DocumentNode}}
	}
	return doc
}

// HTML renders the document back to markup.
func (d *Document) HTML() (string, error) {
	if d == nil || d.Root == nil {
		return "", Errorf(EINVALID, "document required")
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, d.Root); err != nil {
		return "", Errorf(EINTERNAL, "render %s: %v", d.URL, err)
	}
	return buf.String(), nil
}
