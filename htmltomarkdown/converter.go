// Package htmltomarkdown provides a markdown field backed by
// html-to-markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitecrawl"
)

// DefaultSelector is converted when a field names no selector.
const DefaultSelector = "body"

// Converter converts HTML fragments to CommonMark with table support.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms an HTML fragment into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", sitecrawl.Errorf(sitecrawl.EINVALID, "empty HTML input")
	}
	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", sitecrawl.Errorf(sitecrawl.EINTERNAL, "convert to markdown: %v", err)
	}
	return md, nil
}

// Field returns a field holding the Markdown rendering of the first element
// matching selector.
func (c *Converter) Field(selector string) sitecrawl.FieldFunc {
	if selector == "" {
		selector = DefaultSelector
	}
	return func(_ string, doc *sitecrawl.Document) (any, string, error) {
		if doc == nil || doc.Root == nil {
			return nil, "", sitecrawl.Errorf(sitecrawl.EINVALID, "document required")
		}
		sel := goquery.NewDocumentFromNode(doc.Root).Find(selector).First()
		if sel.Length() == 0 {
			return nil, "", sitecrawl.Errorf(sitecrawl.ENOTFOUND, "no element matches %q", selector)
		}
		html, err := sel.Html()
		if err != nil {
			return nil, "", sitecrawl.Errorf(sitecrawl.EINTERNAL, "render %q: %v", selector, err)
		}
		md, err := c.Convert(html)
		if err != nil {
			return nil, "", err
		}
		return md, "", nil
	}
}
