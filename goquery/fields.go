// Package goquery implements link discovery and CSS selector based field
// extraction using github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitecrawl"
)

func selection(doc *sitecrawl.Document) (*goquery.Document, error) {
	if doc == nil || doc.Root == nil {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "document required")
	}
	return goquery.NewDocumentFromNode(doc.Root), nil
}

// first returns the first element matching selector, or ENOTFOUND.
func first(doc *sitecrawl.Document, selector string) (*goquery.Selection, error) {
	d, err := selection(doc)
	if err != nil {
		return nil, err
	}
	sel := d.Find(selector).First()
	if sel.Length() == 0 {
		return nil, sitecrawl.Errorf(sitecrawl.ENOTFOUND, "no element matches %q", selector)
	}
	return sel, nil
}

// Title returns a field reading the text of the document's <title>.
// The field fails if the page has no title element.
func Title() sitecrawl.FieldFunc {
	return func(_ string, doc *sitecrawl.Document) (any, string, error) {
		sel, err := first(doc, "title")
		if err != nil {
			return nil, "", sitecrawl.Errorf(sitecrawl.ENOTFOUND, "page has no title")
		}
		return sel.Text(), "", nil
	}
}

// Text returns a field reading the trimmed text of the first element
// matching selector.
func Text(selector string) sitecrawl.FieldFunc {
	return func(_ string, doc *sitecrawl.Document) (any, string, error) {
		sel, err := first(doc, selector)
		if err != nil {
			return nil, "", err
		}
		return strings.TrimSpace(sel.Text()), "", nil
	}
}

// Texts returns a field reading the trimmed text of every element matching
// selector. No match yields an empty list.
func Texts(selector string) sitecrawl.FieldFunc {
	return func(_ string, doc *sitecrawl.Document) (any, string, error) {
		d, err := selection(doc)
		if err != nil {
			return nil, "", err
		}
		texts := d.Find(selector).Map(func(_ int, sel *goquery.Selection) string {
			return strings.TrimSpace(sel.Text())
		})
		if texts == nil {
			texts = []string{}
		}
		return texts, "", nil
	}
}

// Attr returns a field reading attribute attr of the first element matching
// selector. The field fails if no element matches or the attribute is absent.
func Attr(selector, attr string) sitecrawl.FieldFunc {
	return func(_ string, doc *sitecrawl.Document) (any, string, error) {
		sel, err := first(doc, selector)
		if err != nil {
			return nil, "", err
		}
		v, ok := sel.Attr(attr)
		if !ok {
			return nil, "", sitecrawl.Errorf(sitecrawl.ENOTFOUND, "%q has no attribute %q", selector, attr)
		}
		return v, "", nil
	}
}

// HTML returns a field reading the outer HTML of the first element matching
// selector.
func HTML(selector string) sitecrawl.FieldFunc {
	return func(_ string, doc *sitecrawl.Document) (any, string, error) {
		sel, err := first(doc, selector)
		if err != nil {
			return nil, "", err
		}
		html, err := goquery.OuterHtml(sel)
		if err != nil {
			return nil, "", sitecrawl.Errorf(sitecrawl.EINTERNAL, "render %q: %v", selector, err)
		}
		return html, "", nil
	}
}

// Count returns a field counting the elements matching selector.
func Count(selector string) sitecrawl.FieldFunc {
	return func(_ string, doc *sitecrawl.Document) (any, string, error) {
		d, err := selection(doc)
		if err != nil {
			return nil, "", err
		}
		return d.Find(selector).Length(), "", nil
	}
}

// Meta returns a field reading the content of the <meta> element whose name
// or property equals name, e.g. "description" or "og:title".
func Meta(name string) sitecrawl.FieldFunc {
	return func(_ string, doc *sitecrawl.Document) (any, string, error) {
		d, err := selection(doc)
		if err != nil {
			return nil, "", err
		}
		var (
			content string
			found   bool
		)
		d.Find("meta").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if sel.AttrOr("name", "") != name && sel.AttrOr("property", "") != name {
				return true
			}
			content, found = sel.Attr("content")
			return !found
		})
		if !found {
			return nil, "", sitecrawl.Errorf(sitecrawl.ENOTFOUND, "no meta %q", name)
		}
		return content, "", nil
	}
}
