package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitecrawl"
)

// DefaultLinkSelector matches every anchor carrying an href.
const DefaultLinkSelector = "a[href]"

// Ensure LinkFinder implements sitecrawl.LinkFinder at compile time.
var _ sitecrawl.LinkFinder = (*LinkFinder)(nil)

// LinkFinder collects link targets from anchors matched by a CSS selector.
// Targets are returned exactly as written in the document, in document
// order, including duplicates. Anchors with an empty href are skipped.
type LinkFinder struct {
	selector string
}

// NewLinkFinder creates a LinkFinder using selector, or
// DefaultLinkSelector if selector is empty.
func NewLinkFinder(selector string) *LinkFinder {
	if selector == "" {
		selector = DefaultLinkSelector
	}
	return &LinkFinder{selector: selector}
}

// Links returns the href of every matching element.
func (f *LinkFinder) Links(doc *sitecrawl.Document) ([]string, error) {
	if doc == nil || doc.Root == nil {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "document required")
	}

	var links []string
	goquery.NewDocumentFromNode(doc.Root).Find(f.selector).Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || strings.TrimSpace(href) == "" {
			return
		}
		links = append(links, href)
	})
	return links, nil
}
