package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/sitecrawl"
)

// Ensure LoggingLinkFinder implements sitecrawl.LinkFinder.
var _ sitecrawl.LinkFinder = (*LoggingLinkFinder)(nil)

// LoggingLinkFinder wraps a LinkFinder with debug logging.
type LoggingLinkFinder struct {
	next   sitecrawl.LinkFinder
	logger *slog.Logger
}

// NewLoggingLinkFinder creates a new LoggingLinkFinder.
func NewLoggingLinkFinder(next sitecrawl.LinkFinder, logger *slog.Logger) *LoggingLinkFinder {
	return &LoggingLinkFinder{next: next, logger: logger}
}

// Links delegates to the wrapped finder and logs how many links it found.
func (f *LoggingLinkFinder) Links(doc *sitecrawl.Document) (links []string, err error) {
	defer func(begin time.Time) {
		var url string
		if doc != nil {
			url = doc.URL
		}
		f.logger.Debug("find links",
			"url", url,
			"count", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Links(doc)
}
