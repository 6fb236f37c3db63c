package crawl

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/sitecrawl"
)

// Extraction binds an extractor to the store its records are written to.
type Extraction struct {
	Extractor sitecrawl.Extractor
	Store     sitecrawl.RecordStore
	Logger    *slog.Logger
}

// Run executes every field of the extractor against the page, appends one
// record with all fields to the store, and returns the per-field messages
// joined by newlines.
//
// A failing or panicking field is recorded as an empty string with a
// "Failed to get" message; the remaining fields still run.
func (e *Extraction) Run(url string, doc *sitecrawl.Document) string {
	fields := e.Extractor.Fields()
	rec := make(sitecrawl.Record, 0, len(fields))
	msgs := make([]string, 0, len(fields))

	for _, f := range fields {
		res := sitecrawl.Capture(func() (any, string, error) {
			return f.Fn(url, doc)
		})

		if !res.OK() {
			rec = append(rec, sitecrawl.FieldValue{Name: f.Name, Value: ""})
			msgs = append(msgs, fmt.Sprintf("Failed to get %s: %s", f.Name, errorText(res.Err)))
			continue
		}

		value := sitecrawl.Coerce(res.Value)
		rec = append(rec, sitecrawl.FieldValue{Name: f.Name, Value: value})

		msg := fmt.Sprintf("Get %s: %s", f.Name, sitecrawl.FormatValue(value))
		if res.Message != "" {
			msg = res.Message + "\n" + msg
		}
		msgs = append(msgs, msg)
	}

	if _, err := e.Store.Append(rec); err != nil {
		e.logger().Error("failed to persist records",
			"extractor", e.Extractor.Name(),
			"err", err,
		)
	}

	return strings.Join(msgs, "\n")
}

func (e *Extraction) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

// errorText returns the bare message of an application error and the full
// error string for anything else, including wrapped application errors.
func errorText(err error) string {
	if e, ok := err.(*sitecrawl.Error); ok {
		return e.Message
	}
	return err.Error()
}
