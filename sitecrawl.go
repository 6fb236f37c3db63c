// Package sitecrawl provides a single-threaded, resumable web crawler.
// It keeps a persistent work queue of URLs, fetches each page, runs
// pluggable extractors over the parsed page, records the extracted fields
// as JSON, and follows same-site links that pass a URL matcher.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, http/).
package sitecrawl
