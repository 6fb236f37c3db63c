// Package crawl provides the crawl loop and the persistent state it works
// on: the URL frontier, the per-extractor record files, and the crawl log.
package crawl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/sitecrawl"
)

// DefaultLogFile is the file the crawl log is written to.
const DefaultLogFile = "log.txt"

// logSeparator ends every logged cycle block.
var logSeparator = strings.Repeat("-", 20)

// Config holds the settings a Crawler is built from.
type Config struct {
	// WorkingList seeds the frontier.
	WorkingList []string

	// Patterns restricting which discovered links are enqueued.
	SchemePattern string
	DomainPattern string
	PathPattern   string

	// Extractors run against every page in order.
	Extractors []sitecrawl.Extractor

	// AutoAddInternalLinks enables link discovery.
	AutoAddInternalLinks bool

	// File names inside the storage directory.
	PendingFile   string
	CompletedFile string
	LogFile       string

	// Resume reloads the frontier written by a previous run before adding
	// WorkingList.
	Resume bool
}

// DefaultConfig returns a Config with link discovery enabled, the default
// URL patterns, and the default file names.
func DefaultConfig() Config {
	return Config{
		SchemePattern:        sitecrawl.DefaultSchemePattern,
		DomainPattern:        sitecrawl.DefaultDomainPattern,
		PathPattern:          sitecrawl.DefaultPathPattern,
		AutoAddInternalLinks: true,
		PendingFile:          DefaultPendingFile,
		CompletedFile:        DefaultCompletedFile,
		LogFile:              DefaultLogFile,
	}
}

// Crawler fetches URLs from its frontier one at a time, runs the
// extractors over each page, enqueues matching links, and logs a result
// block per page until the frontier is empty.
type Crawler struct {
	// Fetcher retrieves pages. Required.
	Fetcher sitecrawl.Fetcher

	// Headers supplies request headers. Optional.
	Headers sitecrawl.HeaderProvider

	// Links finds link targets. Required when link discovery is enabled.
	Links sitecrawl.LinkFinder

	// Stdout receives the human-readable progress output.
	Stdout io.Writer

	storage     sitecrawl.Storage
	logger      *slog.Logger
	frontier    *Frontier
	matcher     *sitecrawl.URLMatcher
	extractions []*Extraction
	autoAdd     bool
	logFile     string

	current string
	start   time.Time
	log     []string
}

// NewCrawler validates cfg and builds a Crawler that persists its state to
// storage. If storage can be opened (it has an Open method) it is created
// first; a failure there is logged and the crawler carries on, since later
// writes report their own errors.
//
// Returns EINVALID for patterns that do not compile and for extractors that
// are nil, unnamed, share a name, or have unusable fields.
func NewCrawler(storage sitecrawl.Storage, cfg Config, logger *slog.Logger) (*Crawler, error) {
	if storage == nil {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "storage required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.PendingFile == "" {
		cfg.PendingFile = DefaultPendingFile
	}
	if cfg.CompletedFile == "" {
		cfg.CompletedFile = DefaultCompletedFile
	}
	if cfg.LogFile == "" {
		cfg.LogFile = DefaultLogFile
	}

	matcher, err := sitecrawl.NewURLMatcher(cfg.SchemePattern, cfg.DomainPattern, cfg.PathPattern)
	if err != nil {
		return nil, err
	}
	if err := validateExtractors(nil, cfg.Extractors); err != nil {
		return nil, err
	}

	if o, ok := storage.(interface{ Open() error }); ok {
		if err := o.Open(); err != nil {
			logger.Error("failed to create storage directory", "err", err)
		}
	}

	c := &Crawler{
		storage: storage,
		logger:  logger,
		matcher: matcher,
		autoAdd: cfg.AutoAddInternalLinks,
		logFile: cfg.LogFile,
		start:   time.Now(),
	}

	opts := []FrontierOption{
		WithPendingFile(cfg.PendingFile),
		WithCompletedFile(cfg.CompletedFile),
		WithFrontierLogger(logger),
	}
	if cfg.Resume {
		c.frontier, err = RestoreFrontier(storage, opts...)
		if err != nil {
			return nil, fmt.Errorf("restoring frontier: %w", err)
		}
		c.frontier.EnqueueMany(cfg.WorkingList)
	} else {
		c.frontier = NewFrontier(storage, cfg.WorkingList, opts...)
	}

	c.bindExtractors(cfg.Extractors)
	return c, nil
}

// ExtendWorkingList enqueues urls and returns how many were new.
func (c *Crawler) ExtendWorkingList(urls []string) int {
	return c.frontier.EnqueueMany(urls)
}

// SetURLPatterns replaces the link matcher patterns. On error the previous
// patterns stay in effect and the problem is reported.
func (c *Crawler) SetURLPatterns(scheme, domain, path string) error {
	if err := c.matcher.SetPatterns(scheme, domain, path); err != nil {
		c.report("Failed to set url patterns: %s", errorText(err))
		return err
	}
	return nil
}

// AddExtractors appends extractors after the existing ones. If any of them
// is invalid none are added and the problem is reported.
func (c *Crawler) AddExtractors(extractors ...sitecrawl.Extractor) error {
	existing := make([]sitecrawl.Extractor, 0, len(c.extractions))
	for _, e := range c.extractions {
		existing = append(existing, e.Extractor)
	}
	if err := validateExtractors(existing, extractors); err != nil {
		c.report("Failed to add extractors: %s", errorText(err))
		return err
	}
	c.bindExtractors(extractors)
	return nil
}

// Frontier returns the crawler's work queue.
func (c *Crawler) Frontier() *Frontier {
	return c.frontier
}

// Matcher returns the matcher applied to discovered links.
func (c *Crawler) Matcher() *sitecrawl.URLMatcher {
	return c.matcher
}

// CurrentURL returns the URL of the page being processed, or "" if the
// last fetch failed.
func (c *Crawler) CurrentURL() string {
	return c.current
}

// Log returns the result blocks logged so far.
func (c *Crawler) Log() []string {
	return append([]string(nil), c.log...)
}

// Run processes the frontier until it is empty. Fetch, extraction, link
// discovery, and persistence failures are reported and do not stop the
// crawl. Run returns early only if ctx is cancelled between pages.
func (c *Crawler) Run(ctx context.Context) error {
	if c.Fetcher == nil {
		return sitecrawl.Errorf(sitecrawl.EINVALID, "fetcher required")
	}
	if c.autoAdd && c.Links == nil {
		return sitecrawl.Errorf(sitecrawl.EINVALID, "link finder required when link discovery is enabled")
	}

	for c.frontier.HasWork() {
		if err := ctx.Err(); err != nil {
			return err
		}

		url, ok := c.frontier.Dequeue()
		if !ok {
			break
		}

		doc := c.fetch(ctx, url)
		msg := c.extract(url, doc)
		c.addLinks(url, doc)
		c.printInfo(msg)
	}

	c.printf("Working List is clear. Done.\n")
	c.printf("Time cost: %v\n", time.Since(c.start).Seconds())
	return nil
}

// fetch retrieves and parses url. Any failure yields an empty document.
func (c *Crawler) fetch(ctx context.Context, url string) *sitecrawl.Document {
	c.printf("Getting: %s\n", url)
	c.current = url

	var header http.Header
	if c.Headers != nil {
		header = c.Headers.Header(url)
	}

	res := sitecrawl.Capture(func() (*sitecrawl.Document, string, error) {
		html, err := c.Fetcher.Fetch(ctx, url, header)
		if err != nil {
			return nil, "", err
		}
		doc, err := sitecrawl.ParseHTML(url, html)
		return doc, "", err
	})
	if !res.OK() {
		c.report("Failed to get %s: %s", url, errorText(res.Err))
		c.current = ""
		return sitecrawl.EmptyDocument("")
	}
	return res.Value
}

// extract runs every extractor in registration order.
func (c *Crawler) extract(url string, doc *sitecrawl.Document) string {
	msgs := make([]string, 0, len(c.extractions))
	for _, e := range c.extractions {
		msgs = append(msgs, e.Run(url, doc))
	}
	return strings.Join(msgs, "\n")
}

// addLinks enqueues the document's links that pass the matcher.
// Root-relative links are made absolute using the page's scheme and host;
// all other links are used as written.
func (c *Crawler) addLinks(url string, doc *sitecrawl.Document) {
	if !c.autoAdd {
		return
	}

	// A failing finder may still have returned some links; those are kept.
	var links []string
	res := sitecrawl.Capture(func() (struct{}, string, error) {
		var err error
		links, err = c.Links.Links(doc)
		return struct{}{}, "", err
	})
	if !res.OK() {
		c.report("Failed to add new works: %s", errorText(res.Err))
	}

	scheme, netloc, _ := sitecrawl.SplitURL(url)
	var internal []string
	for _, link := range links {
		if strings.HasPrefix(link, "/") {
			link = scheme + "://" + netloc + link
		}
		if c.matcher.IsIncluded(link) {
			internal = append(internal, link)
		}
	}

	added := c.frontier.EnqueueMany(internal)
	c.logger.Debug("links discovered",
		"url", url,
		"found", len(links),
		"matched", len(internal),
		"added", added,
	)
}

// printInfo prints a result block, appends it to the log, and rewrites the
// log file.
func (c *Crawler) printInfo(extractInfo string) {
	text := strings.Join([]string{
		"Result:\n" + extractInfo,
		fmt.Sprintf("Remained Work Amount: %d", c.frontier.Remaining()),
		logSeparator,
	}, "\n")
	c.printf("%s\n", text)

	c.log = append(c.log, text)
	c.saveLog()
}

func (c *Crawler) saveLog() {
	if err := c.storage.WriteFile(c.logFile, []byte(strings.Join(c.log, "\n"))); err != nil {
		c.report("Failed to save log: %s", err)
	}
}

func (c *Crawler) bindExtractors(extractors []sitecrawl.Extractor) {
	for _, ex := range extractors {
		c.extractions = append(c.extractions, &Extraction{
			Extractor: ex,
			Store:     NewRecorder(c.storage, ex.Name(), c.logger),
			Logger:    c.logger,
		})
	}
}

// report prints a diagnostic line and logs it as a warning.
func (c *Crawler) report(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.printf("%s\n", msg)
	c.logger.Warn(msg, "url", c.current)
}

func (c *Crawler) printf(format string, args ...any) {
	if c.Stdout == nil {
		return
	}
	fmt.Fprintf(c.Stdout, format, args...)
}

// validateExtractors checks added against each other and against existing.
// Each extractor owns a record file named after it, so names must be unique.
func validateExtractors(existing, added []sitecrawl.Extractor) error {
	names := make(map[string]bool)
	for _, ex := range existing {
		names[ex.Name()] = true
	}
	for i, ex := range added {
		if ex == nil {
			return sitecrawl.Errorf(sitecrawl.EINVALID, "extractor %d is nil", i)
		}
		if err := sitecrawl.ValidateExtractor(ex); err != nil {
			return err
		}
		if names[ex.Name()] {
			return sitecrawl.Errorf(sitecrawl.EINVALID, "duplicate extractor name %q", ex.Name())
		}
		names[ex.Name()] = true
	}
	return nil
}
