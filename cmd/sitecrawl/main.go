package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sitecrawl"
	"github.com/fwojciec/sitecrawl/crawl"
	"github.com/fwojciec/sitecrawl/fs"
	"github.com/fwojciec/sitecrawl/goquery"
	"github.com/fwojciec/sitecrawl/header"
	crawlhttp "github.com/fwojciec/sitecrawl/http"
	"github.com/fwojciec/sitecrawl/rod"
	crawlslog "github.com/fwojciec/sitecrawl/slog"
	"github.com/fwojciec/sitecrawl/yaml"
	"github.com/google/uuid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Defaults applied when neither a flag nor the configuration file sets a value.
const (
	DefaultDir     = "tmp"
	DefaultTimeout = 10 * time.Second
)

// Main represents the program.
type Main struct {
	// ConfigPath is read when --config is not given. A missing file there
	// is not an error. Set before calling Run().
	ConfigPath string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: yaml.DefaultPath(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitecrawl"),
		kong.Description("Crawl a site, extract fields from every page, and save them as JSON"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	file, err := m.loadConfig(cli.Config)
	if err != nil {
		return err
	}
	opts, err := cli.Options(file)
	if err != nil {
		return err
	}

	level := slog.LevelError
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With("run", uuid.NewString())

	extractors, err := buildExtractors(file)
	if err != nil {
		return err
	}

	fetcher, err := newFetcher(opts)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed to use --render")
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer fetcher.Close()

	var (
		links    sitecrawl.LinkFinder     = goquery.NewLinkFinder("")
		sitemaps sitecrawl.SitemapService = crawlhttp.NewSitemapService(nil)
	)
	if cli.Verbose {
		fetcher = crawlslog.NewLoggingFetcher(fetcher, logger)
		links = crawlslog.NewLoggingLinkFinder(links, logger)
		sitemaps = crawlslog.NewLoggingSitemapService(sitemaps, logger)
	}

	seeds := opts.Seeds
	if opts.Sitemap != "" {
		matcher, err := sitecrawl.NewURLMatcher(opts.Scheme, opts.Domain, opts.Path)
		if err != nil {
			return err
		}
		urls, err := sitemaps.DiscoverURLs(ctx, opts.Sitemap, matcher)
		if err != nil {
			return fmt.Errorf("reading sitemap %s: %w", opts.Sitemap, err)
		}
		fmt.Fprintf(stdout, "Sitemap: %d URLs\n", len(urls))
		seeds = append(seeds, urls...)
	}
	if len(seeds) == 0 && !opts.Resume {
		return fmt.Errorf("no seed URLs: pass URLs, --sitemap, or seeds in the configuration file")
	}

	cfg := crawl.DefaultConfig()
	cfg.WorkingList = seeds
	cfg.SchemePattern = opts.Scheme
	cfg.DomainPattern = opts.Domain
	cfg.PathPattern = opts.Path
	cfg.AutoAddInternalLinks = opts.Links
	cfg.Extractors = extractors
	cfg.Resume = opts.Resume

	c, err := crawl.NewCrawler(fs.NewDir(opts.Dir), cfg, logger)
	if err != nil {
		return err
	}
	c.Fetcher = fetcher
	c.Headers = header.NewProvider()
	c.Links = links
	c.Stdout = stdout

	return c.Run(ctx)
}

// loadConfig reads the file named by --config, or m.ConfigPath if it exists.
func (m *Main) loadConfig(path string) (*yaml.File, error) {
	if path != "" {
		return yaml.Load(path)
	}
	if m.ConfigPath == "" {
		return &yaml.File{}, nil
	}
	f, err := yaml.Load(m.ConfigPath)
	if sitecrawl.ErrorCode(err) == sitecrawl.ENOTFOUND {
		return &yaml.File{}, nil
	}
	return f, err
}

func newFetcher(opts Options) (sitecrawl.Fetcher, error) {
	if opts.Render {
		return rod.NewFetcher(rod.WithTimeout(opts.Timeout))
	}
	httpOpts := []crawlhttp.Option{crawlhttp.WithTimeout(opts.Timeout)}
	if opts.Cloudflare {
		httpOpts = append(httpOpts, crawlhttp.WithCloudflareBypass())
	}
	return crawlhttp.NewFetcher(httpOpts...), nil
}
