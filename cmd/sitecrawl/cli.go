package main

import (
	"time"

	"github.com/fwojciec/sitecrawl"
	"github.com/fwojciec/sitecrawl/yaml"
)

// CLI defines the command-line interface structure for Kong.
// Pattern, directory, and timeout flags left empty fall back to the
// configuration file and then to the built-in defaults.
type CLI struct {
	URLs       []string      `arg:"" optional:"" name:"url" help:"Seed URLs"`
	Scheme     string        `help:"Regex the URL scheme of followed links must match (default: http|https)"`
	Domain     string        `help:"Regex the host of followed links must match (default: .*)"`
	Path       string        `help:"Regex the path of followed links must match (default: .*)"`
	Dir        string        `short:"d" help:"Directory for the working list, records, and log (default: tmp)"`
	NoLinks    bool          `name:"no-links" help:"Only crawl the seed URLs"`
	Timeout    time.Duration `short:"t" help:"Fetch timeout per page (default: 10s)"`
	Render     bool          `short:"r" help:"Render pages in headless Chrome"`
	Cloudflare bool          `help:"Send requests with a browser TLS fingerprint"`
	Sitemap    string        `help:"Seed the crawl from this sitemap"`
	Resume     bool          `help:"Continue the working list left in the directory"`
	Config     string        `short:"c" help:"Configuration file (default: $XDG_CONFIG_HOME/sitecrawl/config.yaml)"`
	Verbose    bool          `short:"v" help:"Log every fetch and discovery step to stderr"`
}

// Options are the settings resolved from flags, the configuration file, and
// the defaults.
type Options struct {
	Seeds      []string
	Scheme     string
	Domain     string
	Path       string
	Dir        string
	Links      bool
	Timeout    time.Duration
	Render     bool
	Cloudflare bool
	Sitemap    string
	Resume     bool
}

// Options merges the flags over file. Seeds from both are used, file
// seeds first.
func (c *CLI) Options(file *yaml.File) (Options, error) {
	if file == nil {
		file = &yaml.File{}
	}
	if c.Timeout < 0 {
		return Options{}, sitecrawl.Errorf(sitecrawl.EINVALID, "timeout must be non-negative")
	}

	opts := Options{
		Seeds:      append(append([]string(nil), file.Seeds...), c.URLs...),
		Scheme:     first(c.Scheme, file.Scheme, sitecrawl.DefaultSchemePattern),
		Domain:     first(c.Domain, file.Domain, sitecrawl.DefaultDomainPattern),
		Path:       first(c.Path, file.Path, sitecrawl.DefaultPathPattern),
		Dir:        first(c.Dir, file.Dir, DefaultDir),
		Links:      true,
		Timeout:    DefaultTimeout,
		Render:     c.Render,
		Cloudflare: c.Cloudflare,
		Sitemap:    first(c.Sitemap, file.Sitemap),
		Resume:     c.Resume,
	}
	if file.Links != nil {
		opts.Links = *file.Links
	}
	if c.NoLinks {
		opts.Links = false
	}
	if file.Timeout > 0 {
		opts.Timeout = file.Timeout
	}
	if c.Timeout > 0 {
		opts.Timeout = c.Timeout
	}
	return opts, nil
}

// first returns the first non-empty value.
func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
