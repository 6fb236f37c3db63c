// Package header builds browser-like request headers with a randomly
// chosen desktop User-Agent.
package header

import (
	"math/rand/v2"
	"net/http"

	"github.com/fwojciec/sitecrawl"
)

// Header values sent with every request.
const (
	Accept         = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
	AcceptLanguage = "zh-TW,zh;q=0.8,en-US;q=0.5,en;q=0.3"
)

// UserAgents are desktop Firefox and Chrome user agents.
var UserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:78.0) Gecko/20100101 Firefox/78.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:78.0) Gecko/20100101 Firefox/78.0",
	"Mozilla/5.0 (X11; Linux i686; rv:78.0) Gecko/20100101 Firefox/78.0",
	"Mozilla/5.0 (Linux x86_64; rv:78.0) Gecko/20100101 Firefox/78.0",
	"Mozilla/5.0 (X11; Ubuntu; Linux i686; rv:78.0) Gecko/20100101 Firefox/78.0",
	"Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:78.0) Gecko/20100101 Firefox/78.0",
	"Mozilla/5.0 (X11; Fedora; Linux x86_64; rv:78.0) Gecko/20100101 Firefox/78.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/83.0.4103.116 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; WOW64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/83.0.4103.116 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/83.0.4103.116 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_5) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/83.0.4103.116 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/83.0.4103.116 Safari/537.36",
}

// Ensure Provider implements sitecrawl.HeaderProvider at compile time.
var _ sitecrawl.HeaderProvider = (*Provider)(nil)

// Provider produces a fresh header set for every request.
//
// Accept-Encoding is left to the transport so responses are decompressed
// transparently.
type Provider struct {
	rand       *rand.Rand
	userAgents []string
}

// Option configures a Provider.
type Option func(*Provider)

// WithRand sets the random source used to pick user agents.
func WithRand(r *rand.Rand) Option {
	return func(p *Provider) {
		p.rand = r
	}
}

// WithUserAgents replaces the user agent pool.
func WithUserAgents(agents ...string) Option {
	return func(p *Provider) {
		p.userAgents = agents
	}
}

// NewProvider creates a Provider drawing from UserAgents.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{userAgents: UserAgents}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Header returns the headers for a request to url. Host is the URL's
// network location and Referer the URL itself.
func (p *Provider) Header(url string) http.Header {
	_, netloc, _ := sitecrawl.SplitURL(url)

	h := http.Header{}
	if netloc != "" {
		h.Set("Host", netloc)
	}
	h.Set("Connection", "keep-alive")
	h.Set("Accept", Accept)
	h.Set("Accept-Language", AcceptLanguage)
	if ua := p.userAgent(); ua != "" {
		h.Set("User-Agent", ua)
	}
	referer := url
	if referer == "" {
		referer = netloc
	}
	if referer != "" {
		h.Set("Referer", referer)
	}
	return h
}

func (p *Provider) userAgent() string {
	if len(p.userAgents) == 0 {
		return ""
	}
	if p.rand != nil {
		return p.userAgents[p.rand.IntN(len(p.userAgents))]
	}
	return p.userAgents[rand.IntN(len(p.userAgents))]
}
