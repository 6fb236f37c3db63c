package sitecrawl

import (
	"net/url"
	"regexp"
	"strings"
)

// Default URL patterns. Scheme accepts http and https; domain and path
// accept anything.
const (
	DefaultSchemePattern = `http|https`
	DefaultDomainPattern = `.*`
	DefaultPathPattern   = `.*`
)

// URLMatcher decides whether a URL is eligible for crawling by matching its
// scheme, network location, and path against three regular expressions.
//
// Each pattern is matched at the start of its component only. Patterns are
// not anchored at the end, so a path pattern of "/docs" also accepts
// "/docs-old". Add "$" to require a full match.
type URLMatcher struct {
	scheme, domain, path       string
	schemeRE, domainRE, pathRE *regexp.Regexp
}

// NewURLMatcher returns a matcher for the given patterns.
// Returns EINVALID if any pattern does not compile.
func NewURLMatcher(scheme, domain, path string) (*URLMatcher, error) {
	m := &URLMatcher{}
	if err := m.SetPatterns(scheme, domain, path); err != nil {
		return nil, err
	}
	return m, nil
}

// DefaultURLMatcher returns a matcher using the default patterns.
func DefaultURLMatcher() *URLMatcher {
	m, _ := NewURLMatcher(DefaultSchemePattern, DefaultDomainPattern, DefaultPathPattern)
	return m
}

// SetPatterns replaces all three patterns at once.
// If any pattern does not compile the matcher keeps its previous patterns
// and EINVALID is returned.
func (m *URLMatcher) SetPatterns(scheme, domain, path string) error {
	schemeRE, err := compilePrefix("scheme", scheme)
	if err != nil {
		return err
	}
	domainRE, err := compilePrefix("domain", domain)
	if err != nil {
		return err
	}
	pathRE, err := compilePrefix("path", path)
	if err != nil {
		return err
	}

	m.scheme, m.domain, m.path = scheme, domain, path
	m.schemeRE, m.domainRE, m.pathRE = schemeRE, domainRE, pathRE
	return nil
}

// Patterns returns the current scheme, domain, and path patterns.
func (m *URLMatcher) Patterns() (scheme, domain, path string) {
	return m.scheme, m.domain, m.path
}

// IsIncluded reports whether all three URL components match their patterns.
func (m *URLMatcher) IsIncluded(rawURL string) bool {
	scheme, netloc, path := SplitURL(rawURL)
	return m.schemeRE.MatchString(scheme) &&
		m.domainRE.MatchString(netloc) &&
		m.pathRE.MatchString(path)
}

// SplitURL returns the scheme, network location ([userinfo@]host[:port]),
// and path of a URL. The path is returned as written, percent-escapes
// included. A URL that net/url rejects, such as one with a malformed
// escape, is split on its delimiters instead.
func SplitURL(rawURL string) (scheme, netloc, path string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return splitRaw(rawURL)
	}
	netloc = u.Host
	if u.User != nil {
		netloc = u.User.String() + "@" + netloc
	}
	path = u.EscapedPath()
	if u.Opaque != "" {
		path = u.Opaque
	}
	return u.Scheme, netloc, path
}

// splitRaw splits "scheme://netloc/path?query#fragment" without decoding.
// An unbalanced IPv6 bracket in the netloc yields empty components.
func splitRaw(rawURL string) (scheme, netloc, path string) {
	rest := rawURL
	if i := strings.Index(rest, ":"); i > 0 && validScheme(rest[:i]) {
		scheme, rest = strings.ToLower(rest[:i]), rest[i+1:]
	}
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	if after, ok := strings.CutPrefix(rest, "//"); ok {
		netloc, path = after, ""
		if i := strings.Index(after, "/"); i >= 0 {
			netloc, path = after[:i], after[i:]
		}
		if strings.Contains(netloc, "[") != strings.Contains(netloc, "]") {
			return "", "", ""
		}
		return scheme, netloc, path
	}
	return scheme, "", rest
}

func validScheme(s string) bool {
	for i, r := range s {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case i > 0 && ('0' <= r && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

func compilePrefix(name, pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid %s pattern %q: %v", name, pattern, err)
	}
	return re, nil
}
