// Package origin decides whether a calling web page may read log files.
package origin

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// DefaultDomains are the domains whose pages may request logs.
var DefaultDomains = []string{
	"yahoo.com",
	"browserplus.org",
	"browserpl.us",
	"localhost",
}

// hostProfile is the IDNA lookup profile without the STD3 ASCII rules, so
// hosts such as "my_host.browserplus.org" still normalize.
var hostProfile = idna.New(
	idna.MapForLookup(),
	idna.BidiRule(),
	idna.StrictDomainName(false),
)

// Whitelist matches an origin URI against a list of domains. A host matches a
// domain when it equals it or ends with "." followed by it, so
// "sub.browserplus.org" matches but "evilbrowserplus.org" does not.
type Whitelist struct {
	Domains []string
}

// NewWhitelist returns a whitelist over the normalized form of domains.
// Entries that do not normalize are dropped.
func NewWhitelist(domains []string) *Whitelist {
	w := &Whitelist{Domains: make([]string, 0, len(domains))}
	for _, d := range domains {
		if n, ok := normalizeHost(d); ok {
			w.Domains = append(w.Domains, n)
		}
	}
	return w
}

// Default returns a whitelist of DefaultDomains.
func Default() *Whitelist {
	return NewWhitelist(DefaultDomains)
}

// Allowed reports whether uri is an http or https URL on a whitelisted host.
// Unparseable input is never allowed.
func (w *Whitelist) Allowed(uri string) bool {
	if w == nil {
		return false
	}
	host, ok := Host(uri)
	if !ok {
		return false
	}
	for _, domain := range w.Domains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// Host extracts the normalized host of an http or https URI.
func Host(uri string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(uri))
	if err != nil {
		return "", false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return "", false
	}
	return normalizeHost(u.Hostname())
}

// normalizeHost lowercases a host and converts internationalized names to
// their ASCII form. A trailing root dot is dropped.
func normalizeHost(host string) (string, bool) {
	host = strings.TrimSuffix(strings.TrimSpace(host), ".")
	if host == "" {
		return "", false
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.String(), true
	}
	ascii, err := hostProfile.ToASCII(host)
	if err != nil || ascii == "" {
		return "", false
	}
	return strings.ToLower(ascii), true
}
