// Package domains normalizes, generates and validates company website domains.
package domains

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// ExtractDomain normalizes a URL-like string into a bare lower-case host
// (e.g. "https://www.Foncia.com/fr" -> "foncia.com"). It returns false for
// input that cannot be parsed into a host; this is best-effort, never an error.
func ExtractDomain(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	lower := strings.ToLower(raw)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimSuffix(host, ".")
	host = strings.TrimPrefix(host, "www.")
	if host == "" || strings.ContainsAny(host, " \t\r\n") {
		return "", false
	}
	return host, true
}

// Label returns the bare organization label of a domain with its public
// suffix removed ("foncia-idf.fr" -> "foncia-idf", "paris.foncia.co.uk" -> "paris").
func Label(domain string) string {
	domain = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(domain)), ".")
	if domain == "" {
		return ""
	}

	rest := domain
	if suffix, _ := publicsuffix.PublicSuffix(domain); suffix != "" && suffix != domain {
		rest = strings.TrimSuffix(domain, "."+suffix)
	}

	if i := strings.IndexByte(rest, '.'); i >= 0 {
		return rest[:i]
	}
	return rest
}
