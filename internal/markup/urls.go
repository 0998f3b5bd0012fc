// Package markup turns free-form explanation text returned by the fact-check API
// into structured blocks (paragraphs and numbered lists) with clickable links.
// All functions in this package are pure and safe for concurrent use.
package markup

import (
	"net/url"
	"regexp"
	"strings"
)

// FaviconOrigin serves the link chip icons.
const FaviconOrigin = "https://icons.duckduckgo.com"

// FaviconEndpoint is the icon service template used for link chips.
const FaviconEndpoint = FaviconOrigin + "/ip3/%s.ico"

var (
	schemePattern = regexp.MustCompile(`(?i)^https?://`)
	wwwPattern    = regexp.MustCompile(`(?i)^www\.`)
)

// ToAbsoluteURL prepends "https://" unless the string already starts with
// http:// or https:// (case-insensitive). Applying it twice is a no-op.
//
// Examples:
//
//	ToAbsoluteURL("example.com/a")       // "https://example.com/a"
//	ToAbsoluteURL("HTTP://example.com")  // "HTTP://example.com"
func ToAbsoluteURL(maybeURL string) string {
	if !schemePattern.MatchString(maybeURL) {
		return "https://" + maybeURL
	}
	return maybeURL
}

// Domain returns the bare host of a possibly protocol-less URL, lower-cased and
// without a leading "www.". If the URL cannot be parsed it falls back to a
// manual strip: scheme removed, everything from the first "/" dropped.
func Domain(u string) string {
	parsed, err := url.Parse(ToAbsoluteURL(u))
	if err == nil {
		return stripWWW(strings.ToLower(parsed.Hostname()))
	}

	host := schemePattern.ReplaceAllString(u, "")
	if idx := strings.IndexByte(host, '/'); idx >= 0 {
		host = host[:idx]
	}
	return stripWWW(host)
}

// FaviconURL returns the icon service URL for a domain, or "" when the domain
// is blank. Callers treat "" as "no icon".
func FaviconURL(domain string) string {
	d := strings.TrimSpace(domain)
	if d == "" {
		return ""
	}
	return strings.Replace(FaviconEndpoint, "%s", d, 1)
}

// stripWWW removes every leading "www." label so the result never starts with it.
func stripWWW(host string) string {
	for wwwPattern.MatchString(host) {
		host = host[len("www."):]
	}
	return host
}
