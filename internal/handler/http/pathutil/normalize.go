// Package pathutil maps request paths onto a bounded set of route labels for
// metrics and span names.
package pathutil

import (
	"regexp"
	"strings"
)

// Unmatched is the label used for any path that is not a known route.
const Unmatched = "/:unmatched"

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns covers routes whose tail is free-form.
// Pre-compiled at initialization.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/static/.+$`), Template: "/static/*"},
	{Pattern: regexp.MustCompile(`^/swagger(/.*)?$`), Template: "/swagger/*"},
}

// staticRoutes are the fixed paths served by the web and API handlers.
var staticRoutes = map[string]struct{}{
	"/":                     {},
	"/check":                {},
	"/compose/news":         {},
	"/compose/tweet":        {},
	"/lang":                 {},
	"/result.txt":           {},
	"/review":               {},
	"/api/v1/fact-check":    {},
	"/api/v1/compose/news":  {},
	"/api/v1/compose/tweet": {},
	"/api/v1/render":        {},
	"/api/review":           {},
	"/health":               {},
	"/ready":                {},
	"/live":                 {},
	"/metrics":              {},
}

// NormalizePath normalizes URL paths to prevent metrics label cardinality explosion.
// Known routes pass through, wildcard routes collapse to their template and
// anything else (scanners, typos) becomes Unmatched.
//
// Examples:
//
//	NormalizePath("/check")               // "/check"
//	NormalizePath("/static/app.css")      // "/static/*"
//	NormalizePath("/swagger/index.html")  // "/swagger/*"
//	NormalizePath("/wp-login.php")        // "/:unmatched"
//
// Query parameters and trailing slashes are handled:
//
//	NormalizePath("/result.txt?x=1")      // "/result.txt"
//	NormalizePath("/api/v1/render/")      // "/api/v1/render"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	if path == "" {
		return "/"
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' && !strings.HasPrefix(path, "/swagger") {
		path = path[:len(path)-1]
	}

	if _, ok := staticRoutes[path]; ok {
		return path
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	return Unmatched
}

// GetExpectedCardinality returns the number of distinct labels NormalizePath
// can produce.
func GetExpectedCardinality() int {
	return len(staticRoutes) + len(pathPatterns) + 1
}
