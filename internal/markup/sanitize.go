package markup

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripPolicy     *bluemonday.Policy
	stripPolicyOnce sync.Once
)

// StripTags removes HTML elements from scraped page text such as source
// titles and decodes entities, leaving plain text for the template layer to
// escape exactly once. Model-generated explanations are plain text and must
// not go through it.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	stripPolicyOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})
	return html.UnescapeString(stripPolicy.Sanitize(s))
}
