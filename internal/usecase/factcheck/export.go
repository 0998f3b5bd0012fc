package factcheck

import (
	"strings"

	"factcheck-web/internal/domain/entity"
	"factcheck-web/internal/i18n"
	"factcheck-web/internal/markup"
)

// ExportText renders result as the plain text copied by "Copy Result":
//
//	Status: <case>
//
//	Analysis: <talk>
//
//	Sources:
//	- <title or domain> — <url>
//
// followed by the generated article and post when present. A nil result
// exports as "".
func ExportText(result *entity.VerificationResult, lang i18n.Language) string {
	if result == nil {
		return ""
	}
	m := lang.Messages()

	var b strings.Builder
	b.WriteString(m.Status + ": " + result.Case + "\n\n")
	b.WriteString(m.Analysis + ": " + result.Talk + "\n\n")
	b.WriteString(m.Sources + ":\n")

	if len(result.Sources) == 0 {
		b.WriteString("- " + m.None)
	} else {
		for i, s := range result.Sources {
			if i > 0 {
				b.WriteByte('\n')
			}
			label := s.Title
			if label == "" {
				label = markup.Domain(s.URL)
			}
			b.WriteString("- " + label + " — " + s.URL)
		}
	}

	if result.NewsArticle != "" {
		b.WriteString("\n\n" + m.GeneratedNews + ":\n" + result.NewsArticle)
	}
	if result.XTweet != "" {
		b.WriteString("\n\n" + m.TweetHeading + ":\n" + result.XTweet)
	}
	return b.String()
}
