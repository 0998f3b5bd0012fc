package markup

import (
	"regexp"
	"strings"
)

// SegmentKind distinguishes plain text from links in an extracted sequence.
type SegmentKind string

const (
	SegmentText SegmentKind = "text"
	SegmentLink SegmentKind = "link"
)

// Segment is either a run of plain text or a link.
//
// For links, Raw is the matched source text, Href the absolute URL and Domain
// the bare host. Label is only set for markdown-style links.
type Segment struct {
	Kind   SegmentKind `json:"kind"`
	Text   string      `json:"text,omitempty"`
	Raw    string      `json:"raw,omitempty"`
	Href   string      `json:"href,omitempty"`
	Label  string      `json:"label,omitempty"`
	Domain string      `json:"domain,omitempty"`
}

// DisplayText is the text a link chip shows: the trimmed label, else the domain.
func (s Segment) DisplayText() string {
	if label := strings.TrimSpace(s.Label); label != "" {
		return label
	}
	return s.Domain
}

// Favicon returns the icon URL for a link segment's domain.
func (s Segment) Favicon() string {
	return FaviconURL(s.Domain)
}

// IsLink reports whether the segment is a link.
func (s Segment) IsLink() bool {
	return s.Kind == SegmentLink
}

var (
	// URLs end at any whitespace, including Unicode space separators.
	markdownLink = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\s\p{Zs})]+)\)`)
	bareURL      = regexp.MustCompile(`(?i)(https?://)?([a-z0-9-]+\.)+[a-z]{2,}(?:/[^\s\p{Zs}]*)?`)
)

// ExtractLinks splits text into ordered text and link segments.
//
// Pass one converts markdown links "[label](https://...)". Pass two scans only
// the plain text left over by pass one for bare, loosely domain-shaped URLs.
// Markdown link segments are never re-scanned.
func ExtractLinks(text string) []Segment {
	if text == "" {
		return nil
	}

	parts := make([]Segment, 0, 4)
	last := 0
	for _, loc := range markdownLink.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[0], loc[1]
		if start > last {
			parts = append(parts, textSegment(text[last:start]))
		}
		href := text[loc[4]:loc[5]]
		parts = append(parts, Segment{
			Kind:   SegmentLink,
			Raw:    text[start:end],
			Href:   href,
			Label:  text[loc[2]:loc[3]],
			Domain: Domain(href),
		})
		last = end
	}
	if last < len(text) {
		parts = append(parts, textSegment(text[last:]))
	}

	out := make([]Segment, 0, len(parts))
	for _, p := range parts {
		if p.Kind != SegmentText {
			out = append(out, p)
			continue
		}
		out = append(out, linkifyBare(p.Text)...)
	}
	return out
}

func linkifyBare(s string) []Segment {
	out := make([]Segment, 0, 2)
	last := 0
	for _, loc := range bareURL.FindAllStringIndex(s, -1) {
		start, end := loc[0], loc[1]
		if start > last {
			out = append(out, textSegment(s[last:start]))
		}
		raw := s[start:end]
		href := ToAbsoluteURL(raw)
		out = append(out, Segment{
			Kind:   SegmentLink,
			Raw:    raw,
			Href:   href,
			Domain: Domain(href),
		})
		last = end
	}
	if last < len(s) {
		out = append(out, textSegment(s[last:]))
	}
	return out
}

func textSegment(s string) Segment {
	return Segment{Kind: SegmentText, Text: s}
}
