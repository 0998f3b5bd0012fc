package markup

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLinks_BareURL(t *testing.T) {
	got := ExtractLinks("Check https://example.com/path for details.")

	want := []Segment{
		{Kind: SegmentText, Text: "Check "},
		{Kind: SegmentLink, Raw: "https://example.com/path", Href: "https://example.com/path", Domain: "example.com"},
		{Kind: SegmentText, Text: " for details."},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExtractLinks() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractLinks_URLEndsAtUnicodeSpace(t *testing.T) {
	got := ExtractLinks("https://example.com/a\u00a0والمزيد")

	want := []Segment{
		{Kind: SegmentLink, Raw: "https://example.com/a", Href: "https://example.com/a", Domain: "example.com"},
		{Kind: SegmentText, Text: "\u00a0والمزيد"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExtractLinks() mismatch (-want +got):\n%s", diff)
	}

	got = ExtractLinks("[تقرير](https://a.b/c\u00a0x)")
	for _, seg := range got {
		assert.False(t, seg.IsLink() && seg.Label != "", "markdown link must not span a Unicode space")
	}
}

func TestExtractLinks_MarkdownLinkIsOpaque(t *testing.T) {
	got := ExtractLinks("See [this report](https://a.b/c) now")

	require.Len(t, got, 3)
	assert.Equal(t, Segment{Kind: SegmentText, Text: "See "}, got[0])
	assert.Equal(t, SegmentLink, got[1].Kind)
	assert.Equal(t, "this report", got[1].Label)
	assert.Equal(t, "https://a.b/c", got[1].Href)
	assert.Equal(t, "a.b", got[1].Domain)
	assert.Equal(t, Segment{Kind: SegmentText, Text: " now"}, got[2])
}

func TestExtractLinks_URLInsideMarkdownLabelNotRescanned(t *testing.T) {
	got := ExtractLinks("[www.example.org report](https://example.org/x)")

	require.Len(t, got, 1)
	assert.Equal(t, "www.example.org report", got[0].Label)
	assert.Equal(t, "https://example.org/x", got[0].Href)
}

func TestExtractLinks_SchemelessURLIsAbsolutized(t *testing.T) {
	got := ExtractLinks("read www.BBC.co.uk/news today")

	require.Len(t, got, 3)
	assert.Equal(t, "www.BBC.co.uk/news", got[1].Raw)
	assert.Equal(t, "https://www.BBC.co.uk/news", got[1].Href)
	assert.Equal(t, "bbc.co.uk", got[1].Domain)
	assert.Equal(t, "bbc.co.uk", got[1].DisplayText())
	assert.Equal(t, "https://icons.duckduckgo.com/ip3/bbc.co.uk.ico", got[1].Favicon())
}

func TestExtractLinks_MixedOrder(t *testing.T) {
	got := ExtractLinks("a.com then [b](https://b.org) then c.net")

	kinds := make([]SegmentKind, 0, len(got))
	for _, s := range got {
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []SegmentKind{SegmentLink, SegmentText, SegmentLink, SegmentText, SegmentLink}, kinds)
	assert.Equal(t, "a.com", got[0].Domain)
	assert.Equal(t, "b", got[2].Label)
	assert.Equal(t, "c.net", got[4].Domain)
}

func TestExtractLinks_PlainText(t *testing.T) {
	assert.Nil(t, ExtractLinks(""))
	assert.Equal(t, []Segment{{Kind: SegmentText, Text: "no links e.g. here"}}, ExtractLinks("no links e.g. here"))
}

func TestSegment_DisplayTextPrefersTrimmedLabel(t *testing.T) {
	s := Segment{Kind: SegmentLink, Label: "  Reuters  ", Domain: "reuters.com"}
	assert.Equal(t, "Reuters", s.DisplayText())

	s.Label = "   "
	assert.Equal(t, "reuters.com", s.DisplayText())
}
