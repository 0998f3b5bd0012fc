package markup

// RenderedBlock is a Block whose text has been passed through ExtractLinks.
// Paragraphs carry one line in Lines; numbered lists carry one line per item.
type RenderedBlock struct {
	Kind  BlockKind   `json:"kind"`
	Lines [][]Segment `json:"lines"`
}

// IsList reports whether the block renders as an ordered list.
func (b RenderedBlock) IsList() bool {
	return b.Kind == BlockNumberedList
}

// Render segments text into blocks and linkifies every block. The text is
// treated as plain text; angle brackets survive and are escaped on output.
func Render(text string) []RenderedBlock {
	blocks := SplitBlocks(text)
	out := make([]RenderedBlock, 0, len(blocks))
	for _, b := range blocks {
		rb := RenderedBlock{Kind: b.Kind}
		switch b.Kind {
		case BlockNumberedList:
			rb.Lines = make([][]Segment, 0, len(b.Items))
			for _, item := range b.Items {
				rb.Lines = append(rb.Lines, ExtractLinks(item))
			}
		default:
			rb.Lines = [][]Segment{ExtractLinks(b.Text)}
		}
		out = append(out, rb)
	}
	return out
}

// SourceLink builds the link segment shown for a cited source.
// An empty URL yields ok=false. Titles are scraped from page <title>
// elements and pass through StripTags.
func SourceLink(rawURL, title string) (seg Segment, ok bool) {
	if rawURL == "" {
		return Segment{}, false
	}
	href := ToAbsoluteURL(rawURL)
	return Segment{
		Kind:   SegmentLink,
		Raw:    rawURL,
		Href:   href,
		Label:  StripTags(title),
		Domain: Domain(href),
	}, true
}
