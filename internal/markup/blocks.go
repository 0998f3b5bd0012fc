package markup

import (
	"regexp"
	"strings"
)

// BlockKind distinguishes paragraph blocks from numbered-list blocks.
type BlockKind string

const (
	// BlockParagraph is a run of non-blank, non-enumerated lines joined by spaces.
	BlockParagraph BlockKind = "paragraph"

	// BlockNumberedList is a run of consecutive enumerated lines.
	BlockNumberedList BlockKind = "numbered_list"
)

// Block is one segmented unit of explanation text.
// Text is set for paragraphs, Items for numbered lists.
type Block struct {
	Kind  BlockKind `json:"kind"`
	Text  string    `json:"text,omitempty"`
	Items []string  `json:"items,omitempty"`
}

// enumLine matches "1. foo", "2) foo", "3: foo", "4- foo" and the Arabic-Indic
// equivalents ("١. foo"). Group 2 is the item content. Unicode space
// separators such as U+00A0 count as whitespace.
var enumLine = regexp.MustCompile(`^[\s\p{Zs}]*([0-9\x{0660}-\x{0669}]+)[.):\-][\s\p{Zs}]+(.+)$`)

// SplitBlocks segments text into ordered paragraph and numbered-list blocks.
//
// Enumerated prefixes are discarded; list order is positional, so source
// numbering such as 1, 5, 2 still produces three items in input order.
// A single enumerated line becomes a one-item list. Blank lines only act as
// separators.
func SplitBlocks(text string) []Block {
	lines := splitLines(text)
	blocks := make([]Block, 0)

	for i := 0; i < len(lines); {
		line := lines[i]

		if strings.TrimSpace(line) == "" {
			i++
			continue
		}

		if enumLine.MatchString(line) {
			items := make([]string, 0)
			for i < len(lines) {
				m := enumLine.FindStringSubmatch(lines[i])
				if m == nil {
					break
				}
				items = append(items, m[2])
				i++
			}
			blocks = append(blocks, Block{Kind: BlockNumberedList, Items: items})
			continue
		}

		buf := make([]string, 0, 4)
		for i < len(lines) && strings.TrimSpace(lines[i]) != "" && !enumLine.MatchString(lines[i]) {
			buf = append(buf, lines[i])
			i++
		}
		blocks = append(blocks, Block{Kind: BlockParagraph, Text: strings.Join(buf, " ")})
	}

	return blocks
}

// splitLines splits on "\n" and drops a trailing "\r" from each line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
