package main

import (
	"fmt"
	"math"
	"strings"

	"factcheck-web/internal/domain/entity"
	"factcheck-web/internal/i18n"
	"factcheck-web/internal/markup"
)

const barWidth = 30

// renderResult formats a verdict for the terminal.
func renderResult(st styles, r *entity.VerificationResult, lang i18n.Language) string {
	m := lang.Messages()
	var b strings.Builder

	b.WriteString(st.Title.Render(m.Status) + " " + st.Verdict.Render(r.Case) + "\n")

	b.WriteString(st.Heading.Render(m.Analysis) + "\n")
	b.WriteString(renderBlocks(st, markup.Render(r.Talk)))

	b.WriteString(st.Heading.Render(m.Sources) + "\n")
	if len(r.Sources) == 0 {
		b.WriteString(st.Info.Render(m.NoSources) + "\n")
	}
	for _, s := range r.Sources {
		seg, ok := markup.SourceLink(s.URL, s.Title)
		if !ok {
			continue
		}
		b.WriteString("  • " + renderLink(st, seg) + "\n")
	}

	if s := r.Statistics; s != nil {
		b.WriteString(st.Heading.Render(m.StatsTitle) + "\n")
		b.WriteString(renderBar(st, "supporting", m.Supporting, s.SupportingPercentage, m.SourceCount(s.SupportingCount)))
		b.WriteString(renderBar(st, "opposing", m.Opposing, s.OpposingPercentage, m.SourceCount(s.OpposingCount)))
		b.WriteString(renderBar(st, "neutral", m.Neutral, s.NeutralPercentage, m.SourceCount(s.NeutralCount)))
		b.WriteString(st.Info.Render(m.TotalSources+": "+m.SourceCount(s.TotalSources)) + "\n")
	}

	if r.NewsArticle != "" {
		b.WriteString(st.Heading.Render(m.GeneratedNews) + "\n")
		b.WriteString(st.Box.Render(strings.TrimSpace(r.NewsArticle)) + "\n")
	}
	if r.XTweet != "" {
		b.WriteString(st.Heading.Render(m.TweetHeading) + "\n")
		b.WriteString(st.Box.Render(strings.TrimSpace(r.XTweet)) + "\n")
	}
	return b.String()
}

// renderReview formats a review for the terminal.
func renderReview(st styles, r *entity.ReviewResult, lang i18n.Language) string {
	return st.Heading.Render(lang.Messages().ReviewHeading) + "\n" + renderBlocks(st, markup.Render(r.Review))
}

func renderBlocks(st styles, blocks []markup.RenderedBlock) string {
	var b strings.Builder
	for _, blk := range blocks {
		if blk.IsList() {
			for i, line := range blk.Lines {
				fmt.Fprintf(&b, "  %d. %s\n", i+1, renderSegments(st, line))
			}
			continue
		}
		for _, line := range blk.Lines {
			b.WriteString(renderSegments(st, line) + "\n")
		}
	}
	return b.String()
}

func renderSegments(st styles, segs []markup.Segment) string {
	var b strings.Builder
	for _, s := range segs {
		if s.IsLink() {
			b.WriteString(renderLink(st, s))
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}

// renderLink shows the chip text followed by the target, which terminals
// usually make clickable.
func renderLink(st styles, s markup.Segment) string {
	return s.DisplayText() + " " + st.Link.Render("<"+s.Href+">")
}

func renderBar(st styles, key, label string, pct float64, count string) string {
	filled := int(math.Round(math.Max(0, math.Min(100, pct)) / 100 * barWidth))
	bar := st.Bars[key].Render(strings.Repeat("█", filled)) + strings.Repeat("░", barWidth-filled)
	return fmt.Sprintf("  %-12s %s %7s  %s\n", label, bar, i18n.FormatPercent(pct), st.Info.Render("("+count+")"))
}
