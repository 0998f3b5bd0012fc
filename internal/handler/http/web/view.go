package web

import (
	"strings"

	"factcheck-web/internal/domain/entity"
	"factcheck-web/internal/i18n"
	"factcheck-web/internal/infra/session"
	"factcheck-web/internal/markup"
)

// page is the data every template receives.
type page struct {
	Lang i18n.Language
	T    *i18n.Messages
	// Toggle is the language the toggle button switches to.
	Toggle i18n.Language
	// Return is the path the language toggle redirects back to.
	Return string

	Query  string
	Err    string
	Result *resultView

	Checking       bool
	ComposingNews  bool
	ComposingTweet bool

	// Review page only.
	NewsText string
	NewsURL  string
	Review   []markup.RenderedBlock
}

type resultView struct {
	Case        string
	Talk        []markup.RenderedBlock
	Sources     []markup.Segment
	NewsArticle string
	XTweet      string
	Stats       *statsView
}

type statsView struct {
	Total string
	Rows  []statRow
}

type statRow struct {
	Key     string // supporting, opposing or neutral; used as CSS class
	Label   string
	Count   string
	Percent string
	Value   float64
}

func newPage(lang i18n.Language, returnPath string) *page {
	return &page{
		Lang:   lang,
		T:      lang.Messages(),
		Toggle: lang.Toggle(),
		Return: returnPath,
	}
}

// withState fills the page from a session.
func (p *page) withState(st *session.State) *page {
	if st == nil {
		return p
	}
	p.Query = st.Query
	p.Err = st.Err
	p.Result = newResultView(st.Result, p.T)
	p.Checking = st.Loading(session.KindVerify)
	p.ComposingNews = st.Loading(session.KindComposeNews)
	p.ComposingTweet = st.Loading(session.KindComposeTweet)
	return p
}

func newResultView(r *entity.VerificationResult, m *i18n.Messages) *resultView {
	if r == nil {
		return nil
	}
	v := &resultView{
		Case:        r.Case,
		Talk:        markup.Render(r.Talk),
		NewsArticle: strings.TrimSpace(r.NewsArticle),
		XTweet:      strings.TrimSpace(r.XTweet),
		Stats:       newStatsView(r.Statistics, m),
	}
	for _, s := range r.Sources {
		if seg, ok := markup.SourceLink(s.URL, s.Title); ok {
			v.Sources = append(v.Sources, seg)
		}
	}
	return v
}

func newStatsView(s *entity.SourceStatistics, m *i18n.Messages) *statsView {
	if s == nil {
		return nil
	}
	row := func(key, label string, count int, pct float64) statRow {
		return statRow{
			Key:     key,
			Label:   label,
			Count:   m.SourceCount(count),
			Percent: i18n.FormatPercent(pct),
			Value:   pct,
		}
	}
	return &statsView{
		Total: m.SourceCount(s.TotalSources),
		Rows: []statRow{
			row("supporting", m.Supporting, s.SupportingCount, s.SupportingPercentage),
			row("opposing", m.Opposing, s.OpposingCount, s.OpposingPercentage),
			row("neutral", m.Neutral, s.NeutralCount, s.NeutralPercentage),
		},
	}
}
