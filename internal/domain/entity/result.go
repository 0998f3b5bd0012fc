// Package entity defines the domain types of the fact-check front end:
// verification results, cited sources, agreement statistics and the
// request shapes sent upstream, together with their validation rules.
package entity

// Source is an external URL cited as evidence, with an optional title.
type Source struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// SourceStatistics summarises how the cited sources relate to the claim.
type SourceStatistics struct {
	SupportingPercentage float64 `json:"supporting_percentage"`
	OpposingPercentage   float64 `json:"opposing_percentage"`
	NeutralPercentage    float64 `json:"neutral_percentage"`
	SupportingCount      int     `json:"supporting_count"`
	OpposingCount        int     `json:"opposing_count"`
	NeutralCount         int     `json:"neutral_count"`
	TotalSources         int     `json:"total_sources"`
}

// VerificationResult is the verdict for one claim.
//
// A result is produced wholesale by one verify call. The only later change is
// merging a composed article or post, which always yields a new value.
type VerificationResult struct {
	Case        string            `json:"case"`
	Talk        string            `json:"talk"`
	Sources     []Source          `json:"sources"`
	NewsArticle string            `json:"news_article,omitempty"`
	XTweet      string            `json:"x_tweet,omitempty"`
	Statistics  *SourceStatistics `json:"source_statistics,omitempty"`
}

// Clone returns a deep copy of r.
func (r *VerificationResult) Clone() *VerificationResult {
	if r == nil {
		return nil
	}
	c := *r
	if r.Sources != nil {
		c.Sources = make([]Source, len(r.Sources))
		copy(c.Sources, r.Sources)
	}
	if r.Statistics != nil {
		s := *r.Statistics
		c.Statistics = &s
	}
	return &c
}

// WithNewsArticle returns a copy of r carrying article.
func (r *VerificationResult) WithNewsArticle(article string) *VerificationResult {
	c := r.Clone()
	c.NewsArticle = article
	return c
}

// WithXTweet returns a copy of r carrying post.
func (r *VerificationResult) WithXTweet(post string) *VerificationResult {
	c := r.Clone()
	c.XTweet = post
	return c
}

// ComposeRequest is the body of both compose operations. Lang is the
// two-letter code of the output language ("ar" or "en").
type ComposeRequest struct {
	ClaimText string   `json:"claim_text"`
	Case      string   `json:"case"`
	Talk      string   `json:"talk"`
	Sources   []Source `json:"sources"`
	Lang      string   `json:"lang"`
}

// NewComposeRequest builds the compose body for claim from a prior result.
// Sources is never nil so it encodes as an empty JSON array.
func NewComposeRequest(claim string, r *VerificationResult, lang string) ComposeRequest {
	sources := r.Sources
	if sources == nil {
		sources = []Source{}
	}
	return ComposeRequest{
		ClaimText: claim,
		Case:      r.Case,
		Talk:      r.Talk,
		Sources:   sources,
		Lang:      lang,
	}
}

// ReviewResult is the outcome of the article review flow.
type ReviewResult struct {
	Review string `json:"review"`
}
