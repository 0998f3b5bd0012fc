package api

import (
	"factcheck-web/internal/domain/entity"
	"factcheck-web/internal/markup"
)

// FactCheckRequest is the body of POST /api/v1/fact-check.
type FactCheckRequest struct {
	Query string `json:"query" example:"The moon is made of cheese"`
	// Lang is "arabic", "english", "ar" or "en". Defaults to Accept-Language.
	Lang string `json:"lang,omitempty" example:"english"`
}

// ComposeRequest is the body of both compose endpoints.
type ComposeRequest struct {
	ClaimText string          `json:"claim_text" example:"The moon is made of cheese"`
	Case      string          `json:"case" example:"False"`
	Talk      string          `json:"talk"`
	Sources   []entity.Source `json:"sources"`
	Lang      string          `json:"lang,omitempty" example:"en"`
}

func (r ComposeRequest) result() *entity.VerificationResult {
	return &entity.VerificationResult{Case: r.Case, Talk: r.Talk, Sources: r.Sources}
}

// NewsResponse carries a composed article.
type NewsResponse struct {
	NewsArticle string `json:"news_article"`
}

// TweetResponse carries a composed short post.
type TweetResponse struct {
	XTweet string `json:"x_tweet"`
}

// ReviewRequest is the body of POST /api/review. NewsText wins over NewsURL.
type ReviewRequest struct {
	NewsText string `json:"news_text,omitempty"`
	NewsURL  string `json:"news_url,omitempty" example:"https://example.com/story"`
	Lang     string `json:"lang,omitempty"`
}

// RenderRequest is the body of POST /api/v1/render.
type RenderRequest struct {
	Text string `json:"text" example:"Summary.\n1. first point\n2. see example.com"`
}

// RenderResponse is the structured form of explanation text.
type RenderResponse struct {
	Blocks []markup.RenderedBlock `json:"blocks"`
}
