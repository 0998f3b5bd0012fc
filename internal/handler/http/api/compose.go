package api

import (
	"net/http"

	"factcheck-web/internal/handler/http/respond"
)

// composeNews writes a news article from a verdict.
// @Summary      Compose a news article
// @Description  Generates a news article about the claim from a previously returned verdict.
// @Tags         compose
// @Accept       json
// @Produce      json
// @Param        request body ComposeRequest true "Claim and verdict"
// @Success      200 {object} NewsResponse
// @Failure      400 {object} respond.ErrorBody "Invalid body"
// @Failure      502 {object} respond.ErrorBody "Upstream failure"
// @Failure      503 {object} respond.ErrorBody "Upstream circuit open"
// @Router       /api/v1/compose/news [post]
func (h *Handler) composeNews(w http.ResponseWriter, r *http.Request) {
	var req ComposeRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, language(r, ""), err)
		return
	}
	lang := language(r, req.Lang)

	merged, err := h.Svc.ComposeNews(r.Context(), req.ClaimText, req.result(), lang)
	if err != nil {
		h.fail(w, r, lang, err)
		return
	}
	respond.JSON(w, http.StatusOK, NewsResponse{NewsArticle: merged.NewsArticle})
}

// composeTweet writes a short social post from a verdict.
// @Summary      Compose a short post
// @Description  Generates a short social media post about the claim from a previously returned verdict.
// @Tags         compose
// @Accept       json
// @Produce      json
// @Param        request body ComposeRequest true "Claim and verdict"
// @Success      200 {object} TweetResponse
// @Failure      400 {object} respond.ErrorBody "Invalid body"
// @Failure      502 {object} respond.ErrorBody "Upstream failure"
// @Failure      503 {object} respond.ErrorBody "Upstream circuit open"
// @Router       /api/v1/compose/tweet [post]
func (h *Handler) composeTweet(w http.ResponseWriter, r *http.Request) {
	var req ComposeRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, language(r, ""), err)
		return
	}
	lang := language(r, req.Lang)

	merged, err := h.Svc.ComposePost(r.Context(), req.ClaimText, req.result(), lang)
	if err != nil {
		h.fail(w, r, lang, err)
		return
	}
	respond.JSON(w, http.StatusOK, TweetResponse{XTweet: merged.XTweet})
}
