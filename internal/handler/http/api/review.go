package api

import (
	"net/http"

	"factcheck-web/internal/handler/http/respond"
	fcUC "factcheck-web/internal/usecase/factcheck"
)

// review submits an article for review.
// @Summary      Review an article
// @Description  Reviews article text. When only news_url is given the page is fetched and its readable text is reviewed.
// @Tags         review
// @Accept       json
// @Produce      json
// @Param        request body ReviewRequest true "Article text or URL"
// @Success      200 {object} entity.ReviewResult
// @Failure      400 {object} respond.ErrorBody "Empty input, text too long or URL rejected"
// @Failure      502 {object} respond.ErrorBody "Upstream or fetch failure"
// @Failure      503 {object} respond.ErrorBody "Upstream unavailable or fetching disabled"
// @Router       /api/review [post]
func (h *Handler) review(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, language(r, ""), err)
		return
	}
	lang := language(r, req.Lang)

	res, err := h.Svc.Review(r.Context(), fcUC.ReviewInput{NewsText: req.NewsText, NewsURL: req.NewsURL})
	if err != nil {
		h.fail(w, r, lang, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}
