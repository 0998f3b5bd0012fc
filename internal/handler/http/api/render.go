package api

import (
	"net/http"

	"factcheck-web/internal/handler/http/respond"
	"factcheck-web/internal/markup"
)

// render segments explanation text without calling upstream.
// @Summary      Render explanation text
// @Description  Strips markup and splits text into paragraphs and numbered lists with extracted links.
// @Tags         render
// @Accept       json
// @Produce      json
// @Param        request body RenderRequest true "Text"
// @Success      200 {object} RenderResponse
// @Failure      400 {object} respond.ErrorBody "Invalid body"
// @Router       /api/v1/render [post]
func (h *Handler) render(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, language(r, ""), err)
		return
	}
	respond.JSON(w, http.StatusOK, RenderResponse{Blocks: markup.Render(req.Text)})
}
