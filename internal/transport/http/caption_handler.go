package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"video-pipeline/internal/forward"
)

type CaptionHandler struct {
	svc CaptionService
	fwd forward.Forwarder
}

func NewCaptionHandler(svc CaptionService, fwd forward.Forwarder) *CaptionHandler {
	return &CaptionHandler{svc: svc, fwd: fwd}
}

func (h *CaptionHandler) Register(r chi.Router) {
	r.Post("/generate-captions", h.GenerateCaptions)
}

// GenerateCaptions godoc
// @Summary Generate title, description and tags from the transcript
// @Description Generation failures degrade to deterministic fallback content; this endpoint never reports a pipeline error.
// @Tags pipeline
// @Accept json
// @Produce json
// @Param request body record.JobRecord true "job record with at least video_name"
// @Success 200 {object} record.JobRecord
// @Failure 400 {object} apiError
// @Router /generate-captions [post]
func (h *CaptionHandler) GenerateCaptions(w http.ResponseWriter, r *http.Request) {
	rec, err := decodeRecord(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if rec.VideoName == "" {
		writeErr(w, http.StatusBadRequest, "video_name is required")
		return
	}

	out := h.svc.Generate(r.Context(), rec)
	respond(w, out)

	h.fwd.Forward(r.Context(), out)
}
