package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"video-pipeline/internal/forward"
	"video-pipeline/internal/record"
)

type TransformHandler struct {
	svc TransformService
	fwd forward.Forwarder
}

func NewTransformHandler(svc TransformService, fwd forward.Forwarder) *TransformHandler {
	return &TransformHandler{svc: svc, fwd: fwd}
}

func (h *TransformHandler) Register(r chi.Router) {
	r.Post("/process-video", h.ProcessVideo)
}

// ProcessVideo godoc
// @Summary Probe, classify and transcode a video
// @Description Enriches the job record with duration, video_type and the processed file location, then forwards it downstream.
// @Tags pipeline
// @Accept json
// @Produce json
// @Param request body record.JobRecord true "job record with at least video_path"
// @Success 200 {object} record.JobRecord
// @Failure 400 {object} apiError
// @Failure 500 {object} record.JobRecord
// @Router /process-video [post]
func (h *TransformHandler) ProcessVideo(w http.ResponseWriter, r *http.Request) {
	rec, err := decodeRecord(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if rec.VideoPath == "" {
		writeErr(w, http.StatusBadRequest, "video_path is required")
		return
	}

	out := h.svc.Process(r.Context(), rec)
	respond(w, out)

	if out.Status != record.StatusError {
		h.fwd.Forward(r.Context(), out)
	}
}
