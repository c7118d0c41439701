package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"video-pipeline/internal/forward"
	"video-pipeline/internal/record"
)

type TranscriptionHandler struct {
	svc       TranscriptionService
	fwd       forward.Forwarder
	outputDir string
}

func NewTranscriptionHandler(svc TranscriptionService, fwd forward.Forwarder, outputDir string) *TranscriptionHandler {
	return &TranscriptionHandler{svc: svc, fwd: fwd, outputDir: outputDir}
}

func (h *TranscriptionHandler) Register(r chi.Router) {
	r.Post("/generate-subtitles", h.GenerateSubtitles)
}

// GenerateSubtitles godoc
// @Summary Transcribe a video and write SRT and transcript artifacts
// @Description Target selection happens here: the processed file when the transform stage ran, otherwise the original upload.
// @Tags pipeline
// @Accept json
// @Produce json
// @Param request body record.JobRecord true "job record with processed_path or video_path"
// @Success 200 {object} record.JobRecord
// @Failure 400 {object} apiError
// @Failure 500 {object} record.JobRecord
// @Router /generate-subtitles [post]
func (h *TranscriptionHandler) GenerateSubtitles(w http.ResponseWriter, r *http.Request) {
	rec, err := decodeRecord(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	target := rec.TargetPath()
	if target == "" {
		writeErr(w, http.StatusBadRequest, "processed_path or video_path is required")
		return
	}

	out := h.svc.GenerateSubtitles(r.Context(), rec, target, h.outputDir)
	respond(w, out)

	if out.Status != record.StatusError {
		h.fwd.Forward(r.Context(), out)
	}
}
