package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"video-pipeline/internal/forward"
	"video-pipeline/internal/record"
)

type AssemblyHandler struct {
	svc AssemblyService
	fwd forward.Forwarder
}

func NewAssemblyHandler(svc AssemblyService, fwd forward.Forwarder) *AssemblyHandler {
	return &AssemblyHandler{svc: svc, fwd: fwd}
}

func (h *AssemblyHandler) Register(r chi.Router) {
	r.Post("/assemble-files", h.AssembleFiles)
}

// AssembleFiles godoc
// @Summary Materialize the final output bundle
// @Description Copies every existing artifact into the output folder and writes the metadata and summary documents. Missing artifacts are skipped; partial bundles are valid.
// @Tags pipeline
// @Accept json
// @Produce json
// @Param request body record.JobRecord true "accumulated job record with at least video_name"
// @Success 200 {object} record.JobRecord
// @Failure 400 {object} apiError
// @Failure 500 {object} record.JobRecord
// @Router /assemble-files [post]
func (h *AssemblyHandler) AssembleFiles(w http.ResponseWriter, r *http.Request) {
	rec, err := decodeRecord(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if rec.VideoName == "" {
		writeErr(w, http.StatusBadRequest, "video_name is required")
		return
	}

	out := h.svc.Assemble(r.Context(), rec)
	respond(w, out)

	if out.Status != record.StatusError {
		h.fwd.Forward(r.Context(), out)
	}
}
