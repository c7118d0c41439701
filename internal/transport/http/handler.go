// Package httptransport holds the HTTP boundary of every pipeline stage:
// decode the incoming job record, validate the stage's required input, run
// the enrichment, respond, and hand the record to the next hop.
package httptransport

import (
	"context"
	"encoding/json"
	"net/http"

	"video-pipeline/internal/record"
)

// Service ports, defined here on the consumer side.

type TransformService interface {
	Process(ctx context.Context, rec record.JobRecord) record.JobRecord
}

type TranscriptionService interface {
	GenerateSubtitles(ctx context.Context, rec record.JobRecord, targetPath, outputDir string) record.JobRecord
}

type CaptionService interface {
	Generate(ctx context.Context, rec record.JobRecord) record.JobRecord
}

type AssemblyService interface {
	Assemble(ctx context.Context, rec record.JobRecord) record.JobRecord
}

// decodeRecord reads the request body into a JobRecord, tolerating any
// superset of the fields a stage requires.
func decodeRecord(r *http.Request) (record.JobRecord, error) {
	var rec record.JobRecord
	err := json.NewDecoder(r.Body).Decode(&rec)
	return rec, err
}

// respond writes the enriched record: 200 on success, 500 when the stage
// marked it failed. The error body carries the full record, a superset of
// {"error": <message>}.
func respond(w http.ResponseWriter, rec record.JobRecord) {
	code := http.StatusOK
	if rec.Status == record.StatusError {
		code = http.StatusInternalServerError
	}
	writeJSON(w, code, rec)
}
