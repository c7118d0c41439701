// Package caption generates title, description and tags for a processed
// video from its transcript.
package caption

import (
	"context"

	"github.com/rs/zerolog"

	"video-pipeline/internal/record"
)

// Generator exposes the opaque text-generation capability.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Service struct {
	generator Generator
	logger    zerolog.Logger
}

func NewService(generator Generator, logger zerolog.Logger) *Service {
	return &Service{generator: generator, logger: logger}
}

// Generate enriches the record with generated metadata. This stage never
// fails the pipeline: a generation error degrades to the deterministic
// fallback and the record still moves on with status captions_generated.
func (s *Service) Generate(ctx context.Context, rec record.JobRecord) record.JobRecord {
	videoType := string(rec.VideoType)
	if videoType == "" {
		videoType = string(record.TypeStandard)
	}

	var meta Metadata
	prompt := BuildPrompt(rec.Transcript, videoType)

	text, err := s.generator.Complete(ctx, prompt)
	if err != nil {
		s.logger.Warn().Err(err).Str("job_id", rec.JobID).Msg("generation failed, using fallback captions")
		meta = Fallback(videoType, rec.VideoName)
	} else {
		meta = ParseResponse(text, videoType, rec.VideoName)
	}

	rec.Title = meta.Title
	rec.Description = meta.Description
	rec.Tags = meta.Tags
	rec.Status = record.StatusCaptionsGenerated

	s.logger.Info().Str("job_id", rec.JobID).Str("title", meta.Title).
		Int("tags", len(meta.Tags)).Msg("captions generated")
	return rec
}
