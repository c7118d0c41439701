// Package transform probes, classifies and transcodes incoming videos.
package transform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"video-pipeline/internal/media/ffmpeg"
	"video-pipeline/internal/record"
)

// ShortsMaxSeconds is the classification boundary. The boundary itself
// counts as shorts.
const ShortsMaxSeconds = 60.0

// Classify maps a probed duration to a transcoding route.
func Classify(duration float64) record.VideoType {
	if duration <= ShortsMaxSeconds {
		return record.TypeShorts
	}
	return record.TypeStandard
}

// ProfileFor returns the transcode profile for a video type.
func ProfileFor(t record.VideoType) ffmpeg.Profile {
	if t == record.TypeShorts {
		return ffmpeg.Shorts
	}
	return ffmpeg.Standard
}

// Prober exposes the opaque media-inspection capability.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// Transcoder exposes the opaque transcode capability.
type Transcoder interface {
	Transcode(ctx context.Context, p ffmpeg.Profile, inputPath, outputPath string) error
}

type Service struct {
	prober     Prober
	transcoder Transcoder
	outputDir  string
	logger     zerolog.Logger
}

func NewService(prober Prober, transcoder Transcoder, outputDir string, logger zerolog.Logger) *Service {
	return &Service{
		prober:     prober,
		transcoder: transcoder,
		outputDir:  outputDir,
		logger:     logger,
	}
}

// Process enriches the record with duration, classification and the
// processed file location. Capability failures mark the record as failed;
// they are not retried here.
func (s *Service) Process(ctx context.Context, rec record.JobRecord) record.JobRecord {
	videoPath := rec.VideoPath

	duration, err := s.prober.Duration(ctx, videoPath)
	if err != nil {
		s.logger.Error().Err(err).Str("job_id", rec.JobID).Str("video_path", videoPath).
			Msg("duration probe failed")
		return rec.Fail("duration unavailable")
	}

	videoType := Classify(duration)
	profile := ProfileFor(videoType)

	stem := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	outputFilename := fmt.Sprintf("processed_%s.mp4", stem)
	outputPath := filepath.Join(s.outputDir, outputFilename)

	if err := s.transcoder.Transcode(ctx, profile, videoPath, outputPath); err != nil {
		s.logger.Error().Err(err).Str("job_id", rec.JobID).Str("video_type", string(videoType)).
			Msg("transcode failed")
		return rec.Fail(err.Error())
	}
	if _, err := os.Stat(outputPath); err != nil {
		return rec.Fail(fmt.Sprintf("transcode produced no output: %v", err))
	}

	rec.OriginalPath = videoPath
	rec.ProcessedPath = outputPath
	rec.Duration = duration
	rec.VideoType = videoType
	rec.OutputFilename = outputFilename
	rec.Status = record.StatusProcessed
	rec.Error = ""

	s.logger.Info().Str("job_id", rec.JobID).Str("video_type", string(videoType)).
		Float64("duration", duration).Str("processed_path", outputPath).
		Msg("video processed")
	return rec
}
