// Package transcribe turns processed videos into subtitle and transcript
// artifacts via an external speech-to-text engine.
package transcribe

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"video-pipeline/internal/record"
)

// Segment is one timed piece of recognized speech.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Result is the full output of one transcription run. Segments arrive in
// playback order and are consumed exactly once.
type Result struct {
	Text     string    `json:"text"`
	Language string    `json:"language"`
	Segments []Segment `json:"segments"`
}

// Transcriber exposes the opaque speech-to-text capability.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (Result, error)
}

// AudioExtractor produces the intermediate WAV the engine consumes.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, inputPath, outputPath string) error
}

type Service struct {
	extractor AudioExtractor
	engine    Transcriber
	logger    zerolog.Logger
}

func NewService(extractor AudioExtractor, engine Transcriber, logger zerolog.Logger) *Service {
	return &Service{extractor: extractor, engine: engine, logger: logger}
}

// GenerateSubtitles extracts audio from targetPath, transcribes it and writes
// the SRT and plain-transcript artifacts into outputDir. The temporary audio
// file is removed on every exit path; it is the one large intermediate the
// stage must never leak.
func (s *Service) GenerateSubtitles(ctx context.Context, rec record.JobRecord, targetPath, outputDir string) record.JobRecord {
	audioFile, err := os.CreateTemp(outputDir, "temp_audio_*.wav")
	if err != nil {
		return rec.Fail("create temp audio: " + err.Error())
	}
	audioPath := audioFile.Name()
	_ = audioFile.Close()
	defer func() {
		// Idempotent cleanup: absence is fine.
		_ = os.Remove(audioPath)
	}()

	if err := s.extractor.ExtractAudio(ctx, targetPath, audioPath); err != nil {
		s.logger.Error().Err(err).Str("job_id", rec.JobID).Msg("audio extraction failed")
		return rec.Fail("audio extraction: " + err.Error())
	}

	result, err := s.engine.Transcribe(ctx, audioPath)
	if err != nil {
		s.logger.Error().Err(err).Str("job_id", rec.JobID).Msg("transcription failed")
		return rec.Fail("transcription: " + err.Error())
	}

	stem := strings.TrimSuffix(filepath.Base(targetPath), filepath.Ext(targetPath))

	srtPath := filepath.Join(outputDir, stem+".srt")
	srtFile, err := os.Create(srtPath)
	if err != nil {
		return rec.Fail("write srt: " + err.Error())
	}
	if err := WriteSRT(srtFile, result.Segments); err != nil {
		_ = srtFile.Close()
		return rec.Fail("write srt: " + err.Error())
	}
	if err := srtFile.Close(); err != nil {
		return rec.Fail("write srt: " + err.Error())
	}

	transcriptPath := filepath.Join(outputDir, stem+"_transcript.txt")
	if err := os.WriteFile(transcriptPath, []byte(result.Text), 0o644); err != nil {
		return rec.Fail("write transcript: " + err.Error())
	}

	language := strings.TrimSpace(result.Language)
	if language == "" {
		language = "en"
	}

	rec.SRTPath = srtPath
	rec.TranscriptPath = transcriptPath
	rec.Transcript = result.Text
	rec.Language = language
	rec.Status = record.StatusSubtitlesGenerated
	rec.Error = ""

	s.logger.Info().Str("job_id", rec.JobID).Str("srt_path", srtPath).
		Int("segments", len(result.Segments)).Str("language", language).
		Msg("subtitles generated")
	return rec
}
