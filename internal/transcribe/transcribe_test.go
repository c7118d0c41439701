package transcribe_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"video-pipeline/internal/record"
	"video-pipeline/internal/transcribe"
)

// ---- fakes ----

type fakeExtractor struct {
	err       error
	audioPath string
}

func (e *fakeExtractor) ExtractAudio(ctx context.Context, inputPath, outputPath string) error {
	e.audioPath = outputPath
	if e.err != nil {
		return e.err
	}
	return os.WriteFile(outputPath, []byte("RIFFwav"), 0o644)
}

type fakeEngine struct {
	result transcribe.Result
	err    error
}

func (e *fakeEngine) Transcribe(ctx context.Context, audioPath string) (transcribe.Result, error) {
	if e.err != nil {
		return transcribe.Result{}, e.err
	}
	return e.result, nil
}

// ---- tests ----

func TestGenerateSubtitles(t *testing.T) {
	outputDir := t.TempDir()
	extractor := &fakeExtractor{}
	engine := &fakeEngine{result: transcribe.Result{
		Text:     "Hello world. Second line.",
		Language: "de",
		Segments: []transcribe.Segment{
			{Start: 0, End: 2, Text: " Hello world. "},
			{Start: 2, End: 4.5, Text: "Second line."},
		},
	}}

	svc := transcribe.NewService(extractor, engine, zerolog.Nop())
	out := svc.GenerateSubtitles(context.Background(), record.JobRecord{JobID: "j1"}, "/videos/processed_clip.mp4", outputDir)

	require.Equal(t, record.StatusSubtitlesGenerated, out.Status)
	require.Equal(t, filepath.Join(outputDir, "processed_clip.srt"), out.SRTPath)
	require.Equal(t, filepath.Join(outputDir, "processed_clip_transcript.txt"), out.TranscriptPath)
	require.Equal(t, "Hello world. Second line.", out.Transcript)
	require.Equal(t, "de", out.Language)

	srt, err := os.ReadFile(out.SRTPath)
	require.NoError(t, err)
	require.Equal(t, "1\n00:00:00,000 --> 00:00:02,000\nHello world.\n\n2\n00:00:02,000 --> 00:00:04,500\nSecond line.\n\n", string(srt))

	transcript, err := os.ReadFile(out.TranscriptPath)
	require.NoError(t, err)
	require.Equal(t, "Hello world. Second line.", string(transcript))

	// The temporary audio file must be gone on the success path.
	require.NoFileExists(t, extractor.audioPath)
}

func TestGenerateSubtitles_DefaultsLanguage(t *testing.T) {
	engine := &fakeEngine{result: transcribe.Result{Text: "hi"}}
	svc := transcribe.NewService(&fakeExtractor{}, engine, zerolog.Nop())

	out := svc.GenerateSubtitles(context.Background(), record.JobRecord{}, "/videos/clip.mp4", t.TempDir())

	require.Equal(t, record.StatusSubtitlesGenerated, out.Status)
	require.Equal(t, "en", out.Language)
}

func TestGenerateSubtitles_ExtractionFailureCleansUp(t *testing.T) {
	outputDir := t.TempDir()
	extractor := &fakeExtractor{err: errors.New("no audio stream")}
	svc := transcribe.NewService(extractor, &fakeEngine{}, zerolog.Nop())

	out := svc.GenerateSubtitles(context.Background(), record.JobRecord{}, "/videos/clip.mp4", outputDir)

	require.Equal(t, record.StatusError, out.Status)
	require.Contains(t, out.Error, "audio extraction")
	require.NoFileExists(t, extractor.audioPath)
}

func TestGenerateSubtitles_EngineFailureCleansUp(t *testing.T) {
	outputDir := t.TempDir()
	extractor := &fakeExtractor{}
	svc := transcribe.NewService(extractor, &fakeEngine{err: errors.New("model crashed")}, zerolog.Nop())

	out := svc.GenerateSubtitles(context.Background(), record.JobRecord{}, "/videos/clip.mp4", outputDir)

	require.Equal(t, record.StatusError, out.Status)
	require.Contains(t, out.Error, "transcription")
	require.NoFileExists(t, extractor.audioPath)

	// No artifacts were produced.
	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	require.Empty(t, entries)
}
