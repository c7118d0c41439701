package assemble_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"video-pipeline/internal/assemble"
	"video-pipeline/internal/record"
)

type fakeRunLog struct {
	runs []assemble.Run
}

func (l *fakeRunLog) RecordRun(ctx context.Context, run assemble.Run) error {
	l.runs = append(l.runs, run)
	return nil
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFolderName(t *testing.T) {
	require.Equal(t, "clip", assemble.FolderName("clip.mp4"))
	require.Equal(t, "movie", assemble.FolderName("movie.mov"))
	require.Equal(t, "old", assemble.FolderName("old.avi"))
	require.Equal(t, "clip.mkv", assemble.FolderName("clip.mkv"))
	require.Equal(t, "unknown", assemble.FolderName(""))
}

func TestAssemble_FullBundle(t *testing.T) {
	artifacts := t.TempDir()
	outputDir := t.TempDir()
	runLog := &fakeRunLog{}
	svc := assemble.NewService(outputDir, runLog, zerolog.Nop())

	rec := record.JobRecord{
		JobID:          "j1",
		VideoName:      "clip.mp4",
		OriginalPath:   "/videos/clip.mp4",
		ProcessedPath:  writeFixture(t, artifacts, "processed_clip.mp4", "video-bytes"),
		SRTPath:        writeFixture(t, artifacts, "processed_clip.srt", "1\n..."),
		TranscriptPath: writeFixture(t, artifacts, "processed_clip_transcript.txt", "Hello world."),
		Transcript:     "Hello world.",
		Language:       "en",
		Duration:       45,
		VideoType:      record.TypeShorts,
		Title:          "Great shorts - clip.mp4",
		Description:    "A description.",
		Tags:           []string{"a", "b"},
	}

	out := svc.Assemble(context.Background(), rec)

	require.Equal(t, record.StatusFilesAssembled, out.Status)
	require.Equal(t, filepath.Join(outputDir, "clip"), out.OutputFolder)

	types := make([]string, 0, len(out.Files))
	for _, f := range out.Files {
		types = append(types, f.Type)
		require.FileExists(t, f.Path)
		require.Equal(t, filepath.Base(f.Path), f.Name)
	}
	require.Equal(t, []string{"video", "subtitle", "transcript", "metadata", "captions", "summary"}, types)

	// Copied video keeps content under the final_ name.
	video, err := os.ReadFile(filepath.Join(out.OutputFolder, "final_processed_clip.mp4"))
	require.NoError(t, err)
	require.Equal(t, "video-bytes", string(video))

	// Structured metadata document.
	var meta map[string]any
	raw, err := os.ReadFile(filepath.Join(out.OutputFolder, "youtube_metadata.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &meta))
	require.Equal(t, "Great shorts - clip.mp4", meta["title"])
	require.Equal(t, "shorts", meta["video_type"])
	require.Equal(t, float64(45), meta["duration"])

	// Human-readable captions document.
	captions, err := os.ReadFile(filepath.Join(out.OutputFolder, "video_captions.txt"))
	require.NoError(t, err)
	require.Equal(t, "Title: Great shorts - clip.mp4\n"+
		"Video Type: shorts\n"+
		"Duration: 45 seconds\n\n"+
		"Description:\nA description.\n\n"+
		"Tags: a, b\n", string(captions))

	// Processing summary.
	var summary map[string]any
	raw, err = os.ReadFile(filepath.Join(out.OutputFolder, "processing_summary.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &summary))
	require.Equal(t, "/videos/clip.mp4", summary["original_video"])
	require.Equal(t, "completed", summary["processing_steps"])
	require.Equal(t, float64(len("Hello world.")), summary["transcript_length"])
	require.Equal(t, "en", summary["language"])

	// Run log saw the completed bundle.
	require.Len(t, runLog.runs, 1)
	require.Equal(t, "j1", runLog.runs[0].JobID)
	require.Equal(t, 6, runLog.runs[0].FileCount)
}

func TestAssemble_PartialRecordStillProducesSummary(t *testing.T) {
	outputDir := t.TempDir()
	svc := assemble.NewService(outputDir, nil, zerolog.Nop())

	out := svc.Assemble(context.Background(), record.JobRecord{VideoName: "clip.mp4"})

	require.Equal(t, record.StatusFilesAssembled, out.Status)
	require.Equal(t, filepath.Join(outputDir, "clip"), out.OutputFolder)
	require.Len(t, out.Files, 1)
	require.Equal(t, "summary", out.Files[0].Type)
	require.FileExists(t, out.Files[0].Path)

	var summary map[string]any
	raw, err := os.ReadFile(out.Files[0].Path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &summary))
	require.Equal(t, float64(0), summary["transcript_length"])
	require.Equal(t, "en", summary["language"])
}

func TestAssemble_MissingArtifactsSkipped(t *testing.T) {
	svc := assemble.NewService(t.TempDir(), nil, zerolog.Nop())

	out := svc.Assemble(context.Background(), record.JobRecord{
		VideoName:     "clip.mp4",
		ProcessedPath: "/nope/processed.mp4",
		SRTPath:       "/nope/clip.srt",
	})

	require.Equal(t, record.StatusFilesAssembled, out.Status)
	require.Len(t, out.Files, 1)
	require.Equal(t, "summary", out.Files[0].Type)
}

func TestAssemble_Idempotent(t *testing.T) {
	artifacts := t.TempDir()
	outputDir := t.TempDir()
	svc := assemble.NewService(outputDir, nil, zerolog.Nop())

	rec := record.JobRecord{
		VideoName:     "clip.mp4",
		ProcessedPath: writeFixture(t, artifacts, "processed_clip.mp4", "video-bytes"),
		Title:         "T",
		Description:   "D",
		Tags:          []string{"a"},
	}

	first := svc.Assemble(context.Background(), rec)
	second := svc.Assemble(context.Background(), rec)

	require.Equal(t, first.OutputFolder, second.OutputFolder)
	require.Equal(t, first.Files, second.Files)

	entries, err := os.ReadDir(first.OutputFolder)
	require.NoError(t, err)
	require.Len(t, entries, len(first.Files))
}

func TestAssemble_NoMetadataWithoutTitleAndDescription(t *testing.T) {
	svc := assemble.NewService(t.TempDir(), nil, zerolog.Nop())

	out := svc.Assemble(context.Background(), record.JobRecord{
		VideoName: "clip.mp4",
		Title:     "only a title",
	})

	for _, f := range out.Files {
		require.NotEqual(t, "metadata", f.Type)
		require.NotEqual(t, "captions", f.Type)
	}
}
