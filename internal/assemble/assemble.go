// Package assemble collects every artifact a pipeline run produced into the
// final output bundle.
package assemble

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"video-pipeline/internal/record"
)

const (
	metadataFilename = "youtube_metadata.json"
	captionsFilename = "video_captions.txt"
	summaryFilename  = "processing_summary.json"
)

// Run is one completed assembly, as recorded in the optional run log.
type Run struct {
	JobID        string
	VideoName    string
	VideoType    string
	Duration     float64
	OutputFolder string
	FileCount    int
	Status       string
}

// RunLogger records completed runs for later inspection. Implementations must
// be safe for concurrent use.
type RunLogger interface {
	RecordRun(ctx context.Context, run Run) error
}

type Service struct {
	outputDir string
	runLog    RunLogger // optional
	logger    zerolog.Logger
}

func NewService(outputDir string, runLog RunLogger, logger zerolog.Logger) *Service {
	return &Service{outputDir: outputDir, runLog: runLog, logger: logger}
}

var extensionStripper = strings.NewReplacer(".mp4", "", ".mov", "", ".avi", "")

// FolderName derives the bundle folder name from the original video name by
// stripping known video extensions.
func FolderName(videoName string) string {
	name := extensionStripper.Replace(videoName)
	if name == "" {
		return "unknown"
	}
	return name
}

// Assemble materializes the output bundle: copied artifacts, the two caption
// documents when metadata is present, and always a processing summary.
// Missing artifact sources are skipped, not errors — partial bundles are
// valid when upstream stages partially failed. Writes are best-effort; a
// failure mid-way leaves earlier files in place.
func (s *Service) Assemble(ctx context.Context, rec record.JobRecord) record.JobRecord {
	folder := filepath.Join(s.outputDir, FolderName(rec.VideoName))
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return rec.Fail("create output folder: " + err.Error())
	}

	files := make([]record.FileEntry, 0, 6)

	if rec.ProcessedPath != "" {
		if dest, err := copyInto(rec.ProcessedPath, folder, "final_"+filepath.Base(rec.ProcessedPath)); err == nil {
			files = append(files, record.FileEntry{Type: "video", Path: dest, Name: filepath.Base(dest)})
		}
	}
	if rec.SRTPath != "" {
		if dest, err := copyInto(rec.SRTPath, folder, filepath.Base(rec.SRTPath)); err == nil {
			files = append(files, record.FileEntry{Type: "subtitle", Path: dest, Name: filepath.Base(dest)})
		}
	}
	if rec.TranscriptPath != "" {
		if dest, err := copyInto(rec.TranscriptPath, folder, filepath.Base(rec.TranscriptPath)); err == nil {
			files = append(files, record.FileEntry{Type: "transcript", Path: dest, Name: filepath.Base(dest)})
		}
	}

	if rec.Title != "" && rec.Description != "" {
		metadataPath := filepath.Join(folder, metadataFilename)
		if err := writeMetadata(metadataPath, rec); err != nil {
			return rec.Fail("write metadata: " + err.Error())
		}
		files = append(files, record.FileEntry{Type: "metadata", Path: metadataPath, Name: metadataFilename})

		captionsPath := filepath.Join(folder, captionsFilename)
		if err := writeCaptions(captionsPath, rec); err != nil {
			return rec.Fail("write captions: " + err.Error())
		}
		files = append(files, record.FileEntry{Type: "captions", Path: captionsPath, Name: captionsFilename})
	}

	summaryPath := filepath.Join(folder, summaryFilename)
	if err := writeSummary(summaryPath, rec); err != nil {
		return rec.Fail("write summary: " + err.Error())
	}
	files = append(files, record.FileEntry{Type: "summary", Path: summaryPath, Name: summaryFilename})

	rec.OutputFolder = folder
	rec.Files = files
	rec.Status = record.StatusFilesAssembled
	rec.Error = ""

	s.logger.Info().Str("job_id", rec.JobID).Str("output_folder", folder).
		Int("files", len(files)).Msg("bundle assembled")

	if s.runLog != nil {
		run := Run{
			JobID:        rec.JobID,
			VideoName:    rec.VideoName,
			VideoType:    string(rec.VideoType),
			Duration:     rec.Duration,
			OutputFolder: folder,
			FileCount:    len(files),
			Status:       string(rec.Status),
		}
		if err := s.runLog.RecordRun(ctx, run); err != nil {
			// The run log is observability only; it never fails the stage.
			s.logger.Warn().Err(err).Str("job_id", rec.JobID).Msg("run log write failed")
		}
	}

	return rec
}

// copyInto copies src into the folder under name, preserving mode and
// modification time. A missing source reports an error the caller ignores.
func copyInto(src, folder, name string) (string, error) {
	info, err := os.Stat(src)
	if err != nil {
		return "", err
	}

	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer func() { _ = in.Close() }()

	dest := filepath.Join(folder, name)
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	_ = os.Chtimes(dest, info.ModTime(), info.ModTime())
	return dest, nil
}

type videoMetadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	VideoType   string   `json:"video_type"`
	Duration    float64  `json:"duration"`
}

func writeMetadata(path string, rec record.JobRecord) error {
	videoType := string(rec.VideoType)
	if videoType == "" {
		videoType = string(record.TypeStandard)
	}
	tags := rec.Tags
	if tags == nil {
		tags = []string{}
	}
	return writeJSON(path, videoMetadata{
		Title:       rec.Title,
		Description: rec.Description,
		Tags:        tags,
		VideoType:   videoType,
		Duration:    rec.Duration,
	})
}

func writeCaptions(path string, rec record.JobRecord) error {
	videoType := string(rec.VideoType)
	if videoType == "" {
		videoType = string(record.TypeStandard)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", rec.Title)
	fmt.Fprintf(&b, "Video Type: %s\n", videoType)
	fmt.Fprintf(&b, "Duration: %s seconds\n\n", strconv.FormatFloat(rec.Duration, 'g', -1, 64))
	fmt.Fprintf(&b, "Description:\n%s\n\n", rec.Description)
	fmt.Fprintf(&b, "Tags: %s\n", strings.Join(rec.Tags, ", "))

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

type processingSummary struct {
	OriginalVideo    string  `json:"original_video"`
	VideoType        string  `json:"video_type"`
	Duration         float64 `json:"duration"`
	ProcessingSteps  string  `json:"processing_steps"`
	TranscriptLength int     `json:"transcript_length"`
	Language         string  `json:"language"`
}

func writeSummary(path string, rec record.JobRecord) error {
	language := rec.Language
	if language == "" {
		language = "en"
	}
	return writeJSON(path, processingSummary{
		OriginalVideo:    rec.OriginalPath,
		VideoType:        string(rec.VideoType),
		Duration:         rec.Duration,
		ProcessingSteps:  "completed",
		TranscriptLength: len(rec.Transcript),
		Language:         language,
	})
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
