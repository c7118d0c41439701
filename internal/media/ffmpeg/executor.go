// Package ffmpeg builds and runs ffmpeg invocations for the pipeline's
// transcode and audio-extraction steps.
package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes ffmpeg with captured stderr so failures carry the tool's
// own diagnostic instead of a bare exit code.
type Runner struct {
	binary string
}

func NewRunner(binary string) *Runner {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Runner{binary: binary}
}

func (r *Runner) Run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, r.binary, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("ffmpeg: %w", err)
		}
		return fmt.Errorf("ffmpeg: %w: %s", err, msg)
	}
	return nil
}

// Transcode runs one profile transcode from inputPath to outputPath.
func (r *Runner) Transcode(ctx context.Context, p Profile, inputPath, outputPath string) error {
	return r.Run(ctx, BuildTranscode(p, inputPath, outputPath))
}

// ExtractAudio produces the mono 16 kHz WAV used for transcription.
func (r *Runner) ExtractAudio(ctx context.Context, inputPath, outputPath string) error {
	return r.Run(ctx, BuildAudioExtract(inputPath, outputPath))
}
