// Package watch observes the input directory and turns new video files into
// pipeline job records.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"video-pipeline/internal/dedup"
	"video-pipeline/internal/forward"
	"video-pipeline/internal/record"
)

var supportedExtensions = map[string]struct{}{
	".mp4": {}, ".avi": {}, ".mov": {}, ".mkv": {}, ".wmv": {}, ".flv": {}, ".webm": {},
}

// Supported reports whether the path carries a video extension the pipeline
// accepts.
func Supported(path string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

type Watcher struct {
	inputDir      string
	processingDir string
	scanInterval  time.Duration
	marker        dedup.Marker
	forwarder     forward.Forwarder
	logger        zerolog.Logger
}

func New(inputDir, processingDir string, scanInterval time.Duration, marker dedup.Marker, forwarder forward.Forwarder, logger zerolog.Logger) *Watcher {
	if scanInterval <= 0 {
		scanInterval = 30 * time.Second
	}
	return &Watcher{
		inputDir:      inputDir,
		processingDir: processingDir,
		scanInterval:  scanInterval,
		marker:        marker,
		forwarder:     forwarder,
		logger:        logger,
	}
}

// Run watches the input directory until ctx is cancelled. Creation events
// trigger detection immediately; a periodic sweep picks up files that existed
// before start or whose events were missed. Each file is handled in its own
// goroutine so one slow relocation never blocks the others.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(w.inputDir); err != nil {
		return err
	}

	w.logger.Info().Str("input_dir", w.inputDir).Str("processing_dir", w.processingDir).
		Msg("watching for new videos")

	w.Sweep(ctx)

	ticker := time.NewTicker(w.scanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.Sweep(ctx)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create == 0 {
				continue
			}
			go w.Handle(ctx, event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("watcher error")
		}
	}
}

// Sweep scans the input directory once and handles every matching file.
func (w *Watcher) Sweep(ctx context.Context) {
	entries, err := os.ReadDir(w.inputDir)
	if err != nil {
		w.logger.Warn().Err(err).Str("input_dir", w.inputDir).Msg("sweep failed")
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		go w.Handle(ctx, filepath.Join(w.inputDir, entry.Name()))
	}
}

// Handle relocates one detected file into the processing directory and emits
// the initial job record. Detection is single-producer and best-effort: any
// failure is logged and the file is dropped, never retried.
func (w *Watcher) Handle(ctx context.Context, path string) {
	if !Supported(path) {
		return
	}

	info, err := w.waitStable(ctx, path)
	if err != nil {
		w.logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable file")
		return
	}
	if info.IsDir() {
		return
	}

	fresh, err := w.marker.MarkIfNew(ctx, dedup.Key(filepath.Base(path), info.Size()))
	if err != nil {
		// Marker trouble must not stop detection; worst case is a duplicate
		// run that overwrites its own deterministic outputs.
		w.logger.Warn().Err(err).Str("path", path).Msg("dedup marker unavailable")
	} else if !fresh {
		w.logger.Debug().Str("path", path).Msg("already seen, skipping")
		return
	}

	name := filepath.Base(path)
	processingPath := filepath.Join(w.processingDir, name)
	if err := os.Rename(path, processingPath); err != nil {
		w.logger.Error().Err(err).Str("path", path).Msg("relocation failed, dropping file")
		return
	}

	rec := record.JobRecord{
		JobID:     uuid.NewString(),
		VideoPath: processingPath,
		VideoName: name,
		Timestamp: float64(time.Now().UnixNano()) / 1e9,
	}

	w.logger.Info().Str("job_id", rec.JobID).Str("video_name", name).
		Str("video_path", processingPath).Msg("new video detected")

	w.forwarder.Forward(ctx, rec)
}

// waitStable waits for the file size to stop changing before relocation, so
// a file still being copied into the input directory is not moved half-way.
func (w *Watcher) waitStable(ctx context.Context, path string) (os.FileInfo, error) {
	const (
		settle  = 200 * time.Millisecond
		maxWait = 10 * time.Second
	)

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	deadline := time.Now().Add(maxWait)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(settle):
		}

		next, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if next.Size() == info.Size() && next.Size() > 0 {
			return next, nil
		}
		info = next
	}
	return info, nil
}
