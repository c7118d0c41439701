package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"video-pipeline/internal/config"
	"video-pipeline/internal/forward"
	"video-pipeline/internal/logging"
	"video-pipeline/internal/media/ffmpeg"
	"video-pipeline/internal/transcribe"
	httptransport "video-pipeline/internal/transport/http"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.New("caption-generator")

	outputDir := config.EnvOr("OUTPUT_DIR", "/app/output")
	webhookURL := config.EnvOr("N8N_WEBHOOK_URL", "http://n8n:5678/webhook/subtitles-generated")
	whisperURL := config.EnvOr("WHISPER_URL", "http://whisper:8080")
	port := config.EnvOr("PORT", "5002")

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		logger.Fatal().Err(err).Str("dir", outputDir).Msg("create output directory")
	}

	runner := ffmpeg.NewRunner(config.EnvOr("FFMPEG_BIN", "ffmpeg"))
	engine := transcribe.NewWhisperClient(whisperURL)

	svc := transcribe.NewService(runner, engine, logger)
	fwd := forward.NewClient(webhookURL, 10*time.Second, logger)
	handler := httptransport.NewTranscriptionHandler(svc, fwd, outputDir)

	router := httptransport.Routes("caption-generator", logger, handler.Register)
	if err := httptransport.Serve(ctx, logger, ":"+port, router); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
