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
	"video-pipeline/internal/media/probe"
	"video-pipeline/internal/transform"
	httptransport "video-pipeline/internal/transport/http"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.New("video-processor")

	outputDir := config.EnvOr("OUTPUT_DIR", "/app/output")
	webhookURL := config.EnvOr("N8N_WEBHOOK_URL", "http://n8n:5678/webhook/video-processed")
	port := config.EnvOr("PORT", "5001")

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		logger.Fatal().Err(err).Str("dir", outputDir).Msg("create output directory")
	}

	prober := probe.New(config.EnvOr("FFPROBE_BIN", "ffprobe"))
	runner := ffmpeg.NewRunner(config.EnvOr("FFMPEG_BIN", "ffmpeg"))

	svc := transform.NewService(prober, runner, outputDir, logger)
	fwd := forward.NewClient(webhookURL, 10*time.Second, logger)
	handler := httptransport.NewTransformHandler(svc, fwd)

	router := httptransport.Routes("video-processor", logger, handler.Register)
	if err := httptransport.Serve(ctx, logger, ":"+port, router); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
