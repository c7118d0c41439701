package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"video-pipeline/internal/assemble"
	"video-pipeline/internal/config"
	"video-pipeline/internal/forward"
	"video-pipeline/internal/logging"
	"video-pipeline/internal/repository/postgresql"
	httptransport "video-pipeline/internal/transport/http"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.New("file-assembler")

	outputDir := config.EnvOr("OUTPUT_DIR", "/app/output")
	webhookURL := config.EnvOr("N8N_WEBHOOK_URL", "http://n8n:5678/webhook/files-assembled")
	port := config.EnvOr("PORT", "5004")

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		logger.Fatal().Err(err).Str("dir", outputDir).Msg("create output directory")
	}

	// Optional run log: records completed bundles for later inspection.
	var runLog assemble.RunLogger
	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" {
		pool, err := postgresql.NewPool(ctx, dsn)
		if err != nil {
			logger.Fatal().Err(err).Msg("postgres unavailable")
		}
		defer pool.Close()
		runLog = postgresql.NewRunRepository(pool)
		logger.Info().Msg("pipeline run log enabled")
	}

	svc := assemble.NewService(outputDir, runLog, logger)
	fwd := forward.NewClient(webhookURL, 30*time.Second, logger)
	handler := httptransport.NewAssemblyHandler(svc, fwd)

	router := httptransport.Routes("file-assembler", logger, handler.Register)
	if err := httptransport.Serve(ctx, logger, ":"+port, router); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
