package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"video-pipeline/internal/config"
	"video-pipeline/internal/dedup"
	"video-pipeline/internal/forward"
	"video-pipeline/internal/logging"
	httptransport "video-pipeline/internal/transport/http"
	"video-pipeline/internal/watch"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.New("video-scraper")

	inputDir := config.EnvOr("INPUT_DIR", "/app/input")
	processingDir := config.EnvOr("PROCESSING_DIR", "/app/processing")
	webhookURL := config.EnvOr("N8N_WEBHOOK_URL", "http://n8n:5678/webhook/video-detected")
	scanInterval := time.Duration(config.EnvIntOr("SCAN_INTERVAL", 30)) * time.Second
	port := config.EnvOr("PORT", "5000")

	for _, dir := range []string{inputDir, processingDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Fatal().Err(err).Str("dir", dir).Msg("create directory")
		}
	}

	// Duplicate detection: shared via Redis when configured, in-process
	// otherwise.
	dedupTTL := config.EnvDurationOr("DEDUP_TTL", 24*time.Hour)
	var marker dedup.Marker
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Str("redis_addr", addr).Msg("redis unavailable")
		}
		marker = dedup.NewRedisMarker(rdb, dedupTTL)
		logger.Info().Str("redis_addr", addr).Msg("using redis dedup marker")
	} else {
		marker = dedup.NewMemoryMarker(dedupTTL)
	}

	fwd := forward.NewClient(webhookURL, 10*time.Second, logger)
	watcher := watch.New(inputDir, processingDir, scanInterval, marker, fwd, logger)

	go func() {
		if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("watcher stopped")
			stop()
		}
	}()

	router := httptransport.Routes("video-scraper", logger, func(r chi.Router) {
		r.Post("/rescan", func(w http.ResponseWriter, req *http.Request) {
			watcher.Sweep(req.Context())
			w.WriteHeader(http.StatusAccepted)
		})
	})

	if err := httptransport.Serve(ctx, logger, ":"+port, router); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
