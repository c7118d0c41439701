package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"video-pipeline/internal/caption"
	"video-pipeline/internal/config"
	"video-pipeline/internal/forward"
	"video-pipeline/internal/logging"
	httptransport "video-pipeline/internal/transport/http"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.New("ai-caption-agent")

	webhookURL := config.EnvOr("N8N_WEBHOOK_URL", "http://n8n:5678/webhook/captions-generated")
	llmURL := config.EnvOr("LLM_URL", "http://llama:8080")
	port := config.EnvOr("PORT", "5003")

	client := caption.NewClient(caption.Config{
		BaseURL:        llmURL,
		TimeoutSeconds: config.EnvIntOr("LLM_TIMEOUT", 120),
	})

	// Startup liveness check only: once serving, failed generations degrade
	// to fallback captions instead of being retried.
	attempts := config.EnvIntOr("LLM_READY_ATTEMPTS", 30)
	if err := client.WaitReady(ctx, attempts, 2*time.Second); err != nil {
		logger.Warn().Err(err).Str("llm_url", llmURL).
			Msg("generation backend not ready, captions will use fallback content")
	}

	svc := caption.NewService(client, logger)
	fwd := forward.NewClient(webhookURL, 10*time.Second, logger)
	handler := httptransport.NewCaptionHandler(svc, fwd)

	router := httptransport.Routes("ai-caption-agent", logger, handler.Register)
	if err := httptransport.Serve(ctx, logger, ":"+port, router); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
