// Package forward implements the stage-to-stage webhook hand-off. Hand-off
// is fire-and-forget: one bounded attempt, failures are logged and the record
// is dropped. The producing stage has already committed its own work.
package forward

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"video-pipeline/internal/record"
)

const defaultTimeout = 10 * time.Second

// Forwarder hands an enriched record to the next stage.
type Forwarder interface {
	Forward(ctx context.Context, rec record.JobRecord)
}

// Client posts records to a configured downstream webhook.
type Client struct {
	url        string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewClient(url string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		url:        strings.TrimSpace(url),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Forward posts the record downstream. Errors are logged, never returned:
// there is no durable queue behind this hop and the caller must not block or
// roll back on a failed hand-off.
func (c *Client) Forward(ctx context.Context, rec record.JobRecord) {
	if c.url == "" {
		return
	}

	if err := c.post(ctx, rec); err != nil {
		c.logger.Error().Err(err).Str("job_id", rec.JobID).Str("url", c.url).
			Msg("hand-off failed, record dropped")
		return
	}
	c.logger.Info().Str("job_id", rec.JobID).Str("url", c.url).Msg("record forwarded")
}

func (c *Client) post(ctx context.Context, rec record.JobRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("http %d", resp.StatusCode)
	}
	return nil
}

// Noop discards every record; used when no downstream hop is configured.
type Noop struct{}

func (Noop) Forward(context.Context, record.JobRecord) {}
