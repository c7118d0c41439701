package caption

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultCompletionTimeout = 120 * time.Second
	completionTemperature    = 0.7
	completionTopP           = 0.9
	completionMaxTokens      = 512
)

// Config captures the runtime settings required to talk to the generation
// backend (a llama.cpp style completion server).
type Config struct {
	BaseURL        string
	TimeoutSeconds int
}

// Client wraps the completion endpoint of the generation backend.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a completion client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultCompletionTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			BaseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type completionRequest struct {
	Prompt      string   `json:"prompt"`
	Temperature float64  `json:"temperature"`
	TopP        float64  `json:"top_p"`
	NPredict    int      `json:"n_predict"`
	Stop        []string `json:"stop"`
}

type completionResponse struct {
	Content string `json:"content"`
}

// Complete sends the prompt with the pipeline's fixed sampling parameters and
// returns the raw generated text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(completionRequest{
		Prompt:      prompt,
		Temperature: completionTemperature,
		TopP:        completionTopP,
		NPredict:    completionMaxTokens,
		Stop:        []string{"###", "Human:"},
	})
	if err != nil {
		return "", fmt.Errorf("completion: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/completion", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("completion: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion: request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("completion: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion: http %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var decoded completionResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return "", fmt.Errorf("completion: decode response: %w", err)
	}
	text := strings.TrimSpace(decoded.Content)
	if text == "" {
		return "", errors.New("completion: empty response")
	}
	return text, nil
}

// WaitReady polls the backend health endpoint with a fixed sleep between
// bounded attempts. This is a startup liveness check only; requests are never
// retried once the stage is serving.
func (c *Client) WaitReady(ctx context.Context, attempts int, delay time.Duration) error {
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/health", nil)
		if err != nil {
			return fmt.Errorf("completion: build health request: %w", err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			return nil
		}
		lastErr = fmt.Errorf("http %d", resp.StatusCode)
	}
	return fmt.Errorf("completion backend not ready after %d attempts: %w", attempts, lastErr)
}
