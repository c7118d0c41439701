package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const defaultWhisperTimeout = 120 * time.Second

// WhisperClient talks to a whisper-server compatible inference endpoint
// (POST /inference with a multipart WAV upload, verbose JSON response).
type WhisperClient struct {
	baseURL    string
	httpClient *http.Client
}

// WhisperOption customizes the client.
type WhisperOption func(*WhisperClient)

// WithWhisperHTTPClient overrides the default HTTP client.
func WithWhisperHTTPClient(client *http.Client) WhisperOption {
	return func(c *WhisperClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func NewWhisperClient(baseURL string, opts ...WhisperOption) *WhisperClient {
	c := &WhisperClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: defaultWhisperTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type whisperSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type whisperResponse struct {
	Text     string           `json:"text"`
	Language string           `json:"language"`
	Segments []whisperSegment `json:"segments"`
}

// Transcribe uploads the audio file and decodes the timed segments.
func (c *WhisperClient) Transcribe(ctx context.Context, audioPath string) (Result, error) {
	audio, err := os.Open(audioPath)
	if err != nil {
		return Result{}, fmt.Errorf("whisper: open audio: %w", err)
	}
	defer func() { _ = audio.Close() }()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return Result{}, fmt.Errorf("whisper: build request: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return Result{}, fmt.Errorf("whisper: build request: %w", err)
	}
	if err := mw.WriteField("response_format", "verbose_json"); err != nil {
		return Result{}, fmt.Errorf("whisper: build request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return Result{}, fmt.Errorf("whisper: build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/inference", &body)
	if err != nil {
		return Result{}, fmt.Errorf("whisper: build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("whisper: request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("whisper: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("whisper: http %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var decoded whisperResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return Result{}, fmt.Errorf("whisper: decode response: %w", err)
	}

	result := Result{
		Text:     decoded.Text,
		Language: decoded.Language,
		Segments: make([]Segment, 0, len(decoded.Segments)),
	}
	for _, seg := range decoded.Segments {
		result.Segments = append(result.Segments, Segment(seg))
	}
	return result, nil
}
