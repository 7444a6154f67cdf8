// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the single request/response exchange with the
// prompt backend.
package api

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Configuration constants for the backend endpoint.
const (
	// DefaultEndpoint is the base URL of the backend when none is configured.
	DefaultEndpoint = "http://localhost:3000"

	// Path is the request path of the question endpoint.
	Path = "/api"

	// MaxResponseSize is the maximum accepted response body size.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit
)

// Error variables for the failure paths of a single exchange.
var (
	// ErrDecode indicates the response body was not the expected JSON shape.
	ErrDecode = errors.New("malformed response body")

	// ErrTooLarge indicates the response body exceeded MaxResponseSize.
	ErrTooLarge = errors.New("response too large")

	// ErrStatus indicates a non-2xx HTTP status. StatusError unwraps to it.
	ErrStatus = errors.New("unexpected status")
)

// StatusError reports a non-2xx HTTP status from the backend.
type StatusError struct {
	Status int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned HTTP %d %s", e.Status, http.StatusText(e.Status))
}

// Unwrap lets errors.Is match ErrStatus.
func (e *StatusError) Unwrap() error {
	return ErrStatus
}

// Answer is the parsed backend response.
type Answer struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// askRequest is the JSON body of a question.
type askRequest struct {
	APIKey    string `json:"apiKey"`
	Model     string `json:"model"`
	UserInput string `json:"userInput"`
}

// Asker performs one question/answer exchange.
// A nil Answer means the exchange failed.
type Asker interface {
	Ask(ctx context.Context, apiKey, model, userInput string) *Answer
}

// Client talks to the backend question endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the backend at endpoint.
// An empty endpoint falls back to DefaultEndpoint.
//
// The HTTP client has no timeout: an exchange lasts until the backend answers
// or the context passed to Ask is done.
func NewClient(endpoint string) *Client {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.httpClient = hc
	}
	return c
}

// WithLogger sets the developer log used for diagnostics.
func (c *Client) WithLogger(logger *slog.Logger) *Client {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// Endpoint returns the backend base URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// URL returns the full question URL.
func (c *Client) URL() string {
	return c.endpoint + Path
}

// Ask sends one question and returns the parsed answer, or nil when the
// exchange failed for any reason.
func (c *Client) Ask(ctx context.Context, apiKey, model, userInput string) *Answer {
	log := c.logger.With(
		"requestId", newRequestID(),
		"model", model,
		"key", keyFingerprint(apiKey),
	)

	answer, err := c.ask(ctx, log, askRequest{
		APIKey:    apiKey,
		Model:     model,
		UserInput: userInput,
	})
	if err != nil {
		log.Error("question failed", "error", err)
		return nil
	}

	log.Debug("question answered", "success", answer.Success, "messageLen", len(answer.Message))
	return answer
}

// ask performs the exchange and reports every failure as an error.
func (c *Client) ask(ctx context.Context, log *slog.Logger, body askRequest) (*Answer, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Debug("API request", "method", req.Method, "path", req.URL.Path)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	log.Info("API response", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxResponseSize))
		return nil, &StatusError{Status: resp.StatusCode}
	}

	data, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	var answer Answer
	if err := json.Unmarshal(data, &answer); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &answer, nil
}

// readResponse reads the response body, refusing bodies over MaxResponseSize.
func readResponse(resp *http.Response) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(data)) > MaxResponseSize {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, MaxResponseSize)
	}
	return data, nil
}

// keyFingerprint identifies an API key in logs without exposing any of it.
func keyFingerprint(apiKey string) string {
	if apiKey == "" {
		return "none"
	}
	h := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(h[:4])
}

// newRequestID returns a time-ordered id for correlating log lines.
func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
