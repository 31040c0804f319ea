// Package executor talks to the remote compile-and-run service.
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"gitlab.com/gradebench.net/internal/config"
	"gitlab.com/gradebench.net/internal/core/ports/primary"
	"gitlab.com/gradebench.net/internal/core/ports/secondary"
	"gitlab.com/gradebench.net/internal/domain"
)

var _ secondary.CodeExecutor = (*HTTPExecutor)(nil)

const maxResponseBytes = 4 << 20

// StatusError is returned for a non-2xx response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// HTTPExecutor posts {language, source, stdin} as JSON and decodes {stdout, stderr}.
// It makes exactly one attempt per call.
type HTTPExecutor struct {
	url    string
	apiKey string
	client *http.Client
	logger primary.Logger
}

// NewHTTPExecutor creates an executor. The transport timeout comes from cfg.
func NewHTTPExecutor(cfg *config.ExecutorConfig, logger primary.Logger) *HTTPExecutor {
	return &HTTPExecutor{
		url:    cfg.Url,
		apiKey: cfg.ApiKey,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

func (e *HTTPExecutor) Execute(ctx context.Context, req domain.ExecutionRequest) (*domain.ExecutionOutput, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal execution request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build execution request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		httpReq.Header.Set("X-Api-Key", e.apiKey)
	}

	resp, err := e.client.Do(httpReq)
	if err != nil {
		e.logger.Error("Execution request failed", "language", req.Language, "error", err)
		return nil, fmt.Errorf("execution request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		e.logger.Warn("Execution service returned non-2xx", "status", resp.StatusCode, "language", req.Language)
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var out domain.ExecutionOutput
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return nil, fmt.Errorf("malformed execution response: %w", err)
	}
	return &out, nil
}
