// Package llmclient implements the backend probe capability over
// OpenAI-compatible HTTP APIs.
package llmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"modelgate/internal/health"
)

// probePrompt is the representative payload sent to exercise a backend.
const probePrompt = "test from modelgate"

// maxErrorBody bounds how much of an error response is kept for diagnostics.
const maxErrorBody = 2 * 1024

// Client issues one probe request per call. Deadlines are carried by the
// caller's context; the client itself never retries.
type Client struct {
	httpClient *http.Client
}

var _ health.Backend = (*Client)(nil)

// New creates a probe client. The zero timeout http.Client is intentional:
// the prober bounds every call through its context.
func New() *Client {
	return &Client{httpClient: &http.Client{}}
}

// Probe sends one representative request appropriate to the endpoint's mode.
func (c *Client) Probe(ctx context.Context, ep health.Endpoint) error {
	base := strings.TrimRight(ep.Params["api_base"], "/")
	if base == "" {
		return fmt.Errorf("endpoint %s: missing api_base", ep.Model)
	}

	model := ep.Params["model"]
	if model == "" {
		model = ep.Model
	}

	path, body := probeRequest(ep.Mode, model)

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal probe body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create probe request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey := ep.Params["api_key"]; apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return fmt.Errorf("%s returned status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(detail)))
}

// probeRequest maps a probe mode to its API path and minimal payload.
func probeRequest(mode health.ProbeMode, model string) (string, map[string]any) {
	switch mode {
	case health.ModeCompletion:
		return "/completions", map[string]any{
			"model":      model,
			"prompt":     probePrompt,
			"max_tokens": 1,
		}
	case health.ModeEmbedding:
		return "/embeddings", map[string]any{
			"model": model,
			"input": []string{probePrompt},
		}
	case health.ModeRerank:
		return "/rerank", map[string]any{
			"model":     model,
			"query":     probePrompt,
			"documents": []string{probePrompt},
		}
	default: // chat
		return "/chat/completions", map[string]any{
			"model": model,
			"messages": []map[string]string{
				{"role": "user", "content": probePrompt},
			},
			"max_tokens": 1,
		}
	}
}
