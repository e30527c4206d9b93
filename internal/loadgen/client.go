package loadgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/phomva/internal/adapters/payload"
	"github.com/okian/phomva/internal/domain/event"
)

// httpClient wraps http.Client for the phomva API.
type httpClient struct {
	client  *http.Client
	baseURL string
}

func newHTTPClient(baseURL string, timeout time.Duration) *httpClient {
	return &httpClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

func (c *httpClient) get(ctx context.Context, path string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

func (c *httpClient) post(ctx context.Context, path string, body, out any) (int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *httpClient) do(req *http.Request, out any) (int, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || out == nil {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp.StatusCode, nil
}

func (c *httpClient) requiredInputs(ctx context.Context) ([]event.Input, error) {
	var resp struct {
		Inputs []event.Input `json:"inputs"`
	}
	status, err := c.get(ctx, "/v1/inputs", &resp)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("GET /v1/inputs returned status %d", status)
	}
	return resp.Inputs, nil
}

type scoreResponse struct {
	Scores []struct {
		Key   string  `json:"key"`
		Value float64 `json:"value"`
	} `json:"scores"`
}

func (c *httpClient) score(ctx context.Context, b *payload.Batch) (int, int, error) {
	var resp scoreResponse
	status, err := c.post(ctx, "/v1/score", b, &resp)
	return status, len(resp.Scores), err
}
