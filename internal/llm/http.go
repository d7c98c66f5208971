package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPConfig configures the single-endpoint client.
type HTTPConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// HTTPClient posts {"prompt": ...} to {BaseURL}/{Model} and reads
// result.response from the JSON reply.
type HTTPClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

type completionRequest struct {
	Prompt string `json:"prompt"`
}

type completionResponse struct {
	Result struct {
		Response string `json:"response"`
	} `json:"result"`
}

// maxErrorBody caps how much of a failed response is kept in StatusError.
const maxErrorBody = 512

// NewHTTPClient creates an HTTP model client.
func NewHTTPClient(cfg HTTPConfig) *HTTPClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &HTTPClient{
		endpoint:   strings.TrimRight(cfg.BaseURL, "/") + "/" + strings.TrimLeft(cfg.Model, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Complete sends a prompt and returns the completion.
func (c *HTTPClient) Complete(ctx context.Context, prompt string) (string, error) {
	jsonData, err := json.Marshal(completionRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out completionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if strings.TrimSpace(out.Result.Response) == "" {
		return "", ErrEmptyReply
	}
	return out.Result.Response, nil
}
