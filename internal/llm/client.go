// Package llm talks to the language-model collaborator. Callers depend on the
// Client interface; HTTPClient speaks the single-endpoint JSON protocol and
// GeminiClient goes through google.golang.org/genai.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// Client sends a prompt and returns the model's text reply.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrEmptyReply is returned when the model answers with no text.
var ErrEmptyReply = errors.New("model returned an empty reply")

// StatusError is a non-2xx answer from the model endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("model endpoint returned %d: %s", e.StatusCode, e.Body)
}

// IsRateLimited reports whether err is an HTTP 429 from either backend.
func IsRateLimited(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests
	}
	return false
}
