package llm

import (
	"context"
	"time"

	"github.com/kezzyngotho/aura/pkg/retry"
)

type retryingClient struct {
	next   Client
	policy retry.Policy
}

// WithRetry wraps next so rate-limited calls are retried up to maxRetries
// times, waiting delay*attempt between tries. Any other error is returned
// immediately.
func WithRetry(next Client, maxRetries int, delay time.Duration) Client {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &retryingClient{
		next: next,
		policy: retry.Policy{
			MaxAttempts: maxRetries + 1,
			Delay:       retry.Linear(delay),
			ShouldRetry: IsRateLimited,
		},
	}
}

func (c *retryingClient) Complete(ctx context.Context, prompt string) (string, error) {
	return retry.DoValue(ctx, c.policy, func(ctx context.Context) (string, error) {
		return c.next.Complete(ctx, prompt)
	})
}
