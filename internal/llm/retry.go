package llm

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"farmai-backend/internal/shared/metrics"
	"farmai-backend/internal/shared/telemetry"
)

const retryBaseDelay = 300 * time.Millisecond

type retryingClient struct {
	base  Client
	delay time.Duration
}

// WithRetry wraps base with a single delayed retry on transient failures.
// Every attempt is counted in the LLM metrics under the context's operation.
func WithRetry(base Client) Client {
	if base == nil {
		return nil
	}
	return retryingClient{base: base, delay: retryBaseDelay}
}

func (r retryingClient) Generate(ctx context.Context, prompt string) (string, error) {
	op := OperationFromContext(ctx)

	out, err := r.attempt(ctx, op, prompt)
	if err == nil || !ShouldRetry(err) {
		return out, err
	}

	telemetry.Warn("llm.retry", map[string]any{
		"operation": op,
		"attempt":   1,
		"error":     err,
	})
	select {
	case <-time.After(r.delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return r.attempt(ctx, op, prompt)
}

func (r retryingClient) attempt(ctx context.Context, op, prompt string) (string, error) {
	metrics.IncLLMRequest(op)
	out, err := r.base.Generate(ctx, prompt)
	if err != nil {
		metrics.IncLLMFailure(op)
	}
	return out, err
}

// ShouldRetry reports whether err looks transient.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotConfigured) || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "eof") {
		return true
	}
	return false
}
