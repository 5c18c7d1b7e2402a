package llm

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"career-backend/internal/shared/telemetry"
)

// DefaultRetryDelay is the pause before the single retry attempt.
const DefaultRetryDelay = 300 * time.Millisecond

type retryingClient struct {
	base  Client
	delay time.Duration
}

// NewRetrying wraps base so that transient transport failures are retried once.
func NewRetrying(base Client, delay time.Duration) Client {
	if base == nil {
		return nil
	}
	if delay <= 0 {
		delay = DefaultRetryDelay
	}
	return retryingClient{base: base, delay: delay}
}

func (r retryingClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	out, err := r.base.Complete(ctx, system, prompt)
	if err == nil || !ShouldRetry(err) {
		return out, err
	}

	telemetry.Warn("llm.retry", map[string]any{
		"attempt": 1,
		"error":   err.Error(),
	})
	timer := time.NewTimer(r.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	return r.base.Complete(ctx, system, prompt)
}

// ShouldRetry reports whether err looks like a transient provider or network failure.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrNotImplemented) {
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
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "server_error") {
		return true
	}
	if strings.Contains(msg, "http status 429") {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "unexpected eof") {
		return true
	}
	return false
}
