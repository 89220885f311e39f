package resilience

import (
	"context"
	"time"
)

// NewRetryConfig builds a RetryConfig from config values; zero values keep
// the defaults.
func NewRetryConfig(maxAttempts, initialBackoffMs, maxBackoffMs int) RetryConfig {
	cfg := DefaultRetryConfig()
	if maxAttempts > 0 {
		cfg.MaxAttempts = maxAttempts
	}
	if initialBackoffMs > 0 {
		cfg.InitialBackoff = time.Duration(initialBackoffMs) * time.Millisecond
	}
	if maxBackoffMs > 0 {
		cfg.MaxBackoff = time.Duration(maxBackoffMs) * time.Millisecond
	}
	return cfg
}

// NewCircuitBreakerConfig builds a CircuitBreakerConfig from config values;
// zero values keep the defaults.
func NewCircuitBreakerConfig(failureThreshold, resetTimeoutSecs int) CircuitBreakerConfig {
	cfg := DefaultCircuitBreakerConfig()
	if failureThreshold > 0 {
		cfg.FailureThreshold = failureThreshold
	}
	if resetTimeoutSecs > 0 {
		cfg.ResetTimeout = time.Duration(resetTimeoutSecs) * time.Second
	}
	return cfg
}

// Guard protects one external service: calls go through its circuit
// breaker, and transient failures are retried inside a single breaker call.
type Guard struct {
	service string
	retry   RetryConfig
	breaker *CircuitBreaker
}

// NewGuard creates a Guard for service. A nil breaker disables the circuit.
func NewGuard(service string, retry RetryConfig, breaker *CircuitBreaker) *Guard {
	return &Guard{service: service, retry: retry, breaker: breaker}
}

// Call runs fn under g. A nil Guard runs fn once.
func Call[T any](ctx context.Context, g *Guard, operation string, fn func(ctx context.Context) (T, error)) (T, error) {
	if g == nil {
		return fn(ctx)
	}

	retry := g.retry
	if retry.OnRetry == nil {
		retry.OnRetry = RetryLogger(g.service, operation)
	}
	withRetry := func(ctx context.Context) (T, error) {
		return DoVal(ctx, retry, fn)
	}

	if g.breaker == nil {
		return withRetry(ctx)
	}
	return ExecuteVal(ctx, g.breaker, withRetry)
}
