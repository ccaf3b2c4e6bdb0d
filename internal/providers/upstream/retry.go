package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/pkg/models"
	"github.com/rs/zerolog/log"
)

// RetryPolicy retries transient upstream failures with exponential backoff
type RetryPolicy struct {
	maxAttempts  int
	initialDelay time.Duration
	maxDelay     time.Duration
}

// NewRetryPolicy creates a new retry policy. maxAttempts below one means a
// single attempt.
func NewRetryPolicy(maxAttempts int, initialDelay time.Duration) *RetryPolicy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryPolicy{
		maxAttempts:  maxAttempts,
		initialDelay: initialDelay,
		maxDelay:     5 * time.Second,
	}
}

// Attempts returns the maximum number of calls Execute makes
func (r *RetryPolicy) Attempts() int {
	if r == nil {
		return 1
	}
	return r.maxAttempts
}

// Execute runs fn until it succeeds, returns a permanent error, the attempts
// run out or ctx is done
func (r *RetryPolicy) Execute(ctx context.Context, fn func() error) error {
	attempts := r.Attempts()
	var lastErr error
	var delay time.Duration
	if r != nil {
		delay = r.initialDelay
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == attempts || !Retryable(err) {
			break
		}

		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", attempts).
			Dur("backoff", delay).
			Msg("retrying upstream call")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return lastErr
		case <-timer.C:
		}

		delay = time.Duration(float64(delay) * 1.5)
		if delay > r.maxDelay {
			delay = r.maxDelay
		}
	}

	if attempts > 1 && Retryable(lastErr) {
		return fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
	}
	return lastErr
}

// Retryable reports whether err is worth another attempt: transport failures,
// rate limiting and server errors. Cancellation is never retried.
func Retryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var fetchErr *models.FetchError
	if !errors.As(err, &fetchErr) {
		return false
	}
	switch {
	case fetchErr.StatusCode == 0:
		return true
	case fetchErr.StatusCode == http.StatusTooManyRequests:
		return true
	default:
		return fetchErr.StatusCode >= 500
	}
}
