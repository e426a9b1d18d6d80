package retry

import (
	"context"
	"time"

	"github.com/tagus/canto-bench/pkg/logging"
)

// Policy configures retry behavior for an operation
type Policy struct {
	InitialInterval    time.Duration
	BackoffCoefficient float64
	MaximumInterval    time.Duration
	MaximumAttempts    int32
}

// DefaultPolicy returns the policy used for knowledge-base HTTP calls
func DefaultPolicy() *Policy {
	return &Policy{
		InitialInterval:    500 * time.Millisecond,
		BackoffCoefficient: 2.0,
		MaximumInterval:    10 * time.Second,
		MaximumAttempts:    3,
	}
}

// Do executes the operation with retries based on the policy. The last
// error is returned once attempts are exhausted; context cancellation
// aborts immediately. A non-positive attempt count still runs the
// operation once.
func Do(ctx context.Context, policy *Policy, logger logging.Logger, operation func() error) error {
	var lastErr error
	interval := policy.InitialInterval

	attempts := policy.MaximumAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := int32(0); attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = operation()
		if lastErr == nil {
			return nil
		}

		if attempt+1 >= attempts {
			break
		}

		logger.Debug(ctx, "Operation failed, scheduling retry", map[string]interface{}{
			"attempt":  attempt + 1,
			"error":    lastErr.Error(),
			"interval": interval.String(),
		})

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}

		interval = time.Duration(float64(interval) * policy.BackoffCoefficient)
		if interval > policy.MaximumInterval {
			interval = policy.MaximumInterval
		}
	}

	return lastErr
}
