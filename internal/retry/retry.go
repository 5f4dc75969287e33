// Package retry provides a bounded retry executor for a single transient
// failure category. It is parameterized over a retryable-condition predicate
// and a delay schedule rather than tied to any specific call.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mzaleski/jobscout/internal/model"
)

// OverloadSchedule is the backoff used for the model-invocation call:
// three retries, four total attempts.
var OverloadSchedule = []time.Duration{30 * time.Second, 60 * time.Second, 120 * time.Second}

// IsOverloaded reports whether err carries the service-overloaded condition.
func IsOverloaded(err error) bool {
	var overloaded *model.OverloadedError
	return errors.As(err, &overloaded)
}

// Do invokes fn, retrying on errors accepted by retryable with one delay from
// schedule before each retry. Any other error propagates immediately, as does
// the final error once the schedule is exhausted. The waits block the caller;
// cancelling ctx aborts a pending wait.
func Do[T any](
	ctx context.Context,
	logger *slog.Logger,
	schedule []time.Duration,
	retryable func(error) bool,
	fn func(ctx context.Context) (T, error),
) (T, error) {
	var zero T

	result, err := fn(ctx)
	if err == nil {
		return result, nil
	}

	for attempt, delay := range schedule {
		if !retryable(err) {
			return zero, err
		}

		logger.Warn("retrying after transient error",
			"attempt", attempt+1,
			"max_retries", len(schedule),
			"delay", delay,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}

		result, err = fn(ctx)
		if err == nil {
			return result, nil
		}
	}

	return zero, err
}
