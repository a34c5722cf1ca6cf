package main

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"ensScope/internal/history"
)

// withRetry runs fn until it succeeds, doubling the delay between attempts.
// Permanent errors are returned without retrying.
func withRetry(ctx context.Context, logger *zap.Logger, maxRetries int, baseDelay time.Duration, fn func(context.Context) error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = 100 * time.Millisecond
	}

	delay := baseDelay
	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= maxRetries || ctx.Err() != nil || isPermanent(err) {
			return err
		}

		logger.Warn("request failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
	}
}

// isPermanent reports errors that a repeated request cannot fix.
func isPermanent(err error) bool {
	return errors.Is(err, history.ErrInvalidName) ||
		errors.Is(err, history.ErrUnexpectedShape) ||
		errors.Is(err, history.ErrUnknownEventKind) ||
		errors.Is(err, context.Canceled)
}
