// Package retry implements exponential backoff with jitter for transient
// feed failures.
package retry

import (
	"context"
	"math/rand"
	"time"
)

const (
	defaultInitialInterval = time.Second
	defaultMaxInterval     = 30 * time.Second
	defaultMultiplier      = 2.0
	defaultMaxAttempts     = 4
	jitterFactor           = 0.1
)

// Backoff retries a function with exponentially growing pauses.
type Backoff struct {
	// InitialInterval first pause length. Defaults to 1s.
	InitialInterval time.Duration
	// MaxInterval pause ceiling. Defaults to 30s.
	MaxInterval time.Duration
	// Multiplier pause growth factor. Defaults to 2.
	Multiplier float64
	// MaxAttempts total attempts including the first. Defaults to 4.
	MaxAttempts int
}

func (b Backoff) withDefaults() Backoff {
	if b.InitialInterval <= 0 {
		b.InitialInterval = defaultInitialInterval
	}
	if b.MaxInterval <= 0 {
		b.MaxInterval = defaultMaxInterval
	}
	if b.Multiplier <= 1 {
		b.Multiplier = defaultMultiplier
	}
	if b.MaxAttempts <= 0 {
		b.MaxAttempts = defaultMaxAttempts
	}
	return b
}

// Do runs fn until it succeeds, attempts are exhausted, or the context is
// cancelled. The last error is returned.
func (b Backoff) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	b = b.withDefaults()

	var err error
	interval := b.InitialInterval

	for attempt := 0; attempt < b.MaxAttempts; attempt++ {
		if attempt > 0 {
			jitter := (rand.Float64()*2 - 1) * jitterFactor * float64(interval)
			pause := time.Duration(float64(interval) + jitter)
			if pause < 0 {
				pause = 0
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(pause):
			}

			interval = time.Duration(float64(interval) * b.Multiplier)
			if interval > b.MaxInterval {
				interval = b.MaxInterval
			}
		}

		if err = fn(ctx); err == nil {
			return nil
		}
	}

	return err
}
