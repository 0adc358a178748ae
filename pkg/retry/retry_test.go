package retry

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestDoSucceedsAfterTransientFailures(t *testing.T) {
	b := Backoff{InitialInterval: time.Millisecond, MaxAttempts: 4}

	attempts := 0
	err := b.Do(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	require.Equal(t, 3, attempts)
}

func TestDoReturnsLastErrorWhenExhausted(t *testing.T) {
	b := Backoff{InitialInterval: time.Millisecond, MaxAttempts: 3}

	wantErr := errors.New("still broken")
	attempts := 0
	err := b.Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return wantErr
	})

	require.Equal(t, wantErr, err)
	require.Equal(t, 3, attempts)
}

func TestDoStopsOnContextCancel(t *testing.T) {
	b := Backoff{InitialInterval: time.Hour, MaxAttempts: 5}

	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	done := make(chan error, 1)
	go func() {
		done <- b.Do(ctx, func(ctx context.Context) error {
			attempts++
			return errors.New("transient")
		})
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, 1, attempts, "cancel during the pause must prevent the next attempt")
	case <-time.After(time.Second):
		t.Fatal("Do did not return after context cancellation")
	}
}

func TestDoRunsOnceOnImmediateSuccess(t *testing.T) {
	var b Backoff // zero value picks up defaults

	attempts := 0
	err := b.Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	require.Equal(t, 1, attempts)
}
