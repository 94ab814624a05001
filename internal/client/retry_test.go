package client

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUnavailable = errors.New("503 service unavailable")

func noJitter(time.Duration) time.Duration { return 0 }

func TestRetryPermanent(t *testing.T) {
	t.Run("unwrapped_and_not_retried", func(t *testing.T) {
		attempts := 0
		apiErr := &APIError{Status: 422, Message: "invalid reading"}

		err := Retry(context.Background(), DefaultRetryPolicy(), func() error {
			attempts++
			return Permanent(apiErr)
		})

		assert.Equal(t, 1, attempts)
		var got *APIError
		require.True(t, errors.As(err, &got))
		assert.Same(t, apiErr, got, "the caller sees the original error, not the marker")
	})

	t.Run("found_through_wrapping", func(t *testing.T) {
		attempts := 0
		err := Retry(context.Background(), DefaultRetryPolicy(), func() error {
			attempts++
			return fmt.Errorf("submit: %w", Permanent(errUnavailable))
		})

		assert.Equal(t, 1, attempts)
		assert.ErrorIs(t, err, errUnavailable)
	})

	t.Run("nil_stays_nil", func(t *testing.T) {
		assert.NoError(t, Permanent(nil))
	})

	t.Run("after_transient_failures", func(t *testing.T) {
		attempts := 0
		policy := RetryPolicy{MaxRetries: 5, BaseBackoff: time.Millisecond, JitterFn: noJitter}

		err := Retry(context.Background(), policy, func() error {
			attempts++
			if attempts < 3 {
				return errUnavailable
			}
			return Permanent(errors.New("404 not found"))
		})

		assert.EqualError(t, err, "404 not found")
		assert.Equal(t, 3, attempts)
	})
}

func TestRetryGivesUpWithLastError(t *testing.T) {
	attempts := 0
	policy := RetryPolicy{MaxRetries: 2, BaseBackoff: time.Millisecond, JitterFn: noJitter}

	err := Retry(context.Background(), policy, func() error {
		attempts++
		return fmt.Errorf("attempt %d: %w", attempts, errUnavailable)
	})

	assert.Equal(t, 3, attempts, "first try plus MaxRetries")
	assert.ErrorIs(t, err, errUnavailable)
	assert.Contains(t, err.Error(), "attempt 3")
}

func TestRetryZeroRetriesTriesOnce(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), RetryPolicy{}, func() error {
		attempts++
		return errUnavailable
	})

	assert.ErrorIs(t, err, errUnavailable)
	assert.Equal(t, 1, attempts)
}

func TestRetryBackoffDoubles(t *testing.T) {
	var seen []time.Duration
	policy := RetryPolicy{
		MaxRetries:  3,
		BaseBackoff: time.Millisecond,
		JitterFn: func(d time.Duration) time.Duration {
			seen = append(seen, d)
			return 0
		},
	}

	_ = Retry(context.Background(), policy, func() error { return errUnavailable })

	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond}, seen)
}

func TestRetryWithoutMaxBackoffIsUncapped(t *testing.T) {
	policy := RetryPolicy{
		MaxRetries:  2,
		BaseBackoff: 20 * time.Millisecond,
		MaxBackoff:  0,
		JitterFn:    noJitter,
	}
	start := time.Now()

	_ = Retry(context.Background(), policy, func() error { return errUnavailable })

	// 20ms then 40ms; a zero cap would have skipped both waits
	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
}

func TestRetryCancelledWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := RetryPolicy{MaxRetries: 3, BaseBackoff: time.Hour, JitterFn: noJitter}

	attempts := 0
	done := make(chan error, 1)
	go func() {
		done <- Retry(ctx, policy, func() error {
			attempts++
			return errUnavailable
		})
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	case <-time.After(time.Second):
		t.Fatal("retry kept waiting after cancellation")
	}
}
