package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
)

func fastConfig() *RetryConfig {
	return &RetryConfig{
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		MaxElapsedTime:  time.Second,
	}
}

func TestWithRetryEventualSuccess(t *testing.T) {
	attempts := 0
	err := WithRetry(func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	}, fastConfig())

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestWithRetryPermanentError(t *testing.T) {
	attempts := 0
	cause := errors.New("bad request")
	err := WithRetry(func() error {
		attempts++
		return backoff.Permanent(cause)
	}, fastConfig())

	if !errors.Is(err, cause) {
		t.Fatalf("expected the permanent error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("permanent errors must not be retried, got %d attempts", attempts)
	}
}
