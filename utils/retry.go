package utils

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryConfig holds configuration for retry operations
type RetryConfig struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultRetryConfig returns the retry configuration used for remote model
// calls: short intervals, bounded overall so a flaky API cannot stall a batch.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		MaxElapsedTime:  15 * time.Second,
	}
}

// WithRetry executes an operation with retry logic using exponential backoff.
// Wrap an error in backoff.Permanent to abort retrying immediately.
func WithRetry(operation func() error, config *RetryConfig) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = config.InitialInterval
	b.MaxInterval = config.MaxInterval
	b.MaxElapsedTime = config.MaxElapsedTime

	return backoff.Retry(operation, b)
}
