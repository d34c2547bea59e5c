package storagemodels

import "time"

// RetryOptions configures the storage-layer retry of throttled requests.
// The load engine never retries; these options only apply inside a backend
// to errors the store itself reports as retryable.
type RetryOptions struct {
	MaxRetries   int           // Retry attempts for transient errors (default: 3)
	RetryBackoff time.Duration // Backoff between retries, multiplied by attempt (default: 100ms)
	PageSize     int32         // Items per page for paged range reads (default: 1000)
	BatchSize    int           // Columns per write request (default: 25)
}

// RetryOption is a functional option for configuring backend requests
type RetryOption func(*RetryOptions)

// DefaultRetryOptions returns default backend request options
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxRetries:   3,
		RetryBackoff: 100 * time.Millisecond,
		PageSize:     1000,
		BatchSize:    25,
	}
}

// WithMaxRetries sets the maximum retry attempts
func WithMaxRetries(retries int) RetryOption {
	return func(opts *RetryOptions) {
		opts.MaxRetries = retries
	}
}

// WithRetryBackoff sets the retry backoff duration
func WithRetryBackoff(backoff time.Duration) RetryOption {
	return func(opts *RetryOptions) {
		opts.RetryBackoff = backoff
	}
}

// WithPageSize sets the page size of paged range reads
func WithPageSize(size int32) RetryOption {
	return func(opts *RetryOptions) {
		opts.PageSize = size
	}
}

// WithBatchSize sets how many columns go into one write request
func WithBatchSize(size int) RetryOption {
	return func(opts *RetryOptions) {
		opts.BatchSize = size
	}
}
