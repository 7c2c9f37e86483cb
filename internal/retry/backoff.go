package retry

import (
	"math"
	"math/rand"
	"time"
)

// Backoff computes exponentially growing delays between retry attempts,
// with jitter to avoid synchronized retries across processes.
type Backoff struct {
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64

	// maxAttempts is the number of retries after the initial attempt
	// (-1 = unlimited, 0 = no retries).
	maxAttempts int

	// jitter spreads each delay by +/- jitter*100 percent.
	jitter float64

	// jitterFunc provides random values in [0, 1). Tests set this to a
	// deterministic function; production falls back to rand.Float64.
	jitterFunc func() float64
}

// BackoffOption configures a Backoff.
type BackoffOption func(*Backoff)

// WithInitialDelay sets the delay before the first retry.
func WithInitialDelay(d time.Duration) BackoffOption {
	return func(b *Backoff) { b.initialDelay = d }
}

// WithMaxDelay caps the delay between attempts.
func WithMaxDelay(d time.Duration) BackoffOption {
	return func(b *Backoff) { b.maxDelay = d }
}

// WithMultiplier sets the factor by which the delay grows per attempt.
func WithMultiplier(m float64) BackoffOption {
	return func(b *Backoff) { b.multiplier = m }
}

// WithJitter sets the jitter factor (0.0-1.0).
func WithJitter(j float64) BackoffOption {
	return func(b *Backoff) { b.jitter = j }
}

// WithJitterFunc sets the random source used for jitter.
func WithJitterFunc(f func() float64) BackoffOption {
	return func(b *Backoff) { b.jitterFunc = f }
}

// NewBackoff creates a Backoff allowing maxAttempts retries, with sensible
// defaults: 100ms initial delay, 30s cap, doubling, 10% jitter.
func NewBackoff(maxAttempts int, opts ...BackoffOption) *Backoff {
	b := &Backoff{
		initialDelay: 100 * time.Millisecond,
		maxDelay:     30 * time.Second,
		multiplier:   2.0,
		maxAttempts:  maxAttempts,
		jitter:       0.1,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NextDelay returns the delay before retry number attempt (zero-based).
func (b *Backoff) NextDelay(attempt int) time.Duration {
	delayMs := float64(b.initialDelay.Milliseconds()) * math.Pow(b.multiplier, float64(attempt))
	if delayMs > float64(b.maxDelay.Milliseconds()) {
		delayMs = float64(b.maxDelay.Milliseconds())
	}

	if b.jitter > 0 {
		jitterFunc := b.jitterFunc
		if jitterFunc == nil {
			jitterFunc = rand.Float64
		}
		// Map [0,1) onto [-1,1) and scale by the jitter factor.
		offset := (jitterFunc() - 0.5) * 2.0
		delayMs *= 1.0 + b.jitter*offset
	}

	return time.Duration(delayMs) * time.Millisecond
}

// MaxAttempts returns the configured retry budget.
func (b *Backoff) MaxAttempts() int {
	return b.maxAttempts
}
