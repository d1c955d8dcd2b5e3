package categorizer

import (
	"context"
	"math"
	"math/rand"
	"time"
)

const (
	// DefaultMaxRetries is the number of remote attempts before falling back.
	DefaultMaxRetries = 5
	// DefaultBaseDelay is the delay before the first retry, without jitter.
	DefaultBaseDelay = time.Second
	// JitterUnit scales the random part of the delay: attempt n adds up to
	// JitterUnit * 2^n.
	JitterUnit = 100 * time.Millisecond
)

// Backoff computes exponential retry delays with additive jitter:
//
//	delay(n) = BaseDelay * 2^n + U[0, JitterUnit * 2^n)
//
// There is no ceiling; the number of attempts bounds the wait.
type Backoff struct {
	BaseDelay time.Duration
	// Rand returns a value in [0, 1). Nil uses math/rand.
	Rand func() float64
}

// NewBackoff returns a Backoff with the given base delay.
func NewBackoff(baseDelay time.Duration) Backoff {
	return Backoff{BaseDelay: baseDelay}
}

// Delay returns the wait after the failed attempt with zero-based index attempt.
func (b Backoff) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	r := rand.Float64
	if b.Rand != nil {
		r = b.Rand
	}

	factor := math.Pow(2, float64(attempt))
	d := float64(b.BaseDelay)*factor + r()*float64(JitterUnit)*factor
	if d >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(d)
}

// sleepContext blocks for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
