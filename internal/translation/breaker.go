package translation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerProvider wraps a Provider with a circuit breaker so a
// repeatedly failing API is not hammered on every keystroke. The
// circuit opens after three consecutive failures and retries after a
// cool-down.
type BreakerProvider struct {
	inner Provider
	cb    *gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps inner with circuit breaking
func NewBreakerProvider(inner Provider) *BreakerProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    inner.Name(),
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
	return &BreakerProvider{
		inner: inner,
		cb:    cb,
	}
}

// Translate delegates to the wrapped provider through the breaker
func (b *BreakerProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.Translate(ctx, text, sourceLang, targetLang)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("translation service %s is unavailable, retrying shortly", b.inner.Name())
		}
		return "", err
	}
	return result.(string), nil
}

// Name returns the wrapped provider name
func (b *BreakerProvider) Name() string {
	return b.inner.Name()
}

// IsAvailable checks the wrapped provider
func (b *BreakerProvider) IsAvailable() error {
	return b.inner.IsAvailable()
}
