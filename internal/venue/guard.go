package venue

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/dennis-owusu/Arbitrage-Bot/internal/ratelimit"
)

// DefaultTimeout is the per-call timeout enforced by every adapter (spec §5).
const DefaultTimeout = 30 * time.Second

// rateLimitRetryDelay is the fixed backoff before the adapter's single
// retry on a rate-limit outcome (spec §4.1).
const rateLimitRetryDelay = 1000 * time.Millisecond

// ErrRateLimited is returned by an adapter's raw fetch function to signal a
// rate-limit kind failure, distinct from any other transient error, so
// Guard knows to apply the one-retry policy.
var ErrRateLimited = errors.New("venue: rate limited")

// Guard wraps a raw adapter call with the shared failure policy from spec
// §4.1: rate limiting via limiter.Wait, a circuit breaker per venue+method,
// a hard timeout, and exactly one retry when the call fails with
// ErrRateLimited. Any other failure (including the retry's own failure)
// is returned to the caller, which is expected to trap it into a null
// outcome and never propagate it further (see Pair Fetcher).
func Guard[T any](ctx context.Context, limiter *ratelimit.Limiter, breaker *gobreaker.CircuitBreaker[T], fn func(context.Context) (T, error)) (T, error) {
	call := func(ctx context.Context) (T, error) {
		if err := limiter.Wait(ctx); err != nil {
			var zero T
			return zero, err
		}
		cctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
		return fn(cctx)
	}

	result, err := breaker.Execute(func() (T, error) { return call(ctx) })
	if err != nil && errors.Is(err, ErrRateLimited) {
		time.Sleep(rateLimitRetryDelay)
		result, err = breaker.Execute(func() (T, error) { return call(ctx) })
	}
	return result, err
}

// NewBreaker builds a per-adapter-method circuit breaker following the
// teacher's dependency choice (sony/gobreaker/v2), tripping after
// repeated consecutive failures so a systematically failing venue stops
// spending the timeout budget on every fetch.
func NewBreaker[T any](name string) *gobreaker.CircuitBreaker[T] {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return gobreaker.NewCircuitBreaker[T](settings)
}
