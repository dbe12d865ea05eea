package venue

import (
	"context"
	"errors"
	"testing"

	"github.com/dennis-owusu/Arbitrage-Bot/internal/ratelimit"
)

func TestGuard_RetriesOnceOnRateLimit(t *testing.T) {
	limiter := ratelimit.New(6000)
	breaker := NewBreaker[int]("test.retry")

	calls := 0
	fn := func(ctx context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, ErrRateLimited
		}
		return 42, nil
	}

	result, err := Guard(context.Background(), limiter, breaker, fn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != 42 {
		t.Fatalf("expected 42, got %d", result)
	}
	if calls != 2 {
		t.Fatalf("expected exactly one retry (2 calls total), got %d", calls)
	}
}

func TestGuard_SecondRateLimitFailurePropagates(t *testing.T) {
	limiter := ratelimit.New(6000)
	breaker := NewBreaker[int]("test.double-fail")

	fn := func(ctx context.Context) (int, error) {
		return 0, ErrRateLimited
	}

	_, err := Guard(context.Background(), limiter, breaker, fn)
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected the second rate-limit failure to propagate, got %v", err)
	}
}

func TestGuard_NonRateLimitFailurePropagatesImmediately(t *testing.T) {
	limiter := ratelimit.New(6000)
	breaker := NewBreaker[int]("test.other-fail")

	calls := 0
	boom := errors.New("boom")
	fn := func(ctx context.Context) (int, error) {
		calls++
		return 0, boom
	}

	_, err := Guard(context.Background(), limiter, breaker, fn)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected no retry on a non-rate-limit failure, got %d calls", calls)
	}
}
