package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestFixedWindowLimiter_Allow(t *testing.T) {
	mr, client := newTestClient(t)
	limiter := NewFixedWindowLimiter(client, "auth", 3, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		d, err := limiter.Allow(ctx, "10.0.0.1")
		if err != nil {
			t.Fatalf("Allow returned error: %v", err)
		}
		if !d.Allowed || d.Remaining != 3-i {
			t.Fatalf("request %d: unexpected decision %+v", i, d)
		}
	}

	d, err := limiter.Allow(ctx, "10.0.0.1")
	if err != nil {
		t.Fatalf("Allow returned error: %v", err)
	}
	if d.Allowed || d.RetryAfter <= 0 {
		t.Fatalf("expected rejection with retry-after, got %+v", d)
	}

	if d, _ := limiter.Allow(ctx, "10.0.0.2"); !d.Allowed {
		t.Fatalf("other keys must have their own window")
	}

	mr.FastForward(time.Minute + time.Second)
	if d, _ := limiter.Allow(ctx, "10.0.0.1"); !d.Allowed {
		t.Fatalf("expected a new window after expiry, got %+v", d)
	}
}

func TestFixedWindowLimiter_RedisDown(t *testing.T) {
	mr, client := newTestClient(t)
	limiter := NewFixedWindowLimiter(client, "auth", 1, time.Minute)
	mr.Close()

	if _, err := limiter.Allow(context.Background(), "k"); err == nil {
		t.Fatalf("expected error when redis is unavailable")
	}
}

func TestPinger(t *testing.T) {
	_, client := newTestClient(t)
	if err := NewPinger(client).Ping(context.Background()); err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}
}
