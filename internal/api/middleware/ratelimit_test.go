package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/fashionstore/storefront/internal/infrastructure/db/redis"
)

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (redis.Decision, error) {
	return redis.Decision{}, errors.New("connection refused")
}

func call(e *echo.Echo, mw echo.MiddlewareFunc) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)
	return rec, err
}

func TestRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := redis.NewFixedWindowLimiter(client, "auth", 2, time.Minute)
	mw := RateLimit(limiter, "auth", zerolog.Nop())
	e := echo.New()

	for i := 0; i < 2; i++ {
		rec, err := call(e, mw)
		if err != nil || rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected pass, got %d %v", i, rec.Code, err)
		}
	}

	rec, err := call(e, mw)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", err)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	rec, err := call(echo.New(), RateLimit(failingLimiter{}, "auth", zerolog.Nop()))
	if err != nil || rec.Code != http.StatusOK {
		t.Fatalf("expected request to pass when limiter fails, got %d %v", rec.Code, err)
	}
}
