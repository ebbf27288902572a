package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time { return f.t }

func doRequest(t *testing.T, e *echo.Echo, h echo.HandlerFunc, ip, userID string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = ip + ":1234"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set("user_id", userID)
	}
	return rec, h(c)
}

func statusOf(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}

func TestRateLimit_BurstThenReject(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	e := echo.New()
	h := rateLimit(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 2}, clock.now)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	for i := 0; i < 2; i++ {
		rec, err := doRequest(t, e, h, "10.0.0.1", "")
		if err != nil {
			t.Fatalf("request %d: unexpected error %v", i+1, err)
		}
		if got := rec.Header().Get("X-RateLimit-Limit"); got != "1" {
			t.Errorf("request %d: X-RateLimit-Limit = %q", i+1, got)
		}
	}

	rec, err := doRequest(t, e, h, "10.0.0.1", "")
	if statusOf(err) != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", err)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Error("expected X-RateLimit-Remaining 0")
	}

	clock.t = clock.t.Add(time.Second)
	if _, err := doRequest(t, e, h, "10.0.0.1", ""); err != nil {
		t.Fatalf("expected a refilled token after one second, got %v", err)
	}
}

func TestRateLimit_SeparateBuckets(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	e := echo.New()
	h := rateLimit(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1}, clock.now)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if _, err := doRequest(t, e, h, "10.0.0.1", ""); err != nil {
		t.Fatalf("first ip: %v", err)
	}
	if _, err := doRequest(t, e, h, "10.0.0.2", ""); err != nil {
		t.Fatalf("second ip should have its own bucket: %v", err)
	}
	if _, err := doRequest(t, e, h, "10.0.0.1", "user-a"); err != nil {
		t.Fatalf("authenticated user should be keyed by id: %v", err)
	}
	if _, err := doRequest(t, e, h, "10.0.0.9", "user-a"); statusOf(err) != http.StatusTooManyRequests {
		t.Fatalf("same user from another ip should share the bucket, got %v", err)
	}
}

func TestRateLimit_CustomKey(t *testing.T) {
	e := echo.New()
	cfg := RateLimitConfig{
		RequestsPerSecond: 1,
		BurstSize:         1,
		KeyFunc:           func(c echo.Context) string { return "global" },
	}
	h := RateLimit(cfg)(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	if _, err := doRequest(t, e, h, "10.0.0.1", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := doRequest(t, e, h, "10.0.0.2", ""); statusOf(err) != http.StatusTooManyRequests {
		t.Fatalf("expected shared bucket to be exhausted, got %v", err)
	}
}

func TestDefaultRateLimitConfig(t *testing.T) {
	cfg := DefaultRateLimitConfig()
	if cfg.RequestsPerSecond != 100 || cfg.BurstSize != 200 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}
