package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hasan75/tourism-htt-server/pkg/logger"
	"github.com/hasan75/tourism-htt-server/pkg/middleware"
	"github.com/hasan75/tourism-htt-server/pkg/reqid"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestMemoryLimiter(t *testing.T) {
	l := middleware.NewMemoryLimiter(2, time.Minute)
	defer l.Stop()
	h := middleware.RateLimit(l, false)(ok)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	// A different client has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitForwardedFor(t *testing.T) {
	send := func(h http.Handler, fwd string) int {
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.RemoteAddr = "10.0.0.9:5555"
		req.Header.Set("X-Forwarded-For", fwd)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	t.Run("ignored by default", func(t *testing.T) {
		l := middleware.NewMemoryLimiter(1, time.Minute)
		defer l.Stop()
		h := middleware.RateLimit(l, false)(ok)

		assert.Equal(t, http.StatusOK, send(h, "1.1.1.1"))
		assert.Equal(t, http.StatusTooManyRequests, send(h, "2.2.2.2"))
	})

	t.Run("honoured behind a trusted proxy", func(t *testing.T) {
		l := middleware.NewMemoryLimiter(1, time.Minute)
		defer l.Stop()
		h := middleware.RateLimit(l, true)(ok)

		assert.Equal(t, http.StatusOK, send(h, "1.1.1.1, 10.0.0.9"))
		assert.Equal(t, http.StatusOK, send(h, "2.2.2.2"))
		assert.Equal(t, http.StatusTooManyRequests, send(h, "1.1.1.1"))
	})
}

func TestMemoryLimiterWindowResets(t *testing.T) {
	l := middleware.NewMemoryLimiter(1, 20*time.Millisecond)
	defer l.Stop()
	ctx := context.Background()

	allowed, _ := l.Allow(ctx, "k")
	assert.True(t, allowed)
	allowed, _ = l.Allow(ctx, "k")
	assert.False(t, allowed)

	time.Sleep(40 * time.Millisecond)
	allowed, _ = l.Allow(ctx, "k")
	assert.True(t, allowed)
}

type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, string) (bool, error) {
	return true, errors.New("redis down")
}

func TestRateLimitFailsOpen(t *testing.T) {
	rec := httptest.NewRecorder()
	middleware.RateLimit(brokenLimiter{}, false)(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecovery(t *testing.T) {
	h := middleware.Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":500,"message":"Internal Server Error"}`, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	h := middleware.CORS(middleware.DefaultCORSOptions())(ok)

	req := httptest.NewRequest(http.MethodOptions, "/updateOrderStatus", nil)
	req.Header.Set("Origin", "https://hit-the-trail.web.app")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
}

func TestLoggerInjectsRequestLogger(t *testing.T) {
	var sawInjected bool
	h := reqid.Middleware()(middleware.Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawInjected = logger.WithCtx(r.Context()) != logger.L
		w.WriteHeader(http.StatusCreated)
	})))

	req := httptest.NewRequest(http.MethodPost, "/placeorder", nil)
	req.Header.Set(reqid.Header, "trace-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.True(t, sawInjected)
	assert.Equal(t, "trace-123", rec.Header().Get(reqid.Header))
	assert.Equal(t, http.StatusCreated, rec.Code)
}
