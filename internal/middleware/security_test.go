package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityHeadersMiddleware(t *testing.T) {
	handler := SecurityHeadersMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/beans", nil))

	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", rec.Header().Get("Referrer-Policy"))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "default-src 'none'")
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	assert.True(t, rl.Allow("192.0.2.1"))
	assert.True(t, rl.Allow("192.0.2.1"))
	assert.True(t, rl.Allow("192.0.2.1"))
	assert.False(t, rl.Allow("192.0.2.1"))

	// Other IPs have their own bucket
	assert.True(t, rl.Allow("192.0.2.2"))
}

func TestRateLimiter_WindowReset(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)

	require.True(t, rl.Allow("192.0.2.1"))
	require.False(t, rl.Allow("192.0.2.1"))

	time.Sleep(15 * time.Millisecond)
	assert.True(t, rl.Allow("192.0.2.1"))
}

func TestRateLimitMiddleware(t *testing.T) {
	config := &RateLimitConfig{
		WriteLimiter:  NewRateLimiter(1, time.Minute),
		APILimiter:    NewRateLimiter(100, time.Minute),
		GlobalLimiter: NewRateLimiter(100, time.Minute),
	}

	handler := RateLimitMiddleware(config)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	post := func() int {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/beans", nil)
		r.RemoteAddr = "192.0.2.1:1234"
		handler.ServeHTTP(rec, r)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, post())
	assert.Equal(t, http.StatusTooManyRequests, post())

	// Reads go through the API limiter, unaffected by the exhausted write bucket
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/beans", nil)
	r.RemoteAddr = "192.0.2.1:1234"
	handler.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLimitBodyMiddleware(t *testing.T) {
	handler := LimitBodyMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			http.Error(w, "body too large", http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("small body passes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(`{"beanId":"b1"}`))
		r.Header.Set("Content-Type", "application/json")
		handler.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("oversized body rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		big := strings.NewReader(strings.Repeat("a", MaxJSONBodySize+10))
		r := httptest.NewRequest(http.MethodPost, "/api/notes", big)
		r.Header.Set("Content-Type", "application/json")
		handler.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}
