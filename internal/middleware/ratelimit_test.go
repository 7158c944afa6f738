package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitMiddleware_GeneralBudgetIndependentOfAuth(t *testing.T) {
	// Large general budget, auth budget of 1.
	mw := NewRateLimitMiddleware(100, 1)
	handler := mw.Handler(okHandler())

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest("GET", "/api/products", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}
}

func TestRateLimitMiddleware_LoginBucketIsStricter(t *testing.T) {
	mw := NewRateLimitMiddleware(100, 1)
	handler := mw.Handler(okHandler())

	// First login attempt consumes the single auth token.
	req1 := httptest.NewRequest("POST", "/api/admin/login", nil)
	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, req1)
	assert.Equal(t, http.StatusOK, rec1.Code)

	// The immediate retry is rejected even though the general budget
	// still has headroom.
	req2 := httptest.NewRequest("POST", "/api/admin/login", nil)
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req2)
	assert.Equal(t, http.StatusTooManyRequests, rec2.Code)
	assert.Equal(t, "60", rec2.Header().Get("Retry-After"))
	assert.Contains(t, rec2.Body.String(), "RATE_LIMITED")

	// General traffic from the same client is unaffected.
	req3 := httptest.NewRequest("GET", "/api/products", nil)
	rec3 := httptest.NewRecorder()
	handler.ServeHTTP(rec3, req3)
	assert.Equal(t, http.StatusOK, rec3.Code)
}

func TestRateLimitMiddleware_BucketsArePerClient(t *testing.T) {
	mw := NewRateLimitMiddleware(100, 1)
	handler := mw.Handler(okHandler())

	reqA := httptest.NewRequest("POST", "/api/admin/login", nil)
	reqA.Header.Set("X-Forwarded-For", "10.0.0.1")
	recA := httptest.NewRecorder()
	handler.ServeHTTP(recA, reqA)
	require.Equal(t, http.StatusOK, recA.Code)

	// A different client IP gets its own fresh bucket.
	reqB := httptest.NewRequest("POST", "/api/admin/login", nil)
	reqB.Header.Set("X-Forwarded-For", "10.0.0.2")
	recB := httptest.NewRecorder()
	handler.ServeHTTP(recB, reqB)
	require.Equal(t, http.StatusOK, recB.Code)
}

func TestRateLimitMiddleware_Configuration(t *testing.T) {
	mw := NewRateLimitMiddleware(-1, 0)
	assert.Equal(t, 100, mw.generalRPM)
	assert.Equal(t, 10, mw.authRPM)
}

func TestExtractClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/products", nil)
	req.RemoteAddr = "192.0.2.10:54321"
	assert.Equal(t, "192.0.2.10", extractClientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", extractClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.5, 198.51.100.7")
	assert.Equal(t, "203.0.113.5", extractClientIP(req))
}
