package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func staticFixture() StaticHandler {
	return StaticHandler{FS: fstest.MapFS{
		"index.html":  {Data: []byte("<html>admin</html>")},
		"js/admin.js": {Data: []byte("console.log('admin');")},
	}}
}

// TestPurpose: Validates that existing assets are served directly.
// Scope: Unit Test
// Expected: Returns HTTP 200 with the asset body.
func TestStaticHandler_ServesAsset(t *testing.T) {
	h := staticFixture()

	req := httptest.NewRequest(http.MethodGet, "/js/admin.js", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "console.log('admin');", rec.Body.String())
}

// TestPurpose: Validates index.html fallback for the root and for unknown
// paths.
// Scope: Unit Test
// Expected: Returns HTTP 200 with the index body.
func TestStaticHandler_IndexFallback(t *testing.T) {
	h := staticFixture()

	for _, path := range []string{"/", "/missing", "/js"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "<html>admin</html>", rec.Body.String(), path)
	}
}

// TestPurpose: Validates per-IP rate limiting on the router.
// Scope: Unit Test
// Expected: Requests beyond the burst return HTTP 429.
func TestRateLimiter_Burst(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	handler := RateLimitMiddleware(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

// TestPurpose: Validates that rate limit buckets are scoped per client IP.
// Scope: Unit Test
// Expected: A second IP is unaffected by the first IP's exhausted bucket.
func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	handler := RateLimitMiddleware(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRequest(http.MethodGet, "/health", nil)
	first.RemoteAddr = "203.0.113.7:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	assert.Equal(t, http.StatusOK, rec.Code)

	again := httptest.NewRequest(http.MethodGet, "/health", nil)
	again.RemoteAddr = "203.0.113.7:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, again)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	other := httptest.NewRequest(http.MethodGet, "/health", nil)
	other.RemoteAddr = "198.51.100.9:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
}
