package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/modaselfie/go-mirror-backend/internal/config"
)

func rateLimitedRouter(rps float64, burst int) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler(config.EnvProduction))
	rl := NewRateLimiter(rps, burst, KeyByClientIP())
	r.Use(rl.Handler())
	r.GET("/t", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "success"}) })
	return r
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	r := rateLimitedRouter(100, 5)
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: code = %d, want 200", i, w.Code)
		}
	}
}

func TestRateLimiter_RejectsBeyondBurst_WithFailEnvelope(t *testing.T) {
	r := rateLimitedRouter(0.0001, 1)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("first request: code = %d, want 200", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: code = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") != "1" {
		t.Fatalf("missing Retry-After header")
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if body["status"] != "fail" {
		t.Fatalf("status = %v, want fail", body["status"])
	}
	if body["message"] != "Çok fazla istek gönderildi, lütfen bekleyin." {
		t.Fatalf("message = %v", body["message"])
	}
}

func TestRateLimiter_BurstCoercedToOne(t *testing.T) {
	rl := NewRateLimiter(1, 0, KeyByClientIP())
	if rl.burst != 1 {
		t.Fatalf("burst = %d, want 1", rl.burst)
	}
}

func TestRateLimiter_SeparateBucketsPerKey(t *testing.T) {
	rl := NewRateLimiter(0.0001, 1, func(c *gin.Context) string {
		return c.GetHeader("X-Kiosk")
	})
	r := gin.New()
	r.Use(ErrorHandler(config.EnvProduction))
	r.Use(rl.Handler())
	r.GET("/t", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, kiosk := range []string{"a", "b"} {
		req := httptest.NewRequest(http.MethodGet, "/t", nil)
		req.Header.Set("X-Kiosk", kiosk)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("kiosk %s: code = %d, want 200 (fresh bucket)", kiosk, w.Code)
		}
	}
}
