package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"authoring_console_backend/internal/config"

	"github.com/gin-gonic/gin"
)

func TestSetupMiddlewaresWiresCORSFromConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.CORS.AllowedOrigins = []string{"https://console.example.com"}
	cfg.RateLimit.MaxRequests = 10
	cfg.RateLimit.WindowMinutes = 1

	router := gin.New()
	(&App{}).setupMiddlewares(router, cfg)
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://console.example.com")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://console.example.com" {
		t.Fatalf("Access-Control-Allow-Origin = %q, want configured origin echoed", got)
	}
}

func TestRateLimitParams(t *testing.T) {
	tests := []struct {
		name        string
		maxRequests int
		window      int
		wantMax     int
		wantWindow  time.Duration
	}{
		{"configured values pass through", 500, 5, 500, 5 * time.Minute},
		{"zero section falls back", 0, 0, 100000, time.Minute},
		{"negative values fall back", -1, -2, 100000, time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.RateLimit.MaxRequests = tt.maxRequests
			cfg.RateLimit.WindowMinutes = tt.window

			gotMax, gotWindow := rateLimitParams(cfg)
			if gotMax != tt.wantMax || gotWindow != tt.wantWindow {
				t.Fatalf("rateLimitParams() = (%d, %v), want (%d, %v)", gotMax, gotWindow, tt.wantMax, tt.wantWindow)
			}
		})
	}
}
