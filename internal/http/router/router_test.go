package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apphttp "homeloans_backend/internal/http"
	"homeloans_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

type testConfig struct{}

func (testConfig) GetHTTPAddr() string            { return ":0" }
func (testConfig) GetCORSAllowAll() bool          { return false }
func (testConfig) GetCORSOrigins() []string       { return []string{"https://burnabyhomeloans.example"} }
func (testConfig) GetStaticDir() string           { return "" }
func (testConfig) GetChatRateLimitPerMinute() int { return 20 }
func (testConfig) GetJWTAdminSecret() string      { return "secret" }

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type probeModule struct{}

func (probeModule) Name() string { return "probe" }

func (probeModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.GET("/probe", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	ctx.API.GET("/panic", func(c *gin.Context) { panic("boom") })
}

func newEngine(health apphttp.HealthChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return New(&apphttp.App{
		Config:        testConfig{},
		Logger:        logger.Discard(),
		Health:        health,
		Modules:       []apphttp.Module{probeModule{}},
		LLMConfigured: true,
	})
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		health apphttp.HealthChecker
		want   string
	}{
		{name: "healthy", health: pinger{}, want: "healthy"},
		{name: "no checker", health: nil, want: "healthy"},
		{name: "database down", health: pinger{err: errors.New("connection refused")}, want: "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(newEngine(tt.health), http.MethodGet, "/health")
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			var body struct {
				Status        string `json:"status"`
				Timestamp     string `json:"timestamp"`
				APIConfigured bool   `json:"api_configured"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Status != tt.want || !body.APIConfigured || body.Timestamp == "" {
				t.Fatalf("unexpected health body %+v", body)
			}
			if w.Header().Get("X-Request-ID") == "" {
				t.Fatal("expected request id header")
			}
		})
	}
}

func TestUnknownRouteReturnsJSON404(t *testing.T) {
	w := serve(newEngine(nil), http.MethodGet, "/nope")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if w.Body.String() != `{"error":"Endpoint not found"}` {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestAdminGroupRequiresToken(t *testing.T) {
	w := serve(newEngine(nil), http.MethodGet, "/api/admin/probe")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestPanicRecovered(t *testing.T) {
	w := serve(newEngine(nil), http.MethodGet, "/api/panic")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
