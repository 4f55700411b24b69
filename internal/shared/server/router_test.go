package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"agrirevive-backend/internal/shared/config"
	"agrirevive-backend/internal/shared/server/middleware"
)

type stubRoutes struct{}

func (stubRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }
	rg.GET("/aqi", ok)
	rg.POST("/recommendations", ok)
	rg.GET("/places/search", ok)
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return NewRouter(RouterDeps{
		Config:   config.Config{Env: "dev", CORSAllowOrigin: []string{"http://localhost:5173"}, LLMRateLimitRPS: 0.5},
		Limiter:  middleware.NewRateLimiter(func() time.Time { return fixed }),
		Handlers: []Registrar{stubRoutes{}, nil},
	})
}

func serve(r *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader("{}"))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestPublicRoutesSkipIdentity(t *testing.T) {
	r := newTestRouter()
	if resp := serve(r, http.MethodGet, "/api/v1/aqi", nil); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public route, got %d", resp.Code)
	}
	resp := serve(r, http.MethodGet, "/api/v1/metrics", nil)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "recommendations_total") {
		t.Fatalf("expected metrics output, got %d %s", resp.Code, resp.Body.String())
	}
}

func TestProtectedRoutesNeedIdentity(t *testing.T) {
	r := newTestRouter()
	if resp := serve(r, http.MethodGet, "/api/v1/places/search?q=pune", nil); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
	guest := map[string]string{"X-Guest-Id": "g-1"}
	if resp := serve(r, http.MethodGet, "/api/v1/places/search?q=pune", guest); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for guest, got %d", resp.Code)
	}
}

func TestLLMRoutesAreThrottled(t *testing.T) {
	r := newTestRouter()
	guest := map[string]string{"X-Guest-Id": "g-2"}
	burst := RateLimitRules(config.Config{})[GroupLLM].Burst
	for i := 0; i < burst; i++ {
		if resp := serve(r, http.MethodPost, "/api/v1/recommendations", guest); resp.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, resp.Code)
		}
	}
	resp := serve(r, http.MethodPost, "/api/v1/recommendations", guest)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", resp.Code)
	}
	if resp := serve(r, http.MethodGet, "/api/v1/places/search?q=x", guest); resp.Code != http.StatusOK {
		t.Fatalf("expected geocode group to be independent, got %d", resp.Code)
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
