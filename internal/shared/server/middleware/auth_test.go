package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"agrirevive-backend/internal/shared/auth"
)

func newTestCodec(t *testing.T) *auth.Codec {
	t.Helper()
	codec, err := auth.NewCodec("test-secret", false)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return codec
}

func TestAuthAllowsOptionsWithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(newTestCodec(t)))
	router.OPTIONS("/api/v1/recommendations", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/recommendations", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestAuthRejectsMissingIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(newTestCodec(t), "/api/v1/health"))
	router.GET("/api/v1/profile", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/v1/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected public path to pass, got %d", resp.Code)
	}
}

func TestAuthBearerSetsIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec := newTestCodec(t)
	token, err := codec.Sign(auth.Claims{Sub: "user-7", Email: "u7@example.com"})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	var gotID string
	var guest bool
	router := gin.New()
	router.Use(Auth(codec))
	router.GET("/api/v1/me", func(c *gin.Context) {
		gotID = UserIDFromContext(c)
		guest = IsGuest(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotID != "user-7" || guest {
		t.Fatalf("unexpected identity id=%q guest=%v", gotID, guest)
	}
}

func TestAuthGuestHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var gotID string
	var guest bool
	router := gin.New()
	router.Use(Auth(newTestCodec(t)))
	router.GET("/api/v1/me", func(c *gin.Context) {
		gotID = UserIDFromContext(c)
		guest = IsGuest(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("X-Guest-Id", "g1")
	router.ServeHTTP(httptest.NewRecorder(), req)

	if gotID != "guest:g1" || !guest {
		t.Fatalf("unexpected identity id=%q guest=%v", gotID, guest)
	}
}
