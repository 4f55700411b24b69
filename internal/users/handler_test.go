package users

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileRouter(svc *Service, guest bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if guest {
			c.Set("userId", "guest:abc")
		} else {
			c.Set("userId", "u1")
			c.Set("userEmail", "u1@example.com")
			c.Set("userName", "Ravi")
		}
		c.Set("isGuest", guest)
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestProfileRoundTrip(t *testing.T) {
	r := newProfileRouter(newTestService(), false)

	resp := doJSON(r, http.MethodGet, "/api/v1/profile", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var seeded Profile
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &seeded))
	assert.Equal(t, "Ravi", seeded.Name)

	resp = doJSON(r, http.MethodPut, "/api/v1/profile", `{"name":"Ravi Kumar","email":"ravi@example.com","bio":"Grows rice"}`)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doJSON(r, http.MethodGet, "/api/v1/profile", "")
	var saved Profile
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &saved))
	assert.Equal(t, "Ravi Kumar", saved.Name)
	assert.Equal(t, "Grows rice", saved.Bio)
}

func TestPutProfileValidationDetails(t *testing.T) {
	r := newProfileRouter(newTestService(), false)
	resp := doJSON(r, http.MethodPut, "/api/v1/profile", `{"name":"R","email":"nope"}`)
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Details []struct {
				Field string `json:"field"`
				Issue string `json:"issue"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body.Error.Code)
	require.Len(t, body.Error.Details, 2)
	assert.Equal(t, "name", body.Error.Details[0].Field)
	assert.Equal(t, "Please enter a valid email address", body.Error.Details[1].Issue)
}

func TestProfileRequiresLogin(t *testing.T) {
	r := newProfileRouter(newTestService(), true)
	assert.Equal(t, http.StatusUnauthorized, doJSON(r, http.MethodGet, "/api/v1/profile", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doJSON(r, http.MethodPut, "/api/v1/profile", `{}`).Code)

	resp := doJSON(r, http.MethodGet, "/api/v1/me", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"isGuest":true`)
}

func TestMeUsesProfile(t *testing.T) {
	r := newProfileRouter(newTestService(), false)
	resp := doJSON(r, http.MethodGet, "/api/v1/me", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"email":"u1@example.com"`)
}
