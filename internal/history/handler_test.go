package history

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHistoryRouter(svc *Service, userID string, guest bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Set("isGuest", guest)
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

type listBody struct {
	Items  []Entry `json:"items"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

func TestListReturnsOwnEntries(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()
	svc.Record(ctx, "u1", KindRotation, "after rice", "table")
	svc.Record(ctx, "u1", KindMedicine, "Paracetamol", "remote")
	svc.Record(ctx, "u2", KindMedicine, "Ibuprofen", "remote")

	r := newHistoryRouter(svc, "u1", false)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/search-history?limit=500", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	var body listBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, maxListLimit, body.Limit)
	require.Len(t, body.Items, 2)
	for _, e := range body.Items {
		assert.NotEqual(t, "Ibuprofen", e.Query)
	}
}

func TestListRejectsGuests(t *testing.T) {
	r := newHistoryRouter(NewService(NewMemoryRepo()), "guest:abc", true)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/search-history", nil))

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "login_required")
}
