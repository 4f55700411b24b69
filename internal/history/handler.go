package history

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"agrirevive-backend/internal/shared/server/middleware"
	"agrirevive-backend/internal/shared/server/respond"
)

// Handler exposes search history over HTTP.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches history routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search-history", h.list)
}

func (h *Handler) list(c *gin.Context) {
	if middleware.IsGuest(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Login required to view history", nil)
		return
	}

	limit := defaultListLimit
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			offset = parsed
		}
	}

	limit = clampLimit(limit)

	entries, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list search history", nil)
		return
	}
	respond.Private(c, http.StatusOK, gin.H{
		"items":  entries,
		"limit":  limit,
		"offset": offset,
	})
}
