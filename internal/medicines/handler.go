package medicines

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"agrirevive-backend/internal/history"
	"agrirevive-backend/internal/shared/server/middleware"
	"agrirevive-backend/internal/shared/server/respond"
)

// Handler exposes medicine lookups over HTTP.
type Handler struct {
	Svc     *Service
	History history.Recorder
}

// NewHandler constructs a Handler. rec may be nil.
func NewHandler(svc *Service, rec history.Recorder) *Handler {
	return &Handler{Svc: svc, History: rec}
}

// RegisterRoutes attaches medicine routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/medicines/suggestions", h.suggestions)
	rg.GET("/medicines/search", h.search)
}

func (h *Handler) suggestions(c *gin.Context) {
	respond.JSON(c, http.StatusOK, h.Svc.Suggest(c.Request.Context(), c.Query("q")))
}

func (h *Handler) search(c *gin.Context) {
	query := c.Query("q")
	result, err := h.Svc.Lookup(c.Request.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidQuery):
			respond.Validation(c, "query is required", []respond.FieldIssue{{Field: "q", Issue: "required"}})
		case errors.Is(err, ErrNotFound):
			h.record(c, query, "not_found")
			respond.Error(c, http.StatusNotFound, "not_found", fmt.Sprintf("No results found for %q", query), nil)
		default:
			respond.Error(c, http.StatusBadGateway, "lookup_unavailable", "Medicine lookup is unavailable, please try again.", nil)
		}
		return
	}
	h.record(c, result.Query, "remote")
	respond.JSON(c, http.StatusOK, result)
}

func (h *Handler) record(c *gin.Context, query, source string) {
	if h.History == nil || middleware.IsGuest(c) {
		return
	}
	h.History.Record(c.Request.Context(), middleware.UserIDFromContext(c), history.KindMedicine, query, source)
}
