package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agrirevive-backend/internal/shared/server/respond"
)

// Handler exposes the health report.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.get)
}

func (h *Handler) get(c *gin.Context) {
	report := h.Svc.Status(c.Request.Context())
	status := http.StatusOK
	if !report.OK {
		status = http.StatusServiceUnavailable
	}
	respond.JSON(c, status, report)
}
