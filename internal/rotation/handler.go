package rotation

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"agrirevive-backend/internal/history"
	"agrirevive-backend/internal/shared/server/middleware"
	"agrirevive-backend/internal/shared/server/respond"
)

// Handler exposes the rotation advisor over HTTP.
type Handler struct {
	Advisor *Advisor
	History history.Recorder
}

// NewHandler constructs a Handler. rec may be nil.
func NewHandler(advisor *Advisor, rec history.Recorder) *Handler {
	return &Handler{Advisor: advisor, History: rec}
}

// RegisterRoutes attaches rotation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/rotation/crops", h.crops)
	rg.POST("/rotation", h.advise)
}

func (h *Handler) crops(c *gin.Context) {
	respond.Static(c, time.Hour, gin.H{"crops": h.Advisor.Crops()})
}

func (h *Handler) advise(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Validation(c, "invalid request body", []respond.FieldIssue{{Field: "body", Issue: err.Error()}})
		return
	}
	var issues []respond.FieldIssue
	if strings.TrimSpace(req.PreviousCrop) == "" {
		issues = append(issues, respond.FieldIssue{Field: "previousCrop", Issue: "required"})
	}
	if req.FarmSize != nil && *req.FarmSize <= 0 {
		issues = append(issues, respond.FieldIssue{Field: "farmSize", Issue: "must be a positive number"})
	}
	if len(issues) > 0 {
		respond.Validation(c, "Please fill out all fields.", issues)
		return
	}

	advice, err := h.Advisor.Advise(req.PreviousCrop)
	if errors.Is(err, ErrCropNotFound) {
		respond.Error(c, http.StatusNotFound, "crop_not_found", "Crop not found in database.", gin.H{"previousCrop": req.PreviousCrop})
		return
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Could not build rotation advice.", nil)
		return
	}
	advice.FarmSize = req.FarmSize

	if h.History != nil && !middleware.IsGuest(c) {
		h.History.Record(c.Request.Context(), middleware.UserIDFromContext(c), history.KindRotation, req.Describe(), "table")
	}
	respond.JSON(c, http.StatusOK, advice)
}
