package aqi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"agrirevive-backend/internal/shared/server/respond"
)

// Handler serves AQI classification.
type Handler struct {
	now func() time.Time
}

// NewHandler constructs a Handler.
func NewHandler() *Handler {
	return &Handler{now: time.Now}
}

// RegisterRoutes attaches the AQI route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/aqi", h.get)
}

func (h *Handler) get(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("value"))
	if raw == "" {
		respond.JSON(c, http.StatusOK, Baseline(h.now()))
		return
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err == nil {
		var report Report
		if report, err = Classify(value); err == nil {
			respond.JSON(c, http.StatusOK, report)
			return
		}
	}
	respond.Validation(c, "invalid aqi value", []respond.FieldIssue{{Field: "value", Issue: ErrInvalidValue.Error()}})
}
