package recommend

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"agrirevive-backend/internal/geocode"
	"agrirevive-backend/internal/history"
	"agrirevive-backend/internal/shared/server/middleware"
	"agrirevive-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the recommendation fetcher.
type Handler struct {
	Fetcher *Fetcher
	History history.Recorder
}

// NewHandler constructs a Handler. rec may be nil.
func NewHandler(fetcher *Fetcher, rec history.Recorder) *Handler {
	return &Handler{Fetcher: fetcher, History: rec}
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recommendations", h.create)
}

type createRequest struct {
	Category string    `json:"category"`
	CropType string    `json:"cropType"`
	Quantity *Quantity `json:"quantity"`
	Location *Location `json:"location"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Validation(c, "invalid request body", []respond.FieldIssue{{Field: "body", Issue: err.Error()}})
		return
	}
	sub, issues := req.submission()
	if len(issues) > 0 {
		respond.Validation(c, "invalid recommendation request", issues)
		return
	}

	out := h.Fetcher.Fetch(c.Request.Context(), sub)
	c.Set(middleware.LogCategoryKey, out.Category)
	c.Set(middleware.LogSourceKey, string(out.Source))

	if h.History != nil && !middleware.IsGuest(c) {
		query := strconv.FormatFloat(out.Quantity, 'f', -1, 64) + "kg of " + out.Category
		h.History.Record(c.Request.Context(), middleware.UserIDFromContext(c), history.KindRecommendation, query, string(out.Source))
	}
	respond.JSON(c, http.StatusOK, out)
}

func (r createRequest) submission() (Submission, []respond.FieldIssue) {
	var issues []respond.FieldIssue
	category := r.Category
	if strings.TrimSpace(category) == "" {
		category = r.CropType
	}
	if NormalizeCategory(category) == "" {
		issues = append(issues, respond.FieldIssue{Field: "category", Issue: "required"})
	}
	if r.Quantity == nil || *r.Quantity <= 0 {
		issues = append(issues, respond.FieldIssue{Field: "quantity", Issue: "must be a positive number of kilograms"})
	}

	var loc Location
	switch {
	case r.Location == nil:
		issues = append(issues, respond.FieldIssue{Field: "location", Issue: "Please select a location"})
	default:
		loc = *r.Location
		if (loc.Lat == nil) != (loc.Lng == nil) {
			issues = append(issues, respond.FieldIssue{Field: "location", Issue: "lat and lng must be given together"})
		} else if loc.Lat != nil && !geocode.ValidCoordinates(*loc.Lat, *loc.Lng) {
			issues = append(issues, respond.FieldIssue{Field: "location", Issue: "invalid coordinates"})
		} else if loc.Lat == nil && strings.TrimSpace(loc.Address) == "" {
			issues = append(issues, respond.FieldIssue{Field: "location", Issue: "Please select a location"})
		}
	}
	if len(issues) > 0 {
		return Submission{}, issues
	}

	return Submission{
		Category: NormalizeCategory(category),
		Quantity: *r.Quantity,
		Location: loc,
	}, nil
}
