package geocode

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"agrirevive-backend/internal/shared/server/respond"
)

// Geocoder is the place lookup the HTTP handler depends on.
type Geocoder interface {
	Searcher
	Reverse(ctx context.Context, lat, lon float64) (Place, error)
}

// Handler exposes place search over HTTP.
type Handler struct {
	Geo Geocoder
}

// NewHandler constructs a Handler.
func NewHandler(geo Geocoder) *Handler {
	return &Handler{Geo: geo}
}

// RegisterRoutes attaches place routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/places/search", h.search)
	rg.GET("/places/reverse", h.reverse)
}

func (h *Handler) search(c *gin.Context) {
	places, err := h.Geo.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "geocode_unavailable", "Error searching location", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"places": places})
}

func (h *Handler) reverse(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(c.Query("lat")), 64)
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(c.Query("lon")), 64)
	if latErr != nil || lonErr != nil || !ValidCoordinates(lat, lon) {
		respond.Validation(c, "lat and lon must be valid coordinates", []respond.FieldIssue{
			{Field: "lat", Issue: "must be between -90 and 90"},
			{Field: "lon", Issue: "must be between -180 and 180"},
		})
		return
	}

	place, err := h.Geo.Reverse(c.Request.Context(), lat, lon)
	if err != nil {
		if errors.Is(err, ErrNoResult) {
			respond.Error(c, http.StatusNotFound, "not_found", "Error getting location details", nil)
			return
		}
		respond.Error(c, http.StatusBadGateway, "geocode_unavailable", "Error getting location details", nil)
		return
	}
	respond.JSON(c, http.StatusOK, place)
}
