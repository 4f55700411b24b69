package geocode

import (
	"errors"
	"strings"

	"github.com/golang/geo/s2"
)

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrNoResult           = errors.New("no geocoding result")
)

// Place is one geocoding hit.
type Place struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"displayName"`
	ShortName   string  `json:"shortName"`
}

// ValidCoordinates reports whether lat/lon are a real point on the globe.
func ValidCoordinates(lat, lon float64) bool {
	return s2.LatLngFromDegrees(lat, lon).IsValid()
}

// shortName is the first comma-separated segment of a display name.
func shortName(displayName string) string {
	head, _, _ := strings.Cut(displayName, ",")
	return strings.TrimSpace(head)
}
