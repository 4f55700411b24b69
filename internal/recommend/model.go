package recommend

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Methods lists the method keys every RecommendationSet carries, in display order.
var Methods = []string{"biofuel", "composting", "recycling"}

// RecommendationSet maps each method key to its recommendation.
type RecommendationSet map[string]MethodRecommendation

// MethodRecommendation is one waste-management method for a crop.
type MethodRecommendation struct {
	Confidence  float64       `json:"confidence"`
	Description string        `json:"description"`
	Steps       []string      `json:"steps"`
	Equipment   []string      `json:"equipment"`
	Impact      ImpactMetrics `json:"impact"`
}

// ImpactMetrics holds the estimated benefit of a method.
type ImpactMetrics struct {
	AQI      float64 `json:"aqi"`
	Carbon   float64 `json:"carbon"`
	Economic float64 `json:"economic"`
}

// Source tells the caller where a set came from.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

// FallbackNotice is shown to the user whenever the static table answered.
const FallbackNotice = "Error getting AI recommendations. Using fallback data."

// Location is the free-form place a submission refers to.
type Location struct {
	Address string   `json:"address"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// Submission is the user input for one recommendation request.
type Submission struct {
	Category string   `json:"category"`
	Quantity Quantity `json:"quantity"`
	Location Location `json:"location"`
}

// Outcome is what a fetch always produces.
type Outcome struct {
	Category        string            `json:"category"`
	Quantity        float64           `json:"quantity"`
	Source          Source            `json:"source"`
	Notice          string            `json:"notice,omitempty"`
	Recommendations RecommendationSet `json:"recommendations"`
	Summary         Summary           `json:"summary"`
}

// Quantity accepts a JSON number or a numeric string.
type Quantity float64

func (q *Quantity) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == "" {
		*q = 0
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*q = 0
			return nil
		}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("quantity must be numeric: %q", raw)
	}
	*q = Quantity(v)
	return nil
}

// NormalizeCategory lower-cases and trims a category key.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// Clone returns a deep copy of s.
func (s RecommendationSet) Clone() RecommendationSet {
	if s == nil {
		return nil
	}
	out := make(RecommendationSet, len(s))
	for k, v := range s {
		v.Steps = append([]string(nil), v.Steps...)
		v.Equipment = append([]string(nil), v.Equipment...)
		out[k] = v
	}
	return out
}

// Payload renders s as the decoded-JSON shape Normalize accepts.
func (s RecommendationSet) Payload() map[string]any {
	out := make(map[string]any, len(s))
	for k, v := range s {
		out[k] = map[string]any{
			"confidence":  v.Confidence,
			"description": v.Description,
			"steps":       stringsToAny(v.Steps),
			"equipment":   stringsToAny(v.Equipment),
			"impact": map[string]any{
				"aqi":      v.Impact.AQI,
				"carbon":   v.Impact.Carbon,
				"economic": v.Impact.Economic,
			},
		}
	}
	return out
}

func stringsToAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
