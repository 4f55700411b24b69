package recommend

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"agrirevive-backend/internal/llm"
)

type numericRange struct {
	min, max, fallback float64
}

var (
	confidenceRange = numericRange{min: 0.6, max: 0.95, fallback: 0.7}
	aqiRange        = numericRange{min: 5, max: 20, fallback: 10}
	carbonRange     = numericRange{min: 1, max: 5, fallback: 2}
	economicRange   = numericRange{min: 20000, max: 50000, fallback: 30000}
)

const minListItems = 3

var (
	defaultSteps = []string{
		"Waste collection and sorting",
		"Initial processing setup",
		"Main processing phase",
		"Quality control",
		"Final product distribution",
	}
	defaultEquipment = []string{
		"Collection system",
		"Processing equipment",
		"Quality control tools",
		"Storage facilities",
		"Distribution system",
	}
)

// DefaultDescription is used when a method carries no usable description.
func DefaultDescription(method string) string {
	return fmt.Sprintf("Convert %s waste into valuable resources through advanced processing techniques.", method)
}

// Decode extracts the JSON object from a completion, rejects recognized
// error replies and normalizes the rest.
func Decode(content string) (RecommendationSet, error) {
	payload, err := llm.DecodeObject(content)
	if err != nil {
		return nil, err
	}
	if reason, ok := errorShape(payload); ok {
		return nil, &llm.ValidationError{Reason: "provider reported error: " + reason}
	}
	return Normalize(payload)
}

// errorShape recognizes the {"error": ...} and {"status": "error"|"not_found"} replies.
func errorShape(payload map[string]any) (string, bool) {
	if status, ok := payload["status"].(string); ok {
		switch strings.ToLower(strings.TrimSpace(status)) {
		case "error", "not_found":
			if msg, ok := payload["message"].(string); ok && strings.TrimSpace(msg) != "" {
				return msg, true
			}
			return status, true
		}
	}
	raw, ok := payload["error"]
	if !ok || raw == nil {
		return "", false
	}
	for _, method := range Methods {
		if _, present := payload[method]; present {
			return "", false
		}
	}
	switch v := raw.(type) {
	case string:
		return v, true
	case map[string]any:
		if msg, ok := v["message"].(string); ok {
			return msg, true
		}
	}
	return "error", true
}

// Normalize coerces a decoded JSON object into a valid RecommendationSet.
// A missing method key is a ValidationError; every other defect is repaired.
func Normalize(payload map[string]any) (RecommendationSet, error) {
	out := make(RecommendationSet, len(Methods))
	for _, method := range Methods {
		raw, ok := payload[method]
		if !ok || raw == nil {
			return nil, &llm.ValidationError{Field: method, Reason: "missing " + method + " recommendations"}
		}
		data, ok := raw.(map[string]any)
		if !ok {
			return nil, &llm.ValidationError{Field: method, Reason: "expected an object"}
		}
		out[method] = normalizeMethod(method, data)
	}
	return out, nil
}

func normalizeMethod(method string, data map[string]any) MethodRecommendation {
	rec := MethodRecommendation{
		Confidence:  confidenceRange.coerce(data["confidence"]),
		Description: DefaultDescription(method),
		Steps:       coerceList(data["steps"], defaultSteps),
		Equipment:   coerceList(data["equipment"], defaultEquipment),
	}
	if desc, ok := data["description"].(string); ok {
		rec.Description = desc
	}
	impact, _ := data["impact"].(map[string]any)
	rec.Impact = ImpactMetrics{
		AQI:      aqiRange.coerce(impact["aqi"]),
		Carbon:   carbonRange.coerce(impact["carbon"]),
		Economic: economicRange.coerce(impact["economic"]),
	}
	return rec
}

func (r numericRange) coerce(v any) float64 {
	f, ok := toFloat(v)
	if !ok {
		return r.fallback
	}
	return math.Max(r.min, math.Min(r.max, f))
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// coerceList keeps string items verbatim and drops anything else. Lists
// shorter than minListItems are replaced by fallback.
func coerceList(v any, fallback []string) []string {
	items, ok := v.([]any)
	if !ok || len(items) < minListItems {
		return append([]string(nil), fallback...)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) < minListItems {
		return append([]string(nil), fallback...)
	}
	return out
}
