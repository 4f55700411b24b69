package recommend

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrirevive-backend/internal/llm"
)

func validPayload() map[string]any {
	method := func(conf float64) map[string]any {
		return map[string]any{
			"confidence":  conf,
			"description": "Detailed plan",
			"steps":       []any{"a", "b", "c", "d"},
			"equipment":   []any{"x", "y", "z"},
			"impact":      map[string]any{"aqi": 12.0, "carbon": 2.5, "economic": 40000.0},
		}
	}
	return map[string]any{
		"biofuel":    method(0.9),
		"composting": method(0.8),
		"recycling":  method(0.7),
	}
}

func TestNormalizeClampsConfidence(t *testing.T) {
	payload := validPayload()
	payload["biofuel"].(map[string]any)["confidence"] = 1.5
	payload["composting"].(map[string]any)["confidence"] = 0.1

	set, err := Normalize(payload)
	require.NoError(t, err)
	assert.Equal(t, 0.95, set["biofuel"].Confidence)
	assert.Equal(t, 0.6, set["composting"].Confidence)
}

func TestNormalizeNonNumericUsesDefaults(t *testing.T) {
	payload := validPayload()
	rec := payload["recycling"].(map[string]any)
	rec["confidence"] = "very high"
	rec["impact"] = map[string]any{"aqi": "lots", "carbon": math.NaN(), "economic": nil}

	set, err := Normalize(payload)
	require.NoError(t, err)
	got := set["recycling"]
	assert.Equal(t, 0.7, got.Confidence)
	assert.Equal(t, ImpactMetrics{AQI: 10, Carbon: 2, Economic: 30000}, got.Impact)
}

func TestNormalizeClampsImpact(t *testing.T) {
	payload := validPayload()
	payload["biofuel"].(map[string]any)["impact"] = map[string]any{"aqi": 99.0, "carbon": -3, "economic": 1e9}

	set, err := Normalize(payload)
	require.NoError(t, err)
	assert.Equal(t, ImpactMetrics{AQI: 20, Carbon: 1, Economic: 50000}, set["biofuel"].Impact)
}

func TestNormalizeRepairsListsAndDescription(t *testing.T) {
	payload := validPayload()
	bio := payload["biofuel"].(map[string]any)
	bio["steps"] = []any{"only", "two"}
	bio["equipment"] = "not a list"
	delete(bio, "description")
	comp := payload["composting"].(map[string]any)
	comp["steps"] = []any{"one", 2, "", "three", "four"}
	comp["description"] = 42

	set, err := Normalize(payload)
	require.NoError(t, err)
	assert.Equal(t, defaultSteps, set["biofuel"].Steps)
	assert.Equal(t, defaultEquipment, set["biofuel"].Equipment)
	assert.Equal(t, "Convert biofuel waste into valuable resources through advanced processing techniques.", set["biofuel"].Description)
	assert.Equal(t, []string{"one", "", "three", "four"}, set["composting"].Steps)
	assert.Equal(t, DefaultDescription("composting"), set["composting"].Description)
}

func TestNormalizeMissingMethodIsValidationError(t *testing.T) {
	payload := validPayload()
	delete(payload, "recycling")

	_, err := Normalize(payload)
	var vErr *llm.ValidationError
	require.True(t, errors.As(err, &vErr), "got %v", err)
	assert.Equal(t, "recycling", vErr.Field)
}

func TestNormalizeMethodNotObject(t *testing.T) {
	payload := validPayload()
	payload["composting"] = "compost it"

	_, err := Normalize(payload)
	var vErr *llm.ValidationError
	assert.True(t, errors.As(err, &vErr))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	first, err := Normalize(validPayload())
	require.NoError(t, err)
	second, err := Normalize(first.Payload())
	require.NoError(t, err)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("normalizing a valid set changed it (-first +second):\n%s", diff)
	}
}

func TestNormalizeKeepsOddButValidValues(t *testing.T) {
	set := RecommendationSet{}
	for _, method := range Methods {
		set[method] = MethodRecommendation{
			Confidence:  0.8,
			Description: "",
			Steps:       []string{" a ", "b", ""},
			Equipment:   []string{"x", "  ", "z "},
			Impact:      ImpactMetrics{AQI: 12, Carbon: 2.5, Economic: 40000},
		}
	}

	again, err := Normalize(set.Payload())
	require.NoError(t, err)
	if diff := cmp.Diff(set, again); diff != "" {
		t.Fatalf("normalizing a valid set changed it (-want +got):\n%s", diff)
	}
}

func TestNormalizeFallbackTableIsFixedPoint(t *testing.T) {
	table, err := DefaultTable()
	require.NoError(t, err)
	for _, category := range table.Categories() {
		set, _ := table.For(category)
		again, err := Normalize(set.Payload())
		require.NoError(t, err)
		if diff := cmp.Diff(set, again); diff != "" {
			t.Fatalf("%s table changed on normalize:\n%s", category, diff)
		}
	}
}

func TestDecodeTaggedVariants(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "malformed json", raw: `{"biofuel": `, want: "parse"},
		{name: "error string", raw: `{"error":"model overloaded"}`, want: "validation"},
		{name: "error object", raw: `{"error":{"message":"bad"}}`, want: "validation"},
		{name: "status not_found", raw: `{"status":"not_found"}`, want: "validation"},
		{name: "status error with message", raw: `{"status":"error","message":"unknown crop"}`, want: "validation"},
		{name: "missing keys", raw: `{"biofuel":{}}`, want: "validation"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.raw)
			require.Error(t, err)
			assert.Equal(t, tc.want, llm.Reason(err))
		})
	}
}

func TestDecodeValidSetWithErrorFieldIsNotErrorShape(t *testing.T) {
	payload := `{"error":null,"biofuel":{},"composting":{},"recycling":{}}`
	set, err := Decode(payload)
	require.NoError(t, err)
	assert.Len(t, set, 3)
	assert.Equal(t, defaultSteps, set["recycling"].Steps)
}

func TestSummarize(t *testing.T) {
	set := RecommendationSet{
		"biofuel":    {Confidence: 0.85, Impact: ImpactMetrics{AQI: 15, Carbon: 2.5, Economic: 41500}},
		"composting": {Confidence: 0.9, Impact: ImpactMetrics{AQI: 12.5, Carbon: 3, Economic: 28750}},
		"recycling":  {Confidence: 0.65, Impact: ImpactMetrics{AQI: 10, Carbon: 1.2, Economic: 22500}},
	}
	got := Summarize(set)
	assert.Equal(t, Summary{
		MaxConfidence: 0.9,
		TopMethod:     "composting",
		MaxImpact:     ImpactMetrics{AQI: 15, Carbon: 3, Economic: 41500},
	}, got)
}
