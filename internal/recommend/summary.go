package recommend

// Summary is the headline view across all methods of a set.
type Summary struct {
	MaxConfidence float64       `json:"maxConfidence"`
	TopMethod     string        `json:"topMethod"`
	MaxImpact     ImpactMetrics `json:"maxImpact"`
}

// Summarize takes the per-metric maximum over every method.
func Summarize(set RecommendationSet) Summary {
	var s Summary
	for _, method := range Methods {
		rec, ok := set[method]
		if !ok {
			continue
		}
		if s.TopMethod == "" || rec.Confidence > s.MaxConfidence {
			s.MaxConfidence = rec.Confidence
			s.TopMethod = method
		}
		s.MaxImpact.AQI = max(s.MaxImpact.AQI, rec.Impact.AQI)
		s.MaxImpact.Carbon = max(s.MaxImpact.Carbon, rec.Impact.Carbon)
		s.MaxImpact.Economic = max(s.MaxImpact.Economic, rec.Impact.Economic)
	}
	return s
}
