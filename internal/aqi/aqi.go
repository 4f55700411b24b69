package aqi

import (
	"errors"
	"math"
	"time"
)

// Status bands, upper bounds inclusive.
const (
	StatusGood          = "Good"
	StatusModerate      = "Moderate"
	StatusSensitive     = "Unhealthy for Sensitive Groups"
	StatusUnhealthy     = "Unhealthy"
	StatusVeryUnhealthy = "Very Unhealthy"
)

const (
	baselineValue = 75
	baselineCity  = "Bangalore"
	maxValue      = 1000
)

var ErrInvalidValue = errors.New("aqi value must be a number between 0 and 1000")

var (
	classifyAdvice = []string{
		"Consider using dust reduction techniques",
		"Monitor air quality regularly",
		"Plan activities based on AQI levels",
	}
	baselineAdvice = []string{
		"Limit outdoor activities",
		"Use air purifiers indoors",
		"Wear masks when outside",
	}
)

// Report is one air-quality reading with its band and advice.
type Report struct {
	Value           float64   `json:"value"`
	Status          string    `json:"status"`
	City            string    `json:"city,omitempty"`
	Time            time.Time `json:"time,omitzero"`
	Recommendations []string  `json:"recommendations"`
}

// Status returns the band for value.
func Status(value float64) string {
	switch {
	case value <= 50:
		return StatusGood
	case value <= 100:
		return StatusModerate
	case value <= 150:
		return StatusSensitive
	case value <= 200:
		return StatusUnhealthy
	default:
		return StatusVeryUnhealthy
	}
}

// Classify builds a report for a caller-supplied reading.
func Classify(value float64) (Report, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 || value > maxValue {
		return Report{}, ErrInvalidValue
	}
	return Report{
		Value:           value,
		Status:          Status(value),
		Recommendations: append([]string(nil), classifyAdvice...),
	}, nil
}

// Baseline is the static reading served when no value is supplied.
func Baseline(now time.Time) Report {
	return Report{
		Value:           baselineValue,
		Status:          Status(baselineValue),
		City:            baselineCity,
		Time:            now.UTC(),
		Recommendations: append([]string(nil), baselineAdvice...),
	}
}
