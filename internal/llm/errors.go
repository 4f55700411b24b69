package llm

import (
	"encoding/json"
	"errors"
	"fmt"
)

// NetworkError reports a failed request or a non-2xx reply.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network error: %v", e.Err) }

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError reports a reply that was not a well-formed JSON object.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse error: %v", e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports a decoded payload that failed shape checks.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Reason
	}
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Reason)
}

// Classify wraps an error from Client.Complete into the taxonomy.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrMalformedResponse) {
		return &ParseError{Err: err}
	}
	return &NetworkError{Err: err}
}

// Reason names the taxonomy bucket err belongs to.
func Reason(err error) string {
	var netErr *NetworkError
	var parseErr *ParseError
	var validationErr *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &netErr):
		return "network"
	case errors.As(err, &parseErr):
		return "parse"
	case errors.As(err, &validationErr):
		return "validation"
	default:
		return "unknown"
	}
}

// DecodeObject extracts the JSON object embedded in a completion and decodes it.
// Failures are ParseErrors.
func DecodeObject(content string) (map[string]any, error) {
	raw, err := ExtractJSONObject(content)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, &ParseError{Err: err}
	}
	if payload == nil {
		return nil, &ParseError{Err: errors.New("payload is not an object")}
	}
	return payload, nil
}
