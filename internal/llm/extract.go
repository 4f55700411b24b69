package llm

import (
	"errors"
	"strings"
)

// ErrNoJSONObject is returned when a completion does not embed a JSON object.
var ErrNoJSONObject = errors.New("no JSON object in completion")

// ExtractJSONObject returns the text between the first '{' and the last '}'.
// Markdown code fences and surrounding prose are ignored. The result is not
// guaranteed to be valid JSON; callers decode it.
func ExtractJSONObject(content string) (string, error) {
	cleaned := stripCodeFences(content)
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end < start {
		return "", ErrNoJSONObject
	}
	return cleaned[start : end+1], nil
}

func stripCodeFences(content string) string {
	if !strings.Contains(content, "```") {
		return content
	}
	lines := strings.Split(content, "\n")
	out := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
