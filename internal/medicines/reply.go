package medicines

import (
	"fmt"
	"regexp"
	"strings"

	"agrirevive-backend/internal/llm"
)

// lookupReply is the tagged result of a lookup completion: either found
// with Info, or not found.
type lookupReply struct {
	Found bool
	Info  Info
}

var listSplitter = regexp.MustCompile(`,\s*`)

func parseLookupReply(content string) (lookupReply, error) {
	payload, err := llm.DecodeObject(content)
	if err != nil {
		return lookupReply{}, err
	}
	if isNotFound(payload) {
		return lookupReply{}, nil
	}
	if msg, ok := payload["error"]; ok && msg != nil {
		return lookupReply{}, &llm.ValidationError{Field: "error", Reason: "provider reported error"}
	}
	info, err := infoFromPayload(payload)
	if err != nil {
		return lookupReply{}, err
	}
	return lookupReply{Found: true, Info: info}, nil
}

func isNotFound(payload map[string]any) bool {
	status, _ := payload["status"].(string)
	return strings.EqualFold(strings.TrimSpace(status), "not_found")
}

func infoFromPayload(payload map[string]any) (Info, error) {
	name := stringField(payload, "name")
	if name == "" {
		return Info{}, &llm.ValidationError{Field: "name", Reason: "required"}
	}
	generic := stringField(payload, "genericName")
	if generic == "" {
		return Info{}, &llm.ValidationError{Field: "genericName", Reason: "required"}
	}
	return Info{
		Name:             name,
		GenericName:      generic,
		DosageForms:      listField(payload["dosageForms"]),
		Strengths:        listField(payload["strengths"]),
		SideEffects:      listField(payload["sideEffects"]),
		Manufacturer:     stringField(payload, "manufacturer"),
		TherapeuticClass: stringField(payload, "therapeuticClass"),
		Description:      stringField(payload, "description"),
	}, nil
}

func stringField(payload map[string]any, key string) string {
	s, _ := payload[key].(string)
	return strings.TrimSpace(s)
}

// listField accepts an array, a comma-separated string, or a scalar.
func listField(v any) []string {
	out := []string{}
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	case string:
		for _, part := range listSplitter.Split(val, -1) {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	case nil:
	default:
		out = append(out, fmt.Sprint(val))
	}
	return out
}

func parseSuggestions(content string) ([]Suggestion, error) {
	payload, err := llm.DecodeObject(content)
	if err != nil {
		return nil, err
	}
	raw, ok := payload["suggestions"].([]any)
	if !ok {
		return nil, &llm.ValidationError{Field: "suggestions", Reason: "expected an array"}
	}
	out := make([]Suggestion, 0, maxSuggestions)
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, ok := entry["name"].(string)
		if !ok || strings.TrimSpace(name) == "" {
			continue
		}
		s := Suggestion{Name: strings.TrimSpace(name)}
		if g, present := entry["generic"]; present && g != nil {
			generic, ok := g.(string)
			if !ok {
				continue
			}
			s.Generic = strings.TrimSpace(generic)
		}
		out = append(out, s)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out, nil
}

func parseClosestMatch(content string) (string, error) {
	payload, err := llm.DecodeObject(content)
	if err != nil {
		return "", err
	}
	if isNotFound(payload) {
		return "", nil
	}
	return stringField(payload, "suggestion"), nil
}
