package recommend

import (
	_ "embed"
	"strconv"
	"strings"

	"agrirevive-backend/internal/llm"
	"agrirevive-backend/internal/shared/util"
)

var (
	//go:embed prompts/system.txt
	systemPrompt string
	//go:embed prompts/user.txt
	userPromptTemplate string
)

const (
	promptTemperature = 0.7
	promptMaxTokens   = 2000
	maxAddressRunes   = 300
)

// BuildRequest renders the chat request for a submission.
func BuildRequest(sub Submission) llm.Request {
	return llm.Request{
		System:      strings.TrimSpace(systemPrompt),
		User:        buildUserPrompt(sub),
		Temperature: promptTemperature,
		MaxTokens:   promptMaxTokens,
	}
}

func buildUserPrompt(sub Submission) string {
	replacer := strings.NewReplacer(
		"{{QUANTITY}}", strconv.FormatFloat(float64(sub.Quantity), 'f', -1, 64),
		"{{CATEGORY}}", NormalizeCategory(sub.Category),
		"{{LOCATION}}", describeLocation(sub.Location),
	)
	return strings.TrimSpace(replacer.Replace(userPromptTemplate))
}

func describeLocation(loc Location) string {
	address := util.SanitizeInput(loc.Address, maxAddressRunes)
	if address == "" {
		address = "an unspecified location"
	}
	if loc.Lat == nil || loc.Lng == nil {
		return address
	}
	return address + " (" + formatCoord(*loc.Lat) + ", " + formatCoord(*loc.Lng) + ")"
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
