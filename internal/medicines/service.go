package medicines

import (
	"context"
	_ "embed"
	"errors"
	"strings"
	"time"

	"agrirevive-backend/internal/llm"
	"agrirevive-backend/internal/shared/metrics"
	"agrirevive-backend/internal/shared/telemetry"
	"agrirevive-backend/internal/shared/util"
)

var (
	//go:embed prompts/lookup.txt
	lookupPrompt string
	//go:embed prompts/suggest.txt
	suggestPrompt string
	//go:embed prompts/closest.txt
	closestPromptTemplate string
)

const (
	MinSuggestQueryLength = 3
	maxSuggestions        = 5
	maxSuggestAttempts    = 2
	maxQueryRunes         = 120
	defaultTimeout        = 15 * time.Second
)

// Service answers medicine lookups through the LLM client.
type Service struct {
	LLM     llm.Client
	Timeout time.Duration
}

// NewService constructs a Service. A nil client behaves as unconfigured.
func NewService(client llm.Client, timeout time.Duration) *Service {
	if client == nil {
		client = llm.PlaceholderClient{}
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Service{LLM: client, Timeout: timeout}
}

// Lookup returns information about query. When the model does not
// recognize the name, the closest spelling is looked up once instead.
func (s *Service) Lookup(ctx context.Context, query string) (Result, error) {
	q := util.SanitizeInput(query, maxQueryRunes)
	if q == "" {
		return Result{}, ErrInvalidQuery
	}
	metrics.IncMedicineLookups()

	reply, err := s.lookupOnce(ctx, q)
	if err != nil {
		return Result{}, err
	}
	if reply.Found {
		return Result{Query: q, Info: reply.Info}, nil
	}

	suggestion, err := s.ClosestMatch(ctx, q)
	if err != nil {
		telemetry.Warn("medicines.closest_match_failed", map[string]any{
			"query_hash": util.ShortFingerprint(util.NormalizeQuery(q)),
			"reason":     llm.Reason(err),
			"error":      err,
		})
	}
	if suggestion == "" || strings.EqualFold(suggestion, q) {
		metrics.IncMedicineNotFound()
		return Result{}, ErrNotFound
	}

	reply, err = s.lookupOnce(ctx, suggestion)
	if err != nil {
		return Result{}, err
	}
	if !reply.Found {
		metrics.IncMedicineNotFound()
		return Result{}, ErrNotFound
	}
	return Result{Query: q, MatchedName: suggestion, Info: reply.Info}, nil
}

// ClosestMatch asks for the nearest valid medicine name. An empty string
// means no match.
func (s *Service) ClosestMatch(ctx context.Context, query string) (string, error) {
	q := util.SanitizeInput(query, maxQueryRunes)
	if q == "" {
		return "", ErrInvalidQuery
	}
	content, err := s.complete(ctx, llm.Request{
		System:   strings.ReplaceAll(strings.TrimSpace(closestPromptTemplate), "{{QUERY}}", q),
		JSONMode: true,
	})
	if err != nil {
		return "", err
	}
	return parseClosestMatch(content)
}

// Suggest returns up to five names similar to query. Short queries return
// nothing without a call. Failures are retried once and then reported as
// a degraded empty list.
func (s *Service) Suggest(ctx context.Context, query string) Suggestions {
	q := util.SanitizeInput(query, maxQueryRunes)
	if len([]rune(q)) < MinSuggestQueryLength {
		return Suggestions{Items: []Suggestion{}}
	}

	var lastErr error
	for attempt := 1; attempt <= maxSuggestAttempts; attempt++ {
		content, err := s.complete(ctx, llm.Request{
			System:      strings.TrimSpace(suggestPrompt),
			User:        "Suggest medicines similar to: " + q,
			Temperature: 0.3,
			MaxTokens:   200,
			JSONMode:    true,
		})
		if err == nil {
			var items []Suggestion
			items, err = parseSuggestions(content)
			if err == nil {
				return Suggestions{Items: items}
			}
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	telemetry.Warn("medicines.suggest_degraded", map[string]any{
		"query_hash": util.ShortFingerprint(util.NormalizeQuery(q)),
		"reason":     llm.Reason(lastErr),
		"error":      lastErr,
	})
	return Suggestions{Items: []Suggestion{}, Degraded: true}
}

func (s *Service) lookupOnce(ctx context.Context, q string) (lookupReply, error) {
	content, err := s.complete(ctx, llm.Request{
		System:      strings.TrimSpace(lookupPrompt),
		User:        "Provide information about: " + q,
		Temperature: 0.2,
		MaxTokens:   500,
		JSONMode:    true,
	})
	if err != nil {
		return lookupReply{}, err
	}
	return parseLookupReply(content)
}

func (s *Service) complete(ctx context.Context, req llm.Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	content, err := s.LLM.Complete(ctx, req)
	if err != nil {
		return "", llm.Classify(err)
	}
	return content, nil
}

// IsUnavailable reports whether err came from the model rather than the query.
func IsUnavailable(err error) bool {
	return err != nil && !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrInvalidQuery)
}
