package recommend

import (
	"context"
	"time"

	"agrirevive-backend/internal/llm"
	"agrirevive-backend/internal/shared/metrics"
	"agrirevive-backend/internal/shared/telemetry"
)

const defaultFetchTimeout = 20 * time.Second

// Fetcher obtains a RecommendationSet from the inference endpoint and
// substitutes the fallback table on any failure.
type Fetcher struct {
	LLM       llm.Client
	Fallbacks *Table
	Timeout   time.Duration
}

// NewFetcher constructs a Fetcher. A nil client behaves as unconfigured.
func NewFetcher(client llm.Client, table *Table, timeout time.Duration) *Fetcher {
	if client == nil {
		client = llm.PlaceholderClient{}
	}
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Fetcher{LLM: client, Fallbacks: table, Timeout: timeout}
}

// Fetch never fails: a remote error yields the category's fallback set.
func (f *Fetcher) Fetch(ctx context.Context, sub Submission) Outcome {
	metrics.IncRecommendations()
	category := NormalizeCategory(sub.Category)
	out := Outcome{
		Category: category,
		Quantity: float64(sub.Quantity),
	}

	set, err := f.fetchRemote(ctx, sub)
	if err == nil {
		out.Source = SourceRemote
		out.Recommendations = set
		out.Summary = Summarize(set)
		return out
	}

	metrics.IncRecommendationFallbacks()
	fallback, key := f.Fallbacks.For(category)
	telemetry.Warn("recommend.fallback", map[string]any{
		"category":       category,
		"fallback_table": key,
		"reason":         llm.Reason(err),
		"error":          err,
	})
	out.Source = SourceFallback
	out.Notice = FallbackNotice
	out.Recommendations = fallback
	out.Summary = Summarize(fallback)
	return out
}

// fetchRemote performs the single attempt. Errors are always one of
// NetworkError, ParseError or ValidationError.
func (f *Fetcher) fetchRemote(ctx context.Context, sub Submission) (RecommendationSet, error) {
	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	content, err := f.LLM.Complete(ctx, BuildRequest(sub))
	if err != nil {
		return nil, llm.Classify(err)
	}
	return Decode(content)
}
