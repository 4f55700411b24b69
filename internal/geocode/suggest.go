package geocode

import (
	"context"
	"strings"
	"time"

	"agrirevive-backend/internal/shared/debounce"
)

// Searcher finds places for a free-text query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Place, error)
}

// ResultFunc receives the outcome of one issued search.
type ResultFunc func(query string, places []Place, err error)

// Suggester turns keystroke-level input into debounced searches. Only the
// last query of a burst is sent; searches already in flight run to completion.
type Suggester struct {
	ctx       context.Context
	searcher  Searcher
	debouncer *debounce.Debouncer
	onResult  ResultFunc
}

// NewSuggester constructs a Suggester. Searches run with ctx.
func NewSuggester(ctx context.Context, searcher Searcher, delay time.Duration, onResult ResultFunc) *Suggester {
	return &Suggester{
		ctx:       ctx,
		searcher:  searcher,
		debouncer: debounce.New(delay),
		onResult:  onResult,
	}
}

// Submit records the latest input. A blank input clears pending work and
// reports an empty result right away.
func (s *Suggester) Submit(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		s.debouncer.Cancel()
		s.onResult(query, []Place{}, nil)
		return
	}
	s.debouncer.Trigger(func() {
		places, err := s.searcher.Search(s.ctx, query)
		s.onResult(query, places, err)
	})
}

// Close drops the pending search and waits for running ones.
func (s *Suggester) Close() {
	s.debouncer.Cancel()
	s.debouncer.Wait()
}

// Drain lets the pending search fire and waits for it to finish.
func (s *Suggester) Drain() {
	s.debouncer.Wait()
}
