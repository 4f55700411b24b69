package history

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"agrirevive-backend/internal/shared/telemetry"
	"agrirevive-backend/internal/shared/util"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	maxQueryRunes    = 200
)

// Recorder appends search history without failing the caller.
type Recorder interface {
	Record(ctx context.Context, userID, kind, query, source string)
}

// Service records and lists search history.
type Service struct {
	Repo Repo
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: time.Now}
}

// Record stores an entry. Failures are logged and swallowed.
func (s *Service) Record(ctx context.Context, userID, kind, query, source string) {
	if s == nil || s.Repo == nil {
		return
	}
	userID = strings.TrimSpace(userID)
	query = util.SanitizeInput(query, maxQueryRunes)
	if userID == "" || query == "" {
		return
	}
	entry := Entry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Kind:      kind,
		Query:     query,
		Source:    source,
		CreatedAt: s.now().UTC(),
	}
	if err := s.Repo.Insert(ctx, entry); err != nil {
		telemetry.Error("history.record_failed", map[string]any{
			"user_id": userID,
			"kind":    kind,
			"error":   err,
		})
	}
}

// List returns a user's entries, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Entry, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("history service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("user id is required")
	}
	return s.Repo.ListByUser(ctx, userID, clampLimit(limit), offset)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

var _ Recorder = (*Service)(nil)
