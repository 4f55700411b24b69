package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"agrirevive-backend/internal/shared/telemetry"
)

var errNotConfigured = errors.New("users service not configured")

// Service reads and edits profiles.
type Service struct {
	Repo Repo
	now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: time.Now}
}

// Get returns the stored profile, or one seeded from the token identity
// when the user has never saved theirs.
func (s *Service) Get(ctx context.Context, who Identity) (Profile, error) {
	if s == nil || s.Repo == nil {
		return Profile{}, errNotConfigured
	}
	if strings.TrimSpace(who.UserID) == "" {
		return Profile{}, errors.New("user id is required")
	}
	profile, err := s.Repo.GetByUserID(ctx, who.UserID)
	if errors.Is(err, ErrNotFound) {
		return Profile{UserID: who.UserID, Name: who.Name, Email: who.Email}, nil
	}
	return profile, err
}

// Update validates and stores a profile for userID.
func (s *Service) Update(ctx context.Context, userID string, in Update) (Profile, error) {
	if s == nil || s.Repo == nil {
		return Profile{}, errNotConfigured
	}
	if strings.TrimSpace(userID) == "" {
		return Profile{}, errors.New("user id is required")
	}
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return Profile{}, err
	}
	saved, err := s.Repo.Upsert(ctx, Profile{
		UserID:    userID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Location:  in.Location,
		Bio:       in.Bio,
		UpdatedAt: s.now().UTC(),
	})
	if err != nil {
		return Profile{}, err
	}
	telemetry.Info("profile.updated", map[string]any{"user_id": userID})
	return saved, nil
}
