package users

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("profile not found")

// Repo persists profiles keyed by user id.
type Repo interface {
	Upsert(ctx context.Context, profile Profile) (Profile, error)
	GetByUserID(ctx context.Context, userID string) (Profile, error)
}
