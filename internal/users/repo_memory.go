package users

import (
	"context"
	"sync"
)

// MemoryRepo keeps profiles in process memory.
type MemoryRepo struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{profiles: make(map[string]Profile)}
}

func (r *MemoryRepo) Upsert(ctx context.Context, profile Profile) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.profiles[profile.UserID]; ok {
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.CreatedAt = profile.UpdatedAt
	}
	r.profiles[profile.UserID] = profile
	return profile, nil
}

func (r *MemoryRepo) GetByUserID(ctx context.Context, userID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return profile, nil
}
