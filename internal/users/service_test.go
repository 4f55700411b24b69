package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	svc := NewService(NewMemoryRepo())
	tick := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}
	return svc
}

func TestGetSeedsFromIdentity(t *testing.T) {
	svc := newTestService()
	got, err := svc.Get(context.Background(), Identity{UserID: "u1", Email: "u1@example.com", Name: "Ravi"})
	require.NoError(t, err)
	assert.Equal(t, Profile{UserID: "u1", Email: "u1@example.com", Name: "Ravi"}, got)
}

func TestUpdateKeepsCreatedAt(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.Update(ctx, "u1", Update{Name: "Ravi", Email: "ravi@example.com"})
	require.NoError(t, err)
	second, err := svc.Update(ctx, "u1", Update{Name: "Ravi K", Email: "ravi@example.com", Location: "Pune"})
	require.NoError(t, err)

	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))

	got, err := svc.Get(ctx, Identity{UserID: "u1", Name: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "Ravi K", got.Name)
	assert.Equal(t, "Pune", got.Location)
}

func TestUpdateRejectsInvalid(t *testing.T) {
	svc := newTestService()
	_, err := svc.Update(context.Background(), "u1", Update{Name: "R"})
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))

	_, err = svc.Get(context.Background(), Identity{UserID: "u1"})
	require.NoError(t, err)
}

func TestServiceRequiresUserID(t *testing.T) {
	svc := newTestService()
	_, err := svc.Update(context.Background(), " ", Update{Name: "Ravi", Email: "r@x.io"})
	assert.Error(t, err)
	_, err = svc.Get(context.Background(), Identity{})
	assert.Error(t, err)
}
