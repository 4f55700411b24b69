package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRepo struct{}

func (failingRepo) Insert(context.Context, Entry) error { return errors.New("db down") }

func (failingRepo) ListByUser(context.Context, string, int, int) ([]Entry, error) {
	return nil, errors.New("db down")
}

func TestRecordAndListNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	ctx := context.Background()
	svc.Record(ctx, "user-1", KindRecommendation, "500kg rice", "remote")
	svc.Record(ctx, "user-1", KindRotation, "wheat", "")
	svc.Record(ctx, "user-2", KindMedicine, "paracetamol", "remote")

	entries, err := svc.List(ctx, "user-1", 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, KindRotation, entries[0].Kind)
	assert.Equal(t, "500kg rice", entries[1].Query)
	assert.NotEmpty(t, entries[0].ID)
}

func TestRecordSkipsBlankInput(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	svc.Record(context.Background(), "", KindRotation, "wheat", "")
	svc.Record(context.Background(), "user-1", KindRotation, "   ", "")

	entries, err := repo.ListByUser(context.Background(), "user-1", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecordSwallowsRepoErrors(t *testing.T) {
	svc := NewService(failingRepo{})
	assert.NotPanics(t, func() {
		svc.Record(context.Background(), "user-1", KindMedicine, "ibuprofen", "remote")
	})
}

func TestMemoryRepoPaging(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Insert(ctx, Entry{ID: string(rune('a' + i)), UserID: "u", CreatedAt: base.Add(time.Duration(i) * time.Hour)}))
	}

	page, err := repo.ListByUser(ctx, "u", 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "d", page[0].ID)
	assert.Equal(t, "c", page[1].ID)

	empty, err := repo.ListByUser(ctx, "u", 2, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, defaultListLimit, clampLimit(0))
	assert.Equal(t, maxListLimit, clampLimit(1000))
	assert.Equal(t, 7, clampLimit(7))
}
