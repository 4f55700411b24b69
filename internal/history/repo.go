package history

import "context"

// Repo persists search history.
type Repo interface {
	Insert(ctx context.Context, entry Entry) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Entry, error)
}
