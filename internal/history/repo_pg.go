package history

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Insert stores one entry.
func (r *PGRepo) Insert(ctx context.Context, entry Entry) error {
	const query = `
INSERT INTO search_history (id, user_id, kind, query, source, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	var source sql.NullString
	if entry.Source != "" {
		source = sql.NullString{String: entry.Source, Valid: true}
	}
	_, err := r.DB.ExecContext(ctx, query, entry.ID, entry.UserID, entry.Kind, entry.Query, source, entry.CreatedAt)
	return err
}

// ListByUser returns entries for a user, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Entry, error) {
	const query = `
SELECT id, user_id, kind, query, source, created_at
FROM search_history
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var source sql.NullString
		if err := rows.Scan(&e.ID, &e.UserID, &e.Kind, &e.Query, &source, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Source = source.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
