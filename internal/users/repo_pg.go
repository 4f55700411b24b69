package users

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, profile Profile) (Profile, error) {
	const query = `
INSERT INTO profiles (user_id, name, email, phone, location, bio, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
ON CONFLICT (user_id) DO UPDATE SET
  name = EXCLUDED.name,
  email = EXCLUDED.email,
  phone = EXCLUDED.phone,
  location = EXCLUDED.location,
  bio = EXCLUDED.bio,
  updated_at = EXCLUDED.updated_at
RETURNING created_at`
	err := r.DB.QueryRowContext(ctx, query,
		profile.UserID,
		profile.Name,
		profile.Email,
		nullableString(profile.Phone),
		nullableString(profile.Location),
		nullableString(profile.Bio),
		profile.UpdatedAt,
	).Scan(&profile.CreatedAt)
	if err != nil {
		return Profile{}, err
	}
	return profile, nil
}

func (r *PGRepo) GetByUserID(ctx context.Context, userID string) (Profile, error) {
	const query = `
SELECT user_id, name, email, phone, location, bio, created_at, updated_at
FROM profiles
WHERE user_id = $1
LIMIT 1`
	var p Profile
	var phone, location, bio sql.NullString
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID,
		&p.Name,
		&p.Email,
		&phone,
		&location,
		&bio,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	p.Phone = phone.String
	p.Location = location.String
	p.Bio = bio.String
	return p, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
