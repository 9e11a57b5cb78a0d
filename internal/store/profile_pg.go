package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ReimoK/PathBuddy/internal/domain"
)

// PGProfileStore is the Postgres implementation of ProfileStore.
// One row per owner; a missing row reads as the zero Profile.
type PGProfileStore struct {
	db    db
	notes *notifier
}

// NewPGProfileStore constructs a ProfileStore backed by the provided db connection.
func NewPGProfileStore(db db) *PGProfileStore {
	return &PGProfileStore{db: db, notes: newNotifier()}
}

// Read returns the owner's profile, or the zero Profile when no row exists
// or owner is empty. Infrastructure faults are returned wrapped; callers
// degrade them to the zero Profile per the ProfileStore contract.
func (s *PGProfileStore) Read(ctx context.Context, owner string) (domain.Profile, error) {
	if owner == "" {
		return domain.Profile{}, nil
	}

	const q = `
		SELECT name, home_base, favorite_interests
		FROM profiles
		WHERE owner = @owner`

	var p domain.Profile
	row := s.db.QueryRow(ctx, q, pgx.NamedArgs{"owner": owner})
	if err := row.Scan(&p.Name, &p.HomeBase, &p.FavoriteInterests); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, nil
		}
		return domain.Profile{}, fmt.Errorf("store.PGProfileStore.Read: %w", err)
	}
	return p, nil
}

// Write upserts the owner's profile and notifies watchers.
func (s *PGProfileStore) Write(ctx context.Context, owner string, p domain.Profile) error {
	if owner == "" {
		return nil
	}

	const q = `
		INSERT INTO profiles (owner, name, home_base, favorite_interests)
		VALUES (@owner, @name, @home_base, @favorite_interests)
		ON CONFLICT (owner) DO UPDATE
		SET name               = excluded.name,
		    home_base          = excluded.home_base,
		    favorite_interests = excluded.favorite_interests`

	args := pgx.NamedArgs{
		"owner":              owner,
		"name":               p.Name,
		"home_base":          p.HomeBase,
		"favorite_interests": p.FavoriteInterests,
	}
	if _, err := s.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("store.PGProfileStore.Write: %w", err)
	}

	s.notes.broadcast(owner)
	return nil
}

// Clear removes the owner's stored profile and notifies watchers.
func (s *PGProfileStore) Clear(ctx context.Context, owner string) error {
	if owner == "" {
		return nil
	}

	const q = `DELETE FROM profiles WHERE owner = @owner`

	if _, err := s.db.Exec(ctx, q, pgx.NamedArgs{"owner": owner}); err != nil {
		return fmt.Errorf("store.PGProfileStore.Clear: %w", err)
	}

	s.notes.broadcast(owner)
	return nil
}

// Watch streams the owner's profile; read faults degrade to the zero Profile.
func (s *PGProfileStore) Watch(ctx context.Context, owner string) <-chan domain.Profile {
	return watch(ctx, s.notes, owner, domain.Profile{}, func(ctx context.Context) (domain.Profile, error) {
		return s.Read(ctx, owner)
	})
}
