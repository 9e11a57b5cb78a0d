package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ReimoK/PathBuddy/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGTripStore is the Postgres implementation of TripStore.
type PGTripStore struct {
	db    db
	notes *notifier
}

// NewPGTripStore constructs a TripStore backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPGTripStore(db db) *PGTripStore {
	return &PGTripStore{db: db, notes: newNotifier()}
}

// List returns all trips for the owner ordered by start_date ascending.
func (s *PGTripStore) List(ctx context.Context, owner string) ([]domain.Trip, error) {
	if owner == "" {
		return []domain.Trip{}, nil
	}

	const q = `
		SELECT id, owner, destination, start_date, end_date, interests, budget_category
		FROM trips
		WHERE owner = @owner
		ORDER BY start_date ASC, id ASC`

	rows, err := s.db.Query(ctx, q, pgx.NamedArgs{"owner": owner})
	if err != nil {
		return nil, fmt.Errorf("store.PGTripStore.List: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("store.PGTripStore.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store.PGTripStore.List: rows: %w", err)
	}

	return trips, nil
}

// Get retrieves a trip by id, scoped to the owner.
func (s *PGTripStore) Get(ctx context.Context, id int64, owner string) (domain.Trip, error) {
	if owner == "" {
		return domain.Trip{}, domain.ErrNotFound
	}

	const q = `
		SELECT id, owner, destination, start_date, end_date, interests, budget_category
		FROM trips
		WHERE id = @id AND owner = @owner`

	row := s.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "owner": owner})
	t, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("store.PGTripStore.Get: %w", err)
	}
	return t, nil
}

// Save inserts when trip.ID == 0, otherwise upserts under the existing id.
// Subscribers watching the owner are notified after the write commits.
func (s *PGTripStore) Save(ctx context.Context, trip domain.Trip) (int64, error) {
	if trip.Owner == "" {
		// No authenticated owner: nothing to attach the record to.
		return 0, nil
	}

	var (
		row pgx.Row
		id  int64
	)

	if trip.ID == 0 {
		const q = `
			INSERT INTO trips (owner, destination, start_date, end_date, interests, budget_category)
			VALUES (@owner, @destination, @start_date, @end_date, @interests, @budget_category)
			RETURNING id`
		row = s.db.QueryRow(ctx, q, tripArgs(trip))
	} else {
		const q = `
			INSERT INTO trips (id, owner, destination, start_date, end_date, interests, budget_category)
			VALUES (@id, @owner, @destination, @start_date, @end_date, @interests, @budget_category)
			ON CONFLICT (id) DO UPDATE
			SET owner           = excluded.owner,
			    destination     = excluded.destination,
			    start_date      = excluded.start_date,
			    end_date        = excluded.end_date,
			    interests       = excluded.interests,
			    budget_category = excluded.budget_category
			RETURNING id`
		args := tripArgs(trip)
		args["id"] = trip.ID
		row = s.db.QueryRow(ctx, q, args)
	}

	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("store.PGTripStore.Save: %w", err)
	}

	s.notes.broadcast(trip.Owner)
	return id, nil
}

// Clear deletes all trips for the owner. Deleting zero rows is not an error.
func (s *PGTripStore) Clear(ctx context.Context, owner string) error {
	if owner == "" {
		return nil
	}

	const q = `DELETE FROM trips WHERE owner = @owner`

	if _, err := s.db.Exec(ctx, q, pgx.NamedArgs{"owner": owner}); err != nil {
		return fmt.Errorf("store.PGTripStore.Clear: %w", err)
	}

	s.notes.broadcast(owner)
	return nil
}

// WatchList streams the owner's trip list per the TripStore contract.
func (s *PGTripStore) WatchList(ctx context.Context, owner string) <-chan []domain.Trip {
	return watch(ctx, s.notes, owner, []domain.Trip{}, func(ctx context.Context) ([]domain.Trip, error) {
		return s.List(ctx, owner)
	})
}

// WatchTrip streams one trip by id; absent or deleted reads emit nil.
func (s *PGTripStore) WatchTrip(ctx context.Context, id int64, owner string) <-chan *domain.Trip {
	return watch(ctx, s.notes, owner, nil, func(ctx context.Context) (*domain.Trip, error) {
		t, err := s.Get(ctx, id, owner)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return &t, nil
	})
}

// tripArgs maps the writable trip columns to named SQL arguments.
func tripArgs(trip domain.Trip) pgx.NamedArgs {
	return pgx.NamedArgs{
		"owner":           trip.Owner,
		"destination":     trip.Destination,
		"start_date":      trip.StartDate,
		"end_date":        trip.EndDate,
		"interests":       trip.Interests,
		"budget_category": trip.BudgetCategory, // nil becomes NULL
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var t domain.Trip

	err := s.Scan(&t.ID, &t.Owner, &t.Destination, &t.StartDate, &t.EndDate, &t.Interests, &t.BudgetCategory)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	return t, nil
}
