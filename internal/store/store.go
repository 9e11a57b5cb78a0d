// Package store contains all persistence for the PathBuddy backend: trips in
// a relational table and profile preferences in a key-value style table, both
// scoped per owner and both observable through change-notification streams.
//
// Two implementations exist: Postgres (production) and an in-memory store
// (tests and database-less local runs). No business logic lives here — only
// storage, type mapping, and change notification.
package store

import (
	"context"

	"github.com/ReimoK/PathBuddy/internal/domain"
)

// TripStore defines the persistence operations for trips.
//
// Every operation takes an explicit owner; there is no ambient current-user
// state. An empty owner is not an error — reads return empty results and
// writes are no-ops, so an unauthenticated caller degrades to "no data".
type TripStore interface {
	// List returns all trips for the owner ordered by start_date ascending.
	// ISO date strings sort lexicographically in date order, so the ordering
	// is date-correct for every record the planner pipeline has written.
	List(ctx context.Context, owner string) ([]domain.Trip, error)

	// Get retrieves a single trip by id, scoped to the owner.
	// Returns domain.ErrNotFound if no such trip exists for that owner.
	Get(ctx context.Context, id int64, owner string) (domain.Trip, error)

	// Save inserts the trip when trip.ID == 0 (assigning a new identifier)
	// and otherwise updates in place, replacing on conflict. It returns the
	// identifier of the saved record. A trip with an empty Owner is not
	// persisted; Save returns 0 with no error.
	Save(ctx context.Context, trip domain.Trip) (int64, error)

	// Clear deletes every trip belonging to the owner. Used on logout.
	Clear(ctx context.Context, owner string) error

	// WatchList streams the owner's full trip list: the current value is
	// emitted immediately, and a fresh value is emitted after every mutation
	// for that owner. The stream stops and the channel closes when ctx is
	// cancelled.
	WatchList(ctx context.Context, owner string) <-chan []domain.Trip

	// WatchTrip streams a single trip by id. Emits nil while the trip is
	// absent or after it is deleted.
	WatchTrip(ctx context.Context, id int64, owner string) <-chan *domain.Trip
}

// ProfileStore defines the persistence operations for profile preferences.
// Read failures are expected to degrade: callers treat any error as the zero
// Profile rather than surfacing it.
type ProfileStore interface {
	// Read returns the owner's profile. A missing profile is not an error;
	// it reads as the zero Profile.
	Read(ctx context.Context, owner string) (domain.Profile, error)

	// Write upserts the owner's profile. A no-op when owner is empty.
	Write(ctx context.Context, owner string, p domain.Profile) error

	// Clear removes the owner's stored profile.
	Clear(ctx context.Context, owner string) error

	// Watch streams the owner's profile with the same contract as
	// TripStore.WatchList. Read faults degrade to the zero Profile.
	Watch(ctx context.Context, owner string) <-chan domain.Profile
}

// watch is the shared subscription loop behind every Watch* method.
//
// It emits the current fetch result immediately, then waits for a change
// signal for the owner and re-fetches. Fetch errors degrade to fallback so a
// transient fault never kills a long-lived subscription. The loop exits and
// closes the channel when ctx is cancelled.
func watch[T any](ctx context.Context, n *notifier, owner string, fallback T, fetch func(context.Context) (T, error)) <-chan T {
	out := make(chan T, 1)
	sub := n.subscribe(owner)

	go func() {
		defer close(out)
		defer n.unsubscribe(owner, sub.id)

		for {
			v, err := fetch(ctx)
			if err != nil {
				v = fallback
			}

			select {
			case out <- v:
			case <-ctx.Done():
				return
			}

			select {
			case <-sub.signal:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
