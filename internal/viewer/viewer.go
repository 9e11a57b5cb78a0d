// Package viewer exposes a single trip as live state: the latest record for
// an identifier plus a derived day-by-day itinerary skeleton.
package viewer

import (
	"context"
	"sync"
	"time"

	"github.com/ReimoK/PathBuddy/internal/dateutil"
	"github.com/ReimoK/PathBuddy/internal/domain"
)

// TripWatcher is the single-trip stream the viewer consumes.
type TripWatcher interface {
	WatchTrip(ctx context.Context, id int64, owner string) <-chan *domain.Trip
}

// Viewer subscribes to one trip record and tracks its latest value.
// State reports loading until the first emission arrives; a nil trip after
// that means the record is absent or was deleted.
type Viewer struct {
	store TripWatcher
	id    int64
	owner string

	mu      sync.Mutex
	trip    *domain.Trip
	loading bool
}

// New constructs a Viewer for one trip. Call Run to start collecting.
func New(store TripWatcher, id int64, owner string) *Viewer {
	return &Viewer{store: store, id: id, owner: owner, loading: true}
}

// Run collects the trip's change stream until ctx is cancelled. Cancelling
// tears down the store subscription; no state updates happen afterwards.
func (v *Viewer) Run(ctx context.Context) {
	for trip := range v.store.WatchTrip(ctx, v.id, v.owner) {
		v.mu.Lock()
		v.trip = trip
		v.loading = false
		v.mu.Unlock()
	}
}

// State returns the latest record (nil while loading or when absent) and
// whether the first emission is still pending.
func (v *Viewer) State() (*domain.Trip, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.trip, v.loading
}

// DateRange derives the itinerary day sequence for the current record.
// It is computed fresh on every call from the latest trip value.
func (v *Viewer) DateRange() []time.Time {
	trip, _ := v.State()
	return DateRange(trip)
}

// DateRange returns the inclusive day-by-day sequence from the trip's start
// date to its end date, parsed strictly as ISO calendar dates.
//
// If the trip is nil or either date fails to parse the result is empty —
// unlike the dashboard's planned/past classification, itinerary derivation
// fails closed, since rendering a day skeleton from a garbage date would be
// worse than rendering none. When the stored end date precedes the start
// date the sequence is just the start day.
func DateRange(trip *domain.Trip) []time.Time {
	if trip == nil {
		return []time.Time{}
	}
	start, ok := dateutil.ParseCanonical(trip.StartDate)
	if !ok {
		return []time.Time{}
	}
	end, ok := dateutil.ParseCanonical(trip.EndDate)
	if !ok {
		return []time.Time{}
	}

	days := []time.Time{start}
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.AddDate(0, 0, 1))
	}
	return days
}
