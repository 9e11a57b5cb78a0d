// Package dashboard derives the home-screen view: the user's trips sorted
// and partitioned into planned and past, paired with the latest profile
// snapshot. The derivation is pure; the Aggregator merely re-runs it on
// every emission from the two upstream store streams.
package dashboard

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ReimoK/PathBuddy/internal/domain"
)

// View is the derived, read-only home-screen state. Holders have no write
// access to the store; mutating a View mutates nothing.
type View struct {
	Profile domain.Profile `json:"profile"`
	Planned []domain.Trip  `json:"planned_trips"`
	Past    []domain.Trip  `json:"past_trips"`
}

// Partition sorts trips by start date ascending and splits them into
// planned and past relative to today. Classification fails open: a trip
// whose end date does not parse stays planned (see domain.Trip.Planned).
// The input slice is not modified.
func Partition(trips []domain.Trip, today time.Time) (planned, past []domain.Trip) {
	sorted := make([]domain.Trip, len(trips))
	copy(sorted, trips)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate < sorted[j].StartDate
	})

	planned = []domain.Trip{}
	past = []domain.Trip{}
	for _, t := range sorted {
		if t.Planned(today) {
			planned = append(planned, t)
		} else {
			past = append(past, t)
		}
	}
	return planned, past
}

// TripWatcher is the trip-store stream the aggregator consumes.
type TripWatcher interface {
	WatchList(ctx context.Context, owner string) <-chan []domain.Trip
}

// ProfileWatcher is the profile-store stream the aggregator consumes.
type ProfileWatcher interface {
	Watch(ctx context.Context, owner string) <-chan domain.Profile
}

// Aggregator combines the live trip and profile streams for one owner into
// a continuously updated View. "Today" is re-read from the clock on every
// recomputation so the planned/past split tracks the calendar, not the
// moment the aggregator was created.
type Aggregator struct {
	trips    TripWatcher
	profiles ProfileWatcher
	owner    string
	now      func() time.Time

	mu     sync.Mutex
	latest View
	ready  bool

	views chan View
}

// Option customizes an Aggregator.
type Option func(*Aggregator)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// New constructs an Aggregator for the given owner. Call Run to start it.
func New(trips TripWatcher, profiles ProfileWatcher, owner string, opts ...Option) *Aggregator {
	a := &Aggregator{
		trips:    trips,
		profiles: profiles,
		owner:    owner,
		now:      time.Now,
		views:    make(chan View, 1),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run subscribes to both upstream streams and recomputes the view on every
// emission from either. It blocks until ctx is cancelled; cancelling tears
// down both subscriptions, closes Views, and stops all recomputation.
//
// The first View is published only once both upstreams have emitted, so a
// View never pairs trips with a profile that was never read (or vice versa).
func (a *Aggregator) Run(ctx context.Context) {
	defer close(a.views)

	tripCh := a.trips.WatchList(ctx, a.owner)
	profileCh := a.profiles.Watch(ctx, a.owner)

	var (
		trips       []domain.Trip
		profile     domain.Profile
		haveTrips   bool
		haveProfile bool
	)

	for {
		select {
		case <-ctx.Done():
			return
		case ts, ok := <-tripCh:
			if !ok {
				return
			}
			trips, haveTrips = ts, true
		case p, ok := <-profileCh:
			if !ok {
				return
			}
			profile, haveProfile = p, true
		}

		if haveTrips && haveProfile {
			a.publish(trips, profile)
		}
	}
}

// publish recomputes the view and makes it the latest, conflating the Views
// channel so a slow consumer always receives the freshest value.
func (a *Aggregator) publish(trips []domain.Trip, profile domain.Profile) {
	planned, past := Partition(trips, a.now())
	view := View{Profile: profile, Planned: planned, Past: past}

	a.mu.Lock()
	a.latest = view
	a.ready = true
	a.mu.Unlock()

	for {
		select {
		case a.views <- view:
			return
		default:
			select {
			case <-a.views:
			default:
			}
		}
	}
}

// Views returns the stream of derived views, latest-wins. The channel closes
// when Run returns.
func (a *Aggregator) Views() <-chan View {
	return a.views
}

// Latest returns the most recently computed view. The boolean is false until
// the first view has been published.
func (a *Aggregator) Latest() (View, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.latest, a.ready
}
