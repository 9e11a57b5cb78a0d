package store

import (
	"context"
	"sort"
	"sync"

	"github.com/ReimoK/PathBuddy/internal/domain"
)

// MemoryTripStore is an in-memory TripStore backing unit tests and
// database-less local runs of the server. Semantics mirror the Postgres
// implementation exactly, including owner scoping, the zero-ID insert
// sentinel, and change notification.
type MemoryTripStore struct {
	mu     sync.Mutex
	nextID int64
	trips  map[int64]domain.Trip
	notes  *notifier
}

// NewMemoryTripStore constructs an empty in-memory trip store.
func NewMemoryTripStore() *MemoryTripStore {
	return &MemoryTripStore{
		nextID: 1,
		trips:  make(map[int64]domain.Trip),
		notes:  newNotifier(),
	}
}

var _ TripStore = (*MemoryTripStore)(nil)

// List returns the owner's trips ordered by start date ascending.
func (m *MemoryTripStore) List(_ context.Context, owner string) ([]domain.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	trips := []domain.Trip{}
	if owner == "" {
		return trips, nil
	}
	for _, t := range m.trips {
		if t.Owner == owner {
			trips = append(trips, t)
		}
	}
	sort.Slice(trips, func(i, j int) bool {
		if trips[i].StartDate != trips[j].StartDate {
			return trips[i].StartDate < trips[j].StartDate
		}
		return trips[i].ID < trips[j].ID
	})
	return trips, nil
}

// Get retrieves one trip by id, scoped to the owner.
func (m *MemoryTripStore) Get(_ context.Context, id int64, owner string) (domain.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.trips[id]
	if !ok || owner == "" || t.Owner != owner {
		return domain.Trip{}, domain.ErrNotFound
	}
	return t, nil
}

// Save inserts when trip.ID == 0, otherwise replaces the record in place.
func (m *MemoryTripStore) Save(_ context.Context, trip domain.Trip) (int64, error) {
	if trip.Owner == "" {
		return 0, nil
	}

	m.mu.Lock()
	if trip.ID == 0 {
		trip.ID = m.nextID
		m.nextID++
	} else if trip.ID >= m.nextID {
		m.nextID = trip.ID + 1
	}
	m.trips[trip.ID] = trip
	m.mu.Unlock()

	m.notes.broadcast(trip.Owner)
	return trip.ID, nil
}

// Clear deletes every trip belonging to the owner.
func (m *MemoryTripStore) Clear(_ context.Context, owner string) error {
	if owner == "" {
		return nil
	}

	m.mu.Lock()
	for id, t := range m.trips {
		if t.Owner == owner {
			delete(m.trips, id)
		}
	}
	m.mu.Unlock()

	m.notes.broadcast(owner)
	return nil
}

// WatchList streams the owner's trip list per the TripStore contract.
func (m *MemoryTripStore) WatchList(ctx context.Context, owner string) <-chan []domain.Trip {
	return watch(ctx, m.notes, owner, []domain.Trip{}, func(ctx context.Context) ([]domain.Trip, error) {
		return m.List(ctx, owner)
	})
}

// WatchTrip streams one trip by id; absent or deleted reads emit nil.
func (m *MemoryTripStore) WatchTrip(ctx context.Context, id int64, owner string) <-chan *domain.Trip {
	return watch(ctx, m.notes, owner, nil, func(ctx context.Context) (*domain.Trip, error) {
		t, err := m.Get(ctx, id, owner)
		if err != nil {
			return nil, nil
		}
		return &t, nil
	})
}

// MemoryProfileStore is an in-memory ProfileStore with the same contract as
// the Postgres implementation.
type MemoryProfileStore struct {
	mu       sync.Mutex
	profiles map[string]domain.Profile
	notes    *notifier
}

// NewMemoryProfileStore constructs an empty in-memory profile store.
func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{
		profiles: make(map[string]domain.Profile),
		notes:    newNotifier(),
	}
}

var _ ProfileStore = (*MemoryProfileStore)(nil)

// Read returns the owner's profile; missing profiles read as the zero value.
func (m *MemoryProfileStore) Read(_ context.Context, owner string) (domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profiles[owner], nil
}

// Write upserts the owner's profile and notifies watchers.
func (m *MemoryProfileStore) Write(_ context.Context, owner string, p domain.Profile) error {
	if owner == "" {
		return nil
	}

	m.mu.Lock()
	m.profiles[owner] = p
	m.mu.Unlock()

	m.notes.broadcast(owner)
	return nil
}

// Clear removes the owner's stored profile and notifies watchers.
func (m *MemoryProfileStore) Clear(_ context.Context, owner string) error {
	if owner == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.profiles, owner)
	m.mu.Unlock()

	m.notes.broadcast(owner)
	return nil
}

// Watch streams the owner's profile per the ProfileStore contract.
func (m *MemoryProfileStore) Watch(ctx context.Context, owner string) <-chan domain.Profile {
	return watch(ctx, m.notes, owner, domain.Profile{}, func(ctx context.Context) (domain.Profile, error) {
		return m.Read(ctx, owner)
	})
}
