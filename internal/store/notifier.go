package store

import (
	"sync"

	"github.com/google/uuid"
)

// subscription is one live Watch* stream's handle into the notifier.
// The signal channel has capacity 1 so bursts of mutations coalesce into a
// single pending wake-up; subscribers re-fetch state, they do not replay
// individual events.
type subscription struct {
	id     uuid.UUID
	signal chan struct{}
}

// notifier is an owner-keyed change broadcaster shared by the Postgres and
// in-memory stores. Save and Clear call broadcast after a successful
// mutation; Watch* streams subscribe to re-fetch on each signal.
type notifier struct {
	mu   sync.Mutex
	subs map[string]map[uuid.UUID]chan struct{}
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[string]map[uuid.UUID]chan struct{})}
}

// subscribe registers a new subscription for the owner and returns its handle.
func (n *notifier) subscribe(owner string) subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	sub := subscription{id: uuid.New(), signal: make(chan struct{}, 1)}
	if n.subs[owner] == nil {
		n.subs[owner] = make(map[uuid.UUID]chan struct{})
	}
	n.subs[owner][sub.id] = sub.signal
	return sub
}

// unsubscribe removes a subscription. Safe to call after broadcast; the
// subscription's channel is simply dropped, never closed, so a racing
// broadcast cannot panic.
func (n *notifier) unsubscribe(owner string, id uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.subs[owner], id)
	if len(n.subs[owner]) == 0 {
		delete(n.subs, owner)
	}
}

// broadcast wakes every subscriber registered for the owner.
// Sends are non-blocking: a subscriber that already has a pending signal
// does not need another one.
func (n *notifier) broadcast(owner string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, signal := range n.subs[owner] {
		select {
		case signal <- struct{}{}:
		default:
		}
	}
}
