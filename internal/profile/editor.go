// Package profile implements the profile editor: transient text state for
// the user's name, home base, and favorite interests, loaded from and saved
// to the profile store.
package profile

import (
	"context"
	"strings"
	"sync"

	"github.com/ReimoK/PathBuddy/internal/domain"
)

// Store covers the profile operations the editor needs.
type Store interface {
	Read(ctx context.Context, owner string) (domain.Profile, error)
	Write(ctx context.Context, owner string, p domain.Profile) error
}

// Field names one editor input for Set.
type Field int

const (
	FieldName Field = iota
	FieldHomeBase
	FieldFavoriteInterests
)

// State is a snapshot of the editor. StatusMessage is consumed-once via
// ConsumeStatus so a "saved" notice is shown exactly one time.
type State struct {
	Name              string
	HomeBase          string
	FavoriteInterests string
	Loading           bool
	Saving            bool
	StatusMessage     string
}

// Editor holds one profile-editing session for a single owner.
type Editor struct {
	store Store
	owner string

	mu    sync.Mutex
	state State
}

// NewEditor constructs an Editor. It starts in the loading state until Load
// has populated it from the store.
func NewEditor(store Store, owner string) *Editor {
	return &Editor{store: store, owner: owner, state: State{Loading: true}}
}

// Load populates the editor from the store. A read fault degrades to the
// zero profile rather than failing the session.
func (e *Editor) Load(ctx context.Context) {
	p, err := e.store.Read(ctx, e.owner)
	if err != nil {
		p = domain.Profile{}
	}

	e.mu.Lock()
	e.state = State{
		Name:              p.Name,
		HomeBase:          p.HomeBase,
		FavoriteInterests: p.FavoriteInterests,
	}
	e.mu.Unlock()
}

// Set overwrites one field and clears any pending status message.
func (e *Editor) Set(field Field, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch field {
	case FieldName:
		e.state.Name = value
	case FieldHomeBase:
		e.state.HomeBase = value
	case FieldFavoriteInterests:
		e.state.FavoriteInterests = value
	}
	e.state.StatusMessage = ""
}

// Save trims all fields and writes the profile to the store. On success the
// status message is set to a one-shot "Profile saved!" notice.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	current := e.state
	e.state.Saving = true
	e.mu.Unlock()

	err := e.store.Write(ctx, e.owner, domain.Profile{
		Name:              strings.TrimSpace(current.Name),
		HomeBase:          strings.TrimSpace(current.HomeBase),
		FavoriteInterests: strings.TrimSpace(current.FavoriteInterests),
	})

	e.mu.Lock()
	e.state.Saving = false
	if err == nil {
		e.state.StatusMessage = "Profile saved!"
	}
	e.mu.Unlock()

	return err
}

// State returns a snapshot of the editor.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// ConsumeStatus returns the pending status message and clears it, so the
// message is delivered at most once.
func (e *Editor) ConsumeStatus() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	msg := e.state.StatusMessage
	e.state.StatusMessage = ""
	return msg
}
