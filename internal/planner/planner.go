// Package planner implements the trip-planning pipeline: transient form
// state, per-field validation, date normalization, and the save request to
// the trip store. One Planner owns one in-progress planning session.
//
// Outcomes are delivered on a one-shot event channel rather than as return
// values so callers can treat "trip saved" and "show this message" as
// consumed-once signals that are never replayed.
package planner

import (
	"context"
	"strings"
	"sync"

	"github.com/ReimoK/PathBuddy/internal/dateutil"
	"github.com/ReimoK/PathBuddy/internal/domain"
)

// DefaultBudget is the budget category a fresh draft starts with.
const DefaultBudget = "Moderate"

// Validation messages. Exact strings are part of the API contract; clients
// display them verbatim next to the offending field.
const (
	msgDestinationEmpty  = "Destination cannot be empty"
	msgStartDateRequired = "Start date is required"
	msgEndDateRequired   = "End date is required"
	msgDateFormat        = "Use YYYY-MM-DD or MM/DD/YYYY"
	msgEndBeforeStart    = "End date cannot be before start date"
)

// Field names a single draft input for Set.
type Field int

const (
	FieldDestination Field = iota
	FieldStartDate
	FieldEndDate
	FieldInterests
	FieldBudget
)

// Draft is the transient form state for one planning session. It is never
// persisted; the planner replaces it wholesale on a successful submit.
// Error fields hold the validation message for their input, "" meaning none;
// an error is always cleared by the next edit of its field.
type Draft struct {
	// TripID is the identifier of the trip being edited, or 0 when the
	// session is creating a new trip.
	TripID int64

	Destination string
	StartDate   string
	EndDate     string
	Interests   string
	Budget      string

	DestinationError string
	StartDateError   string
	EndDateError     string

	// Saving is true from the moment validation passes until the store call
	// completes. While it is set, callers are expected not to re-submit.
	Saving bool
}

// HasErrors reports whether any field currently carries a validation message.
func (d Draft) HasErrors() bool {
	return d.DestinationError != "" || d.StartDateError != "" || d.EndDateError != ""
}

// TripSaver is the single store operation the pipeline needs.
type TripSaver interface {
	Save(ctx context.Context, trip domain.Trip) (int64, error)
}

// Event is a one-shot outcome emitted by Submit.
// It is either a TripSaved or a ShowMessage.
type Event interface{ isEvent() }

// TripSaved signals that the draft was persisted under the given identifier.
type TripSaved struct {
	TripID int64
}

// ShowMessage carries a transient user-facing message, e.g. a store fault
// during save. It does not imply the draft was reset.
type ShowMessage struct {
	Message string
}

func (TripSaved) isEvent()   {}
func (ShowMessage) isEvent() {}

// Planner owns the draft for one planning session and issues save requests
// to the trip store. Field edits and submits share a mutex so snapshot reads
// are always consistent, but each Planner has a single logical owner — there
// is no cross-session shared state.
type Planner struct {
	saver TripSaver
	owner string

	mu     sync.Mutex
	draft  Draft
	events chan Event
}

// New constructs a Planner for a fresh planning session owned by owner.
func New(saver TripSaver, owner string) *Planner {
	return &Planner{
		saver:  saver,
		owner:  owner,
		draft:  emptyDraft(),
		events: make(chan Event, 16),
	}
}

func emptyDraft() Draft {
	return Draft{Budget: DefaultBudget}
}

// Events returns the one-shot outcome channel. Each event is delivered to
// whoever receives it first and is never replayed.
func (p *Planner) Events() <-chan Event {
	return p.events
}

// Draft returns a snapshot of the current form state.
func (p *Planner) Draft() Draft {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.draft
}

// Edit populates the draft from an existing trip so Submit updates it in
// place instead of creating a new record.
func (p *Planner) Edit(trip domain.Trip) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.draft = Draft{
		TripID:      trip.ID,
		Destination: trip.Destination,
		StartDate:   trip.StartDate,
		EndDate:     trip.EndDate,
		Interests:   trip.Interests,
	}
	if trip.BudgetCategory != nil {
		p.draft.Budget = *trip.BudgetCategory
	}
}

// Set overwrites one field of the draft. Editing destination or either date
// clears that field's validation message; no validation runs until Submit.
// Last write wins.
func (p *Planner) Set(field Field, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch field {
	case FieldDestination:
		p.draft.Destination = value
		p.draft.DestinationError = ""
	case FieldStartDate:
		p.draft.StartDate = value
		p.draft.StartDateError = ""
	case FieldEndDate:
		p.draft.EndDate = value
		p.draft.EndDateError = ""
	case FieldInterests:
		p.draft.Interests = value
	case FieldBudget:
		p.draft.Budget = value
	}
}

// Submit validates the draft and, if it is clean, saves the trip.
//
// Validation failures replace all three field error states (a field that
// passes this time has its stale error cleared) and stop before any store
// interaction. A clean draft is normalized — destination and interests
// trimmed, dates reformatted to canonical ISO, blank budget treated as
// unspecified — and saved exactly once. Success resets the draft and emits
// TripSaved; a store fault leaves the fields intact for retry and emits
// ShowMessage. A Submit while a previous save is still in flight is ignored.
func (p *Planner) Submit(ctx context.Context) {
	p.mu.Lock()

	if p.draft.Saving {
		p.mu.Unlock()
		return
	}

	current := p.draft

	start, startOK := dateutil.Parse(current.StartDate, dateutil.AcceptedInput)
	end, endOK := dateutil.Parse(current.EndDate, dateutil.AcceptedInput)

	var destinationError, startDateError, endDateError string

	if strings.TrimSpace(current.Destination) == "" {
		destinationError = msgDestinationEmpty
	}

	switch {
	case strings.TrimSpace(current.StartDate) == "":
		startDateError = msgStartDateRequired
	case !startOK:
		startDateError = msgDateFormat
	}

	switch {
	case strings.TrimSpace(current.EndDate) == "":
		endDateError = msgEndDateRequired
	case !endOK:
		endDateError = msgDateFormat
	case startOK && end.Before(start):
		endDateError = msgEndBeforeStart
	}

	if destinationError != "" || startDateError != "" || endDateError != "" {
		p.draft.DestinationError = destinationError
		p.draft.StartDateError = startDateError
		p.draft.EndDateError = endDateError
		p.mu.Unlock()
		return
	}

	p.draft.Saving = true
	p.mu.Unlock()

	trip := domain.Trip{
		ID:          current.TripID,
		Owner:       p.owner,
		Destination: strings.TrimSpace(current.Destination),
		StartDate:   dateutil.Format(start, dateutil.Canonical),
		EndDate:     dateutil.Format(end, dateutil.Canonical),
		Interests:   strings.TrimSpace(current.Interests),
	}
	if budget := strings.TrimSpace(current.Budget); budget != "" {
		trip.BudgetCategory = &current.Budget
	}

	id, err := p.saver.Save(ctx, trip)

	p.mu.Lock()
	if err != nil {
		p.draft.Saving = false
		p.mu.Unlock()
		p.emit(ShowMessage{Message: "Unable to save trip: " + err.Error()})
		return
	}
	p.draft = emptyDraft()
	p.mu.Unlock()

	p.emit(TripSaved{TripID: id})
}

// emit delivers an event without ever blocking the pipeline: if the buffer
// is full the oldest unconsumed event is dropped in favor of the new one.
func (p *Planner) emit(e Event) {
	for {
		select {
		case p.events <- e:
			return
		default:
			select {
			case <-p.events:
			default:
			}
		}
	}
}
