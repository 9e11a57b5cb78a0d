// Package domain contains the core data types for the PathBuddy backend.
// This package has zero external dependencies and is imported by every other
// internal package (store, planner, dashboard, viewer, handler).
package domain

import (
	"strings"
	"time"
)

// ISODate is the canonical layout for trip dates. Every date that leaves the
// planner pipeline is formatted with this layout; nothing else is ever
// persisted by well-behaved writers.
const ISODate = "2006-01-02"

// Trip represents a single planned or completed trip.
// A trip belongs to exactly one user (Owner) and is the top-level aggregate
// of the application.
type Trip struct {
	// ID is the database-assigned identifier. Zero means the trip has not
	// been persisted yet; the store treats a save of a zero-ID trip as an
	// insert and anything else as an update.
	ID int64 `json:"id"`

	// Owner is the identifier of the user the trip belongs to.
	// It is never exposed over the API.
	Owner string `json:"-"`

	// Destination is free text. "Paris, France" style values are split on
	// the first comma for display purposes only (see City and Country).
	Destination string `json:"destination"`

	// StartDate and EndDate are calendar dates stored as strings.
	// The planner pipeline guarantees canonical ISO form (YYYY-MM-DD) and
	// StartDate <= EndDate for every record it saves, but the storage layer
	// itself accepts any string — derived views must tolerate garbage here.
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	// Interests is free text, may be empty.
	Interests string `json:"interests"`

	// BudgetCategory is optional free text; nil means unspecified.
	BudgetCategory *string `json:"budget_category,omitempty"`
}

// City returns the part of Destination before the first comma, trimmed.
// For "Paris, France" it returns "Paris"; without a comma it returns the
// whole destination.
func (t Trip) City() string {
	city, _, _ := strings.Cut(t.Destination, ",")
	return strings.TrimSpace(city)
}

// Country returns the part of Destination after the first comma, trimmed,
// or "" when the destination has no comma.
func (t Trip) Country() string {
	_, country, ok := strings.Cut(t.Destination, ",")
	if !ok {
		return ""
	}
	return strings.TrimSpace(country)
}

// Planned reports whether the trip counts as upcoming relative to today.
//
// A trip is planned while its end date is today or later; it becomes past
// the day after it ends. An end date that does not parse as an ISO calendar
// date keeps the trip in the planned bucket — a malformed record should stay
// visible rather than silently disappear into history.
func (t Trip) Planned(today time.Time) bool {
	end, err := time.Parse(ISODate, t.EndDate)
	if err != nil {
		return true
	}
	return end.After(today.AddDate(0, 0, -1))
}

// Profile holds the user's preferences shown on the home screen.
// Absent values are empty strings; there is no separate "no profile" state.
type Profile struct {
	Name              string `json:"name"`
	HomeBase          string `json:"home_base"`
	FavoriteInterests string `json:"favorite_interests"`
}
