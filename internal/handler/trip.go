package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ReimoK/PathBuddy/internal/auth"
	"github.com/ReimoK/PathBuddy/internal/dateutil"
	"github.com/ReimoK/PathBuddy/internal/domain"
	"github.com/ReimoK/PathBuddy/internal/planner"
	"github.com/ReimoK/PathBuddy/internal/viewer"
)

// tripRequest is the JSON body for creating or updating a trip. Fields are
// raw form text; validation and normalization happen in the planner.
type tripRequest struct {
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Interests   string `json:"interests"`
	Budget      string `json:"budget"`
}

// fieldErrors is the 422 payload: one message per offending form field.
type fieldErrors struct {
	Destination string `json:"destination,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
}

// createTrip handles POST /api/trips. The request body is fed through the
// planner pipeline field by field, so the API validates and normalizes input
// exactly the way an interactive planning session does.
func (s *Server) createTrip(w http.ResponseWriter, r *http.Request) {
	s.runPlanner(w, r, 0)
}

// updateTrip handles PUT /api/trips/{id}: the same pipeline, editing an
// existing record in place.
func (s *Server) updateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeBadRequest(w, "invalid trip id")
		return
	}

	owner, _ := auth.UserID(r.Context())
	if _, err := s.trips.Get(r.Context(), id, owner); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, "trip not found")
			return
		}
		s.log.Error("load trip for update", "error", err, "trip_id", id)
		writeInternal(w, "unable to load trip")
		return
	}

	s.runPlanner(w, r, id)
}

// runPlanner decodes the request, drives one planner session to completion,
// and maps the outcome: 422 with per-field messages on validation failure,
// 201/200 with the identifier on success, 500 on a store fault.
func (s *Server) runPlanner(w http.ResponseWriter, r *http.Request, tripID int64) {
	var req tripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	owner, _ := auth.UserID(r.Context())

	p := planner.New(s.trips, owner)
	if tripID != 0 {
		p.Edit(domain.Trip{ID: tripID})
	}
	p.Set(planner.FieldDestination, req.Destination)
	p.Set(planner.FieldStartDate, req.StartDate)
	p.Set(planner.FieldEndDate, req.EndDate)
	p.Set(planner.FieldInterests, req.Interests)
	p.Set(planner.FieldBudget, req.Budget)

	p.Submit(r.Context())

	if draft := p.Draft(); draft.HasErrors() {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]fieldErrors{
			"errors": {
				Destination: draft.DestinationError,
				StartDate:   draft.StartDateError,
				EndDate:     draft.EndDateError,
			},
		})
		return
	}

	select {
	case event := <-p.Events():
		switch e := event.(type) {
		case planner.TripSaved:
			status := http.StatusCreated
			if tripID != 0 {
				status = http.StatusOK
			}
			writeJSON(w, status, map[string]int64{"id": e.TripID})
		case planner.ShowMessage:
			s.log.Error("trip save failed", "message", e.Message)
			writeInternal(w, e.Message)
		}
	case <-r.Context().Done():
		writeInternal(w, "request cancelled")
	}
}

// getTrip handles GET /api/trips/{id}, returning the record together with
// its derived inclusive day-by-day itinerary.
func (s *Server) getTrip(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeBadRequest(w, "invalid trip id")
		return
	}

	owner, _ := auth.UserID(r.Context())
	trip, err := s.trips.Get(r.Context(), id, owner)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, "trip not found")
			return
		}
		s.log.Error("get trip", "error", err, "trip_id", id)
		writeInternal(w, "unable to load trip")
		return
	}

	days := viewer.DateRange(&trip)
	itinerary := make([]string, len(days))
	for i, d := range days {
		itinerary[i] = dateutil.Format(d, dateutil.Canonical)
	}

	writeJSON(w, http.StatusOK, struct {
		domain.Trip
		Itinerary []string `json:"itinerary"`
	}{Trip: trip, Itinerary: itinerary})
}

// clearTrips handles DELETE /api/trips, the logout path: every trip for the
// current user is removed.
func (s *Server) clearTrips(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.UserID(r.Context())
	if err := s.trips.Clear(r.Context(), owner); err != nil {
		s.log.Error("clear trips", "error", err)
		writeInternal(w, "unable to clear trips")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
