// Package handler implements the JSON HTTP handlers for the PathBuddy API.
// All handlers are methods on Server, split into domain-specific files
// (trip.go, home.go, profile.go) that share the same struct so they can
// access its dependencies.
//
// Handlers never consult ambient user state: the bearer-auth middleware
// resolves the identity into the request context, and every store call takes
// that owner explicitly. An unauthenticated request is served with empty
// data, never an error.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ReimoK/PathBuddy/internal/domain"
)

// TripStore defines the trip operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a store without a database.
type TripStore interface {
	List(ctx context.Context, owner string) ([]domain.Trip, error)
	Get(ctx context.Context, id int64, owner string) (domain.Trip, error)
	Save(ctx context.Context, trip domain.Trip) (int64, error)
	Clear(ctx context.Context, owner string) error
}

// ProfileStore defines the profile operations the handlers depend on.
type ProfileStore interface {
	Read(ctx context.Context, owner string) (domain.Profile, error)
	Write(ctx context.Context, owner string, p domain.Profile) error
	Clear(ctx context.Context, owner string) error
}

// Server holds the dependencies shared by all endpoint handlers.
type Server struct {
	trips    TripStore
	profiles ProfileStore
	log      *slog.Logger

	// now supplies "today" for the planned/past split; injectable for tests.
	now func() time.Time
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripStore, profiles ProfileStore, log *slog.Logger) *Server {
	return NewServerWithClock(trips, profiles, log, time.Now)
}

// NewServerWithClock is NewServer with an explicit clock, so tests can pin
// "today" for the planned/past split.
func NewServerWithClock(trips TripStore, profiles ProfileStore, log *slog.Logger, now func() time.Time) *Server {
	return &Server{trips: trips, profiles: profiles, log: log, now: now}
}

// Routes registers every endpoint on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/home", s.home)

		r.Post("/trips", s.createTrip)
		r.Delete("/trips", s.clearTrips)
		r.Get("/trips/{id}", s.getTrip)
		r.Put("/trips/{id}", s.updateTrip)

		r.Get("/profile", s.getProfile)
		r.Put("/profile", s.putProfile)
		r.Delete("/profile", s.clearProfile)
	})
}

// health handles GET /healthz.
func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON renders v as a JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into v, requiring a single JSON value.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}
