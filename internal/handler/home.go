package handler

import (
	"net/http"

	"github.com/ReimoK/PathBuddy/internal/auth"
	"github.com/ReimoK/PathBuddy/internal/dashboard"
)

// home handles GET /api/home: the dashboard snapshot pairing the user's
// profile with their trips partitioned into planned and past.
//
// "Today" is taken from the clock at request time, so the same stored data
// can answer differently tomorrow. A profile read fault degrades to the
// empty profile rather than failing the whole dashboard.
func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.UserID(r.Context())

	trips, err := s.trips.List(r.Context(), owner)
	if err != nil {
		s.log.Error("list trips", "error", err)
		writeInternal(w, "unable to load trips")
		return
	}

	profile, err := s.profiles.Read(r.Context(), owner)
	if err != nil {
		s.log.Warn("profile read degraded to empty", "error", err)
	}

	planned, past := dashboard.Partition(trips, s.now())

	writeJSON(w, http.StatusOK, dashboard.View{
		Profile: profile,
		Planned: planned,
		Past:    past,
	})
}
