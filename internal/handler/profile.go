package handler

import (
	"net/http"

	"github.com/ReimoK/PathBuddy/internal/auth"
	"github.com/ReimoK/PathBuddy/internal/profile"
)

// profileRequest is the JSON body for saving the profile editor's fields.
type profileRequest struct {
	Name              string `json:"name"`
	HomeBase          string `json:"home_base"`
	FavoriteInterests string `json:"favorite_interests"`
}

// getProfile handles GET /api/profile. A read fault degrades to the empty
// profile, mirroring the dashboard.
func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.UserID(r.Context())

	p, err := s.profiles.Read(r.Context(), owner)
	if err != nil {
		s.log.Warn("profile read degraded to empty", "error", err)
	}
	writeJSON(w, http.StatusOK, p)
}

// putProfile handles PUT /api/profile by driving one profile editor session:
// set every field, save, report the one-shot status message.
func (s *Server) putProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	owner, _ := auth.UserID(r.Context())

	editor := profile.NewEditor(s.profiles, owner)
	editor.Load(r.Context())
	editor.Set(profile.FieldName, req.Name)
	editor.Set(profile.FieldHomeBase, req.HomeBase)
	editor.Set(profile.FieldFavoriteInterests, req.FavoriteInterests)

	if err := editor.Save(r.Context()); err != nil {
		s.log.Error("save profile", "error", err)
		writeInternal(w, "unable to save profile")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": editor.ConsumeStatus()})
}

// clearProfile handles DELETE /api/profile, removing the stored profile for
// the current user (the logout path, together with DELETE /api/trips).
func (s *Server) clearProfile(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.UserID(r.Context())
	if err := s.profiles.Clear(r.Context(), owner); err != nil {
		s.log.Error("clear profile", "error", err)
		writeInternal(w, "unable to clear profile")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
