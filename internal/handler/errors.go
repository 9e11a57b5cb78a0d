package handler

import "net/http"

// errorDetail is the machine-readable error payload shared by all endpoints.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorResponse wraps errorDetail under the conventional "error" key.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// writeNotFound renders a 404 for a missing resource. The caller supplies
// the human-readable message (e.g. "trip not found") because the handler is
// the layer that knows what was being looked up.
func writeNotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: errorDetail{Code: "not_found", Message: message}})
}

// writeBadRequest renders a 400 for a request rejected before reaching any
// business logic (e.g. missing or malformed body).
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorDetail{Code: "bad_request", Message: message}})
}

// writeInternal renders a 500 with a transient, user-facing message. The
// wrapped cause is logged, not leaked.
func writeInternal(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: errorDetail{Code: "internal", Message: message}})
}
