package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/court-queue/internal/history"
	"github.com/mauv0809/court-queue/internal/session"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// writeError maps organizer mistakes to 4xx and everything else to 500.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrCourtNotFound),
		errors.Is(err, session.ErrGroupNotFound),
		errors.Is(err, session.ErrUnknownPlayer),
		errors.Is(err, history.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrDuplicateName),
		errors.Is(err, session.ErrDuplicateCourtID),
		errors.Is(err, session.ErrPlayerAlreadyAssigned),
		errors.Is(err, session.ErrCourtOccupied):
		return http.StatusConflict
	case session.IsUserError(err), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

var errBadRequest = errors.New("bad request")

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", errBadRequest, err)
	}
	return nil
}

func pathInt(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", errBadRequest, name, r.PathValue(name))
	}
	return v, nil
}

// writeState responds with the current session snapshot.
func (s *Server) writeState(w http.ResponseWriter, status int) {
	snap, err := s.Session.Snapshot()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, snap)
}
