package http

import (
	"net/http"

	"github.com/mauv0809/court-queue/internal/pubsub"
	"github.com/mauv0809/court-queue/internal/session"
)

// nextUp is how many waiting players a release announcement names.
const nextUp = session.CourtCapacity

func (s *Server) AddCourtHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Session.AddCourt()
		s.writeState(w, http.StatusCreated)
	}
}

func (s *Server) RemoveCourtHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt(r, "id")
		if err != nil {
			writeError(w, err)
			return
		}
		if err := s.Session.RemoveCourt(id); err != nil {
			writeError(w, err)
			return
		}
		s.writeState(w, http.StatusOK)
	}
}

func (s *Server) AssignHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt(r, "id")
		if err != nil {
			writeError(w, err)
			return
		}
		var req assignRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		assigned, err := s.Session.Assign(id, req.Names)
		if err != nil {
			writeError(w, err)
			return
		}
		s.publish(pubsub.Event{Type: pubsub.EventCourtAssigned, CourtID: id, Players: assigned}, isDryRunFromContext(r))
		s.writeState(w, http.StatusOK)
	}
}

func (s *Server) ReleaseHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt(r, "id")
		if err != nil {
			writeError(w, err)
			return
		}
		req := releaseRequest{Count: session.CourtCapacity}
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		released, err := s.Session.Release(id, req.Count)
		if err != nil {
			writeError(w, err)
			return
		}
		snap, err := s.Session.Snapshot()
		if err != nil {
			writeError(w, err)
			return
		}
		var next []string
		for _, e := range snap.Queue {
			if len(next) == nextUp {
				break
			}
			next = append(next, e.Name)
		}
		s.publish(pubsub.Event{Type: pubsub.EventCourtReleased, CourtID: id, Players: released, Next: next}, isDryRunFromContext(r))
		writeJSON(w, http.StatusOK, snap)
	}
}

func (s *Server) ToggleCheckedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt(r, "id")
		if err != nil {
			writeError(w, err)
			return
		}
		slot, err := pathInt(r, "slot")
		if err != nil {
			writeError(w, err)
			return
		}
		if _, err := s.Session.ToggleChecked(id, slot); err != nil {
			writeError(w, err)
			return
		}
		s.writeState(w, http.StatusOK)
	}
}

func (s *Server) ShuttlecockHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt(r, "id")
		if err != nil {
			writeError(w, err)
			return
		}
		var req shuttlecockRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		dir, err := session.ParseDirection(req.Direction)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := s.Session.AdjustShuttlecockUsage(id, dir); err != nil {
			writeError(w, err)
			return
		}
		s.writeState(w, http.StatusOK)
	}
}

func (s *Server) RenameCourtHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt(r, "id")
		if err != nil {
			writeError(w, err)
			return
		}
		var req renameRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if err := s.Session.RenameCourt(id, req.ID); err != nil {
			writeError(w, err)
			return
		}
		s.writeState(w, http.StatusOK)
	}
}

func (s *Server) UndoAssignmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt(r, "id")
		if err != nil {
			writeError(w, err)
			return
		}
		if err := s.Session.UndoAssignment(id, r.PathValue("name")); err != nil {
			writeError(w, err)
			return
		}
		s.writeState(w, http.StatusOK)
	}
}
