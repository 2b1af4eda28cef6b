package http

import (
	"net/http"

	"github.com/mauv0809/court-queue/internal/pubsub"
)

func (s *Server) CreateGroupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Session.CreateGroup()
		s.writeState(w, http.StatusCreated)
	}
}

func (s *Server) FillGroupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := pathInt(r, "index")
		if err != nil {
			writeError(w, err)
			return
		}
		if err := s.Session.FillGroup(index); err != nil {
			writeError(w, err)
			return
		}
		s.writeState(w, http.StatusOK)
	}
}

func (s *Server) BindGroupCourtHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := pathInt(r, "index")
		if err != nil {
			writeError(w, err)
			return
		}
		var req groupCourtRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if err := s.Session.BindGroupCourt(index, req.CourtID); err != nil {
			writeError(w, err)
			return
		}
		s.writeState(w, http.StatusOK)
	}
}

func (s *Server) CommitGroupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := pathInt(r, "index")
		if err != nil {
			writeError(w, err)
			return
		}
		var req groupCourtRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		courtID, assigned, err := s.Session.CommitGroup(index, req.CourtID)
		if err != nil {
			writeError(w, err)
			return
		}
		s.publish(pubsub.Event{Type: pubsub.EventGroupCommitted, CourtID: courtID, Players: assigned}, isDryRunFromContext(r))
		s.writeState(w, http.StatusOK)
	}
}

func (s *Server) RemoveGroupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := pathInt(r, "index")
		if err != nil {
			writeError(w, err)
			return
		}
		if err := s.Session.RemoveGroup(index); err != nil {
			writeError(w, err)
			return
		}
		s.writeState(w, http.StatusOK)
	}
}
