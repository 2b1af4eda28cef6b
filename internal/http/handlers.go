package http

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/court-queue/internal/pubsub"
	"github.com/mauv0809/court-queue/internal/roster"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) StateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeState(w, http.StatusOK)
	}
}

// RanksHandler lists the rank labels a player can join with, weakest first.
func (s *Server) RanksHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ranks":   roster.Ranks(),
			"default": roster.DefaultRank,
		})
	}
}

func (s *Server) JoinHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req joinRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		p, err := s.Session.Join(req.Name, req.Rank)
		if err != nil {
			writeError(w, err)
			return
		}
		s.publish(pubsub.Event{Type: pubsub.EventPlayerJoined, Players: []string{p.Name}}, isDryRunFromContext(r))
		s.writeState(w, http.StatusCreated)
	}
}

func (s *Server) RemovePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		if s.Session.Remove(name) {
			s.publish(pubsub.Event{Type: pubsub.EventPlayerRemoved, Players: []string{name}}, isDryRunFromContext(r))
		}
		s.writeState(w, http.StatusOK)
	}
}

func (s *Server) ResortHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Session.Resort()
		s.writeState(w, http.StatusOK)
	}
}

func (s *Server) SelectPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.Session.SelectPlayer(r.PathValue("name")); err != nil {
			writeError(w, err)
			return
		}
		s.writeState(w, http.StatusOK)
	}
}
