package http

import (
	"net/http"

	"github.com/mauv0809/court-queue/internal/history"
	"github.com/mauv0809/court-queue/internal/pubsub"
)

func (s *Server) HistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := s.Session.History()
		if err != nil {
			writeError(w, err)
			return
		}
		if records == nil {
			records = []history.Record{}
		}
		writeJSON(w, http.StatusOK, records)
	}
}

func (s *Server) ExportHistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := s.Session.ExportHistory()
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Disposition", `attachment; filename="player-history.json"`)
		writeJSON(w, http.StatusOK, payload)
	}
}

func (s *Server) GamesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		games, err := s.Session.Games(r.PathValue("name"))
		if err != nil {
			writeError(w, err)
			return
		}
		if games == nil {
			games = []history.Game{}
		}
		writeJSON(w, http.StatusOK, games)
	}
}

func (s *Server) UpdateHistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rec history.Record
		if err := decodeJSON(r, &rec); err != nil {
			writeError(w, err)
			return
		}
		rec.Name = r.PathValue("name")
		if err := s.Session.UpdateHistory(rec); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func (s *Server) RemoveHistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Session.RemoveHistory(r.PathValue("name")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) ClearHistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Session.ClearHistory(); err != nil {
			writeError(w, err)
			return
		}
		s.publish(pubsub.Event{Type: pubsub.EventHistoryCleared}, isDryRunFromContext(r))
		w.WriteHeader(http.StatusNoContent)
	}
}

// ApplyPricingHandler prices the history with the saved settings.
func (s *Server) ApplyPricingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := s.Settings.Load()
		if err != nil {
			writeError(w, err)
			return
		}
		records, err := s.Session.ApplyPricing(cfg.PriceMode, cfg.PricingParams())
		if err != nil {
			writeError(w, err)
			return
		}
		s.publish(pubsub.Event{Type: pubsub.EventHistoryPriced, PriceMode: string(cfg.PriceMode)}, isDryRunFromContext(r))
		writeJSON(w, http.StatusOK, records)
	}
}
