package http

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
)

// QueueCommandHandler answers the /queue Slack slash command.
func (s *Server) QueueCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := s.Session.Snapshot()
		if err != nil {
			http.Error(w, "Failed to load queue", http.StatusInternalServerError)
			log.Error("Failed to load snapshot", "error", err)
			return
		}
		msg, err := s.Notifier.FormatQueueResponse(snap)
		if err != nil {
			http.Error(w, "Failed to format queue", http.StatusInternalServerError)
			log.Error("Failed to format queue", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(msg); err != nil {
			log.Error("Failed to encode slack message to JSON", "error", err)
		}
	}
}
