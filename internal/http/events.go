package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/court-queue/internal/history"
	"github.com/mauv0809/court-queue/internal/notifier"
	"github.com/mauv0809/court-queue/internal/pubsub"
)

// publish hands a session event to Pub/Sub when it is configured. The push
// subscription then calls back into EventPushHandler. Without Pub/Sub the
// event is dispatched in-process. Failures are logged; the action has
// already been applied.
func (s *Server) publish(ev pubsub.Event, dryRun bool) {
	ev.OccurredAt = time.Now()
	if s.Cfg.PubSubEnabled() {
		if err := s.pubsub.SendMessage(ev.Type, ev); err != nil {
			log.Error("Failed to publish event", "type", ev.Type, "error", err)
		}
		return
	}
	if err := s.dispatch(ev, dryRun); err != nil {
		log.Error("Failed to dispatch event", "type", ev.Type, "error", err)
	}
}

// dispatch sends the notification belonging to an event, if any.
func (s *Server) dispatch(ev pubsub.Event, dryRun bool) error {
	switch ev.Type {
	case pubsub.EventCourtAssigned, pubsub.EventGroupCommitted:
		return s.Notifier.SendCourtCall(notifier.CourtCall{CourtID: ev.CourtID, Players: ev.Players}, dryRun)
	case pubsub.EventCourtReleased:
		return s.Notifier.SendCourtRelease(notifier.CourtRelease{CourtID: ev.CourtID, Released: ev.Players, Next: ev.Next}, dryRun)
	case pubsub.EventHistoryPriced:
		records, err := s.Session.History()
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		return s.Notifier.SendPricing(history.PriceMode(ev.PriceMode), records, dryRun)
	default:
		log.Debug("No notification for event", "type", ev.Type)
		return nil
	}
}

// EventPushHandler receives events from the Pub/Sub push subscription.
func (s *Server) EventPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received pushed event", "body", string(bodyBytes))

		var envelope pushEnvelope
		if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		// Decode base64 to raw MessagePack bytes
		rawData, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		var ev pubsub.Event
		if err := s.pubsub.ProcessMessage(rawData, &ev); err != nil {
			http.Error(w, "Invalid event payload", http.StatusBadRequest)
			return
		}
		if err := s.dispatch(ev, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to dispatch event", "type", ev.Type, "error", err)
			http.Error(w, "Failed to dispatch event", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
