package http

import (
	"net/http"

	"github.com/mauv0809/court-queue/internal/config"
	"github.com/mauv0809/court-queue/internal/metrics"
	"github.com/mauv0809/court-queue/internal/notifier"
	"github.com/mauv0809/court-queue/internal/pubsub"
	"github.com/mauv0809/court-queue/internal/session"
	"github.com/mauv0809/court-queue/internal/settings"
)

type Server struct {
	Session        session.Service
	Settings       settings.Store
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}

type joinRequest struct {
	Name string `json:"name"`
	Rank string `json:"rank"`
}

type assignRequest struct {
	Names []string `json:"names"`
}

type releaseRequest struct {
	Count int `json:"count"`
}

type shuttlecockRequest struct {
	Direction string `json:"direction"`
}

type renameRequest struct {
	ID int `json:"id"`
}

type groupCourtRequest struct {
	CourtID int `json:"courtId"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// pushEnvelope is the body Pub/Sub posts to a push subscription.
type pushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data       string            `json:"data"` // base64-encoded message payload
		Attributes map[string]string `json:"attributes"`
		MessageID  string            `json:"messageId"`
	} `json:"message"`
}
