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

func NewServer(sess session.Service, settingsStore settings.Store, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Session:        sess,
		Settings:       settingsStore,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("GET /state", Chain(s.StateHandler(), paramsMiddleware))

	s.Router.Handle("GET /ranks", Chain(s.RanksHandler(), paramsMiddleware))

	s.Router.Handle("POST /queue", Chain(s.JoinHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /queue/{name}", Chain(s.RemovePlayerHandler(), paramsMiddleware))
	s.Router.Handle("POST /queue/resort", Chain(s.ResortHandler(), paramsMiddleware))
	s.Router.Handle("POST /selection/{name}", Chain(s.SelectPlayerHandler(), paramsMiddleware))

	s.Router.Handle("POST /courts", Chain(s.AddCourtHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /courts/{id}", Chain(s.RemoveCourtHandler(), paramsMiddleware))
	s.Router.Handle("POST /courts/{id}/assign", Chain(s.AssignHandler(), paramsMiddleware))
	s.Router.Handle("POST /courts/{id}/release", Chain(s.ReleaseHandler(), paramsMiddleware))
	s.Router.Handle("POST /courts/{id}/checked/{slot}", Chain(s.ToggleCheckedHandler(), paramsMiddleware))
	s.Router.Handle("POST /courts/{id}/shuttlecocks", Chain(s.ShuttlecockHandler(), paramsMiddleware))
	s.Router.Handle("POST /courts/{id}/rename", Chain(s.RenameCourtHandler(), paramsMiddleware))
	s.Router.Handle("POST /courts/{id}/undo/{name}", Chain(s.UndoAssignmentHandler(), paramsMiddleware))

	s.Router.Handle("POST /groups", Chain(s.CreateGroupHandler(), paramsMiddleware))
	s.Router.Handle("POST /groups/{index}/fill", Chain(s.FillGroupHandler(), paramsMiddleware))
	s.Router.Handle("POST /groups/{index}/court", Chain(s.BindGroupCourtHandler(), paramsMiddleware))
	s.Router.Handle("POST /groups/{index}/commit", Chain(s.CommitGroupHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /groups/{index}", Chain(s.RemoveGroupHandler(), paramsMiddleware))

	s.Router.Handle("GET /history", Chain(s.HistoryHandler(), paramsMiddleware))
	s.Router.Handle("GET /history/export", Chain(s.ExportHistoryHandler(), paramsMiddleware))
	s.Router.Handle("GET /history/{name}/games", Chain(s.GamesHandler(), paramsMiddleware))
	s.Router.Handle("PUT /history/{name}", Chain(s.UpdateHistoryHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /history/{name}", Chain(s.RemoveHistoryHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /history", Chain(s.ClearHistoryHandler(), paramsMiddleware))
	s.Router.Handle("POST /history/pricing", Chain(s.ApplyPricingHandler(), paramsMiddleware))

	s.Router.Handle("GET /settings", Chain(s.GetSettingsHandler(), paramsMiddleware))
	s.Router.Handle("PUT /settings", Chain(s.SaveSettingsHandler(), paramsMiddleware))

	s.Router.Handle("POST /pubsub/events", Chain(s.EventPushHandler(), paramsMiddleware))
	s.Router.Handle("POST /slack/command/queue", Chain(s.QueueCommandHandler(), paramsMiddleware, s.slackVerifier))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
