package notifier

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/court-queue/internal/history"
	"github.com/mauv0809/court-queue/internal/session"
)

var _ Notifier = (*Logger)(nil)

// Logger writes notifications to the application log. It is used when no
// chat integration is configured.
type Logger struct{}

// NewLogger creates a Logger.
func NewLogger() *Logger {
	return &Logger{}
}

func (l *Logger) SendCourtCall(call CourtCall, dryRun bool) error {
	log.Info("Court call", "court", call.CourtID, "players", call.Players, "dryRun", dryRun)
	return nil
}

func (l *Logger) SendCourtRelease(release CourtRelease, dryRun bool) error {
	log.Info("Court released", "court", release.CourtID, "released", release.Released, "next", release.Next, "dryRun", dryRun)
	return nil
}

func (l *Logger) SendPricing(mode history.PriceMode, records []history.Record, dryRun bool) error {
	log.Info("Pricing applied", "mode", mode, "players", len(records), "dryRun", dryRun)
	return nil
}

// FormatQueueResponse renders the queue as plain text.
func (l *Logger) FormatQueueResponse(snap session.Snapshot) (any, error) {
	lines := make([]string, 0, len(snap.Queue))
	for _, e := range snap.Queue {
		lines = append(lines, fmt.Sprintf("%d. %s (%s)", e.Position, e.Name, e.Rank))
	}
	return map[string]string{"text": strings.Join(lines, "\n")}, nil
}
