package notifier

import (
	"github.com/mauv0809/court-queue/internal/history"
	"github.com/mauv0809/court-queue/internal/session"
)

// CourtCall announces players sent to a court.
type CourtCall struct {
	CourtID int
	Players []string
}

// CourtRelease announces a finished game and who is up next.
type CourtRelease struct {
	CourtID  int
	Released []string
	Next     []string
}

// Notifier defines a high-level interface for sending notifications about session events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	SendCourtCall(call CourtCall, dryRun bool) error
	SendCourtRelease(release CourtRelease, dryRun bool) error
	SendPricing(mode history.PriceMode, records []history.Record, dryRun bool) error

	// For slash commands
	FormatQueueResponse(snap session.Snapshot) (any, error)
}
