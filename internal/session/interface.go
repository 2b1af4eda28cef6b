package session

import (
	"github.com/mauv0809/court-queue/internal/history"
	"github.com/mauv0809/court-queue/internal/roster"
)

// Service is the set of organizer actions on a live session.
type Service interface {
	Join(name, rank string) (roster.Player, error)
	Remove(name string) bool
	Resort()

	AddCourt() int
	RemoveCourt(id int) error
	ToggleChecked(courtID, slot int) (bool, error)
	Assign(courtID int, names []string) ([]string, error)
	Release(courtID, count int) ([]string, error)
	AdjustShuttlecockUsage(courtID int, dir Direction) error
	RenameCourt(oldID, newID int) error
	UndoAssignment(courtID int, name string) error

	SelectPlayer(name string) (bool, error)
	CreateGroup() int
	FillGroup(index int) error
	BindGroupCourt(index, courtID int) error
	CommitGroup(index, courtID int) (int, []string, error)
	RemoveGroup(index int) error

	History() ([]history.Record, error)
	Games(name string) ([]history.Game, error)
	ExportHistory() (history.Payload, error)
	UpdateHistory(rec history.Record) error
	RemoveHistory(name string) error
	ClearHistory() error
	ApplyPricing(mode history.PriceMode, params history.PricingParams) ([]history.Record, error)

	Snapshot() (Snapshot, error)
}
