package settings

import (
	"database/sql"
	"sync"

	"github.com/mauv0809/court-queue/internal/history"
)

// SchemaVersion is stored with the settings so old payloads can be detected.
const SchemaVersion = 1

const (
	keyPriceMode     = "priceMode"
	keyRegularMode   = "regularMode"
	keyAmericanMode  = "americanMode"
	keySchemaVersion = "schemaVersion"
)

// Store loads and saves the organizer's settings.
type Store interface {
	Load() (Settings, error)
	Save(s Settings) error
}

type store struct {
	db *sql.DB
	mu sync.Mutex
}

// Settings are the organizer's pricing preferences.
type Settings struct {
	PriceMode    history.PriceMode `json:"priceMode"`
	RegularMode  RegularMode       `json:"regularMode"`
	AmericanMode AmericanMode      `json:"americanMode"`
}

type RegularMode struct {
	CourtFee       float64 `json:"courtFee"`
	ShuttlecockFee float64 `json:"shuttlecockFee"`
}

type AmericanMode struct {
	CombinedFee float64 `json:"combinedFee"`
}

// Default returns the settings used before anything has been saved.
func Default() Settings {
	return Settings{PriceMode: history.PriceModeRegular}
}

// PricingParams flattens the fees for the history ledger.
func (s Settings) PricingParams() history.PricingParams {
	return history.PricingParams{
		CourtFee:       s.RegularMode.CourtFee,
		ShuttlecockFee: s.RegularMode.ShuttlecockFee,
		CombinedFee:    s.AmericanMode.CombinedFee,
	}
}
