package history

// Ledger is the durable, name-keyed play history.
type Ledger interface {
	// Record merges cumulative per-player values into the ledger.
	Record(entries ...Entry) error
	// RecordRelease merges the entries and logs the finished game in one transaction.
	RecordRelease(release Release) error
	Get(name string) (*Record, error)
	GetAll() ([]Record, error)
	// Update overwrites a single record, e.g. after a manual correction.
	Update(record Record) error
	Remove(name string) error
	ClearAll() error
	ApplyPricing(mode PriceMode, params PricingParams) ([]Record, error)
	GamesFor(name string) ([]Game, error)
	Export() (Payload, error)
}
