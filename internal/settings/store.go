package settings

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/court-queue/internal/history"
)

// New creates a settings Store backed by the settings table.
func New(db *sql.DB) Store {
	return &store{db: db}
}

// Load reads the saved settings, falling back to defaults for missing keys.
func (s *store) Load() (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return Settings{}, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Settings{}, fmt.Errorf("failed to scan settings row: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return Settings{}, err
	}

	settings := Default()
	if raw, ok := values[keySchemaVersion]; ok {
		var version int
		if err := json.Unmarshal([]byte(raw), &version); err != nil || version > SchemaVersion {
			log.Warn("Settings were saved by a newer schema, using defaults", "version", raw)
			return settings, nil
		}
	}
	if raw, ok := values[keyPriceMode]; ok {
		var mode history.PriceMode
		if err := json.Unmarshal([]byte(raw), &mode); err != nil {
			log.Warn("Failed to unmarshal price mode", "error", err)
		} else {
			settings.PriceMode = mode
		}
	}
	if raw, ok := values[keyRegularMode]; ok {
		if err := json.Unmarshal([]byte(raw), &settings.RegularMode); err != nil {
			log.Warn("Failed to unmarshal regular mode", "error", err)
		}
	}
	if raw, ok := values[keyAmericanMode]; ok {
		if err := json.Unmarshal([]byte(raw), &settings.AmericanMode); err != nil {
			log.Warn("Failed to unmarshal american mode", "error", err)
		}
	}
	return settings, nil
}

// Save writes every setting in one transaction.
func (s *store) Save(settings Settings) error {
	switch settings.PriceMode {
	case history.PriceModeRegular, history.PriceModeAmerican:
	default:
		return fmt.Errorf("%w: %q", history.ErrUnknownPriceMode, settings.PriceMode)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values := map[string]any{
		keyPriceMode:     settings.PriceMode,
		keyRegularMode:   settings.RegularMode,
		keyAmericanMode:  settings.AmericanMode,
		keySchemaVersion: SchemaVersion,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value;
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare settings statement: %w", err)
	}
	defer stmt.Close()

	for key, value := range values {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", key, err)
		}
		if _, err := stmt.Exec(key, string(encoded)); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settings: %w", err)
	}
	log.Info("Settings saved", "price_mode", settings.PriceMode)
	return nil
}
