package history

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

var _ Ledger = (*store)(nil)

// New creates a new SQL-backed Ledger.
func New(db *sql.DB) Ledger {
	return &store{
		db: db,
	}
}

// Record merges the entries in a single transaction.
func (s *store) Record(entries ...Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for _, entry := range entries {
		if err := recordTx(tx, entry, now); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history transaction: %w", err)
	}
	log.Debug("Recorded history entries", "count", len(entries))
	return nil
}

// RecordRelease merges the entries and appends the finished game.
func (s *store) RecordRelease(release Release) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	finishedAt := release.FinishedAt
	if finishedAt.IsZero() {
		finishedAt = time.Now()
	}
	for _, entry := range release.Entries {
		if err := recordTx(tx, entry, finishedAt); err != nil {
			return err
		}
	}

	res, err := tx.Exec("INSERT INTO games (court_id, finished_at) VALUES (?, ?)", release.CourtID, finishedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}
	gameID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get game id: %w", err)
	}
	for i, entry := range release.Entries {
		if _, err := tx.Exec("INSERT INTO game_players (game_id, name, position) VALUES (?, ?, ?)", gameID, entry.Name, i); err != nil {
			return fmt.Errorf("failed to insert game player %s: %w", entry.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit release transaction: %w", err)
	}
	log.Info("Recorded release", "court", release.CourtID, "game_id", gameID, "players", len(release.Entries))
	return nil
}

// recordTx adds the change since the last values reported for the same
// JoinID. A different JoinID means the player re-joined with fresh stats, so
// the full cumulative values are added. Within one JoinID a negative
// shuttlecock delta is a correction and is applied, flooring the total at 0.
func recordTx(tx *sql.Tx, entry Entry, now time.Time) error {
	var lastGames int
	var lastFeathers float64
	var lastJoin string
	err := tx.QueryRow("SELECT last_games, last_feathers, last_join FROM player_history WHERE name = ?", entry.Name).Scan(&lastGames, &lastFeathers, &lastJoin)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.Exec(`
			INSERT INTO player_history (name, games_played, feather_count, rank, last_games, last_feathers, last_join, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			entry.Name, entry.CumulativeGames, entry.ShuttlecockUsage, entry.Rank,
			entry.CumulativeGames, entry.ShuttlecockUsage, entry.JoinID, now.UnixMilli(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert history for %s: %w", entry.Name, err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to read history for %s: %w", entry.Name, err)
	}

	gamesDelta, feathersDelta := entryDelta(entry, lastJoin, lastGames, lastFeathers)
	log.Debug("Merging history", "name", entry.Name, "games_delta", gamesDelta, "feathers_delta", feathersDelta)

	_, err = tx.Exec(`
		UPDATE player_history
		SET games_played = games_played + ?, feather_count = MAX(feather_count + ?, 0), rank = ?,
			last_games = ?, last_feathers = ?, last_join = ?, updated_at = ?
		WHERE name = ?`,
		gamesDelta, feathersDelta, entry.Rank,
		entry.CumulativeGames, entry.ShuttlecockUsage, entry.JoinID, now.UnixMilli(),
		entry.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to merge history for %s: %w", entry.Name, err)
	}
	return nil
}

// entryDelta is what an entry adds on top of the last reported values.
func entryDelta(entry Entry, lastJoin string, lastGames int, lastFeathers float64) (int, float64) {
	if entry.JoinID != lastJoin {
		return entry.CumulativeGames, entry.ShuttlecockUsage
	}
	return max(entry.CumulativeGames-lastGames, 0), entry.ShuttlecockUsage - lastFeathers
}

// Get returns the record for name, or ErrNotFound.
func (s *store) Get(name string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT name, games_played, feather_count, rank, price FROM player_history WHERE name = ?", name)
	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to get history record: %w", err)
	}
	return record, nil
}

// GetAll returns every record in insertion order.
func (s *store) GetAll() ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getAllLocked()
}

func (s *store) getAllLocked() ([]Record, error) {
	rows, err := s.db.Query("SELECT name, games_played, feather_count, rank, price FROM player_history ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func scanRecord(scanner interface{ Scan(...any) error }) (*Record, error) {
	var record Record
	var price sql.NullString
	if err := scanner.Scan(&record.Name, &record.GamesPlayed, &record.FeatherCount, &record.Rank, &price); err != nil {
		return nil, err
	}
	if price.Valid {
		record.Price = &price.String
	}
	return &record, nil
}

// Update overwrites the stored values of an existing record.
func (s *store) Update(record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE player_history
		SET games_played = ?, feather_count = ?, rank = ?, price = ?, updated_at = ?
		WHERE name = ?`,
		record.GamesPlayed, record.FeatherCount, record.Rank, record.Price, time.Now().UnixMilli(), record.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to update history record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, record.Name)
	}
	log.Info("Updated history record", "name", record.Name)
	return nil
}

// Remove deletes the record for name. Unknown names are ignored.
func (s *store) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM player_history WHERE name = ?", name); err != nil {
		return fmt.Errorf("failed to remove history record: %w", err)
	}
	log.Info("Removed history record", "name", name)
	return nil
}

// ClearAll deletes every record and the game log.
func (s *store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{"DELETE FROM game_players", "DELETE FROM games", "DELETE FROM player_history"} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clear: %w", err)
	}
	log.Info("History cleared")
	return nil
}

// ApplyPricing recomputes and stores the price of every record.
func (s *store) ApplyPricing(mode PriceMode, params PricingParams) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.getAllLocked()
	if err != nil {
		return nil, err
	}
	priced, err := Price(records, mode, params)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, record := range priced {
		if _, err := tx.Exec("UPDATE player_history SET price = ? WHERE name = ?", record.Price, record.Name); err != nil {
			return nil, fmt.Errorf("failed to store price for %s: %w", record.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit prices: %w", err)
	}
	log.Info("Prices updated", "mode", mode, "players", len(priced))
	return priced, nil
}

// GamesFor lists the finished games the player was released from, oldest first.
func (s *store) GamesFor(name string) ([]Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT g.id, g.court_id, g.finished_at, gp.name
		FROM games g
		JOIN game_players gp ON gp.game_id = g.id
		WHERE g.id IN (SELECT game_id FROM game_players WHERE name = ?)
		ORDER BY g.id, gp.position`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	games := []Game{}
	for rows.Next() {
		var id int64
		var courtID int
		var finishedAt int64
		var player string
		if err := rows.Scan(&id, &courtID, &finishedAt, &player); err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		if len(games) == 0 || games[len(games)-1].ID != id {
			games = append(games, Game{ID: id, CourtID: courtID, FinishedAt: time.UnixMilli(finishedAt)})
		}
		last := &games[len(games)-1]
		last.Players = append(last.Players, player)
	}
	return games, rows.Err()
}

// Export returns the versioned history payload.
func (s *store) Export() (Payload, error) {
	records, err := s.GetAll()
	if err != nil {
		return Payload{}, err
	}
	return Payload{Version: PayloadVersion, PlayerHistory: records}, nil
}
