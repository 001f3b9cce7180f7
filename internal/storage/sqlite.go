// Package storage provides SQLite-based persistence for saved games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-quest/internal/entity"
)

// Store manages the SQLite database connection for save persistence.
type Store struct {
	db *sql.DB
}

// Save is one save slot: the player's stat block and which levels are
// passed.
type Save struct {
	ID        uuid.UUID
	Slot      string
	Player    entity.Data
	Passed    map[string]bool // by level id
	UpdatedAt time.Time
}

// PassedCount returns the number of passed levels.
func (s Save) PassedCount() int {
	n := 0
	for _, ok := range s.Passed {
		if ok {
			n++
		}
	}
	return n
}

// BattleRecord is the outcome of one battle, kept as play history.
type BattleRecord struct {
	ID        int64
	SessionID string
	Slot      string
	LevelID   string
	Enemy     string
	Outcome   string // "victory", "defeat", "quit"
	Turns     int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			slot TEXT PRIMARY KEY,
			save_id TEXT NOT NULL,
			player TEXT NOT NULL,
			passed TEXT NOT NULL DEFAULT '{}',
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS battles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			slot TEXT NOT NULL,
			level_id TEXT NOT NULL,
			enemy TEXT NOT NULL,
			outcome TEXT NOT NULL,
			turns INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_battles_slot ON battles(slot, id DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame writes a slot, replacing any previous save in it. A zero ID is
// assigned a new one.
func (s *Store) SaveGame(save *Save) error {
	if save.Slot == "" {
		return errors.New("storage: empty save slot")
	}
	if save.ID == uuid.Nil {
		save.ID = uuid.New()
	}
	player, err := json.Marshal(save.Player)
	if err != nil {
		return fmt.Errorf("storage: cannot encode player: %w", err)
	}
	passed := save.Passed
	if passed == nil {
		passed = map[string]bool{}
	}
	levels, err := json.Marshal(passed)
	if err != nil {
		return fmt.Errorf("storage: cannot encode progress: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO saves (slot, save_id, player, passed, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET
		   save_id = excluded.save_id,
		   player = excluded.player,
		   passed = excluded.passed,
		   updated_at = CURRENT_TIMESTAMP`,
		save.Slot, save.ID.String(), string(player), string(levels),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game: %w", err)
	}
	return nil
}

// LoadGame returns the save in slot.
// Returns nil, nil if the slot is empty.
func (s *Store) LoadGame(slot string) (*Save, error) {
	row := s.db.QueryRow(
		`SELECT slot, save_id, player, passed, updated_at FROM saves WHERE slot = ?`,
		slot,
	)
	save, err := scanSave(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load game: %w", err)
	}
	return save, nil
}

// HasSave reports whether slot holds a save.
func (s *Store) HasSave(slot string) (bool, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM saves WHERE slot = ?", slot).Scan(&n); err != nil {
		return false, fmt.Errorf("storage: cannot query save: %w", err)
	}
	return n > 0, nil
}

// ListSaves returns every save, most recent first.
func (s *Store) ListSaves() ([]Save, error) {
	rows, err := s.db.Query(
		`SELECT slot, save_id, player, passed, updated_at FROM saves ORDER BY updated_at DESC, slot`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var saves []Save
	for rows.Next() {
		save, err := scanSave(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		saves = append(saves, *save)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return saves, nil
}

// DeleteSave removes a slot and its battle history.
func (s *Store) DeleteSave(slot string) error {
	if _, err := s.db.Exec("DELETE FROM saves WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM battles WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot delete battle history: %w", err)
	}
	return nil
}

// RecordBattle appends a battle outcome.
// Returns the ID of the inserted record.
func (s *Store) RecordBattle(r BattleRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO battles (session_id, slot, level_id, enemy, outcome, turns)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.Slot, r.LevelID, r.Enemy, r.Outcome, r.Turns,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record battle: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentBattles returns the latest battles of a slot, newest first.
func (s *Store) RecentBattles(slot string, limit int) ([]BattleRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, slot, level_id, enemy, outcome, turns, created_at
		 FROM battles
		 WHERE slot = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		slot, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query battles: %w", err)
	}
	defer rows.Close()

	var records []BattleRecord
	for rows.Next() {
		var r BattleRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Slot, &r.LevelID, &r.Enemy, &r.Outcome, &r.Turns, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSave(row scanner) (*Save, error) {
	var (
		save      Save
		id        string
		player    string
		passed    string
		updatedAt any
	)
	if err := row.Scan(&save.Slot, &id, &player, &passed, &updatedAt); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("bad save id %q: %w", id, err)
	}
	save.ID = parsed
	if err := json.Unmarshal([]byte(player), &save.Player); err != nil {
		return nil, fmt.Errorf("bad player data: %w", err)
	}
	if err := json.Unmarshal([]byte(passed), &save.Passed); err != nil {
		return nil, fmt.Errorf("bad progress data: %w", err)
	}
	save.UpdatedAt = parseTime(updatedAt)
	return &save, nil
}

// parseTime handles both time.Time and string, depending on how the
// driver returns DATETIME columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
