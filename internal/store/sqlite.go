package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/hexmill/hexmill/internal/achieve"
)

// SQLiteDB implements the DB interface using SQLite
type SQLiteDB struct {
	db *sql.DB
}

// SQLiteDB doubles as the tracker's unlock recorder.
var _ achieve.Recorder = (*SQLiteDB)(nil)

// NewSQLiteDB creates a new SQLite database connection
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Migrate runs database migrations
func (s *SQLiteDB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS definitions (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			definition TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS unlocks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			achievement TEXT NOT NULL UNIQUE,
			unlocked_at DATETIME NOT NULL,
			turn INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_definitions_name ON definitions(name)`,
		`CREATE INDEX IF NOT EXISTS idx_unlocks_achievement ON unlocks(achievement)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// SaveDefinition inserts a definition, or replaces the stored blob when
// the name already exists. A missing id is assigned.
func (s *SQLiteDB) SaveDefinition(d *Definition) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	query := `INSERT INTO definitions (id, name, definition) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET definition = excluded.definition`
	if _, err := s.db.Exec(query, d.ID, d.Name, d.Definition); err != nil {
		return fmt.Errorf("save definition: %w", err)
	}
	return nil
}

// GetDefinition retrieves a definition by id.
func (s *SQLiteDB) GetDefinition(id string) (*Definition, error) {
	query := `SELECT id, name, definition, created_at FROM definitions WHERE id = ?`
	var d Definition
	err := s.db.QueryRow(query, id).Scan(&d.ID, &d.Name, &d.Definition, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get definition: %w", err)
	}
	return &d, nil
}

// ListDefinitions returns all stored definitions ordered by creation.
func (s *SQLiteDB) ListDefinitions() ([]Definition, error) {
	query := `SELECT id, name, definition, created_at FROM definitions ORDER BY created_at, name`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list definitions: %w", err)
	}
	defer rows.Close()

	var defs []Definition
	for rows.Next() {
		var d Definition
		if err := rows.Scan(&d.ID, &d.Name, &d.Definition, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan definition: %w", err)
		}
		defs = append(defs, d)
	}
	return defs, rows.Err()
}

// DeleteDefinition removes a definition by id.
func (s *SQLiteDB) DeleteDefinition(id string) error {
	res, err := s.db.Exec(`DELETE FROM definitions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete definition: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete definition: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveUnlock records an unlock. An achievement unlocks at most once;
// replays are ignored.
func (s *SQLiteDB) SaveUnlock(u achieve.Unlock) error {
	query := `INSERT OR IGNORE INTO unlocks (achievement, unlocked_at, turn, score) VALUES (?, ?, ?, ?)`
	if _, err := s.db.Exec(query, u.Achievement, u.UnlockedAt, u.Turn, u.Score); err != nil {
		return fmt.Errorf("save unlock: %w", err)
	}
	return nil
}

// ListUnlocks returns every recorded unlock ordered by time.
func (s *SQLiteDB) ListUnlocks() ([]achieve.Unlock, error) {
	query := `SELECT achievement, unlocked_at, turn, score FROM unlocks ORDER BY unlocked_at`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list unlocks: %w", err)
	}
	defer rows.Close()

	var unlocks []achieve.Unlock
	for rows.Next() {
		var u achieve.Unlock
		if err := rows.Scan(&u.Achievement, &u.UnlockedAt, &u.Turn, &u.Score); err != nil {
			return nil, fmt.Errorf("scan unlock: %w", err)
		}
		unlocks = append(unlocks, u)
	}
	return unlocks, rows.Err()
}

// IsUnlocked reports whether the named achievement has a recorded
// unlock.
func (s *SQLiteDB) IsUnlocked(name string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM unlocks WHERE achievement = ?`, name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query unlock: %w", err)
	}
	return n > 0, nil
}
