// Package storage provides SQLite-based persistence for badge users.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrUserNotFound is returned when no user matches the given id or name.
var ErrUserNotFound = errors.New("storage: user not found")

// Store manages the SQLite database connection for user records.
type Store struct {
	db *sql.DB
}

// User is one tracked player and their serialized engine state.
type User struct {
	ID         string
	Name       string
	Difficulty int
	State      string // engine JSON, empty until the first event
	PlaySecs   int64  // last play clock seen for this user
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Unlock is one history entry: a badge that changed on the board.
type Unlock struct {
	ID        int64
	UserID    string
	Badge     string
	Level     int
	PlaySecs  int64
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

	// Test connection
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
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			difficulty INTEGER NOT NULL DEFAULT 2,
			state TEXT NOT NULL DEFAULT '',
			play_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS badge_unlocks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			badge TEXT NOT NULL,
			level INTEGER NOT NULL,
			play_secs INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_badge_unlocks_user ON badge_unlocks(user_id, id DESC);
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

// CreateUser inserts a new user with an empty engine state.
func (s *Store) CreateUser(name string, difficulty int) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("storage: user name is empty")
	}

	id := uuid.NewString()
	if _, err := s.db.Exec(
		"INSERT INTO users (id, name, difficulty) VALUES (?, ?, ?)",
		id, name, difficulty,
	); err != nil {
		return nil, fmt.Errorf("storage: cannot create user %q: %w", name, err)
	}
	return s.User(id)
}

// User looks a user up by id or by name.
func (s *Store) User(ref string) (*User, error) {
	row := s.db.QueryRow(
		`SELECT id, name, difficulty, state, play_secs, created_at, updated_at
		 FROM users
		 WHERE id = ? OR name = ?`,
		ref, ref,
	)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query user: %w", err)
	}
	return u, nil
}

// Users lists every user ordered by name.
func (s *Store) Users() ([]User, error) {
	rows, err := s.db.Query(
		`SELECT id, name, difficulty, state, play_secs, created_at, updated_at
		 FROM users
		 ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		users = append(users, *u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return users, nil
}

// SaveState stores the engine blob and the play clock it was produced at.
func (s *Store) SaveState(userID, state string, playSecs int64) error {
	return saveState(s.db, userID, state, playSecs)
}

// RecordUnlock appends a history entry for the user.
// Returns the ID of the inserted record.
func (s *Store) RecordUnlock(userID, badge string, level int, playSecs int64) (int64, error) {
	return recordUnlock(s.db, userID, badge, level, playSecs)
}

// SaveProgress stores the engine blob and, when badge is not empty, the
// matching history entry. Both writes land or neither does.
func (s *Store) SaveProgress(userID, state string, playSecs int64, badge string, level int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := saveState(tx, userID, state, playSecs); err != nil {
		return err
	}
	if badge != "" {
		if _, err := recordUnlock(tx, userID, badge, level, playSecs); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func saveState(db execer, userID, state string, playSecs int64) error {
	res, err := db.Exec(
		`UPDATE users SET state = ?, play_secs = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		state, playSecs, userID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save state: %w", err)
	}
	return expectOne(res, userID)
}

func recordUnlock(db execer, userID, badge string, level int, playSecs int64) (int64, error) {
	result, err := db.Exec(
		"INSERT INTO badge_unlocks (user_id, badge, level, play_secs) VALUES (?, ?, ?, ?)",
		userID, badge, level, playSecs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record unlock: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Unlocks returns the most recent history entries for the user, newest first.
func (s *Store) Unlocks(userID string, limit int) ([]Unlock, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, user_id, badge, level, play_secs, created_at
		 FROM badge_unlocks
		 WHERE user_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query unlocks: %w", err)
	}
	defer rows.Close()

	var entries []Unlock
	for rows.Next() {
		var e Unlock
		var createdAt any
		if err := rows.Scan(&e.ID, &e.UserID, &e.Badge, &e.Level, &e.PlaySecs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeleteUser removes the user and their history.
func (s *Store) DeleteUser(userID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM badge_unlocks WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("storage: cannot delete unlocks: %w", err)
	}
	res, err := tx.Exec("DELETE FROM users WHERE id = ?", userID)
	if err != nil {
		return fmt.Errorf("storage: cannot delete user: %w", err)
	}
	if err := expectOne(res, userID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*User, error) {
	var u User
	var createdAt, updatedAt any
	if err := row.Scan(&u.ID, &u.Name, &u.Difficulty, &u.State, &u.PlaySecs, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	u.CreatedAt = parseTime(createdAt)
	u.UpdatedAt = parseTime(updatedAt)
	return &u, nil
}

func expectOne(res sql.Result, userID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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
