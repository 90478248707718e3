package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/duskmode/duskmode"
)

// DB wraps a SQLite preference database for server-side persistence,
// keyed by client id so one database serves every visitor.
type DB struct {
	*sql.DB
}

// Open creates or opens the preference database at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	d := &DB{DB: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return d, nil
}

// OpenMemory creates an in-memory preference database (useful for testing).
func OpenMemory() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	d := &DB{DB: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return d, nil
}

func (d *DB) migrate() error {
	_, err := d.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS theme_preferences (
    client_id TEXT PRIMARY KEY,
    theme TEXT NOT NULL,
    theme_scheme TEXT NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

// Channel returns a preference channel bound to one client id.
func (d *DB) Channel(clientID string) *SQLiteChannel {
	return &SQLiteChannel{db: d, clientID: clientID}
}

// SQLiteChannel persists one client's preference row.
type SQLiteChannel struct {
	db       *DB
	clientID string
}

func (c *SQLiteChannel) Load() (duskmode.State, bool) {
	var st duskmode.State
	err := c.db.QueryRow(
		`SELECT theme, theme_scheme FROM theme_preferences WHERE client_id = ?`,
		c.clientID,
	).Scan(&st.Mode, &st.Scheme)
	if err != nil {
		return duskmode.State{}, false
	}
	return st, true
}

func (c *SQLiteChannel) Save(state duskmode.State) error {
	_, err := c.db.Exec(`
INSERT INTO theme_preferences (client_id, theme, theme_scheme, updated_at)
VALUES (?, ?, ?, datetime('now'))
ON CONFLICT(client_id) DO UPDATE SET
    theme = excluded.theme,
    theme_scheme = excluded.theme_scheme,
    updated_at = excluded.updated_at`,
		c.clientID, string(state.Mode), state.Scheme)
	if err != nil {
		return fmt.Errorf("saving preference row: %w", err)
	}
	return nil
}

func (c *SQLiteChannel) Clear() error {
	_, err := c.db.Exec(`DELETE FROM theme_preferences WHERE client_id = ?`, c.clientID)
	if err != nil {
		return fmt.Errorf("deleting preference row: %w", err)
	}
	return nil
}
