package db

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type (
	// DB is the SQLite adapter behind the service layer.
	DB struct {
		db *sql.DB
	}
)

var (
	// ErrNotFound ...
	ErrNotFound = errors.New("not found")
)

// New opens or creates the database at the given path and migrates the
// schema.
func New(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite3", path+"?_fk=on")
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := sqlDB.Exec(pragma); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("error applying '%s': %w", pragma, err)
		}
	}
	d := &DB{db: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error migrating database: %w", err)
	}
	return d, nil
}

// Close ...
func (d *DB) Close() error {
	return d.db.Close()
}

// Path-independent schema, applied idempotently on startup.
func (d *DB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS groups (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS members (
			id TEXT PRIMARY KEY,
			group_id TEXT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (group_id, name)
		);

		CREATE TABLE IF NOT EXISTS expenses (
			id TEXT PRIMARY KEY,
			group_id TEXT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			payer_id TEXT NOT NULL REFERENCES members(id),
			description TEXT NOT NULL,
			amount_cents INTEGER NOT NULL,
			split_type TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_expenses_group ON expenses(group_id, created_at);

		CREATE TABLE IF NOT EXISTS expense_splits (
			expense_id TEXT NOT NULL REFERENCES expenses(id) ON DELETE CASCADE,
			member_id TEXT NOT NULL REFERENCES members(id),
			amount_cents INTEGER NOT NULL,
			percentage TEXT,
			PRIMARY KEY (expense_id, member_id)
		);
	`
	_, err := d.db.Exec(schema)
	return err
}
