// Package store persists window state between runs: open tabs and
// free-form settings.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/justyntemme/plane/internal/debug"
	"github.com/justyntemme/plane/internal/location"
)

// Tab is a saved tab.
type Tab struct {
	Location location.Location
	Selected bool
}

type DB struct {
	conn *sql.DB
}

// Open initializes the database connection and schema
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// WAL mode allows simultaneous readers and writers
	// Synchronous NORMAL is safe against app crashes, faster than FULL
	for _, pragma := range []string{"PRAGMA journal_mode=WAL;", "PRAGMA synchronous=NORMAL;"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS tabs (
		position INTEGER PRIMARY KEY,
		kind TEXT NOT NULL,
		target TEXT NOT NULL,
		selected INTEGER NOT NULL DEFAULT 0
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	debug.Log(debug.STORE, "opened %s", dbPath)
	return &DB{conn: db}, nil
}

// Settings returns every saved key/value pair.
func (d *DB) Settings() (map[string]string, error) {
	rows, err := d.conn.Query("SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

// SaveSetting upserts one setting.
func (d *DB) SaveSetting(key, value string) error {
	_, err := d.conn.Exec("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, value)
	if err != nil {
		return fmt.Errorf("saving setting %q: %w", key, err)
	}
	return nil
}

// SaveTabs replaces the saved tabs.
func (d *DB) SaveTabs(tabs []Tab) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tabs"); err != nil {
		return err
	}
	for i, tab := range tabs {
		kind, target, ok := encode(tab.Location)
		if !ok {
			continue
		}
		if _, err := tx.Exec("INSERT INTO tabs (position, kind, target, selected) VALUES (?, ?, ?, ?)",
			i, kind, target, tab.Selected); err != nil {
			return fmt.Errorf("saving tab %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	debug.Log(debug.STORE, "saved %d tabs", len(tabs))
	return nil
}

// Tabs returns the saved tabs in order. Rows that no longer decode are
// skipped.
func (d *DB) Tabs() ([]Tab, error) {
	rows, err := d.conn.Query("SELECT kind, target, selected FROM tabs ORDER BY position ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tabs []Tab
	for rows.Next() {
		var kind, target string
		var selected bool
		if err := rows.Scan(&kind, &target, &selected); err != nil {
			return nil, err
		}
		loc := decode(kind, target)
		if loc.IsZero() {
			debug.Log(debug.STORE, "skipping undecodable tab %s %q", kind, target)
			continue
		}
		tabs = append(tabs, Tab{Location: loc, Selected: selected})
	}
	return tabs, rows.Err()
}

func encode(loc location.Location) (kind, target string, ok bool) {
	switch loc.Kind() {
	case location.Path:
		return "path", loc.URI(), true
	case location.Tags:
		return "tags", strings.Join(loc.Tags(), "\n"), true
	default:
		return "", "", false
	}
}

func decode(kind, target string) location.Location {
	switch kind {
	case "path":
		return location.FromURI(target)
	case "tags":
		return location.FromTags(strings.Split(target, "\n")...)
	default:
		return location.Location{}
	}
}

func (d *DB) Close() error {
	if d.conn != nil {
		return d.conn.Close()
	}
	return nil
}
