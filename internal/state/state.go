package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "beatsnslices"
	dbFileName = "beatsnslices.db"
)

// Manager owns the preference database.
type Manager struct {
	db *sql.DB
}

// Open opens the database at the XDG data path, creating it if needed.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens the database at path. ":memory:" is accepted for tests.
func OpenPath(path string) (*Manager, error) {
	if path != ":memory:" {
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases consistent and
	// serializes writers.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Manager{db: db}, nil
}

// Close closes the database.
func (m *Manager) Close() error {
	return m.db.Close()
}

// Path returns the default database location.
func Path() (string, error) {
	return getDBPath()
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
