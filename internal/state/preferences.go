package state

import (
	"database/sql"
	"errors"
	"time"
)

// GetValue returns the stored value for key. ok is false when the key has
// never been set.
func (m *Manager) GetValue(key string) (value string, ok bool, err error) {
	row := m.db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key)
	err = row.Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetValue stores value under key, replacing any previous value.
func (m *Manager) SetValue(key, value string) error {
	_, err := m.db.Exec(`
		INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, time.Now().Unix())
	return err
}
