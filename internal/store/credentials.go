package store

import (
	"database/sql"
	"errors"
	"time"
)

// Credentials is a small durable key-value store for bearer tokens.
// Reads degrade to "absent" on any storage error; token handling must
// never fail hard on bad local state.
type Credentials struct {
	db *DB
}

// NewCredentials creates a credential store using the given database.
func NewCredentials(db *DB) *Credentials {
	return &Credentials{db: db}
}

// Get returns the stored value for key, or "" if absent or unreadable.
func (c *Credentials) Get(key string) string {
	var value string
	err := c.db.sql.QueryRow("SELECT value FROM credentials WHERE key = ?", key).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			c.db.log.Warn().Err(err).Str("key", key).Msg("credential read failed")
		}
		return ""
	}
	return value
}

// Set stores value under key, replacing any previous value.
func (c *Credentials) Set(key, value string) error {
	_, err := c.db.sql.Exec(
		`INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Format(time.DateTime),
	)
	return err
}

// Delete removes key. Deleting an absent key is not an error.
func (c *Credentials) Delete(key string) error {
	_, err := c.db.sql.Exec("DELETE FROM credentials WHERE key = ?", key)
	return err
}
