package store

import (
	"encoding/json"
	"time"

	"github.com/AkhandAgrawal/Bartr/internal/domain"
)

// ProfileCache persists the last successfully loaded profile so the
// identity chain's profile source survives restarts.
type ProfileCache struct {
	db *DB
}

// NewProfileCache creates a profile cache using the given database.
func NewProfileCache(db *DB) *ProfileCache {
	return &ProfileCache{db: db}
}

// Save stores the profile, replacing any previous one.
func (p *ProfileCache) Save(profile domain.UserProfile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	_, err = p.db.sql.Exec(
		`INSERT INTO profile_cache (id, payload, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		string(payload), time.Now().Format(time.DateTime),
	)
	return err
}

// Load returns the cached profile, or nil if none is stored or the
// stored payload is unreadable.
func (p *ProfileCache) Load() *domain.UserProfile {
	var payload string
	if err := p.db.sql.QueryRow("SELECT payload FROM profile_cache WHERE id = 1").Scan(&payload); err != nil {
		return nil
	}
	var profile domain.UserProfile
	if err := json.Unmarshal([]byte(payload), &profile); err != nil {
		p.db.log.Warn().Err(err).Msg("cached profile unreadable, ignoring")
		return nil
	}
	return &profile
}

// Clear removes the cached profile.
func (p *ProfileCache) Clear() error {
	_, err := p.db.sql.Exec("DELETE FROM profile_cache WHERE id = 1")
	return err
}
