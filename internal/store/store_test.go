package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkhandAgrawal/Bartr/internal/domain"
	"github.com/AkhandAgrawal/Bartr/internal/logging"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"), logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "test.db")
	db, err := Open(path, logging.Nop())
	require.NoError(t, err)
	db.Close()
}

func TestOpen_MigrationsIdempotentAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(path, logging.Nop())
	require.NoError(t, err)
	require.NoError(t, NewCredentials(db).Set("k", "v"))
	require.NoError(t, db.Close())

	db, err = Open(path, logging.Nop())
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, "v", NewCredentials(db).Get("k"))
}

func TestCredentials_GetSetDelete(t *testing.T) {
	c := NewCredentials(testDB(t))

	assert.Empty(t, c.Get("accessToken"))

	require.NoError(t, c.Set("accessToken", "tok-1"))
	assert.Equal(t, "tok-1", c.Get("accessToken"))

	require.NoError(t, c.Set("accessToken", "tok-2"))
	assert.Equal(t, "tok-2", c.Get("accessToken"))

	require.NoError(t, c.Delete("accessToken"))
	assert.Empty(t, c.Get("accessToken"))

	// Deleting again is fine.
	require.NoError(t, c.Delete("accessToken"))
}

func TestCredentials_KeysIndependent(t *testing.T) {
	c := NewCredentials(testDB(t))

	require.NoError(t, c.Set("accessToken", "a"))
	require.NoError(t, c.Set("refreshToken", "r"))
	require.NoError(t, c.Delete("accessToken"))

	assert.Empty(t, c.Get("accessToken"))
	assert.Equal(t, "r", c.Get("refreshToken"))
}

func TestProfileCache_SaveLoadClear(t *testing.T) {
	p := NewProfileCache(testDB(t))

	assert.Nil(t, p.Load())

	profile := domain.UserProfile{
		KeycloakID: "kc-1",
		FirstName:  "Ada",
		LastName:   "Lovelace",
		UserName:   "ada",
		Email:      "ada@example.com",
	}
	require.NoError(t, p.Save(profile))

	loaded := p.Load()
	require.NotNil(t, loaded)
	assert.Equal(t, "kc-1", loaded.KeycloakID)
	assert.Equal(t, "ada", loaded.UserName)

	require.NoError(t, p.Clear())
	assert.Nil(t, p.Load())
}

func TestProfileCache_SaveReplaces(t *testing.T) {
	p := NewProfileCache(testDB(t))

	require.NoError(t, p.Save(domain.UserProfile{KeycloakID: "old"}))
	require.NoError(t, p.Save(domain.UserProfile{KeycloakID: "new"}))

	loaded := p.Load()
	require.NotNil(t, loaded)
	assert.Equal(t, "new", loaded.KeycloakID)
}
