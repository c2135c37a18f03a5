package localstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	_, ok, err := s.Get("sessionId")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("sessionId", "session_a"))
	require.NoError(t, s.Set("sessionId", "session_b"))
	v, ok, err := s.Get("sessionId")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "session_b", v)

	require.NoError(t, s.Remove("sessionId"))
	require.NoError(t, s.Remove("never-set"))
	_, ok, err = s.Get("sessionId")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	exerciseStore(t, s)

	require.NoError(t, s.Set("authToken", "tok"))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()
	v, ok, err := reopened.Get("authToken")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)
}
