package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStateStore(dir)
	require.NoError(t, err)
	assert.Empty(t, store.Token())

	require.NoError(t, store.SetToken("abc123"))
	require.NoError(t, store.SetBaseURL("http://example.com:3000"))

	// a fresh store sees the persisted values
	reloaded, err := NewStateStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "abc123", reloaded.Token())
	assert.Equal(t, "http://example.com:3000", reloaded.BaseURL())
}

func TestStateStoreMigratesLegacyOnce(t *testing.T) {
	dir := t.TempDir()
	legacyPath := filepath.Join(dir, "legacy-state.json")
	statePath := filepath.Join(dir, "new", "state.json")

	require.NoError(t, os.WriteFile(legacyPath, []byte(`{"token":"legacy-token"}`), 0o600))

	store, err := newStateStoreAt(statePath, legacyPath)
	require.NoError(t, err)
	assert.Equal(t, "legacy-token", store.Token())

	// migration removed the legacy file and wrote the new one
	_, err = os.Stat(legacyPath)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(statePath)
	assert.NoError(t, err)
}

func TestStateStoreDiscardsCorruptState(t *testing.T) {
	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.json")
	require.NoError(t, os.WriteFile(statePath, []byte("not json"), 0o600))

	store, err := newStateStoreAt(statePath, "")
	require.NoError(t, err)
	assert.Empty(t, store.Token())
}
