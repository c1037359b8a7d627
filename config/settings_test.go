package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	m := NewManager(path)

	s, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)

	_, err = os.Stat(path)
	assert.NoError(t, err, "defaults should be persisted")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	m := NewManager(path)

	s := DefaultSettings()
	s.Server.Port = 9090
	s.TMDB.APIKey = "key"
	s.TMDB.WatchRegion = "US"
	s.Suggest.MaxInitialCards = 5
	require.NoError(t, m.Save(s))

	loaded, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, s, loaded)

	// The file carries the TMDB API key; it must not be group/world readable.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0), info.Mode().Perm()&0o077, "settings file should be private")
}

func TestLoadBackfillsMissingSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server":{"host":"127.0.0.1","port":8000},"tmdb":{"apiKey":"k"}}`), 0o644))

	s, err := NewManager(path).Load()
	require.NoError(t, err)

	d := DefaultSettings()
	assert.Equal(t, "127.0.0.1", s.Server.Host)
	assert.Equal(t, 8000, s.Server.Port)
	assert.Equal(t, "k", s.TMDB.APIKey)
	assert.Equal(t, d.TMDB.Language, s.TMDB.Language)
	assert.Equal(t, d.TMDB.WatchRegion, s.TMDB.WatchRegion)
	assert.Equal(t, d.Suggest, s.Suggest)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	_, err := NewManager(path).Load()
	assert.Error(t, err)
}
