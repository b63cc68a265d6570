package client

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_LoadMissingFileGivesDefaults(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)

	got := s.Get()
	assert.True(t, got.AutoSync, "auto sync defaults to on")
	assert.Empty(t, got.APIURL)
	assert.Nil(t, got.LastSyncTime)
}

func TestSettings_UpdateIsWrittenThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	s, err := LoadSettings(path)
	require.NoError(t, err)
	require.NoError(t, s.Update(func(st *Settings) {
		st.APIURL = "https://sync.example.com"
		st.APIKey = "secret"
		st.DarkMode = true
	}))

	// a fresh load sees the change
	reloaded, err := LoadSettings(path)
	require.NoError(t, err)
	got := reloaded.Get()
	assert.Equal(t, "https://sync.example.com", got.APIURL)
	assert.Equal(t, "secret", got.APIKey)
	assert.True(t, got.DarkMode)
}

func TestSettings_UpdateRollsBackWhenSaveFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	s, err := LoadSettings(path)
	require.NoError(t, err)
	require.NoError(t, s.Update(func(st *Settings) { st.APIURL = "https://kept.example.com" }))

	// replacing the file with a directory makes the next save fail
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0o700))

	err = s.Update(func(st *Settings) { st.APIURL = "https://never.example.com" })
	require.Error(t, err)
	assert.Equal(t, "https://kept.example.com", s.Get().APIURL)
}

func TestSettings_ResetKeepsCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	s, err := LoadSettings(path)
	require.NoError(t, err)
	now := time.Now()
	require.NoError(t, s.Update(func(st *Settings) {
		st.APIURL = "https://sync.example.com"
		st.APIKey = "secret"
		st.AutoSync = false
		st.DarkMode = true
		st.LastSyncTime = &now
		st.DirectoryName = "/data/questions"
	}))

	require.NoError(t, s.Reset())

	got := s.Get()
	assert.Equal(t, "https://sync.example.com", got.APIURL, "endpoint survives a reset")
	assert.Equal(t, "secret", got.APIKey, "credential survives a reset")
	assert.True(t, got.AutoSync)
	assert.False(t, got.DarkMode)
	assert.Nil(t, got.LastSyncTime)
	assert.Empty(t, got.DirectoryName)
}
