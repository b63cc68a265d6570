package client

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Settings is the process-wide user configuration. It maps one-to-one onto
// the settings file, which is overwritten wholesale on every change.
type Settings struct {
	APIURL        string     `json:"apiUrl"`
	APIKey        string     `json:"apiKey"`
	AutoSync      bool       `json:"autoSync"`
	DarkMode      bool       `json:"darkMode"`
	LastSyncTime  *time.Time `json:"lastSyncTime"`
	DirectoryName string     `json:"directoryName,omitempty"`
}

// SettingsStore loads settings once and persists every change immediately
// (write-through, no batching).
type SettingsStore struct {
	mu      sync.RWMutex
	path    string
	current Settings
}

func LoadSettings(path string) (*SettingsStore, error) {
	s := &SettingsStore{
		path:    path,
		current: Settings{AutoSync: true},
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}
	if err := json.Unmarshal(data, &s.current); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	return s, nil
}

// Get returns a copy of the current settings.
func (s *SettingsStore) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update applies the mutation and writes the whole file back immediately.
func (s *SettingsStore) Update(mutate func(*Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.current
	mutate(&s.current)
	if err := s.saveLocked(); err != nil {
		s.current = prev
		return err
	}
	return nil
}

// Reset restores defaults but keeps the remote endpoint and credential, so a
// data wipe does not disconnect the client.
func (s *SettingsStore) Reset() error {
	return s.Update(func(st *Settings) {
		*st = Settings{
			APIURL:   st.APIURL,
			APIKey:   st.APIKey,
			AutoSync: true,
		}
	})
}

func (s *SettingsStore) saveLocked() error {
	data, err := json.MarshalIndent(s.current, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
