package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Settings represents the application configuration persisted to disk.
type Settings struct {
	Server  ServerSettings  `json:"server"`
	TMDB    TMDBSettings    `json:"tmdb"`
	Suggest SuggestSettings `json:"suggest"`
	Log     LogConfig       `json:"log"`
}

type ServerSettings struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

type TMDBSettings struct {
	APIKey      string `json:"apiKey"`
	Language    string `json:"language"`    // display locale for titles/overviews
	WatchRegion string `json:"watchRegion"` // default region for provider availability
}

type SuggestSettings struct {
	MaxInitialCards   int `json:"maxInitialCards"`   // card count in multi-suggestion mode
	DetailConcurrency int `json:"detailConcurrency"` // parallel per-title runtime lookups
	SessionTTLMinutes int `json:"sessionTtlMinutes"` // idle rotation sessions expire after this
}

// LogConfig configures file logging with rotation.
type LogConfig struct {
	File       string `json:"file"`
	MaxSize    int    `json:"maxSize"` // MB
	MaxBackups int    `json:"maxBackups"`
	MaxAge     int    `json:"maxAge"` // days
	Compress   bool   `json:"compress"`
}

// DefaultSettings returns sane defaults for a fresh install.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{Host: "0.0.0.0", Port: 7878},
		TMDB: TMDBSettings{
			APIKey:      "",
			Language:    "pt-BR",
			WatchRegion: "BR",
		},
		Suggest: SuggestSettings{
			MaxInitialCards:   3,
			DetailConcurrency: 8,
			SessionTTLMinutes: 30,
		},
		Log: LogConfig{
			File:       "cache/logs/backend.log",
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     7,
			Compress:   true,
		},
	}
}

// Manager loads and persists settings to a JSON file.
type Manager struct {
	path string
}

func NewManager(configPath string) *Manager {
	return &Manager{path: configPath}
}

// EnsureDir ensures parent directory exists.
func (m *Manager) EnsureDir() error {
	dir := filepath.Dir(m.path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// Load reads settings.json from disk or creates defaults if missing.
// Sections added after an install are backfilled with their defaults so old
// files keep working.
func (m *Manager) Load() (Settings, error) {
	if m.path == "" {
		return Settings{}, errors.New("config path not set")
	}
	if _, err := os.Stat(m.path); errors.Is(err, fs.ErrNotExist) {
		defaults := DefaultSettings()
		if err := m.Save(defaults); err != nil {
			return Settings{}, err
		}
		return defaults, nil
	}
	f, err := os.Open(m.path)
	if err != nil {
		return Settings{}, err
	}
	defer f.Close()

	s := DefaultSettings()
	if err := json.NewDecoder(f).Decode(&s); err != nil {
		return Settings{}, err
	}
	normalize(&s)
	return s, nil
}

func normalize(s *Settings) {
	d := DefaultSettings()
	if s.Server.Port <= 0 {
		s.Server.Port = d.Server.Port
	}
	if s.TMDB.Language == "" {
		s.TMDB.Language = d.TMDB.Language
	}
	if s.TMDB.WatchRegion == "" {
		s.TMDB.WatchRegion = d.TMDB.WatchRegion
	}
	if s.Suggest.MaxInitialCards <= 0 {
		s.Suggest.MaxInitialCards = d.Suggest.MaxInitialCards
	}
	if s.Suggest.DetailConcurrency <= 0 {
		s.Suggest.DetailConcurrency = d.Suggest.DetailConcurrency
	}
	if s.Suggest.SessionTTLMinutes <= 0 {
		s.Suggest.SessionTTLMinutes = d.Suggest.SessionTTLMinutes
	}
}

// Save writes settings atomically (tmp file + rename).
func (m *Manager) Save(s Settings) error {
	if m.path == "" {
		return errors.New("config path not set")
	}
	if err := m.EnsureDir(); err != nil {
		return err
	}
	tmp := m.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, m.path)
}
