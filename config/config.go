// Package config persists the user configuration and saved solutions under
// the leetshell home directory.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ionut-t/leetshell/logging"
)

const (
	configFile      = "config.json"
	DefaultLanguage = "python3"
	HomeEnv         = "LEETSHELL_HOME"
)

type Credentials struct {
	LeetcodeSession string `json:"leetcode_session"`
	CSRFToken       string `json:"csrftoken"`
}

// Valid reports whether both cookies are present. It says nothing about
// whether the server still accepts them.
func (c Credentials) Valid() bool {
	return c.LeetcodeSession != "" && c.CSRFToken != ""
}

type Preferences struct {
	Language string `json:"language"`
}

type UserConfig struct {
	Credentials Credentials `json:"credentials"`
	Preferences Preferences `json:"preferences"`
}

func Default() *UserConfig {
	return &UserConfig{Preferences: Preferences{Language: DefaultLanguage}}
}

// DefaultHome returns $LEETSHELL_HOME or ~/.leetshell.
func DefaultHome() string {
	if home := os.Getenv(HomeEnv); home != "" {
		return home
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return ".leetshell"
	}
	return filepath.Join(dir, ".leetshell")
}

// Store reads and writes everything kept in the home directory.
type Store struct {
	home string
}

func NewStore(home string) *Store {
	return &Store{home: home}
}

func (s *Store) Home() string       { return s.home }
func (s *Store) CacheDir() string   { return filepath.Join(s.home, "cache") }
func (s *Store) ConfigPath() string { return filepath.Join(s.home, configFile) }

// Load returns the saved configuration. A missing or unreadable file yields
// the defaults.
func (s *Store) Load() *UserConfig {
	cfg := Default()

	data, err := os.ReadFile(s.ConfigPath())
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logging.Warn("config: read %s: %v", s.ConfigPath(), err)
		}
		return cfg
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		logging.Warn("config: unmarshal %s: %v", s.ConfigPath(), err)
		return Default()
	}
	if cfg.Preferences.Language == "" {
		cfg.Preferences.Language = DefaultLanguage
	}
	return cfg
}

// Save writes cfg atomically (temp file + rename).
func (s *Store) Save(cfg *UserConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return writeAtomic(s.ConfigPath(), data)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp to %s: %w", path, err)
	}
	return nil
}
