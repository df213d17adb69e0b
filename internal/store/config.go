// Package store covers both durable ends of the system: the client's
// view-config file (small JSON, best effort) and the record store's SQLite
// database used by `taskdeck serve`.
package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"taskdeck/internal/model"
)

const configFileName = "config.json"

// Store locates the taskdeck data directory.
type Store struct {
	Dir string
}

// DefaultDir resolves the per-user config directory. Falls back to the
// current directory when the OS gives us nothing.
func DefaultDir() string {
	base, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(base) == "" {
		return ".taskdeck"
	}
	return filepath.Join(base, "taskdeck")
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store: empty dir")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) configPath() string {
	return filepath.Join(s.Dir, configFileName)
}

// LoadViewConfig reads the persisted view configuration. It is intentionally
// best-effort: missing or corrupted files yield defaults, and out-of-range
// values are normalized rather than rejected.
func (s Store) LoadViewConfig() model.ViewConfig {
	if strings.TrimSpace(s.Dir) == "" {
		return model.DefaultViewConfig()
	}
	b, err := os.ReadFile(s.configPath())
	if err != nil {
		return model.DefaultViewConfig()
	}
	var cfg model.ViewConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return model.DefaultViewConfig()
	}
	return cfg.Normalize()
}

// SaveViewConfig writes the configuration atomically (tmp file + rename) so a
// crash mid-write never leaves a truncated config behind.
func (s Store) SaveViewConfig(cfg model.ViewConfig) error {
	if strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg.Normalize(), "", "  ")
	if err != nil {
		return err
	}
	path := s.configPath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
