// Package config holds runtime settings: scan scope, display limits and
// the identity alias table loaded from the user's TOML config file.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds application configuration
type Config struct {
	// Repository settings (set from CLI flags, not serialized)
	RepoPath   string    `toml:"-"`
	Ref        string    `toml:"-"`
	Since      time.Time `toml:"-"`
	Until      time.Time `toml:"-"`
	PathPrefix string    `toml:"-"`
	Debug      bool      `toml:"-"`

	// Identities maps a raw author string (email or name) to the identity
	// it should be folded into, for contributors who commit under several
	// addresses.
	Identities IdentityConfig `toml:"identities"`

	// Display settings
	Display DisplayConfig `toml:"display"`
}

type IdentityConfig struct {
	Aliases map[string]string `toml:"aliases"`
}

type DisplayConfig struct {
	MaxAuthors int `toml:"max_authors"`
	MaxFiles   int `toml:"max_files"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Identities: IdentityConfig{
			Aliases: map[string]string{},
		},
		Display: DisplayConfig{
			MaxAuthors: 50,
			MaxFiles:   100,
		},
	}
}

func defaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "gitcredit.toml"), nil
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		var err error
		path, err = defaultPath()
		if err != nil {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Identities.Aliases == nil {
		cfg.Identities.Aliases = map[string]string{}
	}

	return cfg, nil
}
