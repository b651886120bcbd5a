// Package config loads chatmodel tooling configuration from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/papercomputeco/chatmodel/pkg/logger"
)

// EnvConfigPath overrides the default configuration file location.
const EnvConfigPath = "CHATMODEL_CONFIG"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the chatmodel configuration file.
type Config struct {
	// Debug enables debug logging.
	Debug bool `toml:"debug"`

	// LogFormat is "console" or "json".
	LogFormat string `toml:"log_format"`

	Archive ArchiveConfig `toml:"archive"`
}

// ArchiveConfig configures the response archive.
type ArchiveConfig struct {
	// SQLitePath is the archive database file. Empty selects the default
	// location next to the configuration file.
	SQLitePath string `toml:"sqlite_path"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		LogFormat: logger.FormatConsole,
	}
}

// DefaultPath returns $CHATMODEL_CONFIG, or ~/.chatmodel/config.toml.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not resolve home directory: %w", err)
	}

	return filepath.Join(home, ".chatmodel", "config.toml"), nil
}

// Load reads the file at path. A missing file yields Default() with the
// archive placed next to path.
func Load(path string) (*Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, cfg)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("could not decode %s: %w", path, err)
	default:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown key %q in %s", ErrInvalidConfig, undecoded[0].String(), path)
		}
	}

	if cfg.Archive.SQLitePath == "" {
		cfg.Archive.SQLitePath = filepath.Join(filepath.Dir(path), "archive.db")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch c.LogFormat {
	case logger.FormatConsole, logger.FormatJSON:
	default:
		return fmt.Errorf("%w: log_format must be %q or %q, got %q",
			ErrInvalidConfig, logger.FormatConsole, logger.FormatJSON, c.LogFormat)
	}
	return nil
}

// Logger returns the logger settings derived from c.
func (c *Config) Logger() logger.Config {
	return logger.Config{Debug: c.Debug, Format: c.LogFormat}
}
