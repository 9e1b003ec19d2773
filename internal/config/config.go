// Package config resolves saltr settings from defaults, an optional YAML
// file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/zarlcorp/saltr/internal/secret"
	"github.com/zarlcorp/saltr/internal/vault"
	"gopkg.in/yaml.v3"
)

const appName = "saltr"

// Config holds resolved settings.
type Config struct {
	VaultPath string `yaml:"vault_path" env:"SALTR_VAULT"`
	Length    int    `yaml:"length" env:"SALTR_LENGTH"`
	LogLevel  string `yaml:"log_level" env:"SALTR_LOG_LEVEL"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		VaultPath: filepath.Join(DataDir(), vault.DefaultFileName),
		Length:    secret.DefaultLength,
		LogLevel:  "warn",
	}
}

// DataDir returns the default data directory for saltr.
func DataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return filepath.Join(d, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(home, ".local", "share", appName)
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, appName, "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("."+appName, "config.yaml")
	}
	return filepath.Join(home, ".config", appName, "config.yaml")
}

// Load builds a Config from defaults, the YAML file at path and the
// environment. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if err := cfg.mergeFile(path); err != nil {
		return Config{}, err
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	// fields absent from the file keep their defaults
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	return nil
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	if c.VaultPath == "" {
		return errors.New("config: vault path is empty")
	}
	if c.Length < 0 {
		return fmt.Errorf("config: length %d is negative", c.Length)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}
