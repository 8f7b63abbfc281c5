// ABOUTME: Superlift configuration with backend selection and environment overrides.
// ABOUTME: Builds the storage Provider and Repository from settings.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/charmbracelet/log"

	"github.com/harperreed/superlift/internal/seed"
	"github.com/harperreed/superlift/internal/storage"
)

// Config stores superlift configuration.
type Config struct {
	// Backend selects the storage engine: "auto" (default), "sqlite", "kv",
	// "charm" or "memory".
	Backend string `json:"backend,omitempty" env:"SUPERLIFT_BACKEND"`

	// DataDir is the root directory for data storage. SQLite puts
	// superlift.db here and the kv engine uses a kv/ folder. Supports ~
	// expansion. Defaults to ~/.local/share/superlift.
	DataDir string `json:"data_dir,omitempty" env:"SUPERLIFT_DATA_DIR"`

	LogLevel string `json:"log_level,omitempty" env:"SUPERLIFT_LOG_LEVEL"`

	// CharmHost overrides the Charm server used by the charm backend.
	CharmHost string `json:"charm_host,omitempty" env:"SUPERLIFT_CHARM_HOST"`

	// NoSeed disables loading the demo workouts into an empty store.
	NoSeed bool `json:"no_seed,omitempty" env:"SUPERLIFT_NO_SEED"`
}

// GetBackend returns the configured backend, defaulting to "auto".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return string(storage.KindAuto)
	}
	return c.Backend
}

// GetLogLevel returns the configured log level, defaulting to "info".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "info"
	}
	return c.LogLevel
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return DefaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// DefaultDataDir returns the default data directory following XDG spec.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "superlift")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks the backend name.
func (c *Config) Validate() error {
	_, err := storage.ParseKind(c.Backend)
	return err
}

// Capabilities checks the host for persistent storage support. Both the
// sqlite and kv engines need a writable data directory.
func (c *Config) Capabilities() storage.Capabilities {
	writable := dirWritable(c.GetDataDir())
	return storage.Capabilities{FileStorage: writable, KeyValue: writable}
}

func dirWritable(dir string) bool {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return false
	}
	f, err := os.CreateTemp(dir, ".writecheck-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}

// NewProvider builds the storage Provider for this configuration.
func (c *Config) NewProvider(logger *log.Logger) (*storage.Provider, error) {
	kind, err := storage.ParseKind(c.Backend)
	if err != nil {
		return nil, err
	}
	return storage.NewProvider(storage.ProviderOptions{
		Backend:      kind,
		DataDir:      c.GetDataDir(),
		CharmHost:    c.CharmHost,
		Capabilities: c.Capabilities(),
		Logger:       logger,
	}), nil
}

// OpenRepository opens the configured backend and returns an initialized
// Repository. The caller closes it.
func (c *Config) OpenRepository(ctx context.Context, logger *log.Logger) (*storage.Repository, error) {
	provider, err := c.NewProvider(logger)
	if err != nil {
		return nil, err
	}

	backend, err := provider.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	var seeder *seed.Seeder
	if !c.NoSeed {
		seeder = seed.NewDemo(logger)
	}

	repo := storage.NewRepository(backend, seeder, logger)
	if err := repo.Initialize(ctx); err != nil {
		_ = repo.Close()
		return nil, err
	}
	return repo, nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "superlift", "config.json")
}

// Load reads config from disk and applies SUPERLIFT_* environment overrides.
func Load() (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(GetConfigPath())
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
