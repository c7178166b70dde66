package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"bugnotes/internal/notes"
)

// Config holds all bugnotes configuration.
type Config struct {
	// Directory where daily notes files live
	NotesDir string `yaml:"notes_dir"`

	// Platform assumed when a command omits --platform
	DefaultPlatform string `yaml:"default_platform"`

	// Recognized platform identifiers by hardware generation
	Gen4Platforms []string `yaml:"gen4_platforms"`
	Gen5Platforms []string `yaml:"gen5_platforms"`

	// Write a timestamped backup before any mutating command
	BackupOnWrite bool `yaml:"backup_on_write"`

	// Watch mode settings
	Watch WatchConfig `yaml:"watch"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// WatchConfig configures the notes-file watcher.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
	File   string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		NotesDir:        ".",
		DefaultPlatform: "ps5",
		Gen4Platforms:   []string{"nx1", "ps4", "xb1"},
		Gen5Platforms:   []string{"nx2", "pc", "xbx", "ps5", "steamdeck", "laptop"},
		BackupOnWrite:   true,

		Watch: WatchConfig{
			Debounce: "500ms",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath returns the config file location: .bugnotes.yaml in the
// working directory when present, else the one in the home directory.
func DefaultPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ".bugnotes.yaml"
	}
	local := filepath.Join(cwd, ".bugnotes.yaml")
	if _, err := os.Stat(local); err == nil {
		return local
	}
	if home, err := os.UserHomeDir(); err == nil {
		if p := filepath.Join(home, ".bugnotes.yaml"); fileExists(p) {
			return p
		}
	}
	return local
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment variables override the file either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("BUGNOTES_DIR"); dir != "" {
		c.NotesDir = dir
	}
	if p := os.Getenv("BUGNOTES_PLATFORM"); p != "" {
		c.DefaultPlatform = p
	}
}

// Platforms builds the recognized platform set from the configured lists.
func (c *Config) Platforms() *notes.Platforms {
	return notes.NewPlatforms(c.Gen4Platforms, c.Gen5Platforms)
}

// GetWatchDebounce returns the watch debounce as a duration.
func (c *Config) GetWatchDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.NotesDir == "" {
		return fmt.Errorf("notes_dir not configured")
	}
	if len(c.Gen4Platforms)+len(c.Gen5Platforms) == 0 {
		return fmt.Errorf("no platforms configured")
	}
	if c.DefaultPlatform != "" && !c.Platforms().Contains(c.DefaultPlatform) {
		return fmt.Errorf("default platform %q is not in the configured platform lists", c.DefaultPlatform)
	}
	return nil
}
