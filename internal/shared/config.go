package shared

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

const historyFile = "appdata_history.db"

// Config represents the application configuration loaded from a TOML file.
//
// It is built once at startup, overridden by command-line flags, and passed down explicitly.
type Config struct {
	Data    DataConfig    `toml:"data"`
	Source  SourceConfig  `toml:"source"`
	History HistoryConfig `toml:"history"`
}

// DataConfig locates the track list snapshot and the app data document.
type DataConfig struct {
	Dir         string `toml:"dir"`
	TrackFile   string `toml:"track_file"`
	AppDataFile string `toml:"appdata_file"`
}

// SourceConfig describes the upstream track database endpoint.
type SourceConfig struct {
	URL       string   `toml:"url"`
	UserAgent string   `toml:"user_agent"`
	Timeout   Duration `toml:"timeout"`
}

// HistoryConfig controls the optional run history database.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Duration wraps [time.Duration] so it can be written as "30s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("%w: duration %q: %v", ErrInvalidConfig, text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// TrackListPath is the absolute-or-relative path of the track list snapshot.
func (c *Config) TrackListPath() string {
	return filepath.Join(c.Data.Dir, c.Data.TrackFile)
}

// AppDataPath is the path of the app data document.
func (c *Config) AppDataPath() string {
	return filepath.Join(c.Data.Dir, c.Data.AppDataFile)
}

// HistoryPath returns the run history database path, defaulting to a file in the data directory.
func (c *Config) HistoryPath() string {
	if c.History.Path != "" {
		return c.History.Path
	}
	return filepath.Join(c.Data.Dir, historyFile)
}

// Validate reports missing required settings.
func (c *Config) Validate() error {
	switch {
	case c.Data.Dir == "":
		return fmt.Errorf("%w: data.dir is empty", ErrInvalidConfig)
	case c.Data.TrackFile == "":
		return fmt.Errorf("%w: data.track_file is empty", ErrInvalidConfig)
	case c.Data.AppDataFile == "":
		return fmt.Errorf("%w: data.appdata_file is empty", ErrInvalidConfig)
	case c.Source.URL == "":
		return fmt.Errorf("%w: source.url is empty", ErrInvalidConfig)
	case c.Source.Timeout.Duration <= 0:
		return fmt.Errorf("%w: source.timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
