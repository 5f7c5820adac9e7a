package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/okvist/deckle/internal/logger"
	"github.com/okvist/deckle/internal/region"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  logger.Config `toml:"logger"`
	Editor  EditorConfig  `toml:"editor"`
	Markers MarkersConfig `toml:"markers"`
}

// EditorConfig holds viewer/TUI settings.
type EditorConfig struct {
	ScrollOff       int  `toml:"scroll_off"`
	SystemClipboard bool `toml:"system_clipboard"`
}

// MarkersConfig overrides the sentinel lines bracketing an editing
// region. Matching is substring containment, so values wrapped in extra
// comment text in existing documents keep being recognized. Empty
// fields keep the defaults.
type MarkersConfig struct {
	EditStart   string `toml:"edit_start"`
	AnswerStart string `toml:"answer_start"`
	EditEnd     string `toml:"edit_end"`
}

// Markers converts the section into the region package's marker set.
func (m MarkersConfig) Markers() region.Markers {
	return region.Markers{
		EditStart:   m.EditStart,
		AnswerStart: m.AnswerStart,
		EditEnd:     m.EditEnd,
	}
}

// NewDefaultConfig creates a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			ScrollOff:       DefaultScrollOff,
			SystemClipboard: SystemClipboard,
		},
		// Marker fields stay empty; region.NewToggler fills defaults.
	}
}

// DefaultConfigPath returns the conventional config file location, or
// "" when the user config directory cannot be resolved.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// Load merges the TOML file at filePath over the defaults. An empty
// filePath falls back to the conventional location; a missing file is
// not an error.
func Load(filePath string) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := filePath
	if effectivePath == "" {
		effectivePath = DefaultConfigPath()
	}
	if effectivePath == "" {
		return cfg, nil
	}

	if _, err := os.Stat(effectivePath); os.IsNotExist(err) {
		// Only complain when the user pointed at the file explicitly.
		if filePath != "" {
			return cfg, fmt.Errorf("config file not found: %s", filePath)
		}
		return cfg, nil
	}

	metadata, err := toml.DecodeFile(effectivePath, cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file %q: %w", effectivePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Config file %q: unrecognized keys: %v", effectivePath, undecoded)
	}

	cfg.validate()
	return cfg, nil
}

// validate resets invalid values to their defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()
	if c.Editor.ScrollOff < 0 {
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}
