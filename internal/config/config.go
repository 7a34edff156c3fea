package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the configuration file name under the keyecho config dir.
const FileName = "config.toml"

// Corner values accepted for overlay placement.
const (
	CornerBottomRight = "bottom_right"
	CornerBottomLeft  = "bottom_left"
	CornerTopRight    = "top_right"
	CornerTopLeft     = "top_left"
)

// Config is the full application configuration.
type Config struct {
	Overlay  Overlay  `toml:"overlay"`
	Playback Playback `toml:"playback"`
	Record   Record   `toml:"record"`
	Log      Log      `toml:"log"`
}

// Overlay configures the key display HUD.
type Overlay struct {
	// Corner is the screen corner the HUD anchors to.
	Corner string `toml:"corner"`

	// ClearDelayMS is how long the chord text lingers after the last
	// transition before the display clears.
	ClearDelayMS int `toml:"clear_delay_ms"`
}

// Playback configures the playback engine.
type Playback struct {
	// CountdownSeconds is the pre-playback delay.
	CountdownSeconds int `toml:"countdown_seconds"`
}

// Record configures the recording store.
type Record struct {
	// Path overrides the default recording file location when set.
	Path string `toml:"path"`
}

// Log configures logging.
type Log struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Overlay: Overlay{
			Corner:       CornerBottomRight,
			ClearDelayMS: 1200,
		},
		Playback: Playback{
			CountdownSeconds: 3,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// ClearDelay returns the overlay clear delay as a duration.
func (c Config) ClearDelay() time.Duration {
	return time.Duration(c.Overlay.ClearDelayMS) * time.Millisecond
}

// Countdown returns the playback countdown as a duration.
func (c Config) Countdown() time.Duration {
	return time.Duration(c.Playback.CountdownSeconds) * time.Second
}

// Validate checks value ranges. Defaults always validate.
func (c Config) Validate() error {
	switch c.Overlay.Corner {
	case CornerBottomRight, CornerBottomLeft, CornerTopRight, CornerTopLeft:
	default:
		return fmt.Errorf("overlay.corner %q is not a screen corner", c.Overlay.Corner)
	}
	if c.Overlay.ClearDelayMS < 0 {
		return fmt.Errorf("overlay.clear_delay_ms must not be negative")
	}
	if c.Playback.CountdownSeconds < 0 {
		return fmt.Errorf("playback.countdown_seconds must not be negative")
	}
	return nil
}

// DefaultPath returns the configuration file path under the per-user
// configuration directory.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config directory: %w", err)
	}
	return filepath.Join(configDir, "keyecho", FileName), nil
}

// Load reads the configuration from path. A missing file yields the
// defaults; a present but malformed or invalid file is an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}
