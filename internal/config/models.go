package config

import (
	"errors"
	"fmt"
	"net"

	"github.com/muurk/simplr/internal/host"
	"github.com/muurk/simplr/internal/watchface"
)

// CurrentVersion is the only supported file format version.
const CurrentVersion = 1

// ErrUnsupportedVersion is returned for files written by a newer release.
var ErrUnsupportedVersion = errors.New("unsupported config version")

// Battery source names.
const (
	BatterySysfs  = "sysfs"
	BatteryStatic = "static"
)

// Config is the whole configuration file.
type Config struct {
	Version   int       `yaml:"version" toml:"version"`
	LogLevel  string    `yaml:"log_level,omitempty" toml:"log_level,omitempty"`
	LogFile   string    `yaml:"log_file,omitempty" toml:"log_file,omitempty"`
	Battery   Battery   `yaml:"battery" toml:"battery"`
	Companion Companion `yaml:"companion" toml:"companion"`
	Health    Health    `yaml:"health" toml:"health"`
	Theme     Theme     `yaml:"theme" toml:"theme"`
}

// Battery selects where battery readings come from.
type Battery struct {
	Source        string `yaml:"source" toml:"source"`                 // sysfs or static
	PollSeconds   int    `yaml:"poll_seconds" toml:"poll_seconds"`     // sysfs poll interval
	StaticPercent int    `yaml:"static_percent" toml:"static_percent"` // reading for the static source
	SysfsRoot     string `yaml:"sysfs_root,omitempty" toml:"sysfs_root,omitempty"`
}

// Companion configures the companion link.
type Companion struct {
	Enabled   bool   `yaml:"enabled" toml:"enabled"`
	Listen    string `yaml:"listen" toml:"listen"`       // host:port for the websocket endpoint
	Advertise bool   `yaml:"advertise" toml:"advertise"` // publish over mDNS
}

// Health configures the activity service.
type Health struct {
	Enabled bool `yaml:"enabled" toml:"enabled"` // false reports steps as not permitted
}

// Theme holds color names; empty entries keep the default.
type Theme struct {
	Background        string `yaml:"background,omitempty" toml:"background,omitempty"`
	TimeBackground    string `yaml:"time_background,omitempty" toml:"time_background,omitempty"`
	StepsBackground   string `yaml:"steps_background,omitempty" toml:"steps_background,omitempty"`
	ConnectedColor    string `yaml:"connected,omitempty" toml:"connected,omitempty"`
	DisconnectedColor string `yaml:"disconnected,omitempty" toml:"disconnected,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Battery: Battery{
			Source:        BatterySysfs,
			PollSeconds:   30,
			StaticPercent: 100,
		},
		Companion: Companion{
			Enabled:   true,
			Listen:    "127.0.0.1:8765",
			Advertise: false,
		},
		Health: Health{Enabled: true},
	}
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: %d (expected %d)", ErrUnsupportedVersion, c.Version, CurrentVersion)
	}
	switch c.Battery.Source {
	case BatterySysfs, BatteryStatic:
	default:
		return fmt.Errorf("invalid battery source %q (expected %q or %q)", c.Battery.Source, BatterySysfs, BatteryStatic)
	}
	if c.Battery.PollSeconds < 0 {
		return fmt.Errorf("invalid battery poll interval: %d", c.Battery.PollSeconds)
	}
	if c.Battery.StaticPercent < 0 || c.Battery.StaticPercent > 100 {
		return fmt.Errorf("invalid static battery percent: %d", c.Battery.StaticPercent)
	}
	if c.Companion.Enabled {
		if _, _, err := net.SplitHostPort(c.Companion.Listen); err != nil {
			return fmt.Errorf("invalid companion listen address %q: %w", c.Companion.Listen, err)
		}
	}
	if _, err := c.Theme.Resolve(); err != nil {
		return err
	}
	return nil
}

// Resolve converts the color names into a watchface theme.
func (t Theme) Resolve() (watchface.Theme, error) {
	theme := watchface.DefaultTheme()
	fields := []struct {
		key  string
		name string
		dst  *host.Color
	}{
		{"background", t.Background, &theme.Background},
		{"time_background", t.TimeBackground, &theme.TimeBackground},
		{"steps_background", t.StepsBackground, &theme.StepsBackground},
		{"connected", t.ConnectedColor, &theme.ConnectedColor},
		{"disconnected", t.DisconnectedColor, &theme.DisconnectedColor},
	}
	for _, f := range fields {
		if f.name == "" {
			continue
		}
		c, err := host.ParseColor(f.name)
		if err != nil {
			return watchface.Theme{}, fmt.Errorf("theme.%s: %w", f.key, err)
		}
		*f.dst = c
	}
	return theme, nil
}
