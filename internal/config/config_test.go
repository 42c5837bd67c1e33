package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/muurk/simplr/internal/host"
	"github.com/muurk/simplr/internal/watchface"
)

func TestGetConfigDir(t *testing.T) {
	if runtime.GOOS != "windows" && runtime.GOOS != "darwin" {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		dir, err := GetConfigDir()
		if err != nil {
			t.Fatalf("GetConfigDir() error = %v", err)
		}
		if dir != filepath.Join("/tmp/xdg", "simplr") {
			t.Errorf("GetConfigDir() = %v, want /tmp/xdg/simplr", dir)
		}
	}

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", path)
	}
	logPath, err := DefaultLogPath()
	if err != nil || filepath.Base(logPath) != "simplr.log" {
		t.Errorf("DefaultLogPath() = %v, %v", logPath, err)
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if cfg.Battery.Source != BatterySysfs || !cfg.Companion.Enabled || !cfg.Health.Enabled {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Version != CurrentVersion {
		t.Errorf("Version = %d", cfg.Version)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `version: 1
log_level: debug
battery:
  source: static
  static_percent: 42
companion:
  enabled: false
theme:
  connected: vivid cerulean
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.Battery.Source != BatteryStatic || cfg.Battery.StaticPercent != 42 {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.Battery.PollSeconds != 30 {
		t.Errorf("unset fields should keep defaults, PollSeconds = %d", cfg.Battery.PollSeconds)
	}
	if cfg.Companion.Enabled {
		t.Error("companion should be disabled")
	}
	theme, err := cfg.Theme.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if theme.ConnectedColor != host.ColorVividCerulean || theme.DisconnectedColor != host.ColorOrange {
		t.Errorf("Resolve() = %+v", theme)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		substr  string
	}{
		{name: "version", content: "version: 2\n", wantErr: ErrUnsupportedVersion},
		{name: "battery source", content: "version: 1\nbattery:\n  source: moon\n", substr: "battery source"},
		{name: "percent", content: "version: 1\nbattery:\n  source: static\n  static_percent: 101\n", substr: "percent"},
		{name: "listen", content: "version: 1\ncompanion:\n  enabled: true\n  listen: nope\n", substr: "listen"},
		{name: "color", content: "version: 1\ntheme:\n  background: plaid\n", substr: "theme.background"},
		{name: "yaml", content: "version: [", substr: "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
			if tt.substr != "" && !strings.Contains(err.Error(), tt.substr) {
				t.Errorf("Load() error = %v, should mention %q", err, tt.substr)
			}
		})
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			cfg := Default()
			cfg.Battery.Source = BatteryStatic
			cfg.Battery.StaticPercent = 64
			cfg.Theme.StepsBackground = "jaeger_green"

			if err := cfg.Save(path); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
				t.Error("temporary file left behind")
			}

			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if *loaded != *cfg {
				t.Errorf("Load() = %+v, want %+v", loaded, cfg)
			}
		})
	}
}

func TestThemeResolveDefaults(t *testing.T) {
	theme, err := Theme{}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if theme != watchface.DefaultTheme() {
		t.Errorf("empty theme should resolve to defaults, got %+v", theme)
	}
}
