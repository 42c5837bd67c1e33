package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muurk/simplr/internal/config"
	"github.com/muurk/simplr/internal/host"
	"github.com/muurk/simplr/internal/ui"
	"github.com/muurk/simplr/internal/watchface"
)

// Preview command and flags
var (
	previewAt        string
	previewBattery   int
	previewCharging  bool
	previewConnected bool
	previewSteps     int
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the watchface once and exit",
	Long: `Render a single frame of the watchface and exit.

Every readout can be pinned with flags, which makes preview handy for
checking a theme. Without --battery the configured battery source is read
once.`,
	Example: `  # Current time and battery
  simplr preview

  # A fixed moment with a companion attached
  simplr preview --at 2024-03-03T09:05 --battery 57 --connected --steps 1200

  # Charging indicator
  simplr preview --battery 80 --charging`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVar(&previewAt, "at", "", "Time to show: HH:MM (today) or YYYY-MM-DDTHH:MM")
	previewCmd.Flags().IntVar(&previewBattery, "battery", 0, "Battery percent to show (default: read the configured source)")
	previewCmd.Flags().BoolVar(&previewCharging, "charging", false, "Show the battery as charging")
	previewCmd.Flags().BoolVar(&previewConnected, "connected", false, "Show a companion as connected")
	previewCmd.Flags().IntVar(&previewSteps, "steps", 0, "Steps walked today")
}

// parsePreviewTime accepts "HH:MM" on the day of now, or a full local
// "YYYY-MM-DDTHH:MM".
func parsePreviewTime(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04", s, now.Location()); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("15:04", s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at %q (expected HH:MM or YYYY-MM-DDTHH:MM)", s)
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, now.Location()), nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	theme, err := cfg.Theme.Resolve()
	if err != nil {
		return err
	}

	at, err := parsePreviewTime(previewAt, time.Now())
	if err != nil {
		return err
	}

	battery := host.ChargeState{ChargePercent: previewBattery}
	if !cmd.Flags().Changed("battery") {
		battery, err = batteryFor(cfg).Read()
		if err != nil {
			battery = host.ChargeState{ChargePercent: cfg.Battery.StaticPercent}
		}
	}
	if previewCharging {
		battery.IsCharging = true
		battery.IsPlugged = true
	}

	dev := host.NewDevice(
		host.WithClock(func() time.Time { return at }),
		host.WithBattery(battery),
		host.WithConnected(previewConnected),
	)
	dev.Store().SetPermitted(cfg.Health.Enabled)
	dev.Store().Add(at, previewSteps)

	face := watchface.New(watchface.DeviceServices(dev), watchface.WithTheme(theme))
	model := ui.NewModel(dev, face)
	model.Show()
	frame := model.Frame()
	model.Hide()

	return ui.RenderOnce(frame + "\n")
}

// Config commands
var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write the default configuration to the config path.

A path ending in .toml is written as TOML, anything else as YAML. An
existing file is left alone unless --force is given.`,
	Example: `  # Default location
  simplr config init

  # TOML file next to the binary
  simplr config init --config ./simplr.toml`,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Print(string(out))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	printer := ui.NewPrinter(cmd.OutOrStdout())
	if _, err := os.Stat(path); err == nil && !configForce {
		err := errors.New("config file already exists")
		printer.PrintError("Configuration not written", err,
			"Use --force to overwrite "+path,
			"Use 'simplr config show' to see the current settings",
		)
		return err
	}

	if err := config.Default().Save(path); err != nil {
		return err
	}
	printer.PrintSuccess("Configuration written", ui.Param{Key: "Path", Value: path})
	return nil
}
