// Simplr runs the simplr watchface in a terminal.
//
// The watch screen is drawn with block characters inside a bezel and is
// driven the way the device would drive it: minute ticks from the wall
// clock, battery readings from the OS power-supply tree, and a companion
// link that counts as "connected" while at least one companion session is
// open and feeds the step counter.
//
// Usage:
//
//	simplr [run] [flags]
//	simplr preview
//	simplr config init
//
// See 'simplr --help' for available options.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/simplr/internal/companion"
	"github.com/muurk/simplr/internal/config"
	"github.com/muurk/simplr/internal/host"
	"github.com/muurk/simplr/internal/logging"
	"github.com/muurk/simplr/internal/power"
	"github.com/muurk/simplr/internal/ui"
	"github.com/muurk/simplr/internal/version"
	"github.com/muurk/simplr/internal/watchface"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "simplr",
	Short: "simplr watchface",
	Long: `A simple digital watchface: time, date, battery, companion connection and
today's step count, rendered in the terminal.

Running simplr without a subcommand is the same as 'simplr run'.

Use the separate 'simplr-companion' utility to connect a companion and feed steps.`,
	Version:      version.Version,
	SilenceUsage: true,
	RunE:         runWatch,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when unset")

	addRunFlags(rootCmd)
	addRunFlags(runCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Run command and flags
var (
	simulate      bool
	listenAddr    string
	advertise     bool
	noCompanion   bool
	batterySource string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Show the watchface",
	Long: `Show the watchface and keep it updated until you press q.

The clock advances on every minute boundary. Battery readings come from
/sys/class/power_supply unless the config selects a static battery. A
companion websocket endpoint is served on --listen; the connection row
turns green while a companion is attached.

With --simulate, extra keys fake host events: c toggles the connection,
p toggles charging, +/- change the battery by 10%, and s adds 100 steps.`,
	Example: `  # Show the watchface with the default config
  simplr run

  # Demo mode with fake host events
  simplr run --simulate

  # Serve the companion endpoint on all interfaces and advertise it over mDNS
  simplr run --listen 0.0.0.0:8765 --advertise

  # Log to the default log file
  simplr run --log-level debug`,
	RunE: runWatch,
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&simulate, "simulate", false, "Enable keys that fake battery, connection and step events")
	cmd.Flags().StringVar(&listenAddr, "listen", "", "Companion listen address (overrides config)")
	cmd.Flags().BoolVar(&advertise, "advertise", false, "Advertise the companion endpoint over mDNS")
	cmd.Flags().BoolVar(&noCompanion, "no-companion", false, "Do not serve the companion endpoint")
	cmd.Flags().StringVar(&batterySource, "battery", "", "Battery source: sysfs or static (overrides config)")
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("listen") {
		cfg.Companion.Listen = listenAddr
	}
	if flags.Changed("advertise") {
		cfg.Companion.Advertise = advertise
	}
	if noCompanion {
		cfg.Companion.Enabled = false
	}
	if flags.Changed("battery") {
		cfg.Battery.Source = batterySource
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging sends logs to a file, since the terminal belongs to the watch.
func setupLogging(cfg *config.Config) error {
	path := cfg.LogFile
	if path == "" {
		p, err := config.DefaultLogPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return logging.Initialize(cfg.LogLevel, path)
}

func batteryFor(cfg *config.Config) power.Source {
	if cfg.Battery.Source == config.BatteryStatic {
		return power.Static{State: host.ChargeState{ChargePercent: cfg.Battery.StaticPercent}}
	}
	src := power.NewSysfs()
	if cfg.Battery.SysfsRoot != "" {
		src.Root = cfg.Battery.SysfsRoot
	}
	return src
}

// ErrNotTerminal is returned by run when stdout cannot host the watch screen.
var ErrNotTerminal = errors.New("stdout is not a terminal (use 'simplr preview' for one-shot output)")

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func runWatch(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdout) {
		return ErrNotTerminal
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}
	defer logging.Sync()

	theme, err := cfg.Theme.Resolve()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dev := host.NewDevice(host.WithBattery(host.ChargeState{ChargePercent: cfg.Battery.StaticPercent}))
	dev.Store().SetPermitted(cfg.Health.Enabled)
	face := watchface.New(watchface.DeviceServices(dev), watchface.WithTheme(theme))

	params := []ui.Param{{Key: "Battery", Value: cfg.Battery.Source}}
	if simulate {
		params[0].Value = "simulated"
	}

	var wg sync.WaitGroup
	start := func(name string, run func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logging.Error("Host service stopped", zap.String("service", name), zap.Error(err))
			}
		}()
	}

	start("ticker", host.NewMinuteTicker(dev).Run)

	// In demo mode the battery only changes from the keyboard.
	if !simulate {
		poller := &power.Poller{
			Source:   batteryFor(cfg),
			Sink:     dev,
			Interval: time.Duration(cfg.Battery.PollSeconds) * time.Second,
		}
		start("battery", poller.Run)
	}

	if cfg.Companion.Enabled {
		srv := companion.NewServer(dev)
		if err := srv.Listen(cfg.Companion.Listen); err != nil {
			return err
		}
		start("companion", srv.Serve)
		params = append(params, ui.Param{Key: "Companion", Value: "ws://" + srv.Addr().String() + companion.Path})

		if cfg.Companion.Advertise {
			port := srv.Addr().(*net.TCPAddr).Port
			adv, err := companion.Advertise(port)
			if err != nil {
				logging.Warn("mDNS advertisement failed", zap.Error(err))
			} else {
				defer adv.Close()
				params = append(params, ui.Param{Key: "mDNS", Value: companion.InstanceName() + "." + companion.ServiceType})
			}
		}
	}

	header := ui.NewHeader("simplr", cmd.CommandPath(), params...)
	model := ui.NewModel(dev, face, ui.WithSimulation(simulate), ui.WithHeader(header))

	logging.LogLifecycle("host", "started", zap.Bool("simulate", simulate))
	err = ui.Run(ctx, model)

	cancel()
	dev.Loop().Stop()
	wg.Wait()
	logging.LogLifecycle("host", "stopped")
	return err
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("simplr %s (%s)\n", version.Full(), version.Platform())
	},
}
