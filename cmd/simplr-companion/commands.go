package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/simplr/internal/companion"
	"github.com/muurk/simplr/internal/ui"
)

// ErrNoWatch is returned when discovery finds nothing and no --url is set.
var ErrNoWatch = errors.New("no simplr watch found")

// scanCmd discovers watches on the local network
var scanTimeout int

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Discover simplr watches on the network",
	Long: `Scan the local network for simplr watches using mDNS.

A watch is only visible when it runs with --advertise.`,
	Example: `  # Scan with default timeout
  simplr-companion scan

  # Scan with a longer timeout
  simplr-companion scan --timeout 15`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", int(companion.DefaultScanTimeout/time.Second), "Scan timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for simplr watches (timeout: %ds)...\n\n", scanTimeout)

	scanner := companion.NewScanner()
	scanner.Timeout = time.Duration(scanTimeout) * time.Second
	watches, err := scanner.Scan(cmd.Context())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(watches) == 0 {
		fmt.Println("No watches found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Start the watch with 'simplr run --advertise'")
		fmt.Println("  - Make sure the watch listens on a reachable address (--listen 0.0.0.0:8765)")
		fmt.Println("  - Try increasing --timeout for slower networks")
		fmt.Println("  - Use --url to connect without discovery")
		return nil
	}

	fmt.Printf("Found %d watch(es):\n\n", len(watches))

	for i, w := range watches {
		fmt.Printf("%d. %s\n", i+1, w.Instance)
		fmt.Printf("   Host:  %s\n", w.Hostname)
		fmt.Printf("   URL:   %s\n", w.URL())
		if v := w.Metadata["version"]; v != "" {
			fmt.Printf("   Version: %s\n", v)
		}
		fmt.Println()
	}

	fmt.Println("Use 'simplr-companion connect --url <url>' to attach to a watch")
	return nil
}

// resolveURL returns --url, or the first watch found over mDNS.
func resolveURL(ctx context.Context) (string, error) {
	if watchURL != "" {
		return watchURL, nil
	}
	watches, err := companion.NewScanner().Scan(ctx)
	if err != nil {
		return "", fmt.Errorf("discovery failed: %w", err)
	}
	if len(watches) == 0 {
		return "", ErrNoWatch
	}
	return watches[0].URL(), nil
}

func dial(ctx context.Context) (*companion.Client, string, error) {
	url, err := resolveURL(ctx)
	if err != nil {
		return nil, "", err
	}
	client, err := companion.Dial(ctx, url, companionTag)
	if err != nil {
		return nil, url, err
	}
	return client, url, nil
}

// Connect command and flags
var (
	walkSteps    int
	walkInterval time.Duration
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Hold a companion session open",
	Long: `Open a companion session and keep it until interrupted.

The watch shows "connected" for as long as the session lives. With --walk,
that many steps are sent every --every interval, as if the wearer kept
walking; otherwise the session only checks in.`,
	Example: `  # Attach to the first watch found
  simplr-companion connect

  # Attach to a local watch and walk 50 steps every 10 seconds
  simplr-companion connect --url ws://127.0.0.1:8765/companion --walk 50 --every 10s`,
	RunE: runConnect,
}

func init() {
	connectCmd.Flags().IntVar(&walkSteps, "walk", 0, "Steps to send every interval")
	connectCmd.Flags().DurationVar(&walkInterval, "every", 15*time.Second, "Interval between check-ins")
}

// validateInterval rejects check-in intervals the watch would time out on.
func validateInterval(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("invalid --every %s", d)
	}
	if d >= companion.IdleTimeout {
		return fmt.Errorf("invalid --every %s: must be shorter than the watch's %s idle timeout", d, companion.IdleTimeout)
	}
	return nil
}

func runConnect(cmd *cobra.Command, args []string) error {
	if err := validateInterval(walkInterval); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, url, err := dial(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	fmt.Printf("Connected to %s (press Ctrl+C to disconnect)\n", url)

	ticker := time.NewTicker(walkInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nDisconnecting...")
			return nil
		case <-ticker.C:
			total, err := client.SendSteps(walkSteps)
			if err != nil {
				return err
			}
			fmt.Printf("%s  steps today: %d\n", time.Now().Format("15:04:05"), total)
		}
	}
}

// Steps command and flags
var (
	stepCount int
	stepTotal bool
	stepAt    string
)

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "Send a step count to the watch",
	Long: `Open a session, send one step update, and disconnect.

By default --count is added to today's total. With --total it replaces the
total instead. --at backdates the steps; steps dated before today are kept by
the watch but do not count toward today.`,
	Example: `  # Add 1200 steps
  simplr-companion steps --count 1200

  # Record 300 steps walked at 07:30 today
  simplr-companion steps --count 300 --at 07:30

  # Reset today's total to 0
  simplr-companion steps --count 0 --total`,
	RunE: runSteps,
}

func init() {
	stepsCmd.Flags().IntVar(&stepCount, "count", 0, "Number of steps")
	stepsCmd.Flags().BoolVar(&stepTotal, "total", false, "Replace today's total instead of adding")
	stepsCmd.Flags().StringVar(&stepAt, "at", "", "When the steps were taken (HH:MM or YYYY-MM-DDTHH:MM)")
	stepsCmd.MarkFlagsMutuallyExclusive("total", "at")
	_ = stepsCmd.MarkFlagRequired("count")
}

// parseStepTime reads --at. The zero time means the steps were taken now.
func parseStepTime(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
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

func runSteps(cmd *cobra.Command, args []string) error {
	printer := ui.NewPrinter(cmd.OutOrStdout())
	if stepCount < 0 {
		return fmt.Errorf("%w: %d", companion.ErrInvalidCount, stepCount)
	}
	at, err := parseStepTime(stepAt, time.Now())
	if err != nil {
		return err
	}

	client, url, err := dial(cmd.Context())
	if err != nil {
		printer.PrintError("Could not reach the watch", err,
			"Is 'simplr run' running with the companion enabled?",
			"Check the address with 'simplr-companion scan' or pass --url",
		)
		return err
	}

	send := client.SendSteps
	switch {
	case stepTotal:
		send = client.SendTotal
	case !at.IsZero():
		send = func(n int) (int, error) { return client.SendStepsAt(n, at) }
	}
	total, err := send(stepCount)
	closeErr := client.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return closeErr
	}

	printer.PrintSuccess("Steps sent",
		ui.Param{Key: "Watch", Value: url},
		ui.Param{Key: "Sent", Value: fmt.Sprint(stepCount)},
		ui.Param{Key: "Steps today", Value: fmt.Sprint(total)},
	)
	return nil
}
