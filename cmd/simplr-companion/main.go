// Simplr-companion plays the phone app for a running simplr watchface.
//
// It finds watches over mDNS, holds a companion session open (which the
// watch shows as "connected"), and feeds step counts into the watch's
// health store.
//
// Usage:
//
//	simplr-companion scan
//	simplr-companion connect [flags]
//	simplr-companion steps --count N [flags]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/simplr/internal/logging"
	"github.com/muurk/simplr/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	watchURL     string
	companionTag string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "simplr-companion",
	Short: "Companion simulator for the simplr watchface",
	Long: `A stand-in for the phone app paired with a simplr watchface.

While a session is open the watch reports the companion as connected.
Step counts sent over the session appear on the watch at the next minute.

Without --url the first watch found over mDNS is used.`,
	Version:      version.Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Initialize(logLevel, "")
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&watchURL, "url", "", "Watch companion URL, e.g. ws://127.0.0.1:8765/companion (skips discovery)")
	rootCmd.PersistentFlags().StringVar(&companionTag, "name", "simplr-companion", "Name sent to the watch in hello")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when unset")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(stepsCmd)
	rootCmd.AddCommand(versionCmd)
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("simplr-companion %s (%s)\n", version.Full(), version.Platform())
	},
}
