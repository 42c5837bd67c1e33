// Package logging provides structured logging for simplr.
//
// This package wraps a zap logger with convenience functions for the logging
// patterns used by the watchface host: lifecycle transitions, host events and
// companion link activity.
//
// # Log Levels
//
//   - Debug: every dispatched host event, companion message payloads
//   - Info: window load/unload, companion sessions, battery source changes
//   - Warn: non-fatal issues (malformed companion messages, unreadable sysfs)
//   - Error: startup failures
//
// # Output
//
// The terminal belongs to the watchface renderer while it runs, so logs are
// written to a file rather than stdout:
//
//	if err := logging.Initialize("debug", "/tmp/simplr.log"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// When neither a level nor SIMPLR_LOG_LEVEL is set, logging is silent.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use.
package logging
