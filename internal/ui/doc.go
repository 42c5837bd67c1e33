// Package ui provides the terminal front end of the simplr host.
//
// Model is an interactive Bubble Tea program that plays the part of the
// device's main loop: host events posted by the minute ticker, the battery
// poller and the companion server are forwarded into the program as
// messages and dispatched from Update, so watchface handlers never run
// concurrently. The watch screen is rasterised by package render and framed
// with a lipgloss bezel.
//
// The one-shot commands (preview, config init) use RenderOnce and Printer,
// which follow a "run once and exit" pattern instead.
//
// # Logging Integration
//
// The alternate screen belongs to the watch while Model runs, so logging
// should be pointed at a file (see logging.Initialize) or left silent.
package ui
