// Package logging assembles structured slog loggers and attribute helpers used
// across mediamanager packages.
//
// It owns the console and JSON handlers, maps configured levels, fans output
// out to stderr and the state directory log file, and exposes context helpers
// so every line written during one CLI invocation carries the same session ID.
// A no-op logger is provided for tests and for wiring code that was handed a
// nil logger.
package logging
