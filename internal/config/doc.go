// Package config loads, normalizes, and validates mediamanager configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the MEDIAMANAGER_ROOT environment fallback. The
// collection root is configured here once and threaded explicitly into the
// catalog and placer; no other package keeps a default root of its own.
package config
