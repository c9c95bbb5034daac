package testsupport

import (
	"path/filepath"
	"testing"

	"mediamanager/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// The collection root and state directory are created.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CollectionRoot = filepath.Join(base, "media")
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Logging.Level = "debug"

	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithJournal toggles the placement journal.
func WithJournal(enabled bool) ConfigOption {
	return func(c *config.Config) {
		c.Journal.Enabled = enabled
	}
}

// WithMaxCollisionAttempts overrides the collision bound.
func WithMaxCollisionAttempts(n int) ConfigOption {
	return func(c *config.Config) {
		c.Placement.MaxCollisionAttempts = n
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.CollectionRoot)
}
