package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePlacement()
	c.normalizeCommands()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv(collectionRootEnv); ok && strings.TrimSpace(value) != "" {
		c.Paths.CollectionRoot = strings.TrimSpace(value)
	}
	var err error
	if c.Paths.CollectionRoot, err = expandPath(strings.TrimSpace(c.Paths.CollectionRoot)); err != nil {
		return fmt.Errorf("paths.collection_root: %w", err)
	}
	c.Paths.CatalogFile = strings.TrimSpace(c.Paths.CatalogFile)
	if c.Paths.CatalogFile == "" {
		c.Paths.CatalogFile = defaultCatalogFile
	}
	if strings.HasPrefix(c.Paths.CatalogFile, "~") {
		if c.Paths.CatalogFile, err = expandPath(c.Paths.CatalogFile); err != nil {
			return fmt.Errorf("paths.catalog_file: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizePlacement() {
	c.Placement.TrackCommand = strings.TrimSpace(c.Placement.TrackCommand)
	if c.Placement.MaxCollisionAttempts == 0 {
		c.Placement.MaxCollisionAttempts = defaultMaxCollisionAttempts
	}
}

func (c *Config) normalizeCommands() {
	cleaned := c.Commands.FollowUp[:0]
	for _, command := range c.Commands.FollowUp {
		if command = strings.TrimSpace(command); command != "" {
			cleaned = append(cleaned, command)
		}
	}
	c.Commands.FollowUp = cleaned
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
