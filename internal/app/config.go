package app

import (
	"errors"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// RootPath is the directory scanned for build files.
	RootPath string
	// TargetAddr optionally restricts the run to one target and its
	// transitive dependencies. Empty means build everything.
	TargetAddr string

	Workers       int
	TargetTimeout time.Duration
	DryRun        bool
	StatusPort    int

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.RootPath == "" {
		return nil, errors.New("RootPath is a required configuration field and cannot be empty")
	}
	if cfg.Workers < 1 {
		return nil, errors.New("Workers must be at least 1")
	}
	if cfg.TargetTimeout < 0 {
		return nil, errors.New("TargetTimeout cannot be negative")
	}
	return &cfg, nil
}
