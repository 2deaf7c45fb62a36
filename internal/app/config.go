package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ExperimentPath points at the experiment document file.
	ExperimentPath string

	// Vars are the substitution variables, the highest-priority reference
	// namespace. Names are conventionally upper-case by caller convention,
	// not enforced.
	Vars map[string]any

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config value.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ExperimentPath == "" {
		return nil, errors.New("ExperimentPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
