package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// DefinitionsPath points at a single definition document or a directory
	// of them.
	DefinitionsPath string

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.DefinitionsPath == "" {
		return nil, errors.New("DefinitionsPath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
