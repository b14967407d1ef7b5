package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ModelPath  string // .hcl model file or directory
	StatesPath string // YAML state table from the equation compiler

	LogFormat string
	LogLevel  string
}

// NewConfig validates a configuration and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ModelPath == "" {
		return nil, errors.New("ModelPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
