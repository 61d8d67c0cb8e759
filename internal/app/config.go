package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PipelinePath string // .hcl/.yaml file or directory
	LibraryRoot  string // handed to node libraries

	LogFormat string
	LogLevel  string

	// Seed initializes the random source handed to nodes.
	Seed uint64
	// Workers bounds parallel reductions inside nodes. Zero means GOMAXPROCS.
	Workers int
	// Metrics dumps the collected metrics to the output after the run.
	Metrics bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.PipelinePath == "" {
		return nil, errors.New("PipelinePath is a required configuration field and cannot be empty")
	}
	if cfg.Workers < 0 {
		return nil, errors.New("Workers must not be negative")
	}
	return &cfg, nil
}
