package spec

import (
	"fmt"
	"io"
)

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	// Source identification
	sourceName string

	logger Logger
}

// WithFilePath sets the input source to a file path.
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		if path == "" {
			return fmt.Errorf("file path cannot be empty")
		}
		cfg.filePath = &path
		return nil
	}
}

// WithReader sets the input source to an io.Reader.
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return fmt.Errorf("reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes sets the input source to an in-memory document.
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if len(data) == 0 {
			return fmt.Errorf("bytes cannot be empty")
		}
		cfg.bytes = data
		return nil
	}
}

// WithSourceName overrides the source identifier used in error messages.
// Useful with WithReader and WithBytes, which have no natural name.
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = name
		return nil
	}
}

// WithLogger sets the structured logger for parse diagnostics.
// If not set, logging is disabled.
func WithLogger(logger Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = logger
		return nil
	}
}

// applyOptions runs each option and checks that exactly one input source
// was selected.
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{logger: NopLogger{}}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	sources := 0
	if cfg.filePath != nil {
		sources++
	}
	if cfg.reader != nil {
		sources++
	}
	if cfg.bytes != nil {
		sources++
	}
	if sources != 1 {
		return nil, fmt.Errorf("exactly one input source required (WithFilePath, WithReader, or WithBytes), got %d", sources)
	}

	return cfg, nil
}
