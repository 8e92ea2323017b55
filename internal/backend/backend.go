// Package backend selects and constructs the cost store implementation.
package backend

import (
	"fmt"
	"log/slog"

	"outlay/internal/storage"
	"outlay/internal/storage/memory"
)

// Type identifies a cost store implementation.
type Type string

const (
	SQLite Type = "sqlite"
	Memory Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case SQLite, Memory:
		return true
	default:
		return false
	}
}

// Types returns all valid backend types.
func Types() []Type {
	return []Type{SQLite, Memory}
}

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// SQLite specific
	DBPath string
}

// Validate checks the backend configuration.
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	if c.Type == SQLite && c.DBPath == "" {
		return fmt.Errorf("database path is required for sqlite backend")
	}
	return nil
}

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// Result contains the constructed store and its cleanup function.
type Result struct {
	Store   storage.CostStore
	Cleanup CleanupFunc
}

// Factory creates cost stores based on configuration.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// CreateBackend constructs the store selected by config.
func (f *Factory) CreateBackend(config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLite:
		store, err := storage.Open(config.DBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", "db_path", config.DBPath)
		return &Result{Store: store, Cleanup: store.Close}, nil

	case Memory:
		store := memory.New()
		f.logger.Info("Initialized memory backend")
		return &Result{Store: store, Cleanup: func() error { return nil }}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}
