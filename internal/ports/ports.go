// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). Following the Ports and Adapters (Hexagonal) pattern,
// these interfaces allow the application to remain independent of specific
// implementations like the real filesystem, SQLite, or CLI frameworks.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., Effects, ConfigProvider)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"
	"io/fs"

	"spellbook/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.spellbook/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// Effects is the write capability granted to pipeline components. Exactly one
// implementation is selected per process: the real adapter mutates the
// filesystem, the dry-run adapter journals the intended operations instead.
// Components never branch on mode beyond what DryRun exposes; they describe
// writes through this interface and the adapter decides.
type Effects interface {
	// DryRun reports whether operations are journaled rather than applied.
	DryRun() bool
	// MkdirAll creates a directory tree.
	MkdirAll(path string, perm fs.FileMode) error
	// WriteFile replaces the file at path with data. Real implementations
	// must be atomic so a crash never leaves a partial artifact.
	WriteFile(path string, data []byte, perm fs.FileMode) error
	// CopyFile duplicates src to dst with the same atomicity as WriteFile.
	CopyFile(src, dst string, perm fs.FileMode) error
	// Journal returns the operations recorded so far; nil for real adapters.
	Journal() []string
}

// RunLedger records completed pipeline runs for later inspection.
type RunLedger interface {
	Record(ctx context.Context, run domain.RunRecord) error
	Recent(ctx context.Context, limit int) ([]domain.RunRecord, error)
	Close() error
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stderr, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
