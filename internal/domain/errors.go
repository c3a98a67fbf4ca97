package domain

import (
	"errors"
	"fmt"
)

// ErrNoCorpus is returned when a ranking is requested before any corpus
// has been combined.
var ErrNoCorpus = errors.New("No corpus found")

// ErrRootLocked is returned when another process holds the library lock.
var ErrRootLocked = errors.New("another spellbook run is already in progress")

// ConfigError reports an invalid configuration or flag value.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}

// NewConfigError builds a ConfigError from a format string.
func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// SourceNotFoundError reports a missing or unreadable history source log.
type SourceNotFoundError struct {
	Path string
	Err  error
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("history source %s is missing or unreadable: %v", e.Path, e.Err)
}

func (e *SourceNotFoundError) Unwrap() error {
	return e.Err
}

// IsSourceNotFound reports whether err wraps a SourceNotFoundError.
func IsSourceNotFound(err error) bool {
	var target *SourceNotFoundError
	return errors.As(err, &target)
}
