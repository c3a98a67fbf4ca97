// Package liblock guards the library root against concurrent runs.
package liblock

import (
	"fmt"

	"github.com/gofrs/flock"

	"spellbook/internal/domain"
)

// Acquire takes the advisory lock at path without blocking and returns a
// release function. A held lock yields domain.ErrRootLocked.
func Acquire(path string) (release func() error, err error) {
	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire library lock: %w", err)
	}
	if !locked {
		return nil, domain.ErrRootLocked
	}
	return lock.Unlock, nil
}
