// Package silence persists the command exclusion set.
package silence

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/samber/lo"

	"spellbook/internal/domain"
	"spellbook/internal/ports"
)

// Store keeps silenced commands in a newline-delimited file under the
// library root. Matching is exact; whitespace differences matter.
type Store struct {
	path   string
	fs     ports.Effects
	logger ports.Logger
	mu     sync.Mutex
}

// NewStore creates a store backed by the file at path.
func NewStore(path string, fs ports.Effects, logger ports.Logger) *Store {
	return &Store{path: path, fs: fs, logger: logger}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Entries returns the set in file order. A missing file is an empty set.
func (s *Store) Entries() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read silence list: %w", err)
	}
	var entries []string
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			entries = append(entries, line)
		}
	}
	return entries, nil
}

// Add trims each command, drops empties, and appends every distinct one
// not already present. The rewrite happens only when something new was
// requested, so repeated adds never touch the file.
func (s *Store) Add(commands []string) (domain.SilenceReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	requested := lo.Uniq(lo.FilterMap(commands, func(command string, _ int) (string, bool) {
		command = strings.TrimSpace(command)
		return command, command != ""
	}))

	existing, err := s.Entries()
	if err != nil {
		return domain.SilenceReport{}, err
	}
	known := lo.SliceToMap(existing, func(entry string) (string, struct{}) {
		return entry, struct{}{}
	})

	var report domain.SilenceReport
	merged := existing
	for _, command := range requested {
		if _, ok := known[command]; ok {
			report.AlreadyPresent = append(report.AlreadyPresent, command)
			continue
		}
		known[command] = struct{}{}
		merged = append(merged, command)
		report.Added = append(report.Added, command)
	}
	report.Total = len(merged)

	if len(report.Added) == 0 {
		return report, nil
	}
	if err := s.fs.MkdirAll(filepath.Dir(s.path), domain.DirectoryPermissions); err != nil {
		return domain.SilenceReport{}, fmt.Errorf("failed to create library root: %w", err)
	}
	data := strings.Join(merged, "\n") + "\n"
	if err := s.fs.WriteFile(s.path, []byte(data), domain.ArtifactFilePermissions); err != nil {
		return domain.SilenceReport{}, fmt.Errorf("failed to write silence list: %w", err)
	}
	s.logger.Debug("silence list updated", map[string]interface{}{
		"added": len(report.Added),
		"total": report.Total,
	})
	return report, nil
}

// Filter removes silenced commands from list, preserving order, and
// reports how many were dropped.
func (s *Store) Filter(list domain.RankedList) (domain.RankedList, int, error) {
	entries, err := s.Entries()
	if err != nil {
		return nil, 0, err
	}
	if len(entries) == 0 {
		return list, 0, nil
	}
	silenced := lo.SliceToMap(entries, func(entry string) (string, struct{}) {
		return entry, struct{}{}
	})
	kept := make(domain.RankedList, 0, len(list))
	for _, command := range list {
		if _, ok := silenced[command]; !ok {
			kept = append(kept, command)
		}
	}
	return kept, len(list) - len(kept), nil
}
