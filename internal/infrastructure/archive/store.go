// Package archive manages immutable history snapshots.
package archive

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"spellbook/internal/domain"
	"spellbook/internal/infrastructure/extract"
	"spellbook/internal/infrastructure/histfile"
	"spellbook/internal/infrastructure/silence"
	"spellbook/internal/ports"
)

// Store creates and enumerates archives under a single directory. Existing
// archives are never modified or removed.
type Store struct {
	dir    string
	fs     ports.Effects
	logger ports.Logger
	now    func() time.Time
}

// NewStore creates a store rooted at dir.
func NewStore(dir string, fs ports.Effects, logger ports.Logger) *Store {
	return &Store{dir: dir, fs: fs, logger: logger, now: time.Now}
}

// Dir returns the archives root.
func (s *Store) Dir() string {
	return s.dir
}

// Create snapshots the log at sourcePath into a fresh archive directory:
// a verbatim copy of the log plus the ranked top list with silenced
// commands removed. The filter runs after truncation, so a silenced
// command frees no slot for the one ranked below the cap.
func (s *Store) Create(sourcePath string, maxCount int, silencer *silence.Store) (domain.Archive, error) {
	if maxCount <= 0 {
		return domain.Archive{}, domain.NewConfigError("max_count must be positive, got %d", maxCount)
	}

	createdAt := s.now()
	id, err := s.reserveID(createdAt)
	if err != nil {
		return domain.Archive{}, err
	}
	dir := filepath.Join(s.dir, id)
	arch := domain.Archive{
		ID:        id,
		Dir:       dir,
		RawPath:   filepath.Join(dir, domain.RawCopyFileName),
		ListPath:  filepath.Join(dir, domain.TopListFileName),
		CreatedAt: createdAt,
	}

	if _, err := os.Stat(sourcePath); err != nil {
		if !s.fs.DryRun() {
			return domain.Archive{}, &domain.SourceNotFoundError{Path: sourcePath, Err: err}
		}
		s.logger.Warn("history source missing, nothing would be archived", map[string]interface{}{
			"path": sourcePath,
		})
		return domain.Archive{}, nil
	}

	if err := s.fs.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return domain.Archive{}, fmt.Errorf("failed to create archive directory: %w", err)
	}
	if err := s.fs.CopyFile(sourcePath, arch.RawPath, domain.ArtifactFilePermissions); err != nil {
		return domain.Archive{}, fmt.Errorf("failed to copy source log: %w", err)
	}

	// The copy is the extraction input so the list always matches the raw
	// snapshot. A dry run has no copy and reads the source directly.
	extractFrom := arch.RawPath
	if s.fs.DryRun() {
		extractFrom = sourcePath
	}
	commands, err := histfile.ReadCommands(extractFrom)
	if err != nil {
		return domain.Archive{}, &domain.SourceNotFoundError{Path: extractFrom, Err: err}
	}

	filtered, silenced, err := silencer.Filter(extract.Rank(commands, maxCount))
	if err != nil {
		return domain.Archive{}, err
	}
	if err := extract.WriteList(s.fs, arch.ListPath, filtered); err != nil {
		return domain.Archive{}, err
	}

	arch.Commands = filtered
	arch.Silenced = silenced
	s.logger.Debug("archive created", map[string]interface{}{
		"id":       arch.ID,
		"commands": len(arch.Commands),
		"silenced": arch.Silenced,
	})
	return arch, nil
}

// reserveID finds the first unused directory name for createdAt. When two
// runs land in the same second the second gets a "-2" suffix, the third
// "-3", and so on; suffixed IDs still sort after the base. A stat failure
// other than not-exist aborts the scan.
func (s *Store) reserveID(createdAt time.Time) (string, error) {
	base := createdAt.Format(domain.ArchiveIDLayout)
	id := base
	for n := 2; ; n++ {
		_, err := os.Stat(filepath.Join(s.dir, id))
		if os.IsNotExist(err) {
			return id, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to reserve archive id: %w", err)
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
}

// List loads every archive in ID order. Directory entries that are not
// archives (no top list inside) are skipped.
func (s *Store) List() ([]domain.Archive, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read archives directory: %w", err)
	}

	var archives []domain.Archive
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(s.dir, entry.Name())
		listPath := filepath.Join(dir, domain.TopListFileName)
		commands, err := readList(listPath)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		archives = append(archives, domain.Archive{
			ID:        entry.Name(),
			Dir:       dir,
			RawPath:   filepath.Join(dir, domain.RawCopyFileName),
			ListPath:  listPath,
			CreatedAt: idTime(entry.Name()),
			Commands:  commands,
		})
	}
	return archives, nil
}

// readList loads a top list, one command per line, skipping blank lines.
// The open error is returned unwrapped so List can detect missing files.
func readList(path string) (domain.RankedList, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var list domain.RankedList
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			list = append(list, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return list, nil
}

// idTime recovers the creation time from an archive ID, ignoring any
// collision suffix. Unparseable IDs yield the zero time.
func idTime(id string) time.Time {
	layout := domain.ArchiveIDLayout
	if len(id) < len(layout) {
		return time.Time{}
	}
	t, err := time.ParseInLocation(layout, id[:len(layout)], time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}
