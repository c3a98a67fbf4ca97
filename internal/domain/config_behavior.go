package domain

import "path/filepath"

// EffectiveMaxCount returns the ranked-list cap, falling back to
// DefaultMaxCount when history.max_count is unset.
func (c Config) EffectiveMaxCount() int {
	if c.History.MaxCount != nil {
		return *c.History.MaxCount
	}
	return DefaultMaxCount
}

// LedgerEnabled reports whether runs should be recorded. An absent
// ledger.enabled key counts as enabled.
func (c Config) LedgerEnabled() bool {
	if c.Ledger.Enabled == nil {
		return true
	}
	return *c.Ledger.Enabled
}

// SourcePath is the live history log. The loader resolves "~" before the
// config reaches the domain, so the value joins cleanly.
func (c Config) SourcePath() string {
	return c.History.Source
}

// RootPath is the persisted library root.
func (c Config) RootPath() string {
	return c.Library.Root
}

// ArchivesPath holds one directory per snapshot.
func (c Config) ArchivesPath() string {
	return filepath.Join(c.Library.Root, ArchivesDirName)
}

// SilencePath is the newline-delimited exclusion set.
func (c Config) SilencePath() string {
	return filepath.Join(c.Library.Root, SilenceFileName)
}

// CorpusPath is the combined ranking across all archives.
func (c Config) CorpusPath() string {
	return filepath.Join(c.Library.Root, CorpusFileName)
}

// SyntheticPath is the regenerated timestamped history.
func (c Config) SyntheticPath() string {
	return filepath.Join(c.Library.Root, SyntheticFileName)
}

// WorkingHistoryPath is the composed synthetic-plus-live history.
func (c Config) WorkingHistoryPath() string {
	return filepath.Join(c.Library.Root, WorkingHistoryFileName)
}

// LedgerPath is the SQLite run ledger.
func (c Config) LedgerPath() string {
	return filepath.Join(c.Library.Root, LedgerFileName)
}

// LockPath guards the root against concurrent runs.
func (c Config) LockPath() string {
	return filepath.Join(c.Library.Root, LockFileName)
}
