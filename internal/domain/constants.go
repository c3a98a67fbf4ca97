package domain

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// ArtifactFilePermissions is the permission for generated artifacts (rw-r--r--)
	ArtifactFilePermissions = 0o644
	// SecureFilePermissions is the permission for the config file (rw-------)
	SecureFilePermissions = 0o600
)

// Artifact names under the library root
const (
	// ArchivesDirName holds one subdirectory per immutable snapshot
	ArchivesDirName = "archives"
	// RawCopyFileName is the verbatim copy of the source log inside an archive
	RawCopyFileName = "raw-history-copy"
	// TopListFileName is the ranked, silence-filtered list inside an archive
	TopListFileName = "extracted-top-list.txt"
	// CorpusFileName is the combined ranking across all archives
	CorpusFileName = "corpus.txt"
	// SilenceFileName is the newline-delimited exclusion set
	SilenceFileName = "silence-list"
	// SyntheticFileName is the regenerated timestamped history
	SyntheticFileName = "synthetic-history"
	// WorkingHistoryFileName is the synthetic history plus the live log
	WorkingHistoryFileName = "working-history"
	// LedgerFileName is the SQLite database of completed runs
	LedgerFileName = "spellbook.db"
	// LockFileName guards the root against concurrent runs
	LockFileName = ".spellbook.lock"
)

// Defaults applied when configuration omits a value
const (
	// DefaultMaxCount bounds ranked lists when history.max_count is unset
	DefaultMaxCount = 1000
	// DefaultHistorySource is the zsh history log location
	DefaultHistorySource = "~/.zsh_history"
	// DefaultLibraryRoot is where all artifacts are persisted
	DefaultLibraryRoot = "~/.spellbook"
)

// Synthetic history generation constants
const (
	// YearSeconds is the span synthetic timestamps are spread across
	YearSeconds int64 = 31536000
)

// ArchiveIDLayout names archive directories so that IDs sort by creation time.
const ArchiveIDLayout = "20060102-150405"

// Run modes
const (
	RunModeReal   = "real"
	RunModeDryRun = "dry-run"
)

// Run statuses recorded in the ledger
const (
	RunStatusOK     = "ok"
	RunStatusFailed = "failed"
)
