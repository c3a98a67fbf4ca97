package domain

// Config mirrors config.yaml.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version"`
	History             HistorySettings `yaml:"history"`
	Library             LibrarySettings `yaml:"library"`
	Ledger              LedgerSettings  `yaml:"ledger"`
}

// HistorySettings locates and bounds the shell history source.
type HistorySettings struct {
	// Source is the path of the live shell history log.
	Source string `yaml:"source"`
	// MaxCount caps every ranked list. A pointer so an absent key falls
	// back to DefaultMaxCount while an explicit non-positive value fails
	// validation.
	MaxCount *int `yaml:"max_count"`
}

// LibrarySettings locates the persisted library root.
type LibrarySettings struct {
	Root string `yaml:"root"`
}

// LedgerSettings controls run bookkeeping. Enabled is a pointer so an
// absent key means enabled rather than false.
type LedgerSettings struct {
	Enabled *bool `yaml:"enabled"`
}
