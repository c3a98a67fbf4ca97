package config

import (
	"strings"

	"spellbook/internal/domain"
)

// Validate ensures config values are usable before any stage runs.
func Validate(cfg domain.Config) error {
	if cfg.ConfigFormatVersion != "" && cfg.ConfigFormatVersion != "1" {
		return domain.NewConfigError("unsupported config_format_version %q", cfg.ConfigFormatVersion)
	}
	if strings.TrimSpace(cfg.History.Source) == "" {
		return domain.NewConfigError("history.source must be set")
	}
	if cfg.History.MaxCount != nil && *cfg.History.MaxCount <= 0 {
		return domain.NewConfigError("history.max_count must be positive, got %d", *cfg.History.MaxCount)
	}
	if strings.TrimSpace(cfg.Library.Root) == "" {
		return domain.NewConfigError("library.root must be set")
	}
	return nil
}
