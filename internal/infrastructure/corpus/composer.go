package corpus

import (
	"fmt"
	"os"

	"spellbook/internal/domain"
	"spellbook/internal/ports"
)

// Composer joins the synthetic history with the live log into the working
// history.
type Composer struct {
	fs     ports.Effects
	logger ports.Logger
}

// NewComposer creates a composer.
func NewComposer(fs ports.Effects, logger ports.Logger) *Composer {
	return &Composer{fs: fs, logger: logger}
}

// Compose writes destPath as the synthetic content followed byte for byte
// by the live log, and returns the total size. Neither input is parsed or
// rewritten.
func (c *Composer) Compose(syntheticPath, livePath, destPath string) (int64, error) {
	synthetic, err := os.ReadFile(syntheticPath)
	if err != nil {
		if c.fs.DryRun() {
			c.logger.Warn("synthetic history not materialized yet, skipping composition", map[string]interface{}{
				"path": syntheticPath,
			})
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read synthetic history: %w", err)
	}

	live, err := os.ReadFile(livePath)
	if err != nil {
		if c.fs.DryRun() {
			c.logger.Warn("live history unavailable, skipping composition", map[string]interface{}{
				"path": livePath,
			})
			return 0, nil
		}
		if os.IsNotExist(err) {
			return 0, &domain.SourceNotFoundError{Path: livePath, Err: err}
		}
		return 0, fmt.Errorf("failed to read live history: %w", err)
	}

	combined := make([]byte, 0, len(synthetic)+len(live))
	combined = append(combined, synthetic...)
	combined = append(combined, live...)
	if err := c.fs.WriteFile(destPath, combined, domain.ArtifactFilePermissions); err != nil {
		return 0, fmt.Errorf("failed to write working history: %w", err)
	}
	return int64(len(combined)), nil
}
