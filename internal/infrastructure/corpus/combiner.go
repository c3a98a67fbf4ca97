// Package corpus builds and consumes the combined ranking across archives.
package corpus

import (
	"github.com/samber/lo"

	"spellbook/internal/domain"
	"spellbook/internal/infrastructure/archive"
	"spellbook/internal/infrastructure/extract"
	"spellbook/internal/ports"
)

// Combiner merges every archive's top list into a single corpus file.
type Combiner struct {
	archives *archive.Store
	fs       ports.Effects
	logger   ports.Logger
}

// NewCombiner creates a combiner over the given archive store.
func NewCombiner(archives *archive.Store, fs ports.Effects, logger ports.Logger) *Combiner {
	return &Combiner{archives: archives, fs: fs, logger: logger}
}

// Combine concatenates all per-archive lists plus any pending lists not
// yet on disk, re-ranks the union counting each occurrence once, and
// overwrites corpusPath. Archive lists were already truncated when they
// were written, so a command that fell below an archive's cap contributes
// nothing here; the corpus undercounts such commands on purpose.
//
// Zero archives produce an empty corpus file and a successful run. The
// returned count includes pending lists.
func (c *Combiner) Combine(corpusPath string, maxCount int, pending ...domain.RankedList) (domain.RankedList, int, error) {
	if maxCount <= 0 {
		return nil, 0, domain.NewConfigError("max_count must be positive, got %d", maxCount)
	}

	archives, err := c.archives.List()
	if err != nil {
		return nil, 0, err
	}

	all := lo.FlatMap(archives, func(arch domain.Archive, _ int) []string {
		return arch.Commands
	})
	for _, list := range pending {
		all = append(all, list...)
	}

	combined := extract.Rank(all, maxCount)
	if err := extract.WriteList(c.fs, corpusPath, combined); err != nil {
		return nil, 0, err
	}

	found := len(archives) + len(pending)
	if found == 0 {
		c.logger.Info("no archives found, corpus is empty", map[string]interface{}{
			"path": corpusPath,
		})
	}
	return combined, found, nil
}
