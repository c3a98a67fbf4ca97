// Package extract ranks commands by usage frequency.
package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"spellbook/internal/domain"
	"spellbook/internal/ports"
)

type commandCount struct {
	command string
	count   int
}

// Rank groups commands by exact text and orders them by descending count,
// breaking ties by ascending command text, then truncates to maxCount
// entries. Commands are compared byte for byte; differing whitespace means
// a different command.
func Rank(commands []string, maxCount int) domain.RankedList {
	counts := lo.CountValues(commands)

	ranked := make([]commandCount, 0, len(counts))
	for command, count := range counts {
		ranked = append(ranked, commandCount{command: command, count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count == ranked[j].count {
			return ranked[i].command < ranked[j].command
		}
		return ranked[i].count > ranked[j].count
	})

	if maxCount >= 0 && maxCount < len(ranked) {
		ranked = ranked[:maxCount]
	}
	return lo.Map(ranked, func(entry commandCount, _ int) string {
		return entry.command
	})
}

// FormatList renders a ranking one command per line with a trailing
// newline; an empty list renders as an empty file.
func FormatList(list domain.RankedList) []byte {
	if len(list) == 0 {
		return nil
	}
	return []byte(strings.Join(list, "\n") + "\n")
}

// WriteList persists a ranking to destPath through the given effects.
func WriteList(fs ports.Effects, destPath string, list domain.RankedList) error {
	if err := fs.WriteFile(destPath, FormatList(list), domain.ArtifactFilePermissions); err != nil {
		return fmt.Errorf("failed to write ranked list: %w", err)
	}
	return nil
}
