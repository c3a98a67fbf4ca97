package corpus

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"spellbook/internal/domain"
	"spellbook/internal/ports"
)

// Synthesizer regenerates a timestamped history log from the corpus.
type Synthesizer struct {
	fs     ports.Effects
	logger ports.Logger
	now    func() time.Time
}

// NewSynthesizer creates a synthesizer.
func NewSynthesizer(fs ports.Effects, logger ports.Logger) *Synthesizer {
	return &Synthesizer{fs: fs, logger: logger, now: time.Now}
}

// Synthesize writes destPath with one extended-format line per corpus
// entry, spreading timestamps evenly across the year ending now. The most
// frequent command gets the oldest timestamp, so a frequency-ordered
// reading of the output reproduces the corpus order. Every elapsed field
// is zero; the original durations are not recoverable.
//
// A journaling run passes the ranking the combiner just produced; the
// corpus file on disk does not reflect journaled writes. Without a
// pending list, a corpus missing under journaling is skipped with a
// warning.
func (g *Synthesizer) Synthesize(corpusPath, destPath string, pending ...domain.RankedList) (int, error) {
	var entries []string
	if len(pending) > 0 {
		for _, list := range pending {
			entries = append(entries, list...)
		}
	} else {
		loaded, err := ReadEntries(corpusPath)
		if err != nil {
			if os.IsNotExist(err) && g.fs.DryRun() {
				g.logger.Warn("corpus not materialized yet, skipping synthesis", map[string]interface{}{
					"path": corpusPath,
				})
				return 0, nil
			}
			return 0, fmt.Errorf("failed to read corpus: %w", err)
		}
		entries = loaded
	}

	if err := g.fs.WriteFile(destPath, g.render(entries), domain.ArtifactFilePermissions); err != nil {
		return 0, fmt.Errorf("failed to write synthetic history: %w", err)
	}
	return len(entries), nil
}

func (g *Synthesizer) render(entries []string) []byte {
	if len(entries) == 0 {
		return nil
	}
	base := g.now().Unix() - domain.YearSeconds
	increment := domain.YearSeconds / int64(len(entries))
	var buf bytes.Buffer
	for i, command := range entries {
		fmt.Fprintf(&buf, ": %d:0;%s\n", base+int64(i)*increment, command)
	}
	return buf.Bytes()
}
