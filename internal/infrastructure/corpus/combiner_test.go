package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spellbook/internal/domain"
	"spellbook/internal/infrastructure/archive"
	"spellbook/internal/infrastructure/effects"
	"spellbook/internal/pkg/logger"
)

func seedArchive(t *testing.T, archivesDir, id string, commands ...string) {
	t.Helper()
	dir := filepath.Join(archivesDir, id)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	content := ""
	for _, command := range commands {
		content += command + "\n"
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.TopListFileName), []byte(content), 0o644))
}

func newCombiner(t *testing.T, archivesDir string) *Combiner {
	t.Helper()
	store := archive.NewStore(archivesDir, effects.Real{}, logger.Nop{})
	return NewCombiner(store, effects.Real{}, logger.Nop{})
}

func TestCombineMergesAndReRanks(t *testing.T) {
	root := t.TempDir()
	archivesDir := filepath.Join(root, "archives")
	seedArchive(t, archivesDir, "20250101-000000", "git status", "ls -la")
	seedArchive(t, archivesDir, "20250102-000000", "git status", "pwd")
	corpusPath := filepath.Join(root, "corpus.txt")

	combined, found, err := newCombiner(t, archivesDir).Combine(corpusPath, 10)

	require.NoError(t, err)
	assert.Equal(t, 2, found)
	// git status appears in both archives and outranks the singletons,
	// which fall back to ascending text order.
	assert.Equal(t, domain.RankedList{"git status", "ls -la", "pwd"}, combined)

	data, err := os.ReadFile(corpusPath)
	require.NoError(t, err)
	assert.Equal(t, "git status\nls -la\npwd\n", string(data))
}

func TestCombineTruncatesUnion(t *testing.T) {
	root := t.TempDir()
	archivesDir := filepath.Join(root, "archives")
	seedArchive(t, archivesDir, "20250101-000000", "git status", "ls -la")
	seedArchive(t, archivesDir, "20250102-000000", "git status", "pwd")

	combined, _, err := newCombiner(t, archivesDir).Combine(filepath.Join(root, "corpus.txt"), 2)

	require.NoError(t, err)
	assert.Equal(t, domain.RankedList{"git status", "ls -la"}, combined)
}

func TestCombineWithoutArchivesWritesEmptyCorpus(t *testing.T) {
	root := t.TempDir()
	corpusPath := filepath.Join(root, "corpus.txt")

	combined, found, err := newCombiner(t, filepath.Join(root, "archives")).Combine(corpusPath, 10)

	require.NoError(t, err)
	assert.Zero(t, found)
	assert.Empty(t, combined)

	data, err := os.ReadFile(corpusPath)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestCombineCountsPendingLists(t *testing.T) {
	root := t.TempDir()
	corpusPath := filepath.Join(root, "corpus.txt")

	combined, found, err := newCombiner(t, filepath.Join(root, "archives")).
		Combine(corpusPath, 10, domain.RankedList{"kubectl get pods"})

	require.NoError(t, err)
	assert.Equal(t, 1, found)
	assert.Equal(t, domain.RankedList{"kubectl get pods"}, combined)
}

func TestCombineRejectsNonPositiveMaxCount(t *testing.T) {
	root := t.TempDir()

	_, _, err := newCombiner(t, filepath.Join(root, "archives")).Combine(filepath.Join(root, "corpus.txt"), 0)

	var cfgErr *domain.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}
