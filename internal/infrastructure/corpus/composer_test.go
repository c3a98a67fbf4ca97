package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spellbook/internal/domain"
	"spellbook/internal/infrastructure/effects"
	"spellbook/internal/pkg/logger"
)

func TestComposeAppendsLiveLogToSynthetic(t *testing.T) {
	root := t.TempDir()
	syntheticPath := filepath.Join(root, "synthetic-history")
	livePath := filepath.Join(root, "history")
	destPath := filepath.Join(root, "working-history")
	synthetic := ": 1728464000:0;git status\n: 1736348000:0;ls\n"
	live := ": 1760000000:0;docker ps\nplain line\n"
	require.NoError(t, os.WriteFile(syntheticPath, []byte(synthetic), 0o644))
	require.NoError(t, os.WriteFile(livePath, []byte(live), 0o644))

	written, err := NewComposer(effects.Real{}, logger.Nop{}).Compose(syntheticPath, livePath, destPath)

	require.NoError(t, err)
	assert.Equal(t, int64(len(synthetic)+len(live)), written)

	data, err := os.ReadFile(destPath)
	require.NoError(t, err)
	assert.Equal(t, synthetic+live, string(data))
}

func TestComposeMissingLiveLog(t *testing.T) {
	root := t.TempDir()
	syntheticPath := filepath.Join(root, "synthetic-history")
	require.NoError(t, os.WriteFile(syntheticPath, []byte("x\n"), 0o644))

	_, err := NewComposer(effects.Real{}, logger.Nop{}).
		Compose(syntheticPath, filepath.Join(root, "history"), filepath.Join(root, "out"))

	require.Error(t, err)
	assert.True(t, domain.IsSourceNotFound(err))
}

func TestComposeMissingSynthetic(t *testing.T) {
	root := t.TempDir()

	_, err := NewComposer(effects.Real{}, logger.Nop{}).
		Compose(filepath.Join(root, "synthetic-history"), filepath.Join(root, "history"), filepath.Join(root, "out"))

	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to read synthetic history")
}

func TestComposeDryRunSkipsWhenInputsMissing(t *testing.T) {
	root := t.TempDir()
	journal := effects.NewDryRun()

	written, err := NewComposer(journal, logger.Nop{}).
		Compose(filepath.Join(root, "synthetic-history"), filepath.Join(root, "history"), filepath.Join(root, "out"))

	require.NoError(t, err)
	assert.Zero(t, written)
	assert.Empty(t, journal.Journal())
}
