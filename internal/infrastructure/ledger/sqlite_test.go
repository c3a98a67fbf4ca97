package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spellbook/internal/domain"
)

func TestRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "lib", "spellbook.db")

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()
	assert.Equal(t, path, store.Path())

	startedAt := time.Date(2025, 3, 14, 15, 9, 26, 0, time.Local)
	for i := 1; i <= 3; i++ {
		err := store.Record(ctx, domain.RunRecord{
			StartedAt:           startedAt.Add(time.Duration(i) * time.Minute),
			Mode:                domain.RunModeReal,
			ArchivesFound:       i,
			CorpusSize:          i * 10,
			WorkingHistoryBytes: int64(i * 100),
			Duration:            time.Duration(i) * 1500 * time.Millisecond,
			Status:              domain.RunStatusOK,
		})
		require.NoError(t, err)
	}

	records, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Newest first.
	newest := records[0]
	assert.Equal(t, 3, newest.ArchivesFound)
	assert.Equal(t, 30, newest.CorpusSize)
	assert.Equal(t, int64(300), newest.WorkingHistoryBytes)
	assert.Equal(t, 4500*time.Millisecond, newest.Duration)
	assert.Equal(t, domain.RunModeReal, newest.Mode)
	assert.Equal(t, domain.RunStatusOK, newest.Status)
	assert.Equal(t, startedAt.Add(3*time.Minute).Unix(), newest.StartedAt.Unix())
	assert.Greater(t, newest.ID, records[1].ID)
}

func TestRecentHonorsLimit(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "spellbook.db"))
	require.NoError(t, err)
	defer store.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(ctx, domain.RunRecord{
			StartedAt: time.Now(),
			Mode:      domain.RunModeReal,
			Status:    domain.RunStatusOK,
		}))
	}

	records, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRecordsSurviveReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "spellbook.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Record(ctx, domain.RunRecord{
		StartedAt: time.Now(),
		Mode:      domain.RunModeReal,
		Status:    domain.RunStatusFailed,
	}))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.RunStatusFailed, records[0].Status)
}

func TestDisabledLedgerIgnoresEverything(t *testing.T) {
	ctx := context.Background()
	var disabled Disabled

	assert.NoError(t, disabled.Record(ctx, domain.RunRecord{}))
	records, err := disabled.Recent(ctx, 10)
	assert.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, disabled.Close())
}
