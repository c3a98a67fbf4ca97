package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spellbook/internal/application/pipeline"
	"spellbook/internal/domain"
	"spellbook/internal/infrastructure/archive"
	"spellbook/internal/infrastructure/corpus"
	"spellbook/internal/infrastructure/effects"
	"spellbook/internal/infrastructure/liblock"
	"spellbook/internal/infrastructure/silence"
	"spellbook/internal/pkg/logger"
	"spellbook/internal/ports"
)

const testHistory = ": 1700000000:0;git status\n" +
	": 1700000010:0;ls -la\n" +
	": 1700000020:0;git status\n" +
	"vim notes.txt\n" +
	": 1700000030:0;ls -la\n" +
	": 1700000040:0;git status\n"

type stubLedger struct {
	mu      sync.Mutex
	failure error
	records []domain.RunRecord
}

func (s *stubLedger) Record(_ context.Context, run domain.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return s.failure
	}
	s.records = append(s.records, run)
	return nil
}

func (s *stubLedger) Recent(context.Context, int) ([]domain.RunRecord, error) { return nil, nil }

func (s *stubLedger) Close() error { return nil }

func testConfig(root string) domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		History: domain.HistorySettings{
			Source:   filepath.Join(root, "history"),
			MaxCount: lo.ToPtr(100),
		},
		Library: domain.LibrarySettings{
			Root: filepath.Join(root, "lib"),
		},
	}
}

func newService(cfg domain.Config, fs ports.Effects, led ports.RunLedger) *pipeline.Service {
	log := logger.Nop{}
	archives := archive.NewStore(cfg.ArchivesPath(), fs, log)
	return &pipeline.Service{
		Config:      cfg,
		FS:          fs,
		Logger:      log,
		Ledger:      led,
		Archives:    archives,
		Silence:     silence.NewStore(cfg.SilencePath(), fs, log),
		Combiner:    corpus.NewCombiner(archives, fs, log),
		Synthesizer: corpus.NewSynthesizer(fs, log),
		Composer:    corpus.NewComposer(fs, log),
	}
}

func seedHistory(t *testing.T, cfg domain.Config) {
	t.Helper()
	require.NoError(t, os.WriteFile(cfg.SourcePath(), []byte(testHistory), 0o600))
}

func TestRunProducesAllArtifacts(t *testing.T) {
	cfg := testConfig(t.TempDir())
	seedHistory(t, cfg)
	led := &stubLedger{}
	svc := newService(cfg, effects.Real{}, led)

	report, err := svc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.RunModeReal, report.Mode)
	assert.NotEmpty(t, report.Archive.ID)
	assert.Equal(t, 1, report.ArchivesFound)
	assert.Equal(t, 3, report.CorpusSize)
	assert.Equal(t, 3, report.SyntheticCount)
	assert.Empty(t, report.Journal)

	raw, err := os.ReadFile(report.Archive.RawPath)
	require.NoError(t, err)
	assert.Equal(t, testHistory, string(raw))

	list, err := os.ReadFile(report.Archive.ListPath)
	require.NoError(t, err)
	assert.Equal(t, "git status\nls -la\nvim notes.txt\n", string(list))

	corpusData, err := os.ReadFile(cfg.CorpusPath())
	require.NoError(t, err)
	assert.Equal(t, "git status\nls -la\nvim notes.txt\n", string(corpusData))

	synthetic, err := os.ReadFile(cfg.SyntheticPath())
	require.NoError(t, err)
	syntheticLines := strings.Split(strings.TrimRight(string(synthetic), "\n"), "\n")
	require.Len(t, syntheticLines, 3)
	assert.True(t, strings.HasSuffix(syntheticLines[0], ";git status"))
	for _, line := range syntheticLines {
		assert.Regexp(t, `^: \d+:0;`, line)
	}

	working, err := os.ReadFile(cfg.WorkingHistoryPath())
	require.NoError(t, err)
	assert.Equal(t, string(synthetic)+testHistory, string(working))
	assert.Equal(t, int64(len(working)), report.WorkingHistoryBytes)

	require.Len(t, led.records, 1)
	assert.Equal(t, domain.RunStatusOK, led.records[0].Status)
	assert.Equal(t, domain.RunModeReal, led.records[0].Mode)
	assert.Equal(t, 3, led.records[0].CorpusSize)
}

func TestSecondRunAccumulatesArchives(t *testing.T) {
	cfg := testConfig(t.TempDir())
	seedHistory(t, cfg)
	svc := newService(cfg, effects.Real{}, &stubLedger{})

	_, err := svc.Run(context.Background())
	require.NoError(t, err)
	report, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.ArchivesFound)

	entries, err := os.ReadDir(cfg.ArchivesPath())
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	// Identical snapshots merge into the same ranking.
	corpusData, err := os.ReadFile(cfg.CorpusPath())
	require.NoError(t, err)
	assert.Equal(t, "git status\nls -la\nvim notes.txt\n", string(corpusData))
}

func TestDryRunLeavesLibraryUntouched(t *testing.T) {
	cfg := testConfig(t.TempDir())
	seedHistory(t, cfg)
	led := &stubLedger{}
	svc := newService(cfg, effects.NewDryRun(), led)

	report, err := svc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.RunModeDryRun, report.Mode)
	assert.NotEmpty(t, report.Journal)
	assert.Equal(t, 1, report.ArchivesFound)
	assert.Equal(t, 3, report.CorpusSize)
	assert.Equal(t, 3, report.SyntheticCount)
	assert.Zero(t, report.WorkingHistoryBytes)

	_, statErr := os.Stat(cfg.RootPath())
	assert.True(t, os.IsNotExist(statErr))
	assert.Empty(t, led.records)
}

func TestDryRunSynthesizesFromPendingCorpus(t *testing.T) {
	cfg := testConfig(t.TempDir())
	require.NoError(t, os.WriteFile(cfg.SourcePath(), []byte(": 1700000000:0;make deploy\n"), 0o600))
	_, err := newService(cfg, effects.Real{}, &stubLedger{}).Run(context.Background())
	require.NoError(t, err)

	// The live log grows after the real run; a journaling run must report
	// the corpus it would combine, not the one still on disk.
	seedHistory(t, cfg)
	report, err := newService(cfg, effects.NewDryRun(), &stubLedger{}).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, report.ArchivesFound)
	assert.Equal(t, 4, report.CorpusSize)
	assert.Equal(t, report.CorpusSize, report.SyntheticCount)

	corpusData, err := os.ReadFile(cfg.CorpusPath())
	require.NoError(t, err)
	assert.Equal(t, "make deploy\n", string(corpusData))
}

func TestRunMissingSourceFailsAndIsRecorded(t *testing.T) {
	cfg := testConfig(t.TempDir())
	led := &stubLedger{}
	svc := newService(cfg, effects.Real{}, led)

	_, err := svc.Run(context.Background())

	require.Error(t, err)
	assert.True(t, domain.IsSourceNotFound(err))
	require.Len(t, led.records, 1)
	assert.Equal(t, domain.RunStatusFailed, led.records[0].Status)
}

func TestRunAppliesSilenceList(t *testing.T) {
	cfg := testConfig(t.TempDir())
	seedHistory(t, cfg)
	require.NoError(t, os.MkdirAll(cfg.RootPath(), 0o755))
	require.NoError(t, os.WriteFile(cfg.SilencePath(), []byte("ls -la\n"), 0o644))
	svc := newService(cfg, effects.Real{}, &stubLedger{})

	report, err := svc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Archive.Silenced)
	assert.Equal(t, 2, report.CorpusSize)

	corpusData, err := os.ReadFile(cfg.CorpusPath())
	require.NoError(t, err)
	assert.Equal(t, "git status\nvim notes.txt\n", string(corpusData))
}

func TestRunFailsWhenRootIsLocked(t *testing.T) {
	cfg := testConfig(t.TempDir())
	seedHistory(t, cfg)
	require.NoError(t, os.MkdirAll(cfg.RootPath(), 0o755))
	release, err := liblock.Acquire(cfg.LockPath())
	require.NoError(t, err)
	defer release()

	svc := newService(cfg, effects.Real{}, &stubLedger{})
	svc.Lock = liblock.Acquire

	_, err = svc.Run(context.Background())

	assert.ErrorIs(t, err, domain.ErrRootLocked)
}

func TestRunSurvivesLedgerFailure(t *testing.T) {
	cfg := testConfig(t.TempDir())
	seedHistory(t, cfg)
	led := &stubLedger{failure: errors.New("disk full")}
	svc := newService(cfg, effects.Real{}, led)

	_, err := svc.Run(context.Background())

	require.NoError(t, err)
}
