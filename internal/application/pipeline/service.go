// Package pipeline orchestrates a full archival run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"spellbook/internal/domain"
	"spellbook/internal/infrastructure/archive"
	"spellbook/internal/infrastructure/corpus"
	"spellbook/internal/infrastructure/silence"
	"spellbook/internal/ports"
)

// Service executes the archival pipeline end to end: snapshot the live
// log, rebuild the corpus, regenerate the synthetic history, and compose
// the working history.
type Service struct {
	Config      domain.Config
	FS          ports.Effects
	Logger      ports.Logger
	Ledger      ports.RunLedger
	Archives    *archive.Store
	Silence     *silence.Store
	Combiner    *corpus.Combiner
	Synthesizer *corpus.Synthesizer
	Composer    *corpus.Composer
	// Lock acquires the library lock; nil skips locking. Dry runs never
	// lock because the lock file lives under the root.
	Lock func(path string) (func() error, error)
	// Progress receives one line per completed stage; nil silences it.
	Progress io.Writer
}

// Run executes every stage in order and reports what happened. Real runs
// are recorded in the ledger whether they succeed or fail; dry runs leave
// the library untouched and return the journal of planned operations.
func (s *Service) Run(ctx context.Context) (report domain.RunReport, err error) {
	if s.FS == nil || s.Logger == nil || s.Archives == nil || s.Silence == nil ||
		s.Combiner == nil || s.Synthesizer == nil || s.Composer == nil {
		return domain.RunReport{}, errors.New("pipeline.Service dependencies not satisfied")
	}

	startedAt := time.Now()
	report.Mode = domain.RunModeReal
	if s.FS.DryRun() {
		report.Mode = domain.RunModeDryRun
	}

	cfg := s.Config
	s.Logger.Info("starting run", map[string]interface{}{
		"mode":   report.Mode,
		"root":   cfg.RootPath(),
		"source": cfg.SourcePath(),
	})

	defer func() {
		report.Duration = time.Since(startedAt)
		report.Journal = s.FS.Journal()
		s.recordRun(ctx, startedAt, report, err)
	}()

	if err = s.FS.MkdirAll(cfg.ArchivesPath(), domain.DirectoryPermissions); err != nil {
		return report, fmt.Errorf("prepare library root: %w", err)
	}

	if !s.FS.DryRun() && s.Lock != nil {
		release, lockErr := s.Lock(cfg.LockPath())
		if lockErr != nil {
			return report, lockErr
		}
		defer func() {
			if releaseErr := release(); releaseErr != nil {
				s.Logger.Warn("failed to release library lock", map[string]interface{}{
					"error": releaseErr.Error(),
				})
			}
		}()
	}

	arch, err := s.Archives.Create(cfg.SourcePath(), cfg.EffectiveMaxCount(), s.Silence)
	if err != nil {
		return report, fmt.Errorf("create archive: %w", err)
	}
	report.Archive = arch
	if arch.ID == "" {
		s.progressf("archive skipped: history source missing")
	} else {
		s.progressf("archived %s (%d commands, %d silenced)", arch.ID, len(arch.Commands), arch.Silenced)
	}

	// A dry run leaves the new archive off disk, so its list is fed to the
	// combiner directly to keep the reported corpus honest.
	var pending []domain.RankedList
	if s.FS.DryRun() && arch.ID != "" {
		pending = append(pending, arch.Commands)
	}
	combined, found, err := s.Combiner.Combine(cfg.CorpusPath(), cfg.EffectiveMaxCount(), pending...)
	if err != nil {
		return report, fmt.Errorf("combine corpus: %w", err)
	}
	report.ArchivesFound = found
	report.CorpusSize = len(combined)
	s.progressf("combined corpus from %d archives (%d commands)", found, len(combined))

	// The corpus file does not reflect a journaled combine, so the
	// synthesizer gets the would-be corpus directly.
	var pendingCorpus []domain.RankedList
	if s.FS.DryRun() {
		pendingCorpus = append(pendingCorpus, combined)
	}
	synthesized, err := s.Synthesizer.Synthesize(cfg.CorpusPath(), cfg.SyntheticPath(), pendingCorpus...)
	if err != nil {
		return report, fmt.Errorf("synthesize history: %w", err)
	}
	report.SyntheticCount = synthesized
	s.progressf("synthesized %d entries", synthesized)

	written, err := s.Composer.Compose(cfg.SyntheticPath(), cfg.SourcePath(), cfg.WorkingHistoryPath())
	if err != nil {
		return report, fmt.Errorf("compose working history: %w", err)
	}
	report.WorkingHistoryBytes = written
	s.progressf("composed working history (%d bytes)", written)

	return report, nil
}

func (s *Service) recordRun(ctx context.Context, startedAt time.Time, report domain.RunReport, runErr error) {
	if s.FS.DryRun() || s.Ledger == nil {
		return
	}
	status := domain.RunStatusOK
	if runErr != nil {
		status = domain.RunStatusFailed
	}
	record := domain.RunRecord{
		StartedAt:           startedAt,
		Mode:                report.Mode,
		ArchivesFound:       report.ArchivesFound,
		CorpusSize:          report.CorpusSize,
		WorkingHistoryBytes: report.WorkingHistoryBytes,
		Duration:            report.Duration,
		Status:              status,
	}
	if err := s.Ledger.Record(ctx, record); err != nil {
		s.Logger.Warn("failed to record run in ledger", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *Service) progressf(format string, args ...any) {
	if s.Progress == nil {
		return
	}
	fmt.Fprintf(s.Progress, format+"\n", args...)
}
