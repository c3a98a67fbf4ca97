// Package status inspects the library and reports its health.
package status

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"spellbook/internal/domain"
	"spellbook/internal/infrastructure/archive"
	"spellbook/internal/infrastructure/corpus"
	"spellbook/internal/infrastructure/silence"
)

// Service runs library diagnostics.
type Service struct {
	Config   domain.Config
	Archives *archive.Store
	Silence  *silence.Store
}

// Run executes checks and returns a report. Checks never mutate the
// library; a fresh installation reports warnings, not errors.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	checks = append(checks, ok("Config", fmt.Sprintf("format version %s", s.Config.ConfigFormatVersion)))
	checks = append(checks, s.sourceCheck())
	checks = append(checks, s.rootCheck())
	checks = append(checks, s.archivesCheck())
	checks = append(checks, s.silenceCheck())
	checks = append(checks, s.corpusCheck())
	checks = append(checks, s.ledgerCheck())

	return domain.HealthReport{Checks: checks}, ctx.Err()
}

func (s *Service) sourceCheck() domain.HealthCheck {
	path := s.Config.SourcePath()
	info, err := os.Stat(path)
	if err != nil {
		return warn("History source", fmt.Sprintf("%s missing; the next run will fail", path))
	}
	return ok("History source", fmt.Sprintf("%s (%s)", path, humanize.Bytes(uint64(info.Size()))))
}

func (s *Service) rootCheck() domain.HealthCheck {
	root := s.Config.RootPath()
	if _, err := os.Stat(root); err != nil {
		return warn("Library root", fmt.Sprintf("%s not created yet; run spellbook to create it", root))
	}
	return ok("Library root", root)
}

func (s *Service) archivesCheck() domain.HealthCheck {
	archives, err := s.Archives.List()
	if err != nil {
		return fail("Archives", err.Error())
	}
	if len(archives) == 0 {
		return warn("Archives", "none yet")
	}
	latest := archives[len(archives)-1]
	return ok("Archives", fmt.Sprintf("%d, latest %s (%d commands)", len(archives), latest.ID, len(latest.Commands)))
}

func (s *Service) silenceCheck() domain.HealthCheck {
	entries, err := s.Silence.Entries()
	if err != nil {
		return fail("Silence list", err.Error())
	}
	if len(entries) == 0 {
		return ok("Silence list", "empty")
	}
	return ok("Silence list", fmt.Sprintf("%d commands", len(entries)))
}

func (s *Service) corpusCheck() domain.HealthCheck {
	path := s.Config.CorpusPath()
	entries, err := corpus.ReadEntries(path)
	if err != nil {
		if os.IsNotExist(err) {
			return warn("Corpus", "not combined yet")
		}
		return fail("Corpus", err.Error())
	}
	return ok("Corpus", fmt.Sprintf("%d commands", len(entries)))
}

func (s *Service) ledgerCheck() domain.HealthCheck {
	if !s.Config.LedgerEnabled() {
		return ok("Run ledger", "disabled")
	}
	info, err := os.Stat(s.Config.LedgerPath())
	if err != nil {
		return warn("Run ledger", "no runs recorded yet")
	}
	return ok("Run ledger", fmt.Sprintf("%s (%s)", s.Config.LedgerPath(), humanize.Bytes(uint64(info.Size()))))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
