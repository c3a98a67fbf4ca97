package domain

import "time"

// RunReport summarizes one pipeline run for display.
type RunReport struct {
	Mode                string
	Archive             Archive
	ArchivesFound       int
	CorpusSize          int
	SyntheticCount      int
	WorkingHistoryBytes int64
	Duration            time.Duration
	// Journal lists the operations a dry run would have performed.
	Journal []string
}

// RunRecord is one ledger row describing a completed run.
type RunRecord struct {
	ID                  int64
	StartedAt           time.Time
	Mode                string
	ArchivesFound       int
	CorpusSize          int
	WorkingHistoryBytes int64
	Duration            time.Duration
	Status              string
}
