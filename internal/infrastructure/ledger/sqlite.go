// Package ledger records completed pipeline runs in SQLite.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"spellbook/internal/domain"
	"spellbook/internal/ports"
)

// SQLiteLedger persists run records in a SQLite database under the
// library root.
type SQLiteLedger struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// Open creates or opens the database at path and ensures the schema.
func Open(path string) (*SQLiteLedger, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run ledger: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &SQLiteLedger{db: db, path: path}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteLedger) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT,
		mode TEXT,
		archives_found INTEGER,
		corpus_size INTEGER,
		working_history_bytes INTEGER,
		duration_ms INTEGER,
		status TEXT
	);`)
	if err != nil {
		return fmt.Errorf("failed to initialize run ledger: %w", err)
	}
	return nil
}

// Path returns the backing database path.
func (s *SQLiteLedger) Path() string {
	return s.path
}

// Record implements ports.RunLedger.
func (s *SQLiteLedger) Record(ctx context.Context, run domain.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `INSERT INTO runs
		(started_at, mode, archives_found, corpus_size, working_history_bytes, duration_ms, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.Format(time.RFC3339),
		run.Mode,
		run.ArchivesFound,
		run.CorpusSize,
		run.WorkingHistoryBytes,
		run.Duration.Milliseconds(),
		run.Status,
	)
	return err
}

// Recent implements ports.RunLedger, newest first.
func (s *SQLiteLedger) Recent(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	query := `SELECT id, started_at, mode, archives_found, corpus_size, working_history_bytes, duration_ms, status
		FROM runs ORDER BY id DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.RunRecord
	for rows.Next() {
		var rec domain.RunRecord
		var startedAt string
		var durationMS int64
		if err := rows.Scan(&rec.ID, &startedAt, &rec.Mode, &rec.ArchivesFound, &rec.CorpusSize,
			&rec.WorkingHistoryBytes, &durationMS, &rec.Status); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
			rec.StartedAt = t
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close implements ports.RunLedger.
func (s *SQLiteLedger) Close() error {
	return s.db.Close()
}

var _ ports.RunLedger = (*SQLiteLedger)(nil)

// Disabled ignores every request; used when bookkeeping is off or the run
// is a dry run.
type Disabled struct{}

func (Disabled) Record(context.Context, domain.RunRecord) error { return nil }

func (Disabled) Recent(context.Context, int) ([]domain.RunRecord, error) { return nil, nil }

func (Disabled) Close() error { return nil }

var _ ports.RunLedger = Disabled{}
