package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"plexsweep/internal/sweep"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; users delete the history database to recover.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Run is one persisted run summary.
type Run struct {
	ID               int64
	RunID            string
	StartedAt        time.Time
	FinishedAt       time.Time
	Mode             string
	LibrariesScanned int
	LibrariesSkipped int
	TotalCollections int
	KeepCount        int
	RemoveCandidates int
	Deleted          int
	Failed           int
	Skipped          int
}

// NewRun builds a Run row from a summary.
func NewRun(runID string, started, finished time.Time, summary sweep.Summary) Run {
	mode := "execute"
	if summary.DryRun {
		mode = "dry-run"
	}
	return Run{
		RunID:            runID,
		StartedAt:        started.UTC(),
		FinishedAt:       finished.UTC(),
		Mode:             mode,
		LibrariesScanned: summary.LibrariesScanned,
		LibrariesSkipped: summary.LibrariesSkipped,
		TotalCollections: summary.TotalCollections,
		KeepCount:        summary.KeepCount,
		RemoveCandidates: summary.RemoveCandidates,
		Deleted:          summary.Deleted,
		Failed:           summary.Failed,
		Skipped:          summary.Skipped,
	}
}

// Store manages run-history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordRun inserts a run summary and returns its row ID.
func (s *Store) RecordRun(ctx context.Context, run Run) (int64, error) {
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (
            run_id, started_at, finished_at, mode,
            libraries_scanned, libraries_skipped, total_collections,
            keep_count, remove_candidates, deleted, failed, skipped
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID,
		run.StartedAt.Format(time.RFC3339Nano),
		run.FinishedAt.Format(time.RFC3339Nano),
		run.Mode,
		run.LibrariesScanned,
		run.LibrariesSkipped,
		run.TotalCollections,
		run.KeepCount,
		run.RemoveCandidates,
		run.Deleted,
		run.Failed,
		run.Skipped,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, run_id, started_at, finished_at, mode,
            libraries_scanned, libraries_skipped, total_collections,
            keep_count, remove_candidates, deleted, failed, skipped
        FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run                   Run
			startedAt, finishedAt string
		)
		if err := rows.Scan(
			&run.ID, &run.RunID, &startedAt, &finishedAt, &run.Mode,
			&run.LibrariesScanned, &run.LibrariesSkipped, &run.TotalCollections,
			&run.KeepCount, &run.RemoveCandidates, &run.Deleted, &run.Failed, &run.Skipped,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt); err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}
