// Package history persists check runs in a per-project SQLite database.
package history

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	// SQLite driver.
	_ "modernc.org/sqlite"

	"github.com/qualitywatch/gate-report/internal/core"
	"github.com/qualitywatch/gate-report/internal/types"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var driver = "sqlite"

// Compile-time check that Store satisfies the recorder contract.
var _ core.HistoryRecorder = (*Store)(nil)

// Store wraps the run history database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at the provided path
// and brings its schema up to date.
func Open(path string) (*Store, error) {
	db, err := sql.Open(driver, sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(driver); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}

	return &Store{db: db}, nil
}

func sqliteDSN(path string) string {
	values := url.Values{}
	values.Add("_pragma", "foreign_keys(ON)")
	values.Add("_pragma", "journal_mode(WAL)")
	values.Add("_pragma", "synchronous(NORMAL)")
	values.Add("_pragma", "busy_timeout(5000)")
	return fmt.Sprintf("file:%s?%s", path, values.Encode())
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun inserts a completed check run with its per-condition rows and
// returns the generated run ID. The run and its conditions commit atomically.
func (s *Store) RecordRun(ctx context.Context, result *types.CheckResult) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, project, branch, gate, passed, conditions, failures, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, result.Project, result.Branch, result.Gate, result.Passed,
		result.Report.Len(), len(result.Failures), result.GeneratedAt)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	for i, name := range result.Report.Names() {
		status, _ := result.Report.Get(name)
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_conditions (run_id, position, metric, status)
			 VALUES (?, ?, ?, ?)`,
			id, i, name, status)
		if err != nil {
			return "", fmt.Errorf("failed to insert condition %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}

	return id, nil
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]types.RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, project, branch, gate, passed, conditions, failures, created_at
		 FROM runs
		 ORDER BY created_at DESC, id
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var runs []types.RunRecord
	for rows.Next() {
		var r types.RunRecord
		if err := rows.Scan(&r.ID, &r.Project, &r.Branch, &r.Gate, &r.Passed, &r.Conditions, &r.Failures, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Run returns one run by ID.
func (s *Store) Run(ctx context.Context, id string) (*types.RunRecord, error) {
	var r types.RunRecord
	err := s.db.QueryRowContext(ctx,
		`SELECT id, project, branch, gate, passed, conditions, failures, created_at
		 FROM runs WHERE id = ?`, id).
		Scan(&r.ID, &r.Project, &r.Branch, &r.Gate, &r.Passed, &r.Conditions, &r.Failures, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, core.NewRunNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run %s: %w", id, err)
	}
	return &r, nil
}

// RunConditions returns a run's condition rows in report order.
func (s *Store) RunConditions(ctx context.Context, id string) ([]types.RunCondition, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, position, metric, status
		 FROM run_conditions
		 WHERE run_id = ?
		 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query conditions for run %s: %w", id, err)
	}
	defer rows.Close() //nolint:errcheck

	var conds []types.RunCondition
	for rows.Next() {
		var c types.RunCondition
		if err := rows.Scan(&c.RunID, &c.Position, &c.Metric, &c.Status); err != nil {
			return nil, fmt.Errorf("failed to scan condition: %w", err)
		}
		conds = append(conds, c)
	}
	return conds, rows.Err()
}
