package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/qualitywatch/gate-report/internal/core"
	"github.com/qualitywatch/gate-report/internal/types"
)

// newTestStore opens a store on a fresh database file and closes it when the
// test ends.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open returned unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// checkResult builds a CheckResult with one passing and one failing condition.
func checkResult(project, generatedAt string) *types.CheckResult {
	report := types.NewStatusReport()
	report.Set("Coverage", "OK")
	report.Set("Bugs", "ERROR (5 is greater than 0)")

	return &types.CheckResult{
		SchemaVersion: types.CheckSchemaVersion,
		Project:       project,
		Branch:        "main",
		Gate:          "Sonar way",
		Passed:        false,
		Report:        report,
		Failures:      []string{"Bugs"},
		GeneratedAt:   generatedAt,
	}
}

// ============================================================================
// Open Tests
// ============================================================================

func TestOpen_MigratesIdempotently(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned unexpected error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close returned unexpected error: %v", err)
	}

	// Reopening an already-migrated database must not fail.
	store, err = Open(path)
	if err != nil {
		t.Fatalf("Reopen returned unexpected error: %v", err)
	}
	_ = store.Close()
}

// ============================================================================
// RecordRun Tests
// ============================================================================

func TestRecordRun_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.RecordRun(ctx, checkResult("my:project", "2025-08-25T10:00:00Z"))
	if err != nil {
		t.Fatalf("RecordRun returned unexpected error: %v", err)
	}
	if id == "" {
		t.Fatal("Expected a generated run ID")
	}

	run, err := store.Run(ctx, id)
	if err != nil {
		t.Fatalf("Run returned unexpected error: %v", err)
	}
	if run.Project != "my:project" || run.Branch != "main" || run.Gate != "Sonar way" {
		t.Errorf("Run fields mismatch: %+v", run)
	}
	if run.Passed {
		t.Error("Expected failed run")
	}
	if run.Conditions != 2 || run.Failures != 1 {
		t.Errorf("Expected 2 conditions with 1 failure, got %d/%d", run.Conditions, run.Failures)
	}
	if run.CreatedAt != "2025-08-25T10:00:00Z" {
		t.Errorf("Expected check timestamp persisted, got %q", run.CreatedAt)
	}
}

func TestRecordRun_ConditionsInReportOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	report := types.NewStatusReport()
	report.Set("Coverage", "OK")
	report.Set("Bugs", "ERROR (5 is greater than 0)")
	report.Set("Code Smells", "OK")
	result := &types.CheckResult{
		Project: "p", Gate: "g", Passed: false,
		Report:      report,
		Failures:    []string{"Bugs"},
		GeneratedAt: "2025-08-25T10:00:00Z",
	}

	id, err := store.RecordRun(ctx, result)
	if err != nil {
		t.Fatalf("RecordRun returned unexpected error: %v", err)
	}

	conds, err := store.RunConditions(ctx, id)
	if err != nil {
		t.Fatalf("RunConditions returned unexpected error: %v", err)
	}

	want := []struct {
		metric string
		status string
	}{
		{"Coverage", "OK"},
		{"Bugs", "ERROR (5 is greater than 0)"},
		{"Code Smells", "OK"},
	}
	if len(conds) != len(want) {
		t.Fatalf("Expected %d conditions, got %d", len(want), len(conds))
	}
	for i, w := range want {
		if conds[i].Position != i {
			t.Errorf("Condition %d: expected position %d, got %d", i, i, conds[i].Position)
		}
		if conds[i].Metric != w.metric || conds[i].Status != w.status {
			t.Errorf("Condition %d: got %q/%q, want %q/%q", i, conds[i].Metric, conds[i].Status, w.metric, w.status)
		}
		if conds[i].RunID != id {
			t.Errorf("Condition %d: expected run ID %q, got %q", i, id, conds[i].RunID)
		}
	}
}

func TestRecordRun_DistinctIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.RecordRun(ctx, checkResult("p", "2025-08-25T10:00:00Z"))
	if err != nil {
		t.Fatalf("RecordRun returned unexpected error: %v", err)
	}
	second, err := store.RecordRun(ctx, checkResult("p", "2025-08-25T11:00:00Z"))
	if err != nil {
		t.Fatalf("RecordRun returned unexpected error: %v", err)
	}
	if first == second {
		t.Error("Expected each run to get its own ID")
	}
}

// ============================================================================
// Query Tests
// ============================================================================

func TestRecentRuns_NewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	timestamps := []string{
		"2025-08-25T08:00:00Z",
		"2025-08-25T09:00:00Z",
		"2025-08-25T10:00:00Z",
	}
	for _, ts := range timestamps {
		if _, err := store.RecordRun(ctx, checkResult("p", ts)); err != nil {
			t.Fatalf("RecordRun returned unexpected error: %v", err)
		}
	}

	runs, err := store.RecentRuns(ctx, 2)
	if err != nil {
		t.Fatalf("RecentRuns returned unexpected error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected limit of 2 runs, got %d", len(runs))
	}
	if runs[0].CreatedAt != "2025-08-25T10:00:00Z" || runs[1].CreatedAt != "2025-08-25T09:00:00Z" {
		t.Errorf("Expected newest first, got %q then %q", runs[0].CreatedAt, runs[1].CreatedAt)
	}
}

func TestRecentRuns_DefaultLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.RecordRun(ctx, checkResult("p", "2025-08-25T10:00:00Z")); err != nil {
		t.Fatalf("RecordRun returned unexpected error: %v", err)
	}

	runs, err := store.RecentRuns(ctx, 0)
	if err != nil {
		t.Fatalf("RecentRuns returned unexpected error: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("Expected 1 run with default limit, got %d", len(runs))
	}
}

func TestRecentRuns_Empty(t *testing.T) {
	store := newTestStore(t)

	runs, err := store.RecentRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentRuns returned unexpected error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("Expected no runs, got %d", len(runs))
	}
}

func TestRun_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Run(context.Background(), "never-recorded")
	if !core.IsRunNotFound(err) {
		t.Errorf("Expected RunNotFoundError, got %v", err)
	}
}

func TestRunConditions_UnknownRun(t *testing.T) {
	store := newTestStore(t)

	conds, err := store.RunConditions(context.Background(), "never-recorded")
	if err != nil {
		t.Fatalf("RunConditions returned unexpected error: %v", err)
	}
	if len(conds) != 0 {
		t.Errorf("Expected no conditions, got %d", len(conds))
	}
}
