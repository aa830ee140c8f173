package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/qualitywatch/gate-report/internal/types"
)

// ============================================================================
// Mock UICallback
// ============================================================================

type mockUICallback struct {
	SilentUICallback
	warnings []string
}

func (m *mockUICallback) ShowWarning(title, _ string) {
	m.warnings = append(m.warnings, title)
}

// failingReport builds a report with two passing and two failing conditions.
func failingReport() *types.StatusReport {
	report := types.NewStatusReport()
	report.Set("Coverage", "OK")
	report.Set("Bugs", "ERROR (5 is greater than 0)")
	report.Set("Code Smells", "OK")
	report.Set("Duplicated Lines (%)", "ERROR (10.0% is greater than 3%)")
	return report
}

// ============================================================================
// RunCheck Tests
// ============================================================================

func TestRunCheck_Passed(t *testing.T) {
	provider := &MockGateProvider{}
	target := Target{ProjectKey: "my:project", Branch: "main"}
	svc := NewCheckService(provider, nil, nil, nil, target, false)

	result, err := svc.RunCheck(context.Background(), CheckOptions{})
	if err != nil {
		t.Fatalf("RunCheck returned unexpected error: %v", err)
	}

	if !result.Passed {
		t.Error("Expected check to pass")
	}
	if len(result.Failures) != 0 {
		t.Errorf("Expected no failures, got %v", result.Failures)
	}
	if result.Gate != "Sonar way" {
		t.Errorf("Expected gate name 'Sonar way', got %q", result.Gate)
	}
	if result.Project != "my:project" || result.Branch != "main" {
		t.Errorf("Expected target carried onto result, got %q @ %q", result.Project, result.Branch)
	}
	if result.SchemaVersion != types.CheckSchemaVersion {
		t.Errorf("Expected schema version %q, got %q", types.CheckSchemaVersion, result.SchemaVersion)
	}
	if _, err := time.Parse(time.RFC3339, result.GeneratedAt); err != nil {
		t.Errorf("Expected RFC 3339 timestamp, got %q: %v", result.GeneratedAt, err)
	}
}

// TestRunCheck_FailuresInReportOrder verifies the verdict and that failing
// condition names are collected in report order, explanations included.
func TestRunCheck_FailuresInReportOrder(t *testing.T) {
	provider := &MockGateProvider{
		FetchStatusFunc: func(ctx context.Context) (*types.StatusReport, error) {
			return failingReport(), nil
		},
	}
	svc := NewCheckService(provider, nil, nil, nil, Target{ProjectKey: "p"}, false)

	result, err := svc.RunCheck(context.Background(), CheckOptions{})
	if err != nil {
		t.Fatalf("RunCheck returned unexpected error: %v", err)
	}

	if result.Passed {
		t.Error("Expected check to fail")
	}
	want := []string{"Bugs", "Duplicated Lines (%)"}
	if len(result.Failures) != len(want) {
		t.Fatalf("Expected %d failures, got %v", len(want), result.Failures)
	}
	for i := range want {
		if result.Failures[i] != want[i] {
			t.Errorf("Failure %d: got %q, want %q", i, result.Failures[i], want[i])
		}
	}
}

func TestRunCheck_ResolveError(t *testing.T) {
	provider := &MockGateProvider{
		ResolveProjectGateFunc: func(ctx context.Context) (*types.QualityGate, error) {
			return nil, NewUnknownQualityGateError("ghost")
		},
	}
	history := &MockHistoryRecorder{}
	notifier := &MockCheckNotifier{}
	svc := NewCheckService(provider, history, notifier, nil, Target{ProjectKey: "p"}, false)

	_, err := svc.RunCheck(context.Background(), CheckOptions{})
	if !IsUnknownQualityGate(err) {
		t.Fatalf("Expected UnknownQualityGateError, got %v", err)
	}
	if len(history.Recorded) != 0 || len(notifier.Notified) != 0 {
		t.Error("Expected no side effects after a failed resolve")
	}
}

func TestRunCheck_FetchError(t *testing.T) {
	provider := &MockGateProvider{
		FetchStatusFunc: func(ctx context.Context) (*types.StatusReport, error) {
			return nil, fmt.Errorf("project status: %w: dial refused", ErrServerUnreachable)
		},
	}
	svc := NewCheckService(provider, nil, nil, nil, Target{ProjectKey: "p"}, false)

	_, err := svc.RunCheck(context.Background(), CheckOptions{})
	if !errors.Is(err, ErrServerUnreachable) {
		t.Fatalf("Expected transport error to propagate, got %v", err)
	}
}

// ============================================================================
// History Side Effect Tests
// ============================================================================

func TestRunCheck_RecordsHistory(t *testing.T) {
	provider := &MockGateProvider{}
	history := &MockHistoryRecorder{}
	svc := NewCheckService(provider, history, nil, nil, Target{ProjectKey: "p"}, false)

	result, err := svc.RunCheck(context.Background(), CheckOptions{})
	if err != nil {
		t.Fatalf("RunCheck returned unexpected error: %v", err)
	}

	if len(history.Recorded) != 1 {
		t.Fatalf("Expected 1 recorded run, got %d", len(history.Recorded))
	}
	if history.Recorded[0] != result {
		t.Error("Expected the returned result to be recorded")
	}
}

func TestRunCheck_SkipHistory(t *testing.T) {
	provider := &MockGateProvider{}
	history := &MockHistoryRecorder{}
	svc := NewCheckService(provider, history, nil, nil, Target{ProjectKey: "p"}, false)

	if _, err := svc.RunCheck(context.Background(), CheckOptions{SkipHistory: true}); err != nil {
		t.Fatalf("RunCheck returned unexpected error: %v", err)
	}
	if len(history.Recorded) != 0 {
		t.Errorf("Expected no recorded runs, got %d", len(history.Recorded))
	}
}

// TestRunCheck_HistoryFailureIsWarning verifies a broken history database
// degrades to a warning without changing the verdict.
func TestRunCheck_HistoryFailureIsWarning(t *testing.T) {
	provider := &MockGateProvider{}
	history := &MockHistoryRecorder{
		RecordRunFunc: func(ctx context.Context, result *types.CheckResult) (string, error) {
			return "", fmt.Errorf("database is locked")
		},
	}
	ui := &mockUICallback{}
	svc := NewCheckService(provider, history, nil, ui, Target{ProjectKey: "p"}, false)

	result, err := svc.RunCheck(context.Background(), CheckOptions{})
	if err != nil {
		t.Fatalf("Expected history failure not to fail the run, got %v", err)
	}
	if !result.Passed {
		t.Error("Expected verdict unchanged by history failure")
	}
	if len(ui.warnings) != 1 || ui.warnings[0] != "History Not Recorded" {
		t.Errorf("Expected 'History Not Recorded' warning, got %v", ui.warnings)
	}
}

// ============================================================================
// Webhook Side Effect Tests
// ============================================================================

func TestRunCheck_NotifiesOnFailure(t *testing.T) {
	provider := &MockGateProvider{
		FetchStatusFunc: func(ctx context.Context) (*types.StatusReport, error) {
			return failingReport(), nil
		},
	}
	notifier := &MockCheckNotifier{}
	svc := NewCheckService(provider, nil, notifier, nil, Target{ProjectKey: "p"}, false)

	if _, err := svc.RunCheck(context.Background(), CheckOptions{}); err != nil {
		t.Fatalf("RunCheck returned unexpected error: %v", err)
	}
	if len(notifier.Notified) != 1 {
		t.Errorf("Expected 1 notification for a failed run, got %d", len(notifier.Notified))
	}
}

func TestRunCheck_NoNotificationOnSuccessByDefault(t *testing.T) {
	provider := &MockGateProvider{}
	notifier := &MockCheckNotifier{}
	svc := NewCheckService(provider, nil, notifier, nil, Target{ProjectKey: "p"}, false)

	if _, err := svc.RunCheck(context.Background(), CheckOptions{}); err != nil {
		t.Fatalf("RunCheck returned unexpected error: %v", err)
	}
	if len(notifier.Notified) != 0 {
		t.Errorf("Expected no notification for a passing run, got %d", len(notifier.Notified))
	}
}

func TestRunCheck_NotifyOnSuccess(t *testing.T) {
	provider := &MockGateProvider{}
	notifier := &MockCheckNotifier{}
	svc := NewCheckService(provider, nil, notifier, nil, Target{ProjectKey: "p"}, true)

	if _, err := svc.RunCheck(context.Background(), CheckOptions{}); err != nil {
		t.Fatalf("RunCheck returned unexpected error: %v", err)
	}
	if len(notifier.Notified) != 1 {
		t.Errorf("Expected notification for a passing run, got %d", len(notifier.Notified))
	}
}

func TestRunCheck_SkipNotify(t *testing.T) {
	provider := &MockGateProvider{
		FetchStatusFunc: func(ctx context.Context) (*types.StatusReport, error) {
			return failingReport(), nil
		},
	}
	notifier := &MockCheckNotifier{}
	svc := NewCheckService(provider, nil, notifier, nil, Target{ProjectKey: "p"}, false)

	if _, err := svc.RunCheck(context.Background(), CheckOptions{SkipNotify: true}); err != nil {
		t.Fatalf("RunCheck returned unexpected error: %v", err)
	}
	if len(notifier.Notified) != 0 {
		t.Errorf("Expected no notification when skipped, got %d", len(notifier.Notified))
	}
}

func TestRunCheck_NotifyFailureIsWarning(t *testing.T) {
	provider := &MockGateProvider{
		FetchStatusFunc: func(ctx context.Context) (*types.StatusReport, error) {
			return failingReport(), nil
		},
	}
	notifier := &MockCheckNotifier{
		NotifyCheckFunc: func(ctx context.Context, result *types.CheckResult) error {
			return fmt.Errorf("receiver answered 500")
		},
	}
	ui := &mockUICallback{}
	svc := NewCheckService(provider, nil, notifier, ui, Target{ProjectKey: "p"}, false)

	if _, err := svc.RunCheck(context.Background(), CheckOptions{}); err != nil {
		t.Fatalf("Expected webhook failure not to fail the run, got %v", err)
	}
	if len(ui.warnings) != 1 || ui.warnings[0] != "Webhook Not Delivered" {
		t.Errorf("Expected 'Webhook Not Delivered' warning, got %v", ui.warnings)
	}
}

// ============================================================================
// Formatting Tests
// ============================================================================

func TestFormatStatusTable_Failed(t *testing.T) {
	report := types.NewStatusReport()
	report.Set("Coverage", "OK")
	report.Set("Bugs", "ERROR (5 is greater than 0)")

	result := &types.CheckResult{
		Gate:     "Sonar way",
		Passed:   false,
		Report:   report,
		Failures: []string{"Bugs"},
	}

	got := FormatStatusTable(result)
	want := "=== Quality Gate: Sonar way ===\n\n" +
		"  Coverage .................... OK\n" +
		"  Bugs ........................ ERROR (5 is greater than 0)\n" +
		"\nResult: FAILED (1 of 2 conditions failing)\n"
	if got != want {
		t.Errorf("FormatStatusTable output mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatStatusTable_Passed(t *testing.T) {
	report := types.NewStatusReport()
	report.Set("Coverage", "OK")

	result := &types.CheckResult{Gate: "Strict", Passed: true, Report: report}

	got := FormatStatusTable(result)
	if !strings.Contains(got, "Result: PASSED (1 condition)\n") {
		t.Errorf("Expected singular condition count, got:\n%s", got)
	}
}

func TestFormatStatusTable_NoConditions(t *testing.T) {
	result := &types.CheckResult{Gate: "Empty", Passed: true, Report: types.NewStatusReport()}

	got := FormatStatusTable(result)
	if !strings.Contains(got, "(no conditions evaluated)") {
		t.Errorf("Expected empty-report marker, got:\n%s", got)
	}
	if !strings.Contains(got, "Result: PASSED (0 conditions)") {
		t.Errorf("Expected zero-condition verdict, got:\n%s", got)
	}
}

func TestFormatRunTable(t *testing.T) {
	run := &types.RunRecord{
		ID:         "0198c2f3",
		Project:    "my:project",
		Branch:     "main",
		Gate:       "Sonar way",
		Passed:     false,
		Conditions: 2,
		Failures:   1,
		CreatedAt:  "2025-08-25T10:00:00Z",
	}
	conds := []types.RunCondition{
		{Position: 0, Metric: "Coverage", Status: "OK"},
		{Position: 1, Metric: "Bugs", Status: "ERROR (5 is greater than 0)"},
	}

	got := FormatRunTable(run, conds)

	if !strings.Contains(got, "=== Run 0198c2f3 ===") {
		t.Errorf("Expected run header, got:\n%s", got)
	}
	if !strings.Contains(got, "Project: my:project @ main") {
		t.Errorf("Expected project line with branch, got:\n%s", got)
	}
	if !strings.Contains(got, "Checked: 2025-08-25T10:00:00Z") {
		t.Errorf("Expected timestamp line, got:\n%s", got)
	}
	if !strings.Contains(got, "Result: FAILED (1 of 2 conditions failing)") {
		t.Errorf("Expected verdict line, got:\n%s", got)
	}
}

func TestFormatRunTable_NoBranchNoConditions(t *testing.T) {
	run := &types.RunRecord{ID: "x1", Project: "p", Gate: "g", Passed: true, CreatedAt: "2025-08-25T10:00:00Z"}

	got := FormatRunTable(run, nil)

	if !strings.Contains(got, "Project: p\n") {
		t.Errorf("Expected bare project line, got:\n%s", got)
	}
	if strings.Contains(got, "@") {
		t.Errorf("Expected no branch marker, got:\n%s", got)
	}
	if !strings.Contains(got, "(no conditions recorded)") {
		t.Errorf("Expected empty-conditions marker, got:\n%s", got)
	}
}

func TestFormatConditionLine_DotPadding(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Coverage", "  Coverage .................... OK\n"},
		// Names at or beyond the column width keep a minimum of three dots.
		{"An Extremely Long Metric Display Name", "  An Extremely Long Metric Display Name ... OK\n"},
	}
	for _, tt := range tests {
		if got := formatConditionLine(tt.name, "OK"); got != tt.want {
			t.Errorf("formatConditionLine(%q): got %q, want %q", tt.name, got, tt.want)
		}
	}
}
