package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/qualitywatch/gate-report/internal/types"
)

// CheckOptions configures which side effects a check run performs.
type CheckOptions struct {
	SkipHistory bool // Don't record the run in the history database
	SkipNotify  bool // Don't send the webhook event
}

// HistoryRecorder persists completed check runs. The history package
// provides the SQLite implementation.
type HistoryRecorder interface {
	RecordRun(ctx context.Context, result *types.CheckResult) (string, error)
}

// CheckNotifier delivers a completed check result to an external receiver.
// The notify package provides the webhook implementation.
type CheckNotifier interface {
	NotifyCheck(ctx context.Context, result *types.CheckResult) error
}

// CheckServiceInterface defines the contract for the check command.
type CheckServiceInterface interface {
	// RunCheck resolves the project's gate, evaluates its conditions, and
	// returns the verdict. History and webhook failures degrade to warnings;
	// only gate resolution and status fetching can fail the run.
	// ctx controls cancellation of the underlying web service calls.
	RunCheck(ctx context.Context, opts CheckOptions) (*types.CheckResult, error)
}

// Compile-time interface satisfaction check for CheckService.
var _ CheckServiceInterface = (*CheckService)(nil)

// CheckService orchestrates a full gate evaluation: resolve, fetch, verdict,
// then the optional history and webhook side effects.
type CheckService struct {
	provider        GateProviderInterface
	history         HistoryRecorder // may be nil
	notifier        CheckNotifier   // may be nil
	ui              UICallback
	target          Target
	notifyOnSuccess bool
}

// NewCheckService creates a CheckService. history and notifier may be nil,
// which disables the corresponding side effect.
func NewCheckService(
	provider GateProviderInterface,
	history HistoryRecorder,
	notifier CheckNotifier,
	ui UICallback,
	target Target,
	notifyOnSuccess bool,
) *CheckService {
	if ui == nil {
		ui = &SilentUICallback{}
	}
	return &CheckService{
		provider:        provider,
		history:         history,
		notifier:        notifier,
		ui:              ui,
		target:          target,
		notifyOnSuccess: notifyOnSuccess,
	}
}

// RunCheck resolves the gate, fetches condition statuses, and derives the
// verdict. The run passes when no condition status begins with "ERROR".
func (s *CheckService) RunCheck(ctx context.Context, opts CheckOptions) (*types.CheckResult, error) {
	gate, err := s.provider.ResolveProjectGate(ctx)
	if err != nil {
		return nil, err
	}

	report, err := s.provider.FetchStatus(ctx)
	if err != nil {
		return nil, err
	}

	result := &types.CheckResult{
		SchemaVersion: types.CheckSchemaVersion,
		Project:       s.target.ProjectKey,
		Branch:        s.target.Branch,
		Gate:          gate.Name,
		Report:        report,
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	var failures []string
	for _, name := range report.Names() {
		status, _ := report.Get(name)
		if strings.HasPrefix(status, types.ConditionStatusError) {
			failures = append(failures, name)
		}
	}
	result.Failures = failures
	result.Passed = len(failures) == 0

	// Side effects never change the verdict. A broken history database or
	// webhook receiver surfaces as a warning, not a failed check.
	if s.history != nil && !opts.SkipHistory {
		if _, err := s.history.RecordRun(ctx, result); err != nil {
			s.ui.ShowWarning("History Not Recorded", fmt.Sprintf("Could not record run: %s", err.Error()))
		}
	}

	if s.notifier != nil && !opts.SkipNotify && (!result.Passed || s.notifyOnSuccess) {
		if err := s.notifier.NotifyCheck(ctx, result); err != nil {
			s.ui.ShowWarning("Webhook Not Delivered", fmt.Sprintf("Could not notify receiver: %s", err.Error()))
		}
	}

	return result, nil
}

// FormatStatusTable renders a check result as a plain-text table for
// terminal output.
func FormatStatusTable(result *types.CheckResult) string {
	var out string
	out += fmt.Sprintf("=== Quality Gate: %s ===\n\n", result.Gate)

	for _, name := range result.Report.Names() {
		status, _ := result.Report.Get(name)
		out += formatConditionLine(name, status)
	}

	if result.Report.Len() == 0 {
		out += "  (no conditions evaluated)\n"
	}

	verdict := "PASSED"
	detail := Pluralize(result.Report.Len(), "condition", "conditions")
	if !result.Passed {
		verdict = "FAILED"
		detail = fmt.Sprintf("%d of %s failing", len(result.Failures), detail)
	}
	out += fmt.Sprintf("\nResult: %s (%s)\n", verdict, detail)

	return out
}

// FormatRunTable renders a recorded run with its condition rows for
// terminal output.
func FormatRunTable(run *types.RunRecord, conds []types.RunCondition) string {
	var out string
	out += fmt.Sprintf("=== Run %s ===\n\n", run.ID)

	project := run.Project
	if run.Branch != "" {
		project += " @ " + run.Branch
	}
	out += fmt.Sprintf("  Project: %s\n", project)
	out += fmt.Sprintf("  Gate:    %s\n", run.Gate)
	out += fmt.Sprintf("  Checked: %s\n\n", run.CreatedAt)

	for _, c := range conds {
		out += formatConditionLine(c.Metric, c.Status)
	}
	if len(conds) == 0 {
		out += "  (no conditions recorded)\n"
	}

	verdict := "PASSED"
	detail := Pluralize(run.Conditions, "condition", "conditions")
	if !run.Passed {
		verdict = "FAILED"
		detail = fmt.Sprintf("%d of %s failing", run.Failures, detail)
	}
	out += fmt.Sprintf("\nResult: %s (%s)\n", verdict, detail)

	return out
}

// formatConditionLine produces a dotted-line format: "  Name ........... STATUS"
func formatConditionLine(name, status string) string {
	dots := 28 - len(name)
	if dots < 3 {
		dots = 3
	}
	return fmt.Sprintf("  %s %s %s\n", name, strings.Repeat(".", dots), status)
}
