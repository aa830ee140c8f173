package core

import (
	"context"

	"github.com/qualitywatch/gate-report/internal/types"
)

// ============================================================================
// MockGateProvider
// ============================================================================

// MockGateProvider implements GateProviderInterface for testing
type MockGateProvider struct {
	ListQualityGatesFunc   func(ctx context.Context) ([]types.QualityGate, error)
	ResolveProjectGateFunc func(ctx context.Context) (*types.QualityGate, error)
	FetchStatusFunc        func(ctx context.Context) (*types.StatusReport, error)

	// Call tracking
	ListCalls    int
	ResolveCalls int
	FetchCalls   int
}

// ListQualityGates implements GateProviderInterface
func (m *MockGateProvider) ListQualityGates(ctx context.Context) ([]types.QualityGate, error) {
	m.ListCalls++
	if m.ListQualityGatesFunc != nil {
		return m.ListQualityGatesFunc(ctx)
	}
	return []types.QualityGate{{ID: "g1", Name: "Sonar way", IsDefault: true}}, nil
}

// ResolveProjectGate implements GateProviderInterface
func (m *MockGateProvider) ResolveProjectGate(ctx context.Context) (*types.QualityGate, error) {
	m.ResolveCalls++
	if m.ResolveProjectGateFunc != nil {
		return m.ResolveProjectGateFunc(ctx)
	}
	return &types.QualityGate{ID: "g1", Name: "Sonar way", IsDefault: true}, nil
}

// FetchStatus implements GateProviderInterface
func (m *MockGateProvider) FetchStatus(ctx context.Context) (*types.StatusReport, error) {
	m.FetchCalls++
	if m.FetchStatusFunc != nil {
		return m.FetchStatusFunc(ctx)
	}
	report := types.NewStatusReport()
	report.Set("Coverage", "OK")
	return report, nil
}

// ============================================================================
// MockHistoryRecorder
// ============================================================================

// MockHistoryRecorder implements HistoryRecorder for testing
type MockHistoryRecorder struct {
	RecordRunFunc func(ctx context.Context, result *types.CheckResult) (string, error)

	// Call tracking
	Recorded []*types.CheckResult
}

// RecordRun implements HistoryRecorder
func (m *MockHistoryRecorder) RecordRun(ctx context.Context, result *types.CheckResult) (string, error) {
	m.Recorded = append(m.Recorded, result)
	if m.RecordRunFunc != nil {
		return m.RecordRunFunc(ctx, result)
	}
	return "run-0001", nil
}

// ============================================================================
// MockCheckNotifier
// ============================================================================

// MockCheckNotifier implements CheckNotifier for testing
type MockCheckNotifier struct {
	NotifyCheckFunc func(ctx context.Context, result *types.CheckResult) error

	// Call tracking
	Notified []*types.CheckResult
}

// NotifyCheck implements CheckNotifier
func (m *MockCheckNotifier) NotifyCheck(ctx context.Context, result *types.CheckResult) error {
	m.Notified = append(m.Notified, result)
	if m.NotifyCheckFunc != nil {
		return m.NotifyCheckFunc(ctx, result)
	}
	return nil
}
