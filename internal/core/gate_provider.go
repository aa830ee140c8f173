package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/qualitywatch/gate-report/internal/types"
)

// ProgressTracker receives progress updates during multi-request operations.
// Implementations live in the tui package; silentProgress is the default.
type ProgressTracker interface {
	SetTotal(total int)
	Increment(message string)
	Complete()
	Fail(err error)
}

// silentProgress is the default tracker when none is set.
type silentProgress struct{}

func (silentProgress) SetTotal(int)     {}
func (silentProgress) Increment(string) {}
func (silentProgress) Complete()        {}
func (silentProgress) Fail(error)       {}

// GateProviderInterface defines the contract for quality gate queries.
// GateProviderInterface enables mocking in tests and alternative providers.
// ctx is accepted for cancellation of the underlying web service calls.
type GateProviderInterface interface {
	ListQualityGates(ctx context.Context) ([]types.QualityGate, error)
	ResolveProjectGate(ctx context.Context) (*types.QualityGate, error)
	FetchStatus(ctx context.Context) (*types.StatusReport, error)
}

// Compile-time interface satisfaction check.
var _ GateProviderInterface = (*GateProvider)(nil)

// GateProvider assembles quality gate data from the individual web services.
// It is stateless between calls: every operation fetches fresh data.
type GateProvider struct {
	service  GateService
	progress ProgressTracker
}

// NewGateProvider creates a GateProvider on top of a transport.
func NewGateProvider(service GateService) *GateProvider {
	return &GateProvider{
		service:  service,
		progress: silentProgress{},
	}
}

// SetProgressTracker routes per-gate progress to the given tracker.
func (p *GateProvider) SetProgressTracker(tracker ProgressTracker) {
	if tracker == nil {
		tracker = silentProgress{}
	}
	p.progress = tracker
}

// ListQualityGates fetches every gate defined on the server, including each
// gate's full definition and whether it is the server default. One list call
// plus one show call per gate; a failing show call aborts the listing.
func (p *GateProvider) ListQualityGates(ctx context.Context) ([]types.QualityGate, error) {
	list, err := p.service.ListGates(ctx)
	if err != nil {
		return nil, err
	}

	p.progress.SetTotal(len(list.Gates))

	gates := make([]types.QualityGate, 0, len(list.Gates))
	for _, ref := range list.Gates {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		conf, err := p.service.ShowGate(ctx, ref.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch definition of gate %q: %w", ref.Name, err)
		}
		p.progress.Increment(ref.Name)

		gates = append(gates, types.QualityGate{
			ID:        ref.ID,
			Name:      ref.Name,
			IsDefault: ref.ID == list.Default,
			Conf:      string(conf),
		})
	}

	return gates, nil
}

// ResolveProjectGate returns the gate assigned to the target project. The
// navigation web service names the gate key; the gate list supplies the
// matching definition. A key absent from the list is an UnknownQualityGateError.
func (p *GateProvider) ResolveProjectGate(ctx context.Context) (*types.QualityGate, error) {
	nav, err := p.service.ProjectNavigation(ctx)
	if err != nil {
		return nil, err
	}
	key := nav.QualityGate.Key

	gates, err := p.ListQualityGates(ctx)
	if err != nil {
		return nil, err
	}

	if gate := FindGate(gates, key); gate != nil {
		return gate, nil
	}
	return nil, NewUnknownQualityGateError(key)
}

// FetchStatus evaluates the target project's gate conditions into an ordered
// status report keyed by metric display name. Failing conditions get a
// human-readable explanation appended to their status.
func (p *GateProvider) FetchStatus(ctx context.Context) (*types.StatusReport, error) {
	status, err := p.service.ProjectStatus(ctx)
	if err != nil {
		return nil, err
	}

	report := types.NewStatusReport()
	for _, cond := range status.ProjectStatus.Conditions {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		metric, err := p.metricDescriptor(ctx, cond.MetricKey)
		if err != nil {
			return nil, err
		}

		text := cond.Status
		if strings.HasPrefix(cond.Status, types.ConditionStatusError) {
			text += ErrorExplanation(cond.ActualValue, cond.ErrorThreshold, cond.Comparator, metric.Type)
		}
		report.Set(metric.Name, text)
	}

	return report, nil
}

// metricDescriptor fetches the display name and value type for a metric key.
// The measures web service answers with a metrics array; the first entry
// describes the requested key. An empty array means the server does not know
// the metric, which the caller cannot recover from.
func (p *GateProvider) metricDescriptor(ctx context.Context, metricKey string) (*types.Metric, error) {
	resp, err := p.service.MetricDescriptor(ctx, metricKey)
	if err != nil {
		return nil, err
	}
	if len(resp.Metrics) == 0 {
		return nil, fmt.Errorf("fetch metric descriptor %q: %w: empty metrics array", metricKey, ErrBadRequest)
	}
	return &resp.Metrics[0], nil
}
