package core

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/qualitywatch/gate-report/internal/types"
)

//go:generate mockgen -source=gate_service.go -destination=gate_service_mock_test.go -package=core

// GateService is the transport-agnostic contract for the quality gate web
// services. Both transports speak the same wire protocol; they differ only
// in how each request URL is assembled. ctx is accepted on every call for
// cancellation of network operations.
type GateService interface {
	// ListGates fetches all quality gate definitions plus the server default.
	ListGates(ctx context.Context) (*GateListResponse, error)
	// ShowGate fetches one gate's full definition by gate name.
	ShowGate(ctx context.Context, name string) (json.RawMessage, error)
	// ProjectNavigation fetches the project's component navigation data,
	// which names the gate assigned to the project.
	ProjectNavigation(ctx context.Context) (*NavigationResponse, error)
	// ProjectStatus fetches the project's evaluated gate conditions.
	ProjectStatus(ctx context.Context) (*ProjectStatusResponse, error)
	// MetricDescriptor fetches the descriptor for a single metric key.
	MetricDescriptor(ctx context.Context, metricKey string) (*MetricsResponse, error)
}

// GateListResponse is the wire shape of the gate list web service.
type GateListResponse struct {
	Default string    `json:"default"`
	Gates   []GateRef `json:"qualitygates"`
}

// GateRef is one gate entry in the gate list.
type GateRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NavigationResponse is the wire shape of the component navigation web service.
// Only the assigned gate key is consumed.
type NavigationResponse struct {
	QualityGate struct {
		Key string `json:"key"`
	} `json:"qualityGate"`
}

// ProjectStatusResponse is the wire shape of the project status web service.
type ProjectStatusResponse struct {
	ProjectStatus ProjectStatus `json:"projectStatus"`
}

// ProjectStatus carries the overall gate verdict and its evaluated conditions.
type ProjectStatus struct {
	Status     string            `json:"status"`
	Conditions []ConditionStatus `json:"conditions"`
}

// ConditionStatus is one evaluated condition as the server reports it.
type ConditionStatus struct {
	Status         string `json:"status"`
	MetricKey      string `json:"metricKey"`
	ActualValue    string `json:"actualValue"`
	ErrorThreshold string `json:"errorThreshold"`
	Comparator     string `json:"comparator"`
}

// MetricsResponse is the wire shape of the measures component web service.
// The first metric entry describes the requested key.
type MetricsResponse struct {
	Metrics []types.Metric `json:"metrics"`
}

// Target identifies the project whose gate is being queried. Branch may be
// empty, in which case the server's main branch is used.
type Target struct {
	ProjectKey string
	Branch     string
}

// NewGateService builds the transport selected by cfg.Server.Mode. An empty
// mode falls back to standalone. The token may be empty for anonymous servers.
func NewGateService(cfg types.Config, token string) (GateService, error) {
	timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = DefaultTimeoutSeconds * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}
	target := Target{ProjectKey: cfg.Project.Key, Branch: cfg.Project.Branch}

	switch cfg.Server.Mode {
	case ModeStandalone, "":
		return NewStandaloneGateService(cfg.Server.URL, target, token, httpClient), nil
	case ModeClient:
		return NewClientGateService(cfg.Server.URL, target, token, httpClient)
	default:
		return nil, NewConfigValidationError("server.mode", fmt.Sprintf("%q is not a transport mode (expected %q or %q)", cfg.Server.Mode, ModeStandalone, ModeClient))
	}
}

// fetchJSON performs an authenticated GET against rawURL and decodes the
// response body into out. Transport failures map to ErrServerUnreachable,
// non-2xx statuses to ErrBadRequest; op names the web service for error
// messages.
func fetchJSON(ctx context.Context, client *http.Client, rawURL, token, op string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return unreachableError(op, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return badRequestError(op, resp.StatusCode, bodySnippet(resp.Body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: invalid response: %w", op, err)
	}

	return nil
}

// bodySnippet reads the start of an error response body for diagnostics.
// Bodies are capped so a broken server cannot flood the terminal.
func bodySnippet(r io.Reader) string {
	const maxSnippet = 512
	data, err := io.ReadAll(io.LimitReader(r, maxSnippet))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
