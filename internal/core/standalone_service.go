package core

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// Compile-time interface satisfaction check.
var _ GateService = (*StandaloneGateService)(nil)

// StandaloneGateService talks to the server by templating each web service
// URL as a string. This matches how one-shot report generators call the API:
// no session state, every parameter query-escaped into the path.
type StandaloneGateService struct {
	baseURL    string
	target     Target
	token      string
	httpClient *http.Client
}

// NewStandaloneGateService creates a StandaloneGateService. baseURL must not
// end with a slash; NewGateService normalizes this from config.
func NewStandaloneGateService(baseURL string, target Target, token string, httpClient *http.Client) *StandaloneGateService {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &StandaloneGateService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		target:     target,
		token:      token,
		httpClient: httpClient,
	}
}

// ListGates fetches all gate definitions plus the server default.
func (s *StandaloneGateService) ListGates(ctx context.Context) (*GateListResponse, error) {
	var out GateListResponse
	requestURL := s.baseURL + "/api/qualitygates/list"
	if err := fetchJSON(ctx, s.httpClient, requestURL, s.token, "list quality gates", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ShowGate fetches one gate's definition by name. The name is query-escaped;
// gate names routinely contain spaces ("Sonar way").
func (s *StandaloneGateService) ShowGate(ctx context.Context, name string) (json.RawMessage, error) {
	var out json.RawMessage
	requestURL := s.baseURL + "/api/qualitygates/show?name=" + url.QueryEscape(name)
	if err := fetchJSON(ctx, s.httpClient, requestURL, s.token, "show quality gate", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProjectNavigation fetches the component navigation data for the target project.
func (s *StandaloneGateService) ProjectNavigation(ctx context.Context) (*NavigationResponse, error) {
	var out NavigationResponse
	requestURL := s.baseURL + "/api/navigation/component?component=" + url.QueryEscape(s.target.ProjectKey)
	if s.target.Branch != "" {
		requestURL += "&branch=" + url.QueryEscape(s.target.Branch)
	}
	if err := fetchJSON(ctx, s.httpClient, requestURL, s.token, "fetch project navigation", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProjectStatus fetches the evaluated gate conditions for the target project.
func (s *StandaloneGateService) ProjectStatus(ctx context.Context) (*ProjectStatusResponse, error) {
	var out ProjectStatusResponse
	requestURL := s.baseURL + "/api/qualitygates/project_status?projectKey=" + url.QueryEscape(s.target.ProjectKey)
	if s.target.Branch != "" {
		requestURL += "&branch=" + url.QueryEscape(s.target.Branch)
	}
	if err := fetchJSON(ctx, s.httpClient, requestURL, s.token, "fetch project status", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MetricDescriptor fetches the descriptor for a single metric key.
func (s *StandaloneGateService) MetricDescriptor(ctx context.Context, metricKey string) (*MetricsResponse, error) {
	var out MetricsResponse
	requestURL := s.baseURL + "/api/measures/component?additionalFields=metrics&component=" + url.QueryEscape(s.target.ProjectKey)
	if s.target.Branch != "" {
		requestURL += "&branch=" + url.QueryEscape(s.target.Branch)
	}
	requestURL += "&metricKeys=" + url.QueryEscape(metricKey)
	if err := fetchJSON(ctx, s.httpClient, requestURL, s.token, "fetch metric descriptor", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
