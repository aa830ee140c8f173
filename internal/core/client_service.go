package core

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Compile-time interface satisfaction check.
var _ GateService = (*ClientGateService)(nil)

// ClientGateService talks to the server through structured request objects:
// each call is a path plus a parameter set, resolved against the parsed base
// URL. This matches how in-process extensions issue requests through a
// server-provided client rather than assembling URL strings.
type ClientGateService struct {
	base       *url.URL
	target     Target
	token      string
	httpClient *http.Client
}

// wsRequest is one structured web service request.
type wsRequest struct {
	path   string
	params url.Values
}

// NewClientGateService creates a ClientGateService. Fails if baseURL cannot
// be parsed, since every request resolves against it.
func NewClientGateService(baseURL string, target Target, token string, httpClient *http.Client) (*ClientGateService, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", baseURL, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ClientGateService{
		base:       base,
		target:     target,
		token:      token,
		httpClient: httpClient,
	}, nil
}

// do resolves a structured request against the base URL and decodes the response.
func (s *ClientGateService) do(ctx context.Context, req wsRequest, op string, out any) error {
	resolved := s.base.JoinPath(req.path)
	resolved.RawQuery = req.params.Encode()
	return fetchJSON(ctx, s.httpClient, resolved.String(), s.token, op, out)
}

// projectParams returns the parameter set shared by project-scoped requests.
func (s *ClientGateService) projectParams(componentParam string) url.Values {
	params := url.Values{}
	params.Set(componentParam, s.target.ProjectKey)
	if s.target.Branch != "" {
		params.Set("branch", s.target.Branch)
	}
	return params
}

// ListGates fetches all gate definitions plus the server default.
func (s *ClientGateService) ListGates(ctx context.Context) (*GateListResponse, error) {
	var out GateListResponse
	req := wsRequest{path: "api/qualitygates/list", params: url.Values{}}
	if err := s.do(ctx, req, "list quality gates", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ShowGate fetches one gate's definition by name.
func (s *ClientGateService) ShowGate(ctx context.Context, name string) (json.RawMessage, error) {
	var out json.RawMessage
	params := url.Values{}
	params.Set("name", name)
	req := wsRequest{path: "api/qualitygates/show", params: params}
	if err := s.do(ctx, req, "show quality gate", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProjectNavigation fetches the component navigation data for the target project.
func (s *ClientGateService) ProjectNavigation(ctx context.Context) (*NavigationResponse, error) {
	var out NavigationResponse
	req := wsRequest{path: "api/navigation/component", params: s.projectParams("component")}
	if err := s.do(ctx, req, "fetch project navigation", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProjectStatus fetches the evaluated gate conditions for the target project.
func (s *ClientGateService) ProjectStatus(ctx context.Context) (*ProjectStatusResponse, error) {
	var out ProjectStatusResponse
	req := wsRequest{path: "api/qualitygates/project_status", params: s.projectParams("projectKey")}
	if err := s.do(ctx, req, "fetch project status", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MetricDescriptor fetches the descriptor for a single metric key.
func (s *ClientGateService) MetricDescriptor(ctx context.Context, metricKey string) (*MetricsResponse, error) {
	var out MetricsResponse
	params := s.projectParams("component")
	params.Set("additionalFields", "metrics")
	params.Set("metricKeys", metricKey)
	req := wsRequest{path: "api/measures/component", params: params}
	if err := s.do(ctx, req, "fetch metric descriptor", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
