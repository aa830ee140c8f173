// Package notify delivers completed check results to a webhook receiver as
// CloudEvents 1.0 envelopes.
package notify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ceevent "github.com/cloudevents/sdk-go/v2/event"
	"github.com/google/uuid"

	"github.com/qualitywatch/gate-report/internal/core"
	"github.com/qualitywatch/gate-report/internal/types"
)

// Event types emitted for completed checks.
const (
	EventTypeCheckFailed = "com.qualitywatch.gatereport.check.failed"
	EventTypeCheckPassed = "com.qualitywatch.gatereport.check.passed"
)

// eventSource identifies this tool in the CloudEvents source attribute.
const eventSource = "gate-report"

// SignatureHeader carries the hex HMAC-SHA256 of the request body, keyed by
// the shared webhook secret. Receivers recompute it to authenticate the sender.
const SignatureHeader = "X-Webhook-Signature"

// Compile-time check that WebhookNotifier satisfies the notifier contract.
var _ core.CheckNotifier = (*WebhookNotifier)(nil)

// WebhookNotifier posts check results to a single HTTP endpoint.
type WebhookNotifier struct {
	endpoint   string
	secret     string
	httpClient *http.Client
}

// NewWebhookNotifier creates a WebhookNotifier. An empty secret disables
// request signing.
func NewWebhookNotifier(endpoint, secret string, timeout time.Duration) *WebhookNotifier {
	if timeout <= 0 {
		timeout = core.DefaultTimeoutSeconds * time.Second
	}
	return &WebhookNotifier{
		endpoint:   endpoint,
		secret:     secret,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// checkPayload is the event data carried inside the CloudEvents envelope.
type checkPayload struct {
	Project    string   `json:"project"`
	Branch     string   `json:"branch,omitempty"`
	Gate       string   `json:"gate"`
	Passed     bool     `json:"passed"`
	Conditions int      `json:"conditions"`
	Failures   []string `json:"failures,omitempty"`
	CheckedAt  string   `json:"checked_at"`
}

// NotifyCheck wraps the result in a CloudEvents envelope and posts it in
// structured mode. The event type distinguishes passed from failed runs so
// receivers can subscribe to failures only.
func (n *WebhookNotifier) NotifyCheck(ctx context.Context, result *types.CheckResult) error {
	eventType := EventTypeCheckPassed
	if !result.Passed {
		eventType = EventTypeCheckFailed
	}

	ev := ceevent.New()
	ev.SetID(uuid.NewString())
	ev.SetSource(eventSource)
	ev.SetType(eventType)
	ev.SetSubject(result.Project)
	ev.SetTime(time.Now().UTC())

	payload := checkPayload{
		Project:    result.Project,
		Branch:     result.Branch,
		Gate:       result.Gate,
		Passed:     result.Passed,
		Conditions: result.Report.Len(),
		Failures:   result.Failures,
		CheckedAt:  result.GeneratedAt,
	}
	if err := ev.SetData(ceevent.ApplicationJSON, payload); err != nil {
		return fmt.Errorf("failed to set event data: %w", err)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", ceevent.ApplicationCloudEventsJSON)
	if n.secret != "" {
		req.Header.Set(SignatureHeader, Sign(body, n.secret))
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver webhook: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook receiver answered %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	return nil
}

// Sign computes the hex HMAC-SHA256 of body keyed by secret. Exported so
// receivers and tests verify signatures the same way they are produced.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
