// Package types defines data structures for gate-report configuration and results.
package types

// CheckResult is the top-level result for the check command. It aggregates
// the resolved gate, the per-condition status report, and a pass/fail verdict.
type CheckResult struct {
	SchemaVersion string        `json:"schema_version"`
	Project       string        `json:"project"`
	Branch        string        `json:"branch,omitempty"`
	Gate          string        `json:"gate"`
	Passed        bool          `json:"passed"`
	Report        *StatusReport `json:"conditions"`
	Failures      []string      `json:"failures,omitempty"` // Display names of failing conditions, report order
	GeneratedAt   string        `json:"generated_at"`       // RFC 3339
}

// CheckSchemaVersion is the schema version stamped into CheckResult.
const CheckSchemaVersion = "1"

// RunRecord is one persisted check run.
type RunRecord struct {
	ID         string `json:"id"`
	Project    string `json:"project"`
	Branch     string `json:"branch,omitempty"`
	Gate       string `json:"gate"`
	Passed     bool   `json:"passed"`
	Conditions int    `json:"conditions"`
	Failures   int    `json:"failures"`
	CreatedAt  string `json:"created_at"` // RFC 3339
}

// RunCondition is one persisted condition row belonging to a run, in report order.
type RunCondition struct {
	RunID    string `json:"run_id"`
	Position int    `json:"position"`
	Metric   string `json:"metric"`
	Status   string `json:"status"`
}
