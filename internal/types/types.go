package types

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Project ProjectConfig `yaml:"project"`
	Report  ReportConfig  `yaml:"report,omitempty"`
	Notify  NotifyConfig  `yaml:"notify,omitempty"`
}

type ServerConfig struct {
	URL            string `yaml:"url"`
	Mode           string `yaml:"mode,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
}

type ProjectConfig struct {
	Key    string `yaml:"key"`
	Branch string `yaml:"branch,omitempty"`
}

type ReportConfig struct {
	Dir     string   `yaml:"dir,omitempty"`
	Formats []string `yaml:"formats,omitempty"` // "md", "html"
}

type NotifyConfig struct {
	WebhookURL string `yaml:"webhook_url,omitempty"`
	OnSuccess  bool   `yaml:"on_success,omitempty"`
	// Webhook secret is read from GATE_REPORT_WEBHOOK_SECRET, never stored here.
}

// QualityGate is a quality gate as defined on the server.
type QualityGate struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
	Conf      string `json:"conf,omitempty"` // Verbatim gate definition returned by the server
}

// Condition is one evaluated quality gate condition for a project.
type Condition struct {
	Status         string `json:"status"`
	MetricKey      string `json:"metric_key"`
	ActualValue    string `json:"actual_value,omitempty"`
	ErrorThreshold string `json:"error_threshold,omitempty"`
	Comparator     string `json:"comparator,omitempty"`
	MetricName     string `json:"metric_name,omitempty"`
	MetricType     string `json:"metric_type,omitempty"`
}

// Metric describes a measured metric's key, display name, and value type.
type Metric struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Condition status values as reported by the server.
const (
	ConditionStatusOK    = "OK"
	ConditionStatusError = "ERROR"
)

// Metric value types that receive special formatting in explanations.
const (
	MetricTypeRating       = "RATING"
	MetricTypeWorkDuration = "WORK_DUR"
	MetricTypePercent      = "PERCENT"
	MetricTypeMillisec     = "MILLISEC"
)

// Condition comparators.
const (
	ComparatorGreaterThan = "GT"
	ComparatorLessThan    = "LT"
)
