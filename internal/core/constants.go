package core

// File and directory names
const (
	// ReportDir is the root directory for all gate-report files.
	// Uses dotfile convention so it stays out of the way of project sources,
	// same as .git, .github, and similar per-project tool directories.
	ReportDir = ".gate-report"
	// ConfigFile is the configuration filename
	ConfigFile = "config.yml"
	// HistoryFile is the SQLite run history filename
	HistoryFile = "history.db"
)

// Full paths relative to the project root.
// Use these instead of manually concatenating ReportDir + "/" + filename.
const (
	// ConfigPath is the full path to config.yml
	ConfigPath = ReportDir + "/" + ConfigFile
	// HistoryPath is the full path to history.db
	HistoryPath = ReportDir + "/" + HistoryFile
)

// Transport modes for talking to the server.
const (
	// ModeStandalone builds each web service URL as a templated string.
	ModeStandalone = "standalone"
	// ModeClient issues structured requests resolved against the base URL.
	ModeClient = "client"
)

// Environment variables. Values here override the corresponding config.yml
// fields; SONAR_TOKEN and GATE_REPORT_WEBHOOK_SECRET are only ever read from
// the environment and never written to disk.
const (
	EnvServerURL      = "SONAR_URL"
	EnvToken          = "SONAR_TOKEN"
	EnvMode           = "GATE_REPORT_MODE"
	EnvProject        = "GATE_REPORT_PROJECT"
	EnvBranch         = "GATE_REPORT_BRANCH"
	EnvReportDir      = "GATE_REPORT_DIR"
	EnvWebhookURL     = "GATE_REPORT_WEBHOOK_URL"
	EnvWebhookSecret  = "GATE_REPORT_WEBHOOK_SECRET"
	EnvTimeoutSeconds = "GATE_REPORT_TIMEOUT_SECONDS"
)

// Defaults applied when config.yml and the environment leave a field empty.
const (
	// DefaultTimeoutSeconds bounds every server call.
	DefaultTimeoutSeconds = 30
	// DefaultReportOutputDir is where rendered reports land.
	DefaultReportOutputDir = "reports"
)

// DefaultReportFormats lists the formats rendered when none are configured.
var DefaultReportFormats = []string{"md"}
