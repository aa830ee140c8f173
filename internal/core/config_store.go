package core

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"

	"github.com/qualitywatch/gate-report/internal/types"
)

// ConfigStore handles config.yml I/O operations
type ConfigStore interface {
	Load() (types.Config, error)
	Save(config types.Config) error
	Path() string
}

// FileConfigStore implements ConfigStore using the filesystem
type FileConfigStore struct {
	store *YAMLStore[types.Config]
}

// NewFileConfigStore creates a new FileConfigStore rooted at rootDir.
// Missing files surface as errors so callers can distinguish an
// uninitialized directory from an empty config.
func NewFileConfigStore(rootDir string) *FileConfigStore {
	return &FileConfigStore{
		store: NewYAMLStore[types.Config](rootDir, ConfigFile, false),
	}
}

// Path returns the config file path
func (s *FileConfigStore) Path() string {
	return s.store.Path()
}

// Load reads and parses config.yml
func (s *FileConfigStore) Load() (types.Config, error) {
	return s.store.Load()
}

// Save writes config.yml
func (s *FileConfigStore) Save(cfg types.Config) error {
	return s.store.Save(cfg)
}

// ApplyEnvOverrides overlays environment variables onto a loaded config.
// The file is the base layer; any variable that is set wins. Reading goes
// through viper so SONAR_URL and sonar_url are interchangeable.
func ApplyEnvOverrides(cfg types.Config) types.Config {
	v := viper.New()
	v.AutomaticEnv()

	if s := v.GetString(EnvServerURL); s != "" {
		cfg.Server.URL = s
	}
	if s := v.GetString(EnvMode); s != "" {
		cfg.Server.Mode = s
	}
	if n := v.GetInt(EnvTimeoutSeconds); n > 0 {
		cfg.Server.TimeoutSeconds = n
	}
	if s := v.GetString(EnvProject); s != "" {
		cfg.Project.Key = s
	}
	if s := v.GetString(EnvBranch); s != "" {
		cfg.Project.Branch = s
	}
	if s := v.GetString(EnvReportDir); s != "" {
		cfg.Report.Dir = s
	}
	if s := v.GetString(EnvWebhookURL); s != "" {
		cfg.Notify.WebhookURL = s
	}

	return cfg
}

// ApplyDefaults fills empty optional fields with their defaults.
func ApplyDefaults(cfg *types.Config) {
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = ModeStandalone
	}
	if cfg.Server.TimeoutSeconds <= 0 {
		cfg.Server.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if cfg.Report.Dir == "" {
		cfg.Report.Dir = DefaultReportOutputDir
	}
	if len(cfg.Report.Formats) == 0 {
		cfg.Report.Formats = append([]string(nil), DefaultReportFormats...)
	}
	cfg.Server.URL = strings.TrimRight(cfg.Server.URL, "/")
}

// ValidateConfig checks that required settings are present and well formed.
// Returns a ConfigValidationError naming the first offending field.
func ValidateConfig(cfg types.Config) error {
	if cfg.Server.URL == "" {
		return NewConfigValidationError("server.url", fmt.Sprintf("server URL is required (set %s or run 'gate-report init')", EnvServerURL))
	}
	u, err := url.Parse(cfg.Server.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return NewConfigValidationError("server.url", fmt.Sprintf("%q is not a valid http(s) URL", cfg.Server.URL))
	}
	if cfg.Server.Mode != ModeStandalone && cfg.Server.Mode != ModeClient {
		return NewConfigValidationError("server.mode", fmt.Sprintf("%q is not a transport mode (expected %q or %q)", cfg.Server.Mode, ModeStandalone, ModeClient))
	}
	if cfg.Project.Key == "" {
		return NewConfigValidationError("project.key", fmt.Sprintf("project key is required (set %s or run 'gate-report init')", EnvProject))
	}
	for _, f := range cfg.Report.Formats {
		if f != "md" && f != "html" {
			return NewConfigValidationError("report.formats", fmt.Sprintf("%q is not a report format (expected \"md\" or \"html\")", f))
		}
	}
	if cfg.Notify.WebhookURL != "" {
		wu, err := url.Parse(cfg.Notify.WebhookURL)
		if err != nil || (wu.Scheme != "http" && wu.Scheme != "https") || wu.Host == "" {
			return NewConfigValidationError("notify.webhook_url", fmt.Sprintf("%q is not a valid http(s) URL", cfg.Notify.WebhookURL))
		}
	}
	return nil
}
