package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/qualitywatch/gate-report/internal/types"
)

// Manager provides the main API for gate-report operations. Command handlers
// construct one Manager and go through it for configuration access and
// server queries.
type Manager struct {
	RootDir     string
	configStore ConfigStore
	ui          UICallback
}

// NewManager creates a new Manager rooted at the default .gate-report directory.
func NewManager() *Manager {
	return NewManagerAt(ReportDir)
}

// NewManagerAt creates a Manager rooted at a custom directory (useful for testing).
func NewManagerAt(rootDir string) *Manager {
	return &Manager{
		RootDir:     rootDir,
		configStore: NewFileConfigStore(rootDir),
		ui:          &SilentUICallback{}, // Default to silent
	}
}

// SetUICallback sets the UI callback for user interactions
func (m *Manager) SetUICallback(ui UICallback) {
	if ui == nil {
		ui = &SilentUICallback{}
	}
	m.ui = ui
}

// IsInitialized checks if the gate-report directory structure exists
func IsInitialized() bool {
	info, err := os.Stat(ReportDir)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// ConfigPath returns the path to config.yml
func (m *Manager) ConfigPath() string {
	return m.configStore.Path()
}

// HistoryPath returns the path to the run history database
func (m *Manager) HistoryPath() string {
	return filepath.Join(m.RootDir, HistoryFile)
}

// Init creates the gate-report directory and writes the initial config.
// The config is validated after defaults are applied so a bad wizard answer
// or flag value never lands on disk.
func (m *Manager) Init(cfg types.Config) error {
	ApplyDefaults(&cfg)
	if err := ValidateConfig(cfg); err != nil {
		return err
	}
	if err := os.MkdirAll(m.RootDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", m.RootDir, err)
	}
	return m.configStore.Save(cfg)
}

// GetConfig loads config.yml, overlays environment variables, applies
// defaults, and validates the result. A missing config file surfaces as
// ErrNotInitialized.
func (m *Manager) GetConfig() (types.Config, error) {
	cfg, err := m.configStore.Load()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return types.Config{}, ErrNotInitialized
		}
		return types.Config{}, err
	}

	cfg = ApplyEnvOverrides(cfg)
	ApplyDefaults(&cfg)

	if err := ValidateConfig(cfg); err != nil {
		return types.Config{}, err
	}

	return cfg, nil
}

// NewProvider builds a GateProvider for the given config. The API token is
// read from the environment, never from the config file.
func (m *Manager) NewProvider(cfg types.Config) (*GateProvider, error) {
	service, err := NewGateService(cfg, os.Getenv(EnvToken))
	if err != nil {
		return nil, err
	}
	return NewGateProvider(service), nil
}

// ListQualityGates fetches every gate defined on the server. The tracker
// receives one increment per gate definition fetched; pass nil for silent.
func (m *Manager) ListQualityGates(ctx context.Context, tracker ProgressTracker) ([]types.QualityGate, error) {
	cfg, err := m.GetConfig()
	if err != nil {
		return nil, err
	}
	provider, err := m.NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	provider.SetProgressTracker(tracker)
	return provider.ListQualityGates(ctx)
}

// ResolveProjectGate returns the gate assigned to the configured project.
func (m *Manager) ResolveProjectGate(ctx context.Context) (*types.QualityGate, error) {
	cfg, err := m.GetConfig()
	if err != nil {
		return nil, err
	}
	provider, err := m.NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	return provider.ResolveProjectGate(ctx)
}
