package core

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchOptions configures the watch loop.
type WatchOptions struct {
	// Interval re-runs the check on a timer in addition to config changes.
	// Zero disables periodic runs.
	Interval time.Duration
}

// WatchConfig watches for changes to config.yml and re-runs the callback on
// every change, and on a timer when opts.Interval is set. Blocks until the
// watcher fails or its event channel closes.
func (m *Manager) WatchConfig(opts WatchOptions, callback func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	configPath := m.configStore.Path()

	// Add config file to watcher
	if err := watcher.Add(configPath); err != nil {
		return fmt.Errorf("failed to watch %s: %w", configPath, err)
	}

	// Also watch the directory for when file is deleted/recreated
	configDir := filepath.Dir(configPath)
	if err := watcher.Add(configDir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", configDir, err)
	}

	fmt.Printf("👁 Watching for changes to %s...\n", configPath)
	if opts.Interval > 0 {
		fmt.Printf("Re-checking every %s\n", opts.Interval)
	}
	fmt.Println("Press Ctrl+C to stop")

	var tick <-chan time.Time
	if opts.Interval > 0 {
		ticker := time.NewTicker(opts.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	// Debounce rapid changes
	var debounceTimer *time.Timer
	const debounceDelay = 1 * time.Second

	runCheck := func(reason string) {
		fmt.Printf("\n📝 %s\n", reason)
		if err := callback(); err != nil {
			m.ui.ShowError("Check Failed", err.Error())
		} else {
			m.ui.ShowSuccess("Check completed")
		}
		fmt.Println("\n👁 Still watching for changes...")
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Only process write/create events for the config file
			if event.Name != configPath {
				continue
			}

			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				// Debounce: reset timer on each event
				if debounceTimer != nil {
					debounceTimer.Stop()
				}

				debounceTimer = time.AfterFunc(debounceDelay, func() {
					// Check if file still exists
					if _, err := os.Stat(configPath); err != nil {
						m.ui.ShowWarning("File Not Found", "Config file was deleted or is inaccessible")
						return
					}
					runCheck(fmt.Sprintf("Detected change to %s", filepath.Base(configPath)))
				})
			}

		case <-tick:
			runCheck("Periodic re-check")

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watch error: %v\n", err)
		}
	}
}
