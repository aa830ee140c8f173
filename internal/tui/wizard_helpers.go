package tui

import (
	"fmt"
	"net/url"
	"strings"
)

// validateServerURL validates the server base URL for the init wizard.
// validateServerURL rejects empty strings and anything that is not http(s).
func validateServerURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("server URL cannot be empty")
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("expected an http(s) URL like https://sonar.example.com")
	}
	return nil
}

// validateProjectKey validates the project key for the init wizard.
// validateProjectKey rejects empty strings and keys containing whitespace.
func validateProjectKey(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("project key cannot be empty")
	}
	if strings.ContainsAny(s, " \t") {
		return fmt.Errorf("project key cannot contain whitespace")
	}
	return nil
}

// validateWebhookURL validates the optional webhook URL for the init wizard.
// validateWebhookURL accepts the empty string (webhook disabled).
func validateWebhookURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("expected an http(s) URL, or empty to disable")
	}
	return nil
}

// normalizeServerURL trims whitespace and trailing slashes so stored URLs
// concatenate cleanly with web service paths.
func normalizeServerURL(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), "/")
}

// truncate shortens a string to maxLen bytes, ellipsized.
func truncate(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}
