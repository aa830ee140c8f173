// Package render writes check results to report files.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/qualitywatch/gate-report/internal/types"
)

// Extensions by format.
var extensions = map[string]string{
	"md":   ".md",
	"html": ".html",
}

// Write renders a check result in the given format ("md" or "html") into
// dir, creating dir if needed, and returns the written file path.
func Write(dir, format string, result *types.CheckResult) (string, error) {
	ext, ok := extensions[format]
	if !ok {
		return "", fmt.Errorf("unknown report format %q", format)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, FileName(result.Project, result.GeneratedAt)+ext)

	switch format {
	case "md":
		if err := WriteMarkdown(path, result); err != nil {
			return "", err
		}
	case "html":
		if err := WriteHTML(path, result); err != nil {
			return "", err
		}
	}

	return path, nil
}

// FileName builds a filesystem-safe report base name from the project key
// and the RFC 3339 generation time, e.g. "gate-report-my-project-20260825-143000".
func FileName(project, generatedAt string) string {
	stamp := generatedAt
	if t, err := time.Parse(time.RFC3339, generatedAt); err == nil {
		stamp = t.Format("20060102-150405")
	}
	return "gate-report-" + sanitize(project) + "-" + sanitize(stamp)
}

// sanitize replaces path-hostile characters with dashes.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
