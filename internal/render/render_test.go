package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qualitywatch/gate-report/internal/types"
)

// sampleResult builds a failed check result with a branch and one failure.
func sampleResult() *types.CheckResult {
	report := types.NewStatusReport()
	report.Set("Coverage", "OK")
	report.Set("Bugs", "ERROR (5 is greater than 0)")

	return &types.CheckResult{
		SchemaVersion: types.CheckSchemaVersion,
		Project:       "my:project",
		Branch:        "main",
		Gate:          "Sonar way",
		Passed:        false,
		Report:        report,
		Failures:      []string{"Bugs"},
		GeneratedAt:   "2026-02-03T14:30:00Z",
	}
}

// ============================================================================
// Write Dispatch Tests
// ============================================================================

func TestWrite_Markdown(t *testing.T) {
	dir := t.TempDir()

	path, err := Write(dir, "md", sampleResult())
	if err != nil {
		t.Fatalf("Write returned unexpected error: %v", err)
	}

	if filepath.Ext(path) != ".md" {
		t.Errorf("Expected .md extension, got %q", path)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("Expected report under %s, got %q", dir, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected report file to exist: %v", err)
	}
}

func TestWrite_HTML(t *testing.T) {
	dir := t.TempDir()

	path, err := Write(dir, "html", sampleResult())
	if err != nil {
		t.Fatalf("Write returned unexpected error: %v", err)
	}

	if filepath.Ext(path) != ".html" {
		t.Errorf("Expected .html extension, got %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected report file to exist: %v", err)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	_, err := Write(t.TempDir(), "pdf", sampleResult())

	if err == nil {
		t.Fatal("Expected error for unknown format, got nil")
	}
	if !strings.Contains(err.Error(), "unknown report format") {
		t.Errorf("Expected format error, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "pdf") {
		t.Errorf("Expected offending format in error, got %q", err.Error())
	}
}

func TestWrite_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports", "nested")

	path, err := Write(dir, "md", sampleResult())
	if err != nil {
		t.Fatalf("Write returned unexpected error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected report in created directory: %v", err)
	}
}

// ============================================================================
// File Name Tests
// ============================================================================

func TestFileName(t *testing.T) {
	tests := []struct {
		name        string
		project     string
		generatedAt string
		want        string
	}{
		{
			name:        "timestamp compacted",
			project:     "demo",
			generatedAt: "2026-02-03T14:30:00Z",
			want:        "gate-report-demo-20260203-143000",
		},
		{
			name:        "project key sanitized",
			project:     "my:project/web",
			generatedAt: "2026-02-03T14:30:00Z",
			want:        "gate-report-my-project-web-20260203-143000",
		},
		{
			name:        "unparseable timestamp kept",
			project:     "demo",
			generatedAt: "not-a-time",
			want:        "gate-report-demo-not-a-time",
		},
		{
			name:        "spaces become dashes",
			project:     "my project",
			generatedAt: "unknown time",
			want:        "gate-report-my-project-unknown-time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FileName(tt.project, tt.generatedAt)
			if got != tt.want {
				t.Errorf("FileName(%q, %q) = %q, want %q", tt.project, tt.generatedAt, got, tt.want)
			}
		})
	}
}

// ============================================================================
// Markdown Tests
// ============================================================================

func TestWriteMarkdown_FailedReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")

	if err := WriteMarkdown(path, sampleResult()); err != nil {
		t.Fatalf("WriteMarkdown returned unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}

	want := `# Quality Gate Report: my:project

**Result: FAILED ❌**

- Gate: Sonar way
- Branch: main
- Generated: 2026-02-03T14:30:00Z

## Conditions

| Metric | Status |
|--------|--------|
| Coverage | OK |
| Bugs | ERROR (5 is greater than 0) |

## Failing Conditions

- **Bugs**: ERROR (5 is greater than 0)
`
	if string(data) != want {
		t.Errorf("Markdown report mismatch.\nGot:\n%s\nWant:\n%s", data, want)
	}
}

func TestWriteMarkdown_PassedNoBranch(t *testing.T) {
	result := sampleResult()
	result.Passed = true
	result.Branch = ""
	result.Failures = nil

	path := filepath.Join(t.TempDir(), "report.md")
	if err := WriteMarkdown(path, result); err != nil {
		t.Fatalf("WriteMarkdown returned unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "**Result: PASSED ✅**") {
		t.Error("Expected PASSED verdict")
	}
	if strings.Contains(content, "- Branch:") {
		t.Error("Expected no branch line when branch is empty")
	}
	if strings.Contains(content, "## Failing Conditions") {
		t.Error("Expected no failing section when all conditions pass")
	}
}

func TestWriteMarkdown_NoConditions(t *testing.T) {
	result := sampleResult()
	result.Report = types.NewStatusReport()
	result.Failures = nil

	path := filepath.Join(t.TempDir(), "report.md")
	if err := WriteMarkdown(path, result); err != nil {
		t.Fatalf("WriteMarkdown returned unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}

	if !strings.Contains(string(data), "No conditions evaluated.") {
		t.Error("Expected empty-report placeholder")
	}
	if strings.Contains(string(data), "| Metric |") {
		t.Error("Expected no table header for empty report")
	}
}

// ============================================================================
// HTML Tests
// ============================================================================

func TestWriteHTML_FailedReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")

	if err := WriteHTML(path, sampleResult()); err != nil {
		t.Fatalf("WriteHTML returned unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	content := string(data)

	checks := []string{
		"<!DOCTYPE html>",
		"<h1>my:project</h1>",
		">FAILED</span>",
		"Sonar way",
		`<td>Coverage</td><td class="ok">OK</td>`,
		`<td>Bugs</td><td class="err">ERROR (5 is greater than 0)</td>`,
		"Failing Conditions",
	}
	for _, want := range checks {
		if !strings.Contains(content, want) {
			t.Errorf("Expected HTML to contain %q", want)
		}
	}
}

func TestWriteHTML_EscapesContent(t *testing.T) {
	result := sampleResult()
	result.Project = `web <script>alert("x")</script>`

	path := filepath.Join(t.TempDir(), "report.html")
	if err := WriteHTML(path, result); err != nil {
		t.Fatalf("WriteHTML returned unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	content := strings.SplitN(string(data), "</style>", 2)[1]

	if strings.Contains(content, "<script>") {
		t.Error("Expected project name to be HTML-escaped")
	}
	if !strings.Contains(content, "&lt;script&gt;") {
		t.Error("Expected escaped script tag in output")
	}
}

func TestWriteHTML_BranchFallback(t *testing.T) {
	result := sampleResult()
	result.Branch = ""

	path := filepath.Join(t.TempDir(), "report.html")
	if err := WriteHTML(path, result); err != nil {
		t.Fatalf("WriteHTML returned unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}

	if !strings.Contains(string(data), "main branch") {
		t.Error("Expected 'main branch' placeholder when branch is empty")
	}
}

func TestWriteHTML_EmptyReport(t *testing.T) {
	result := sampleResult()
	result.Report = types.NewStatusReport()
	result.Failures = nil

	path := filepath.Join(t.TempDir(), "report.html")
	if err := WriteHTML(path, result); err != nil {
		t.Fatalf("WriteHTML returned unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}

	if !strings.Contains(string(data), "No conditions evaluated.") {
		t.Error("Expected empty-report placeholder")
	}
}
