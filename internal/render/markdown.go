package render

import (
	"fmt"
	"os"

	"github.com/qualitywatch/gate-report/internal/types"
)

// WriteMarkdown writes a check result as a markdown report to path.
func WriteMarkdown(path string, result *types.CheckResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	verdict := "PASSED ✅"
	if !result.Passed {
		verdict = "FAILED ❌"
	}

	fmt.Fprintf(f, "# Quality Gate Report: %s\n\n", result.Project)
	fmt.Fprintf(f, "**Result: %s**\n\n", verdict)
	fmt.Fprintf(f, "- Gate: %s\n", result.Gate)
	if result.Branch != "" {
		fmt.Fprintf(f, "- Branch: %s\n", result.Branch)
	}
	fmt.Fprintf(f, "- Generated: %s\n\n", result.GeneratedAt)

	fmt.Fprintf(f, "## Conditions\n\n")

	if result.Report.Len() == 0 {
		fmt.Fprintf(f, "No conditions evaluated.\n")
		return nil
	}

	fmt.Fprintf(f, "| Metric | Status |\n")
	fmt.Fprintf(f, "|--------|--------|\n")
	for _, name := range result.Report.Names() {
		status, _ := result.Report.Get(name)
		fmt.Fprintf(f, "| %s | %s |\n", name, status)
	}

	if len(result.Failures) > 0 {
		fmt.Fprintf(f, "\n## Failing Conditions\n\n")
		for _, name := range result.Failures {
			status, _ := result.Report.Get(name)
			fmt.Fprintf(f, "- **%s**: %s\n", name, status)
		}
	}

	return nil
}
