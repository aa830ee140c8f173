package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/qualitywatch/gate-report/internal/core"
	"github.com/qualitywatch/gate-report/internal/types"
	"github.com/qualitywatch/gate-report/internal/version"
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	styleErr     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleCard    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("238"))
)

func check(err error) {
	if err != nil {
		fmt.Println("Aborted.")
		os.Exit(1)
	}
}

// --- INIT WIZARD ---

// RunInitWizard walks the user through first-time setup and returns the
// config to write. Ctrl+C anywhere aborts the program.
func RunInitWizard() *types.Config {
	fmt.Println(styleCard.Render("gate-report setup"))

	var cfg types.Config

	err := huh.NewInput().
		Title("Server URL").
		Placeholder("https://sonar.example.com").
		Description("Base URL of the code quality server").
		Value(&cfg.Server.URL).
		Validate(validateServerURL).
		Run()
	check(err)
	cfg.Server.URL = normalizeServerURL(cfg.Server.URL)

	err = huh.NewSelect[string]().
		Title("Transport Mode").
		Description("standalone: templated URLs (default) | client: structured requests").
		Options(
			huh.NewOption("standalone", core.ModeStandalone),
			huh.NewOption("client", core.ModeClient),
		).
		Value(&cfg.Server.Mode).
		Run()
	check(err)

	err = huh.NewInput().
		Title("Project Key").
		Placeholder("my-org:my-project").
		Description("Key of the project whose gate will be checked").
		Value(&cfg.Project.Key).
		Validate(validateProjectKey).
		Run()
	check(err)

	err = huh.NewInput().
		Title("Branch").
		Description("Leave empty for the server's main branch").
		Value(&cfg.Project.Branch).
		Run()
	check(err)

	err = huh.NewMultiSelect[string]().
		Title("Report Formats").
		Description("Formats written by 'gate-report report'").
		Options(
			huh.NewOption("Markdown", "md").Selected(true),
			huh.NewOption("HTML", "html"),
		).
		Value(&cfg.Report.Formats).
		Run()
	check(err)

	err = huh.NewInput().
		Title("Webhook URL").
		Description("Optional: receives a CloudEvents message after each check ("+core.EnvWebhookSecret+" signs it)").
		Value(&cfg.Notify.WebhookURL).
		Validate(validateWebhookURL).
		Run()
	check(err)
	cfg.Notify.WebhookURL = strings.TrimSpace(cfg.Notify.WebhookURL)

	if cfg.Notify.WebhookURL != "" {
		err = huh.NewConfirm().
			Title("Notify on success?").
			Description("Failures are always sent; successes only if enabled here").
			Value(&cfg.Notify.OnSuccess).
			Affirmative("Yes").
			Negative("No").
			Run()
		check(err)
	}

	return &cfg
}

// --- TABLES ---

// PrintGatesTable renders the server's gates, marking the default.
func PrintGatesTable(gates []types.QualityGate) {
	fmt.Println(StyleTitle(fmt.Sprintf("Quality Gates (%d)", len(gates))))
	for i := range gates {
		gate := &gates[i]
		marker := " "
		if gate.IsDefault {
			marker = "*"
		}
		conditions := core.Pluralize(core.GateConditionCount(gate), "condition", "conditions")
		fmt.Printf("%s %-30s %s\n", marker, truncate(gate.Name, 30), styleDim.Render(fmt.Sprintf("id=%s, %s", gate.ID, conditions)))
	}
	fmt.Println(styleDim.Render("\n* server default"))
}

// PrintRunsTable renders recorded check runs, newest first.
func PrintRunsTable(runs []types.RunRecord) {
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet. Run 'gate-report check' first.")
		return
	}
	fmt.Println(StyleTitle(fmt.Sprintf("Recent Runs (%d)", len(runs))))
	for _, run := range runs {
		verdict := styleSuccess.Render("PASSED")
		if !run.Passed {
			verdict = styleErr.Render(fmt.Sprintf("FAILED (%d)", run.Failures))
		}
		branch := ""
		if run.Branch != "" {
			branch = "@" + run.Branch
		}
		fmt.Printf("  %s  %s  %s%s %s\n",
			run.ID,
			run.CreatedAt,
			truncate(run.Project, 24),
			branch,
			verdict)
		fmt.Printf("      %s\n", styleDim.Render(fmt.Sprintf("gate %q, %s", run.Gate, core.Pluralize(run.Conditions, "condition", "conditions"))))
	}
}

// --- PRINT HELPERS ---

// PrintError displays an error message with styling to the terminal.
func PrintError(title, msg string) { fmt.Println(styleErr.Render("✖ " + title)); fmt.Println(msg) }

// PrintSuccess displays a success message with styling to the terminal.
func PrintSuccess(msg string) { fmt.Println(styleSuccess.Render("✔ " + msg)) }

// PrintInfo displays an informational message to the terminal.
func PrintInfo(msg string) {
	fmt.Println(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(msg))
}

// PrintWarning displays a warning message with styling to the terminal.
func PrintWarning(title, msg string) { fmt.Println(styleWarn.Render("! " + title)); fmt.Println(msg) }

// StyleTitle applies title styling to the given text string.
func StyleTitle(text string) string { return styleTitle.Render(text) }

// PrintHelp displays usage information for gate-report commands.
func PrintHelp() {
	fmt.Println(styleTitle.Render("gate-report " + version.GetVersion()))
	fmt.Println("Query a code quality server's quality gates and turn the results into readable reports")
	fmt.Println("\nCommands:")
	fmt.Println("  init                Set up .gate-report/ (interactive wizard or flags)")
	fmt.Println("    --server <url>    Server base URL")
	fmt.Println("    --project <key>   Project key")
	fmt.Println("    --branch <name>   Branch to check (default: server main branch)")
	fmt.Println("    --mode <mode>     Transport: standalone or client")
	fmt.Println("  gates               List all quality gates defined on the server")
	fmt.Println("  gate                Show the gate assigned to the configured project")
	fmt.Println("  check [options]     Evaluate the project's gate conditions")
	fmt.Println("    --report          Also write configured report files")
	fmt.Println("    --no-history      Don't record this run")
	fmt.Println("    --no-notify       Don't send the webhook event")
	fmt.Println("  report [options]    Run a check and write report files")
	fmt.Println("    --format <fmt>    md or html (repeatable; default from config)")
	fmt.Println("    --out <dir>       Output directory (default from config)")
	fmt.Println("  history [run-id]    List recorded runs, or show one run's conditions")
	fmt.Println("    --limit <n>       Number of runs to list (default: 10)")
	fmt.Println("  watch [options]     Re-run the check when config.yml changes")
	fmt.Println("    --interval <dur>  Also re-check periodically (e.g. 5m)")
	fmt.Println("  completion <shell>  Generate shell completion script (bash/zsh/fish/powershell)")
	fmt.Println("\nGlobal flags:")
	fmt.Println("  --json              Structured JSON output")
	fmt.Println("  --quiet, -q         Suppress non-essential output")
	fmt.Println("  --yes, -y           Auto-approve prompts")
	fmt.Println("\nExamples:")
	fmt.Println("  gate-report init")
	fmt.Println("  gate-report init --server https://sonar.example.com --project my-app")
	fmt.Println("  gate-report gates")
	fmt.Println("  gate-report check")
	fmt.Println("  gate-report check --json")
	fmt.Println("  gate-report report --format html --out ./artifacts")
	fmt.Println("  gate-report history")
	fmt.Println("  gate-report watch --interval 10m")
	fmt.Println("  gate-report completion bash > /etc/bash_completion.d/gate-report")
	fmt.Println("\nEnvironment:")
	fmt.Println("  SONAR_URL, SONAR_TOKEN, GATE_REPORT_PROJECT, GATE_REPORT_BRANCH,")
	fmt.Println("  GATE_REPORT_MODE, GATE_REPORT_DIR, GATE_REPORT_WEBHOOK_URL,")
	fmt.Println("  GATE_REPORT_WEBHOOK_SECRET, GATE_REPORT_TIMEOUT_SECONDS")
	fmt.Println("\nNavigation:")
	fmt.Println("  Use arrow keys to navigate, Enter to select")
	fmt.Println("  Press Ctrl+C to cancel at any time")
}
