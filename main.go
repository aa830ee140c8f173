// Package main implements the gate-report CLI tool for querying a code
// quality server's quality gates and assembling the results into reports.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/qualitywatch/gate-report/cmd"
	"github.com/qualitywatch/gate-report/internal/core"
	"github.com/qualitywatch/gate-report/internal/history"
	"github.com/qualitywatch/gate-report/internal/notify"
	"github.com/qualitywatch/gate-report/internal/render"
	"github.com/qualitywatch/gate-report/internal/tui"
	"github.com/qualitywatch/gate-report/internal/types"
	"github.com/qualitywatch/gate-report/internal/version"
)

// Version information is managed in internal/version package
// GoReleaser injects version info directly via ldflags

// commandAliases maps alternate command spellings to canonical commands.
// Aliases are accepted silently so CI configs using either spelling keep working.
var commandAliases = map[string]string{
	"status":        "check",
	"runs":          "history",
	"quality-gates": "gates",
	"qg":            "gates",
}

// rewriteCommandAlias resolves a command alias to its canonical command,
// rewriting os.Args so downstream flag parsing sees the canonical spelling.
func rewriteCommandAlias(command string) string {
	canonical, ok := commandAliases[command]
	if !ok {
		return command
	}
	os.Args[1] = canonical
	return canonical
}

// parseCommonFlags extracts common non-interactive flags from args
// Returns: flags, remainingArgs
func parseCommonFlags(args []string) (core.NonInteractiveFlags, []string) {
	flags := core.NonInteractiveFlags{}
	var remaining []string

	for _, arg := range args {
		switch arg {
		case "--yes", "-y":
			flags.Yes = true
		case "--quiet", "-q":
			flags.Mode = core.OutputQuiet
		case "--json":
			flags.Mode = core.OutputJSON
		default:
			remaining = append(remaining, arg)
		}
	}

	return flags, remaining
}

// stdoutIsTerminal reports whether stdout is an interactive terminal.
// Wizards and live progress bars only make sense on a real terminal.
func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// exitWithError reports err in the requested output mode and exits with the
// exit code mapped from the error taxonomy.
func exitWithError(callback core.UICallback, flags core.NonInteractiveFlags, title string, err error) {
	if flags.Mode == core.OutputJSON {
		os.Exit(core.EmitCLIError(core.CLIErrorCodeForError(err), err.Error(), core.CLIExitCodeForError(err)))
	}
	callback.ShowError(title, err.Error())
	os.Exit(core.CLIExitCodeForError(err))
}

// buildCheckService wires one check run: the gate provider, the run history
// store, and the webhook notifier, per the loaded config. The returned closer
// releases the history database; callers invoke it once the run finishes.
// A history database that fails to open degrades to a warning.
func buildCheckService(manager *core.Manager, callback core.UICallback, openHistory bool) (*core.CheckService, types.Config, func(), error) {
	cfg, err := manager.GetConfig()
	if err != nil {
		return nil, types.Config{}, nil, err
	}

	provider, err := manager.NewProvider(cfg)
	if err != nil {
		return nil, types.Config{}, nil, err
	}

	var recorder core.HistoryRecorder
	closer := func() {}
	if openHistory {
		if store, err := history.Open(manager.HistoryPath()); err != nil {
			callback.ShowWarning("History Unavailable", err.Error())
		} else {
			recorder = store
			closer = func() { _ = store.Close() } //nolint:errcheck
		}
	}

	var notifier core.CheckNotifier
	if cfg.Notify.WebhookURL != "" {
		timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
		notifier = notify.NewWebhookNotifier(cfg.Notify.WebhookURL, os.Getenv(core.EnvWebhookSecret), timeout)
	}

	target := core.Target{ProjectKey: cfg.Project.Key, Branch: cfg.Project.Branch}
	service := core.NewCheckService(provider, recorder, notifier, callback, target, cfg.Notify.OnSuccess)
	return service, cfg, closer, nil
}

func main() {
	_ = godotenv.Load() //nolint:errcheck

	if len(os.Args) < 2 {
		tui.PrintHelp()
		os.Exit(0)
	}

	command := rewriteCommandAlias(os.Args[1])

	// Handle help flags
	if command == "--help" || command == "-h" || command == "help" {
		tui.PrintHelp()
		os.Exit(0)
	}

	// Handle version flag
	if command == "--version" {
		fmt.Printf("gate-report %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
		os.Exit(0)
	}

	manager := core.NewManager()
	manager.SetUICallback(tui.NewTUICallback()) // Set TUI for user interaction

	ctx := context.Background()

	switch command {
	case "init":
		// Parse common flags
		flags, args := parseCommonFlags(os.Args[2:])

		// Create appropriate callback
		var callback core.UICallback
		if flags.Yes || flags.Mode != core.OutputNormal {
			callback = tui.NewNonInteractiveTUICallback(flags)
		} else {
			callback = tui.NewTUICallback()
		}
		manager.SetUICallback(callback)

		if core.IsInitialized() {
			callback.ShowWarning("Already Initialized",
				fmt.Sprintf("Found existing %s. Edit it directly, or delete %s/ to start over.", core.ConfigPath, core.ReportDir))
			os.Exit(core.ExitSuccess)
		}

		// Parse command-specific flags; any config flag switches init to
		// non-interactive mode.
		var cfg types.Config
		flagMode := false
		for i := 0; i < len(args); i++ {
			arg := args[i]
			switch {
			case arg == "--server" && i+1 < len(args):
				cfg.Server.URL = args[i+1]
				flagMode = true
				i++
			case strings.HasPrefix(arg, "--server="):
				cfg.Server.URL = strings.TrimPrefix(arg, "--server=")
				flagMode = true
			case arg == "--mode" && i+1 < len(args):
				cfg.Server.Mode = args[i+1]
				flagMode = true
				i++
			case strings.HasPrefix(arg, "--mode="):
				cfg.Server.Mode = strings.TrimPrefix(arg, "--mode=")
				flagMode = true
			case arg == "--project" && i+1 < len(args):
				cfg.Project.Key = args[i+1]
				flagMode = true
				i++
			case strings.HasPrefix(arg, "--project="):
				cfg.Project.Key = strings.TrimPrefix(arg, "--project=")
				flagMode = true
			case arg == "--branch" && i+1 < len(args):
				cfg.Project.Branch = args[i+1]
				flagMode = true
				i++
			case strings.HasPrefix(arg, "--branch="):
				cfg.Project.Branch = strings.TrimPrefix(arg, "--branch=")
				flagMode = true
			case arg == "--formats" && i+1 < len(args):
				cfg.Report.Formats = splitFormats(args[i+1])
				flagMode = true
				i++
			case strings.HasPrefix(arg, "--formats="):
				cfg.Report.Formats = splitFormats(strings.TrimPrefix(arg, "--formats="))
				flagMode = true
			case arg == "--out" && i+1 < len(args):
				cfg.Report.Dir = args[i+1]
				flagMode = true
				i++
			case strings.HasPrefix(arg, "--out="):
				cfg.Report.Dir = strings.TrimPrefix(arg, "--out=")
				flagMode = true
			case arg == "--webhook" && i+1 < len(args):
				cfg.Notify.WebhookURL = args[i+1]
				flagMode = true
				i++
			case strings.HasPrefix(arg, "--webhook="):
				cfg.Notify.WebhookURL = strings.TrimPrefix(arg, "--webhook=")
				flagMode = true
			case arg == "--notify-on-success":
				cfg.Notify.OnSuccess = true
				flagMode = true
			}
		}

		if !flagMode && !flags.Yes && flags.Mode == core.OutputNormal && stdoutIsTerminal() {
			wizardCfg := tui.RunInitWizard()
			if wizardCfg == nil {
				return
			}
			cfg = *wizardCfg
		} else {
			// Environment variables can stand in for flags so CI can run
			// a bare 'gate-report init --yes'.
			cfg = core.ApplyEnvOverrides(cfg)
			if cfg.Server.URL == "" || cfg.Project.Key == "" {
				callback.ShowError("Usage",
					"gate-report init --server <url> --project <key> [--mode standalone|client] [--branch <name>]\n"+
						"                 [--formats md,html] [--out <dir>] [--webhook <url>] [--notify-on-success]")
				os.Exit(core.ExitInvalidArguments)
			}
		}

		if err := manager.Init(cfg); err != nil {
			exitWithError(callback, flags, "Initialization Failed", err)
		}

		if flags.Mode == core.OutputJSON {
			core.EmitCLISuccess(map[string]interface{}{
				"config_path": manager.ConfigPath(),
			})
			return
		}

		callback.ShowSuccess("Initialized in ./" + core.ReportDir + "/")
		if flags.Mode != core.OutputQuiet {
			fmt.Println()
			fmt.Println("Next steps:")
			tui.PrintInfo("  export SONAR_TOKEN=<token>    # only if the server requires authentication")
			if cfg.Notify.WebhookURL != "" {
				tui.PrintInfo("  export GATE_REPORT_WEBHOOK_SECRET=<secret>   # signs webhook deliveries")
			}
			tui.PrintInfo("  gate-report check             # evaluate the quality gate")
		}

	case "gates":
		// Parse common flags
		flags, _ := parseCommonFlags(os.Args[2:])

		// Create appropriate callback
		var callback core.UICallback
		if flags.Yes || flags.Mode != core.OutputNormal {
			callback = tui.NewNonInteractiveTUICallback(flags)
		} else {
			callback = tui.NewTUICallback()
		}
		manager.SetUICallback(callback)

		if !core.IsInitialized() {
			exitWithError(callback, flags, "Not Initialized", core.ErrNotInitialized)
		}

		// Pick a progress tracker: live bar on a terminal, plain text when
		// piped, nothing in quiet/JSON mode.
		var tracker core.ProgressTracker
		switch {
		case flags.Mode != core.OutputNormal:
			tracker = tui.NewNoOpProgressTracker()
		case stdoutIsTerminal():
			tracker = tui.NewBubbleteaProgressTracker(0, "Fetching quality gates")
		default:
			tracker = tui.NewTextProgressTracker(0, "Fetching quality gates")
		}

		gates, err := manager.ListQualityGates(ctx, tracker)
		if err != nil {
			tracker.Fail(err)
			exitWithError(callback, flags, "Listing Failed", err)
		}
		tracker.Complete()

		if flags.Mode == core.OutputJSON {
			gateData := make([]map[string]interface{}, 0, len(gates))
			defaultName := ""
			for i := range gates {
				g := &gates[i]
				if g.IsDefault {
					defaultName = g.Name
				}
				gateData = append(gateData, map[string]interface{}{
					"id":         g.ID,
					"name":       g.Name,
					"is_default": g.IsDefault,
					"conditions": core.GateConditionCount(g),
				})
			}

			_ = callback.FormatJSON(core.JSONOutput{
				Status: "success",
				Data: map[string]interface{}{
					"gates":      gateData,
					"gate_count": len(gates),
					"default":    defaultName,
				},
			})
			return
		}

		if len(gates) == 0 {
			if flags.Mode != core.OutputQuiet {
				fmt.Println("No quality gates defined on the server.")
			}
			return
		}

		tui.PrintGatesTable(gates)

	case "gate":
		// Parse common flags
		flags, _ := parseCommonFlags(os.Args[2:])

		// Create appropriate callback
		var callback core.UICallback
		if flags.Yes || flags.Mode != core.OutputNormal {
			callback = tui.NewNonInteractiveTUICallback(flags)
		} else {
			callback = tui.NewTUICallback()
		}
		manager.SetUICallback(callback)

		if !core.IsInitialized() {
			exitWithError(callback, flags, "Not Initialized", core.ErrNotInitialized)
		}

		gate, err := manager.ResolveProjectGate(ctx)
		if err != nil {
			exitWithError(callback, flags, "Gate Resolution Failed", err)
		}

		if flags.Mode == core.OutputJSON {
			_ = callback.FormatJSON(core.JSONOutput{
				Status: "success",
				Data: map[string]interface{}{
					"id":         gate.ID,
					"name":       gate.Name,
					"is_default": gate.IsDefault,
					"conditions": core.GateConditionCount(gate),
				},
			})
			return
		}

		marker := ""
		if gate.IsDefault {
			marker = " (server default)"
		}
		fmt.Println(tui.StyleTitle("Effective Quality Gate"))
		fmt.Printf("  %s%s\n", gate.Name, marker)
		fmt.Printf("  id=%s, %s\n", gate.ID, core.Pluralize(core.GateConditionCount(gate), "condition", "conditions"))

	case "check":
		// Parse common flags
		flags, args := parseCommonFlags(os.Args[2:])

		// Create appropriate callback
		var callback core.UICallback
		if flags.Yes || flags.Mode != core.OutputNormal {
			callback = tui.NewNonInteractiveTUICallback(flags)
		} else {
			callback = tui.NewTUICallback()
		}
		manager.SetUICallback(callback)

		// Parse command-specific flags
		skipHistory := false
		skipNotify := false
		for _, arg := range args {
			switch arg {
			case "--skip-history":
				skipHistory = true
			case "--skip-notify":
				skipNotify = true
			}
		}

		if !core.IsInitialized() {
			exitWithError(callback, flags, "Not Initialized", core.ErrNotInitialized)
		}

		checker, _, closeHistory, err := buildCheckService(manager, callback, !skipHistory)
		if err != nil {
			exitWithError(callback, flags, "Check Failed", err)
		}

		result, err := checker.RunCheck(ctx, core.CheckOptions{SkipHistory: skipHistory, SkipNotify: skipNotify})
		closeHistory()
		if err != nil {
			exitWithError(callback, flags, "Check Failed", err)
		}

		if flags.Mode == core.OutputJSON {
			core.EmitCLISuccess(result)
		} else if flags.Mode != core.OutputQuiet {
			fmt.Print(core.FormatStatusTable(result))
		}

		if !result.Passed {
			if flags.Mode == core.OutputNormal {
				fmt.Println()
				callback.ShowError("Quality Gate Failed",
					fmt.Sprintf("%s failing: %s",
						core.Pluralize(len(result.Failures), "condition", "conditions"),
						strings.Join(result.Failures, ", ")))
			}
			os.Exit(core.ExitCheckFailed)
		}
		if flags.Mode == core.OutputNormal {
			fmt.Println()
			callback.ShowSuccess("Quality gate passed")
		}

	case "report":
		// Parse common flags
		flags, args := parseCommonFlags(os.Args[2:])

		// Create appropriate callback
		var callback core.UICallback
		if flags.Yes || flags.Mode != core.OutputNormal {
			callback = tui.NewNonInteractiveTUICallback(flags)
		} else {
			callback = tui.NewTUICallback()
		}
		manager.SetUICallback(callback)

		// Parse command-specific flags
		formatFlag := ""
		outDir := ""
		skipHistory := false
		skipNotify := false
		for i := 0; i < len(args); i++ {
			arg := args[i]
			switch {
			case arg == "--skip-history":
				skipHistory = true
			case arg == "--skip-notify":
				skipNotify = true
			case arg == "--format" && i+1 < len(args):
				formatFlag = args[i+1]
				i++
			case strings.HasPrefix(arg, "--format="):
				formatFlag = strings.TrimPrefix(arg, "--format=")
			case arg == "--out" && i+1 < len(args):
				outDir = args[i+1]
				i++
			case strings.HasPrefix(arg, "--out="):
				outDir = strings.TrimPrefix(arg, "--out=")
			case arg == "-o" && i+1 < len(args):
				outDir = args[i+1]
				i++
			}
		}

		if !core.IsInitialized() {
			exitWithError(callback, flags, "Not Initialized", core.ErrNotInitialized)
		}

		checker, cfg, closeHistory, err := buildCheckService(manager, callback, !skipHistory)
		if err != nil {
			exitWithError(callback, flags, "Report Failed", err)
		}

		formats := cfg.Report.Formats
		switch formatFlag {
		case "":
			// Use configured formats
		case "all":
			formats = []string{"md", "html"}
		case "md", "html":
			formats = []string{formatFlag}
		default:
			closeHistory()
			callback.ShowError("Invalid Format", fmt.Sprintf("'%s' is not a report format. Use 'md', 'html', or 'all'", formatFlag))
			os.Exit(core.ExitInvalidArguments)
		}
		if outDir == "" {
			outDir = cfg.Report.Dir
		}

		result, err := checker.RunCheck(ctx, core.CheckOptions{SkipHistory: skipHistory, SkipNotify: skipNotify})
		closeHistory()
		if err != nil {
			exitWithError(callback, flags, "Report Failed", err)
		}

		written := make([]string, 0, len(formats))
		for _, format := range formats {
			path, err := render.Write(outDir, format, result)
			if err != nil {
				exitWithError(callback, flags, "Render Failed", err)
			}
			written = append(written, path)
		}

		if flags.Mode == core.OutputJSON {
			core.EmitCLISuccess(map[string]interface{}{
				"files":  written,
				"gate":   result.Gate,
				"passed": result.Passed,
			})
			return
		}

		if flags.Mode != core.OutputQuiet {
			fmt.Print(core.FormatStatusTable(result))
			fmt.Println()
		}
		for _, path := range written {
			callback.ShowSuccess("Report written to " + path)
		}

	case "history":
		// Parse common flags
		flags, args := parseCommonFlags(os.Args[2:])

		// Create appropriate callback
		var callback core.UICallback
		if flags.Yes || flags.Mode != core.OutputNormal {
			callback = tui.NewNonInteractiveTUICallback(flags)
		} else {
			callback = tui.NewTUICallback()
		}
		manager.SetUICallback(callback)

		// Parse command-specific flags; a bare argument is a run ID.
		limit := 10
		runID := ""
		for i := 0; i < len(args); i++ {
			arg := args[i]
			switch {
			case arg == "--limit" && i+1 < len(args):
				if _, err := fmt.Sscanf(args[i+1], "%d", &limit); err != nil {
					callback.ShowError("Invalid Flag", fmt.Sprintf("--limit requires a number, got: %s", args[i+1]))
					os.Exit(core.ExitInvalidArguments)
				}
				i++
			case strings.HasPrefix(arg, "--limit="):
				if _, err := fmt.Sscanf(strings.TrimPrefix(arg, "--limit="), "%d", &limit); err != nil {
					callback.ShowError("Invalid Flag", fmt.Sprintf("--limit requires a number, got: %s", arg))
					os.Exit(core.ExitInvalidArguments)
				}
			case !strings.HasPrefix(arg, "--"):
				runID = arg
			}
		}

		if !core.IsInitialized() {
			exitWithError(callback, flags, "Not Initialized", core.ErrNotInitialized)
		}

		store, err := history.Open(manager.HistoryPath())
		if err != nil {
			exitWithError(callback, flags, "History Unavailable", err)
		}

		if runID != "" {
			run, err := store.Run(ctx, runID)
			if err != nil {
				_ = store.Close() //nolint:errcheck
				exitWithError(callback, flags, "Run Lookup Failed", err)
			}
			conds, err := store.RunConditions(ctx, runID)
			_ = store.Close() //nolint:errcheck
			if err != nil {
				exitWithError(callback, flags, "Run Lookup Failed", err)
			}

			if flags.Mode == core.OutputJSON {
				condData := make([]map[string]interface{}, 0, len(conds))
				for _, c := range conds {
					condData = append(condData, map[string]interface{}{
						"position": c.Position,
						"metric":   c.Metric,
						"status":   c.Status,
					})
				}
				_ = callback.FormatJSON(core.JSONOutput{
					Status: "success",
					Data: map[string]interface{}{
						"run": map[string]interface{}{
							"id":         run.ID,
							"project":    run.Project,
							"branch":     run.Branch,
							"gate":       run.Gate,
							"passed":     run.Passed,
							"created_at": run.CreatedAt,
						},
						"conditions": condData,
					},
				})
				return
			}

			fmt.Print(core.FormatRunTable(run, conds))
			return
		}

		runs, err := store.RecentRuns(ctx, limit)
		_ = store.Close() //nolint:errcheck
		if err != nil {
			exitWithError(callback, flags, "History Query Failed", err)
		}

		if flags.Mode == core.OutputJSON {
			runData := make([]map[string]interface{}, 0, len(runs))
			for _, r := range runs {
				runData = append(runData, map[string]interface{}{
					"id":         r.ID,
					"project":    r.Project,
					"branch":     r.Branch,
					"gate":       r.Gate,
					"passed":     r.Passed,
					"conditions": r.Conditions,
					"failures":   r.Failures,
					"created_at": r.CreatedAt,
				})
			}

			_ = callback.FormatJSON(core.JSONOutput{
				Status: "success",
				Data: map[string]interface{}{
					"runs":      runData,
					"run_count": len(runs),
				},
			})
			return
		}

		tui.PrintRunsTable(runs)

	case "watch":
		// Parse common flags
		flags, args := parseCommonFlags(os.Args[2:])

		// Create appropriate callback
		var callback core.UICallback
		if flags.Yes || flags.Mode != core.OutputNormal {
			callback = tui.NewNonInteractiveTUICallback(flags)
		} else {
			callback = tui.NewTUICallback()
		}
		manager.SetUICallback(callback)

		// Parse command-specific flags
		var interval time.Duration
		for i := 0; i < len(args); i++ {
			arg := args[i]
			switch {
			case arg == "--interval" && i+1 < len(args):
				d, err := time.ParseDuration(args[i+1])
				if err != nil {
					callback.ShowError("Invalid Flag", fmt.Sprintf("--interval requires a duration like 10m, got: %s", args[i+1]))
					os.Exit(core.ExitInvalidArguments)
				}
				interval = d
				i++
			case strings.HasPrefix(arg, "--interval="):
				d, err := time.ParseDuration(strings.TrimPrefix(arg, "--interval="))
				if err != nil {
					callback.ShowError("Invalid Flag", fmt.Sprintf("--interval requires a duration like 10m, got: %s", arg))
					os.Exit(core.ExitInvalidArguments)
				}
				interval = d
			}
		}

		if !core.IsInitialized() {
			exitWithError(callback, flags, "Not Initialized", core.ErrNotInitialized)
		}

		// Re-run the check on every config change and on the timer. The
		// service is rebuilt per trigger so config edits take effect.
		err := manager.WatchConfig(core.WatchOptions{Interval: interval}, func() error {
			checker, _, closeHistory, err := buildCheckService(manager, callback, true)
			if err != nil {
				return err
			}
			result, err := checker.RunCheck(ctx, core.CheckOptions{})
			closeHistory()
			if err != nil {
				return err
			}
			fmt.Print(core.FormatStatusTable(result))
			if !result.Passed {
				return fmt.Errorf("%s failing: %w",
					core.Pluralize(len(result.Failures), "condition", "conditions"), core.ErrCheckFailed)
			}
			return nil
		})
		if err != nil {
			exitWithError(callback, flags, "Watch Failed", err)
		}

	case "completion":
		// Generate shell completion script
		if len(os.Args) < 3 {
			tui.PrintError("Usage", "gate-report completion <shell>\nSupported shells: bash, zsh, fish, powershell")
			os.Exit(core.ExitInvalidArguments)
		}

		shell := os.Args[2]
		var script string

		switch shell {
		case "bash":
			script = cmd.GenerateBashCompletion()
		case "zsh":
			script = cmd.GenerateZshCompletion()
		case "fish":
			script = cmd.GenerateFishCompletion()
		case "powershell":
			script = cmd.GeneratePowerShellCompletion()
		default:
			tui.PrintError("Invalid Shell", fmt.Sprintf("'%s' is not supported. Use: bash, zsh, fish, or powershell", shell))
			os.Exit(core.ExitInvalidArguments)
		}

		fmt.Println(script)

	default:
		tui.PrintError("Unknown Command", fmt.Sprintf("'%s' is not a valid gate-report command", command))
		fmt.Println()
		tui.PrintHelp()
		os.Exit(core.ExitInvalidArguments)
	}
}

// splitFormats parses a comma-separated format list like "md,html".
func splitFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
