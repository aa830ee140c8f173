// Package cmd provides CLI utilities for gate-report
package cmd

import (
	"fmt"
	"strings"
)

// Commands available in gate-report
var commands = []string{
	"init",
	"gates",
	"gate",
	"check",
	"report",
	"history",
	"watch",
	"completion",
	"help",
}

// GenerateBashCompletion generates bash completion script
func GenerateBashCompletion() string {
	return fmt.Sprintf(`# bash completion for gate-report
_gate_report_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # Commands
    opts="%s"

    # Command-specific options
    case "${prev}" in
        init)
            opts="--server --mode --project --branch --formats --out --webhook --notify-on-success --yes -y --quiet -q --json"
            ;;
        check)
            opts="--skip-history --skip-notify --quiet -q --json"
            ;;
        report)
            opts="--format --out -o --skip-history --skip-notify --quiet -q --json"
            ;;
        history)
            opts="--limit --quiet -q --json"
            ;;
        watch)
            opts="--interval --quiet -q --json"
            ;;
        gates|gate)
            opts="--quiet -q --json"
            ;;
        completion)
            opts="bash zsh fish powershell"
            ;;
        --format)
            opts="md html all"
            ;;
        --mode)
            opts="standalone client"
            ;;
    esac

    COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
    return 0
}

complete -F _gate_report_completions gate-report
`, strings.Join(commands, " "))
}

// GenerateZshCompletion generates zsh completion script
func GenerateZshCompletion() string {
	cmdList := make([]string, len(commands))
	for i, cmd := range commands {
		desc := getCommandDescription(cmd)
		cmdList[i] = fmt.Sprintf("    '%s:%s'", cmd, desc)
	}

	return fmt.Sprintf(`#compdef gate-report

_gate_report() {
    local -a commands
    commands=(
%s
    )

    _arguments -C \
        '1: :->command' \
        '*::arg:->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                init)
                    _arguments \
                        '--server[Server base URL]:url:' \
                        '--mode[Transport mode]:mode:(standalone client)' \
                        '--project[Project key]:key:' \
                        '--branch[Branch name]:branch:' \
                        '--formats[Report formats]:formats:' \
                        '--out[Report output directory]:dir:_files -/' \
                        '--webhook[Webhook receiver URL]:url:' \
                        '--notify-on-success[Also notify on passing checks]' \
                        '--yes[Skip prompts]' \
                        '-y[Skip prompts]' \
                        '--quiet[Minimal output]' \
                        '-q[Minimal output]' \
                        '--json[JSON output]'
                    ;;
                check)
                    _arguments \
                        '--skip-history[Do not record the run]' \
                        '--skip-notify[Do not send the webhook]' \
                        '--quiet[Minimal output]' \
                        '-q[Minimal output]' \
                        '--json[JSON output]'
                    ;;
                report)
                    _arguments \
                        '--format[Report format]:format:(md html all)' \
                        '--out[Output directory]:dir:_files -/' \
                        '-o[Output directory]:dir:_files -/' \
                        '--skip-history[Do not record the run]' \
                        '--skip-notify[Do not send the webhook]' \
                        '--quiet[Minimal output]' \
                        '-q[Minimal output]' \
                        '--json[JSON output]'
                    ;;
                history)
                    _arguments \
                        '--limit[Number of runs to show]:count:' \
                        '--quiet[Minimal output]' \
                        '-q[Minimal output]' \
                        '--json[JSON output]'
                    ;;
                watch)
                    _arguments \
                        '--interval[Periodic re-check interval]:duration:' \
                        '--quiet[Minimal output]' \
                        '-q[Minimal output]' \
                        '--json[JSON output]'
                    ;;
                gates|gate)
                    _arguments \
                        '--quiet[Minimal output]' \
                        '-q[Minimal output]' \
                        '--json[JSON output]'
                    ;;
                completion)
                    _arguments '1:shell:(bash zsh fish powershell)'
                    ;;
            esac
            ;;
    esac
}

_gate_report "$@"
`, strings.Join(cmdList, "\n"))
}

// GenerateFishCompletion generates fish completion script
func GenerateFishCompletion() string {
	var completions []string

	// Add command completions
	for _, cmd := range commands {
		desc := getCommandDescription(cmd)
		completions = append(completions, fmt.Sprintf("complete -c gate-report -f -n '__fish_use_subcommand' -a '%s' -d '%s'", cmd, desc))
	}

	// Add flag completions
	completions = append(completions, "# init command flags")
	completions = append(completions, "complete -c gate-report -n '__fish_seen_subcommand_from init' -l server -d 'Server base URL' -r")
	completions = append(completions, "complete -c gate-report -n '__fish_seen_subcommand_from init' -l mode -d 'Transport mode' -xa 'standalone client'")
	completions = append(completions, "complete -c gate-report -n '__fish_seen_subcommand_from init' -l project -d 'Project key' -r")
	completions = append(completions, "complete -c gate-report -n '__fish_seen_subcommand_from init' -l branch -d 'Branch name' -r")
	completions = append(completions, "complete -c gate-report -n '__fish_seen_subcommand_from init' -l formats -d 'Report formats' -r")
	completions = append(completions, "complete -c gate-report -n '__fish_seen_subcommand_from init' -l out -d 'Report output directory' -r")
	completions = append(completions, "complete -c gate-report -n '__fish_seen_subcommand_from init' -l webhook -d 'Webhook receiver URL' -r")
	completions = append(completions, "complete -c gate-report -n '__fish_seen_subcommand_from init' -l notify-on-success -d 'Also notify on passing checks'")
	completions = append(completions, "complete -c gate-report -n '__fish_seen_subcommand_from init' -l yes -s y -d 'Skip prompts'")

	completions = append(completions, "# check command flags")
	completions = append(completions, "complete -c gate-report -n '__fish_seen_subcommand_from check' -l skip-history -d 'Do not record the run'")
	completions = append(completions, "complete -c gate-report -n '__fish_seen_subcommand_from check' -l skip-notify -d 'Do not send the webhook'")

	completions = append(completions, "# report command flags")
	completions = append(completions, "complete -c gate-report -n '__fish_seen_subcommand_from report' -l format -d 'Report format' -xa 'md html all'")
	completions = append(completions, "complete -c gate-report -n '__fish_seen_subcommand_from report' -l out -s o -d 'Output directory' -r")
	completions = append(completions, "complete -c gate-report -n '__fish_seen_subcommand_from report' -l skip-history -d 'Do not record the run'")
	completions = append(completions, "complete -c gate-report -n '__fish_seen_subcommand_from report' -l skip-notify -d 'Do not send the webhook'")

	completions = append(completions, "# history command flags")
	completions = append(completions, "complete -c gate-report -n '__fish_seen_subcommand_from history' -l limit -d 'Number of runs to show' -r")

	completions = append(completions, "# watch command flags")
	completions = append(completions, "complete -c gate-report -n '__fish_seen_subcommand_from watch' -l interval -d 'Periodic re-check interval' -r")

	completions = append(completions, "# common output flags")
	completions = append(completions, "complete -c gate-report -n '__fish_seen_subcommand_from init gates gate check report history watch' -l quiet -s q -d 'Minimal output'")
	completions = append(completions, "complete -c gate-report -n '__fish_seen_subcommand_from init gates gate check report history watch' -l json -d 'JSON output'")

	completions = append(completions, "# completion command shells")
	completions = append(completions, "complete -c gate-report -n '__fish_seen_subcommand_from completion' -f -a 'bash zsh fish powershell'")

	return strings.Join(completions, "\n")
}

// GeneratePowerShellCompletion generates PowerShell completion script
func GeneratePowerShellCompletion() string {
	cmdArray := make([]string, len(commands))
	for i, cmd := range commands {
		cmdArray[i] = fmt.Sprintf("'%s'", cmd)
	}

	return fmt.Sprintf(`# PowerShell completion for gate-report
Register-ArgumentCompleter -Native -CommandName gate-report -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $commands = @(%s)

    $line = $commandAst.ToString()
    $tokens = $line.Split(' ')

    if ($tokens.Count -eq 2) {
        # Complete command
        $commands | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
    }
    elseif ($tokens.Count -gt 2) {
        $subcommand = $tokens[1]

        switch ($subcommand) {
            'init' {
                @('--server', '--mode', '--project', '--branch', '--formats', '--out', '--webhook', '--notify-on-success', '--yes', '-y', '--quiet', '-q', '--json') |
                    Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
                    }
            }
            'check' {
                @('--skip-history', '--skip-notify', '--quiet', '-q', '--json') |
                    Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
                    }
            }
            'report' {
                @('--format', '--out', '-o', '--skip-history', '--skip-notify', '--quiet', '-q', '--json') |
                    Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
                    }
            }
            'history' {
                @('--limit', '--quiet', '-q', '--json') |
                    Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
                    }
            }
            'watch' {
                @('--interval', '--quiet', '-q', '--json') |
                    Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
                    }
            }
            { $_ -in 'gates','gate' } {
                @('--quiet', '-q', '--json') |
                    Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
                    }
            }
            'completion' {
                @('bash', 'zsh', 'fish', 'powershell') |
                    Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
                    }
            }
        }
    }
}
`, strings.Join(cmdArray, ", "))
}

// getCommandDescription returns a short description for a command
func getCommandDescription(cmd string) string {
	descriptions := map[string]string{
		"init":       "Set up the gate-report config",
		"gates":      "List quality gates on the server",
		"gate":       "Show the effective project gate",
		"check":      "Evaluate the quality gate",
		"report":     "Check and render a report file",
		"history":    "Show recorded check runs",
		"watch":      "Re-check on config changes",
		"completion": "Generate shell completion script",
		"help":       "Show help information",
	}

	if desc, ok := descriptions[cmd]; ok {
		return desc
	}
	return ""
}
