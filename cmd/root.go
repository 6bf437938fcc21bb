// Package cmd implements the agentpane command tree. The bare command runs
// the interactive loop; subcommands cover one-shot scanning, killing, and
// jumping for scripting.
package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/agentpane/agentpane/internal/agent"
	"github.com/agentpane/agentpane/internal/config"
	"github.com/agentpane/agentpane/internal/logging"
	"github.com/agentpane/agentpane/internal/tmux"
	"github.com/agentpane/agentpane/internal/ui"
)

// cfg is loaded once at startup and passed into the scan and loop code as
// an immutable value.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "agentpane",
	Short: "Find and jump to AI coding-agent sessions in tmux",
	Long: `agentpane finds running AI coding-agent processes (claude, codex,
cursor, gemini, opencode), shows whether each is computing or waiting, and
correlates each to the tmux pane it runs in. The interactive list refreshes
live; confirming a selection jumps to its pane.`,
	SilenceUsage: true,
	RunE:         runInteractive,
}

func init() {
	cobra.OnInitialize(initApp)
	rootCmd.AddCommand(scanCmd, killCmd, jumpCmd, themeCmd)
}

// initApp loads config and brings up file logging before any command runs.
func initApp() {
	var err error
	cfg, err = config.Load()
	logging.Init(logging.Config{LogDir: config.Dir(), Level: cfg.LogLevel})
	if err != nil {
		logging.ForComponent("cli").Warn("config load failed, using defaults", "err", err)
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// runInteractive starts the refresh/input loop and performs the jump for a
// confirmed selection. bubbletea owns raw mode and the alternate screen and
// restores the terminal on every exit path, including interrupts and errors.
func runInteractive(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive mode needs a terminal; use 'agentpane scan' in pipelines")
	}

	scanner := agent.NewScanner(cfg.IdleThreshold)
	program := tea.NewProgram(ui.New(scanner, cfg), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("interactive display: %w", err)
	}

	m, ok := final.(ui.Model)
	if !ok {
		return nil
	}
	sess := m.Chosen()
	if sess == nil {
		return nil
	}
	if sess.Pane == nil {
		return fmt.Errorf("session %d (%s) is not running inside a tmux pane", sess.PID, sess.Type)
	}
	return tmux.Jump(*sess.Pane)
}
