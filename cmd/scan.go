package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agentpane/agentpane/internal/agent"
	"github.com/agentpane/agentpane/internal/model"
	"github.com/agentpane/agentpane/internal/ui"
)

var scanJSON bool

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run one scan cycle, print the session list, and exit",
	Args:  cobra.NoArgs,
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "output in JSON format")
}

func runScan(cmd *cobra.Command, args []string) error {
	sessions := agent.NewScanner(cfg.IdleThreshold).Scan()

	if scanJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if len(sessions) == 0 {
			fmt.Println("[]")
			return nil
		}
		return enc.Encode(sessions)
	}

	if len(sessions) == 0 {
		fmt.Println("No agent sessions found.")
		return nil
	}

	printSessionTable(sessions)
	return nil
}

// printSessionTable writes an aligned table. The ID column is the 1-based
// position the kill and jump commands accept.
func printSessionTable(sessions []model.AgentSession) {
	symbols := ui.SymbolsFor(cfg.ASCII)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAGENT\tSTATE\tCPU%\tMEM\tUPTIME\tPANE\tDIRECTORY")
	for i, s := range sessions {
		glyph := symbols.Waiting
		if s.State == model.StateRunning {
			glyph = symbols.Running
		}
		pane := "-"
		if s.Pane != nil {
			pane = fmt.Sprintf("%s:%d.%s", s.Pane.Session, s.Pane.WindowIndex, s.Pane.ID)
		}
		dir := ui.ShortenHome(s.WorkingDir)
		if dir == "" {
			dir = "-"
		}
		fmt.Fprintf(w, "%d\t%s %s\t%s\t%.1f\t%dM\t%s\t%s\t%s\n",
			i+1, glyph, s.Type, s.State, s.CPUPercent, s.MemoryMB,
			ui.FormatDuration(s.UptimeSeconds), pane, dir)
	}
	w.Flush()
}
