package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentpane/agentpane/internal/config"
	"github.com/agentpane/agentpane/internal/ui"
)

var themeCmd = &cobra.Command{
	Use:   "theme [name]",
	Short: "Show the active theme or persist a new one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTheme,
}

func runTheme(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Printf("theme: %s (available: %s)\n", cfg.Theme, strings.Join(ui.ThemeNames(), ", "))
		return nil
	}

	name := args[0]
	if _, ok := ui.ThemeByName(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(ui.ThemeNames(), ", "))
	}

	cfg.Theme = name
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Printf("theme set to %s\n", name)
	return nil
}
