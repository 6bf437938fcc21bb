package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentpane/agentpane/internal/agent"
)

var killCmd = &cobra.Command{
	Use:   "kill <id>",
	Short: "Terminate the session at the given 1-based list position",
	Args:  cobra.ExactArgs(1),
	RunE:  runKill,
}

func runKill(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid session id %q", args[0])
	}

	sessions := agent.NewScanner(cfg.IdleThreshold).Scan()
	if id < 1 || id > len(sessions) {
		return fmt.Errorf("session id %d out of range (have %d session(s))", id, len(sessions))
	}

	sess := sessions[id-1]
	if err := agent.Kill(sess.PID); err != nil {
		return fmt.Errorf("kill %s session (pid %d): %w", sess.Type, sess.PID, err)
	}
	fmt.Printf("sent SIGTERM to %s session (pid %d)\n", sess.Type, sess.PID)
	return nil
}
