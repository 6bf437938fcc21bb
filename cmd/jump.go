package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentpane/agentpane/internal/agent"
	"github.com/agentpane/agentpane/internal/model"
	"github.com/agentpane/agentpane/internal/tmux"
)

var jumpCmd = &cobra.Command{
	Use:   "jump <id|name>",
	Short: "Jump to a session's pane by list position or session-name substring",
	Args:  cobra.ExactArgs(1),
	RunE:  runJump,
}

func runJump(cmd *cobra.Command, args []string) error {
	sessions := agent.NewScanner(cfg.IdleThreshold).Scan()
	sess, err := resolveTarget(sessions, args[0])
	if err != nil {
		return err
	}
	if sess.Pane == nil {
		return fmt.Errorf("session %d (%s) is not running inside a tmux pane", sess.PID, sess.Type)
	}
	return tmux.Jump(*sess.Pane)
}

// resolveTarget picks a session by 1-based numeric id, or by
// case-insensitive substring over the tmux session names of correlated
// panes. An ambiguous name lists every candidate and selects none.
func resolveTarget(sessions []model.AgentSession, arg string) (*model.AgentSession, error) {
	if id, err := strconv.Atoi(arg); err == nil {
		if id < 1 || id > len(sessions) {
			return nil, fmt.Errorf("session id %d out of range (have %d session(s))", id, len(sessions))
		}
		return &sessions[id-1], nil
	}

	needle := strings.ToLower(arg)
	var matches []*model.AgentSession
	for i := range sessions {
		s := &sessions[i]
		if s.Pane == nil {
			continue
		}
		if strings.Contains(strings.ToLower(s.Pane.Session), needle) {
			matches = append(matches, s)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no session matching %q", arg)
	case 1:
		return matches[0], nil
	}

	names := make([]string, len(matches))
	for i, s := range matches {
		names[i] = s.Pane.Session
	}
	return nil, fmt.Errorf("%q is ambiguous, matches: %s", arg, strings.Join(names, ", "))
}
