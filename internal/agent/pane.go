package agent

import (
	"github.com/agentpane/agentpane/internal/model"
	"github.com/agentpane/agentpane/internal/platform"
)

// maxPaneHops bounds the ancestor walk when resolving a pane. tmux only
// reports the pane's direct foreground pid, so a session launched from a
// shell inside a pane is found by walking up the parent chain.
const maxPaneHops = 25

// CorrelatePane resolves the pane owning pid or one of its ancestors.
// Returns nil when the walk reaches the process-tree root, leaves the
// snapshot, or exhausts the hop budget; not running inside a multiplexer
// is a common, valid result rather than an error.
func CorrelatePane(pid int, procs map[int]platform.ProcessEntry, panes map[int]model.Pane) *model.Pane {
	cur := pid
	for hop := 0; hop <= maxPaneHops; hop++ {
		if pane, ok := panes[cur]; ok {
			return &pane
		}
		entry, ok := procs[cur]
		if !ok {
			return nil
		}
		if entry.PPID <= 1 {
			return nil
		}
		cur = entry.PPID
	}
	return nil
}
