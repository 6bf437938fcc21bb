package tmux

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"

	"github.com/agentpane/agentpane/internal/model"
)

// listPanesFormat yields one tab-separated row per pane across all sessions.
const listPanesFormat = "#{pane_pid}\t#{pane_id}\t#{session_name}\t#{window_index}\t#{pane_width}\t#{pane_height}"

// ListPanes returns every pane known to the tmux server. An error means
// tmux is unavailable or no server is running; callers treat that as an
// empty pane set, not a failed scan.
func ListPanes() ([]model.Pane, error) {
	out, err := exec.Command("tmux", "list-panes", "-a", "-F", listPanesFormat).Output()
	if err != nil {
		return nil, fmt.Errorf("tmux list-panes: %w", err)
	}
	return ParsePanes(string(out)), nil
}

// ParsePanes parses tab-separated list-panes output. Malformed rows are
// skipped.
func ParsePanes(out string) []model.Pane {
	var panes []model.Pane
	for _, line := range strings.Split(out, "\n") {
		parts := strings.Split(line, "\t")
		if len(parts) < 6 {
			continue
		}
		pid, err := strconv.Atoi(parts[0])
		if err != nil || pid <= 0 {
			continue
		}
		window, err := strconv.Atoi(parts[3])
		if err != nil {
			continue
		}
		width, _ := strconv.Atoi(parts[4])
		height, _ := strconv.Atoi(parts[5])
		panes = append(panes, model.Pane{
			OwnerPID:    pid,
			ID:          parts[1],
			Session:     parts[2],
			WindowIndex: window,
			Width:       width,
			Height:      height,
		})
	}
	return panes
}

// InsideTmux reports whether the calling process runs inside a tmux client.
func InsideTmux() bool {
	return os.Getenv("TMUX") != ""
}

// Jump moves the user's focus to the given pane. Inside tmux this switches
// the active client; outside it replaces the calling process image with an
// attach, which never returns on success.
func Jump(p model.Pane) error {
	if InsideTmux() {
		return switchTo(p)
	}
	return attachTo(p)
}

// switchTo retargets the current client at the pane's window, then selects
// the pane itself. Pane selection is best-effort: the pane may have closed
// between the scan and the jump, and the window switch alone is still useful.
func switchTo(p model.Pane) error {
	out, err := exec.Command("tmux", "switch-client", "-t", p.WindowTarget()).CombinedOutput()
	if err != nil {
		return fmt.Errorf("tmux switch-client: %s", strings.TrimSpace(string(out)))
	}
	_ = exec.Command("tmux", "select-pane", "-t", p.ID).Run()
	return nil
}

// attachTo execs `tmux attach-session` over the current process.
func attachTo(p model.Pane) error {
	tmuxPath, err := exec.LookPath("tmux")
	if err != nil {
		return fmt.Errorf("tmux not found in PATH: %w", err)
	}
	args := []string{"tmux", "attach-session", "-t", p.WindowTarget()}
	return syscall.Exec(tmuxPath, args, os.Environ())
}
