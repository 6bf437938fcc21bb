package model

import "fmt"

// AgentType identifies a known AI coding-agent tool. The constant values
// double as the presentation sort key (lexicographic).
type AgentType string

const (
	AgentClaude   AgentType = "claude"
	AgentCodex    AgentType = "codex"
	AgentCursor   AgentType = "cursor"
	AgentGemini   AgentType = "gemini"
	AgentOpenCode AgentType = "opencode"
	AgentUnknown  AgentType = "unknown"
)

// AllAgents lists the known agent types in presentation order.
var AllAgents = []AgentType{AgentClaude, AgentCodex, AgentCursor, AgentGemini, AgentOpenCode}

// SessionState reports whether a session is actively computing.
type SessionState string

const (
	StateRunning SessionState = "running"
	StateWaiting SessionState = "waiting"
)

// StateFor classifies an aggregated CPU value against the idle threshold.
// The comparison is strict: a session sitting exactly on the threshold is
// still waiting.
func StateFor(cpuPercent, idleThreshold float64) SessionState {
	if cpuPercent > idleThreshold {
		return StateRunning
	}
	return StateWaiting
}

// Pane describes one tmux pane as reported by list-panes.
type Pane struct {
	OwnerPID    int    `json:"owner_pid"`
	ID          string `json:"id"` // tmux pane id, e.g. "%3"
	Session     string `json:"session"`
	WindowIndex int    `json:"window_index"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// Target returns the session:window.pane form tmux commands accept.
func (p Pane) Target() string {
	return fmt.Sprintf("%s:%d.%s", p.Session, p.WindowIndex, p.ID)
}

// WindowTarget returns the session:window form, used by switch-client and
// attach-session which do not take a pane component.
func (p Pane) WindowTarget() string {
	return fmt.Sprintf("%s:%d", p.Session, p.WindowIndex)
}

// AgentSession represents a single discovered root agent process for one
// scan generation. Nothing here survives between scans; the UI carries its
// selection forward by PID, never by index.
type AgentSession struct {
	PID           int          `json:"pid"`
	Type          AgentType    `json:"agent"`
	Title         string       `json:"title,omitempty"` // best-effort, e.g. Codex thread title
	WorkingDir    string       `json:"working_dir,omitempty"`
	Pane          *Pane        `json:"pane,omitempty"` // nil = not inside a multiplexer pane
	UptimeSeconds int64        `json:"uptime_seconds"`
	MemoryMB      uint64       `json:"memory_mb"`
	CPUPercent    float64      `json:"cpu_percent"` // subtree aggregate, helpers excluded
	State         SessionState `json:"state"`
}
