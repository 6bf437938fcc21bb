package ui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agentpane/agentpane/internal/agent"
	"github.com/agentpane/agentpane/internal/config"
	"github.com/agentpane/agentpane/internal/logging"
	"github.com/agentpane/agentpane/internal/model"
)

// mode is the interaction state: navigation or free-text command entry.
type mode int

const (
	modeNormal mode = iota
	modeCommand
)

// killRescanDelay gives the OS process table time to catch up after a
// SIGTERM before the next scan runs.
const killRescanDelay = 500 * time.Millisecond

type (
	tickMsg   time.Time
	scanMsg   []model.AgentSession
	killedMsg struct {
		pid int
		err error
	}
)

// Model drives the refresh/input loop. It owns the session list and the
// selection exclusively; both are mutated only from Update, never
// concurrently. The selection is carried across refreshes by pid identity,
// not by list index.
type Model struct {
	scanner  *agent.Scanner
	cfg      config.Config
	interval time.Duration
	theme    Theme
	symbols  Symbols

	mode        mode
	sessions    []model.AgentSession
	selectedPID int // 0 = none selected
	seeded      bool
	chosen      *model.AgentSession
	status      string
	cmdInput    textinput.Model
	width       int
	height      int

	killFn func(int) error
	saveFn func(config.Config) error
	log    *slog.Logger
}

// New builds the interactive model around a scanner and the immutable
// per-run configuration.
func New(scanner *agent.Scanner, cfg config.Config) Model {
	theme, ok := ThemeByName(cfg.Theme)
	if !ok {
		theme, _ = ThemeByName("dark")
	}

	input := textinput.New()
	input.Prompt = ":"
	input.CharLimit = 120

	return Model{
		scanner:  scanner,
		cfg:      cfg,
		interval: cfg.RefreshInterval.Duration,
		theme:    theme,
		symbols:  SymbolsFor(cfg.ASCII),
		cmdInput: input,
		killFn:   agent.Kill,
		saveFn:   config.Save,
		log:      logging.ForComponent("ui"),
	}
}

// Chosen returns the session confirmed for a jump, or nil when the loop
// ended without a result.
func (m Model) Chosen() *model.AgentSession { return m.chosen }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.scanCmd(), tick(m.interval))
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// scanCmd runs one full scan cycle off the update loop. The displayed list
// is only ever replaced wholesale by the resulting scanMsg, so partial
// results are never shown.
func (m Model) scanCmd() tea.Cmd {
	scanner := m.scanner
	return func() tea.Msg { return scanMsg(scanner.Scan()) }
}

func (m Model) killCmd(pid int) tea.Cmd {
	kill := m.killFn
	return func() tea.Msg {
		err := kill(pid)
		time.Sleep(killRescanDelay)
		return killedMsg{pid: pid, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.scanCmd(), tick(m.interval))

	case scanMsg:
		m.applyScan([]model.AgentSession(msg))
		return m, nil

	case killedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("kill %d failed: %v", msg.pid, msg.err)
		} else {
			m.status = fmt.Sprintf("sent SIGTERM to %d", msg.pid)
		}
		return m, m.scanCmd()

	case tea.KeyMsg:
		// Quit is honoured from any state.
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.mode == modeCommand {
			return m.updateCommand(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

// applyScan replaces the session list with a freshly completed generation.
// The first non-empty generation seeds the selection on its first entry.
// After that the previous selection survives only if its pid is still
// present; otherwise nothing is selected, which beats snapping to an
// unrelated session.
func (m *Model) applyScan(sessions []model.AgentSession) {
	m.sessions = sessions
	if !m.seeded {
		if len(sessions) > 0 {
			m.seeded = true
			m.selectedPID = sessions[0].PID
		}
		return
	}
	if m.selectedPID != 0 && m.indexOf(m.selectedPID) < 0 {
		m.selectedPID = 0
	}
}

// indexOf returns the list position of a pid, or -1.
func (m *Model) indexOf(pid int) int {
	for i, s := range m.sessions {
		if s.PID == pid {
			return i
		}
	}
	return -1
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit

	case "j", "down":
		m.moveSelection(1)
		return m, nil

	case "k", "up":
		m.moveSelection(-1)
		return m, nil

	case "enter":
		if idx := m.indexOf(m.selectedPID); idx >= 0 {
			sess := m.sessions[idx]
			m.chosen = &sess
			return m, tea.Quit
		}
		return m, nil

	case "x":
		if idx := m.indexOf(m.selectedPID); idx >= 0 {
			return m, m.killCmd(m.sessions[idx].PID)
		}
		m.status = "nothing selected"
		return m, nil

	case ":":
		m.mode = modeCommand
		m.status = ""
		m.cmdInput.SetValue("")
		m.cmdInput.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

// moveSelection steps the selection by delta, wrapping at the boundaries.
// With no current selection, stepping forward lands on the first session
// and stepping back on the last.
func (m *Model) moveSelection(delta int) {
	if len(m.sessions) == 0 {
		return
	}
	idx := m.indexOf(m.selectedPID)
	if idx < 0 {
		if delta > 0 {
			idx = 0
		} else {
			idx = len(m.sessions) - 1
		}
	} else {
		idx = (idx + delta + len(m.sessions)) % len(m.sessions)
	}
	m.selectedPID = m.sessions[idx].PID
}

func (m Model) updateCommand(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = modeNormal
		m.cmdInput.Blur()
		return m, nil

	case tea.KeyEnter:
		text := strings.TrimSpace(m.cmdInput.Value())
		m.mode = modeNormal
		m.cmdInput.Blur()
		if text == "" {
			return m, nil
		}
		return m.executeCommand(text)
	}

	var cmd tea.Cmd
	m.cmdInput, cmd = m.cmdInput.Update(msg)
	return m, cmd
}

// executeCommand handles the small command grammar: theme changes and a
// no-op list refresh. Unrecognised input yields a transient message.
func (m Model) executeCommand(text string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(text)
	switch fields[0] {
	case "theme":
		if len(fields) < 2 {
			m.status = "theme: " + m.theme.Name + " (available: " + strings.Join(ThemeNames(), ", ") + ")"
			return m, nil
		}
		theme, ok := ThemeByName(fields[1])
		if !ok {
			m.status = "unknown theme: " + fields[1]
			return m, nil
		}
		m.theme = theme
		m.cfg.Theme = theme.Name
		if err := m.saveFn(m.cfg); err != nil {
			m.log.Warn("persisting theme failed", "err", err)
			m.status = "theme applied, not saved: " + err.Error()
		} else {
			m.status = "theme: " + theme.Name
		}
		return m, nil

	case "ls", "list":
		m.status = fmt.Sprintf("%d session(s)", len(m.sessions))
		return m, m.scanCmd()
	}

	m.status = "unknown command: " + fields[0]
	return m, nil
}
