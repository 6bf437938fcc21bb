package ui

import (
	"fmt"
	"strings"

	"github.com/agentpane/agentpane/internal/model"
)

const dirWidth = 40

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("agentpane"))
	b.WriteString(m.theme.Dim.Render(fmt.Sprintf("  %d session(s)", len(m.sessions))))
	b.WriteString("\n\n")

	if len(m.sessions) == 0 {
		b.WriteString(m.theme.Dim.Render("  no agent sessions detected"))
		b.WriteString("\n")
	} else {
		header := fmt.Sprintf("  %-9s %7s %6s %7s %8s  %-16s %s",
			"AGENT", "PID", "CPU%", "MEM", "UPTIME", "PANE", "DIRECTORY")
		b.WriteString(m.theme.Header.Render(header))
		b.WriteString("\n")
		for _, s := range m.sessions {
			b.WriteString(m.renderRow(s, s.PID == m.selectedPID))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.mode == modeCommand {
		b.WriteString(m.theme.Prompt.Render(m.cmdInput.View()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(m.theme.Status.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.theme.Help.Render("j/k move · enter jump · x kill · : command · q quit"))
	return b.String()
}

func (m Model) renderRow(s model.AgentSession, selected bool) string {
	glyph := m.symbols.Waiting
	glyphStyle := m.theme.Waiting
	if s.State == model.StateRunning {
		glyph = m.symbols.Running
		glyphStyle = m.theme.Running
	}

	pane := "-"
	if s.Pane != nil {
		pane = fmt.Sprintf("%s:%d.%s", s.Pane.Session, s.Pane.WindowIndex, s.Pane.ID)
	}
	dir := TruncateHead(ShortenHome(s.WorkingDir), dirWidth)
	if dir == "" {
		dir = "-"
	}

	line := fmt.Sprintf("%-9s %7d %5.1f%% %6dM %8s  %-16s %s",
		s.Type, s.PID, s.CPUPercent, s.MemoryMB,
		FormatDuration(s.UptimeSeconds), TruncateTail(pane, 16), dir)
	if s.Title != "" {
		line += m.theme.Dim.Render(" · " + TruncateTail(s.Title, 28))
	}

	if selected {
		return glyphStyle.Render(glyph) + " " + m.theme.Selected.Render(line)
	}
	return glyphStyle.Render(glyph) + " " + line
}
