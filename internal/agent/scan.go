package agent

import (
	"log/slog"
	"os"
	"sort"
	"syscall"

	"github.com/agentpane/agentpane/internal/logging"
	"github.com/agentpane/agentpane/internal/model"
	"github.com/agentpane/agentpane/internal/platform"
	"github.com/agentpane/agentpane/internal/tmux"
)

// Scanner assembles one generation of agent sessions per scan cycle. Its
// collaborators are plain funcs so tests can run a full cycle without an
// operating system underneath. Every sub-query is independently failable
// and independently defaults to empty/zero; one flaky external tool never
// blocks the whole pipeline.
type Scanner struct {
	IdleThreshold float64

	Processes   func() []platform.ProcessEntry
	CPUPercents func(pids []int) map[int]float64
	Metrics     func(pid int) (platform.Metrics, error)
	Cwd         func(pid int) (string, bool)
	Panes       func() ([]model.Pane, error)
	// Enrich fills best-effort extras (e.g. the Codex thread title) and
	// must never fail the scan. Optional.
	Enrich func(*model.AgentSession)

	log *slog.Logger
}

// NewScanner wires a Scanner to the real platform and tmux collaborators.
func NewScanner(idleThreshold float64) *Scanner {
	return &Scanner{
		IdleThreshold: idleThreshold,
		Processes:     platform.P.ListProcesses,
		CPUPercents:   platform.P.CPUPercents,
		Metrics:       platform.P.Metrics,
		Cwd:           platform.P.Cwd,
		Panes:         tmux.ListPanes,
		Enrich:        EnrichCodex,
		log:           logging.ForComponent("scan"),
	}
}

// Scan runs one full cycle and returns the complete, deterministically
// ordered session list for this generation. A per-pid metrics failure
// drops that pid rather than returning a record with partial fields.
func (s *Scanner) Scan() []model.AgentSession {
	panes, err := s.Panes()
	if err != nil && s.log != nil {
		// tmux missing or no server running; sessions simply carry no pane.
		s.log.Debug("pane snapshot unavailable", "err", err)
	}
	paneByPID := make(map[int]model.Pane, len(panes))
	for _, p := range panes {
		paneByPID[p.OwnerPID] = p
	}

	procs := s.Processes()
	candidates := MatchAgents(procs)
	if len(candidates) == 0 {
		return nil
	}

	procByPID := make(map[int]platform.ProcessEntry, len(procs))
	for _, p := range procs {
		procByPID[p.PID] = p
	}

	// The aggregation snapshot is fetched fresh rather than reused from
	// the matcher's copy; the two may be slightly time-skewed and the
	// aggregate tolerates that.
	treeProcs := s.Processes()

	sessions := make([]model.AgentSession, 0, len(candidates))
	for _, c := range candidates {
		metrics, err := s.Metrics(c.PID)
		if err != nil {
			if s.log != nil {
				s.log.Debug("dropping pid, exited mid-scan", "pid", c.PID, "err", err)
			}
			continue
		}

		cpu := AggregateCPU(c.PID, treeProcs, s.CPUPercents)
		cwd, _ := s.Cwd(c.PID)

		sess := model.AgentSession{
			PID:           c.PID,
			Type:          c.Type,
			WorkingDir:    cwd,
			Pane:          CorrelatePane(c.PID, procByPID, paneByPID),
			UptimeSeconds: metrics.UptimeSeconds,
			MemoryMB:      metrics.MemoryBytes / 1024 / 1024,
			CPUPercent:    cpu,
			State:         model.StateFor(cpu, s.IdleThreshold),
		}
		if s.Enrich != nil {
			s.Enrich(&sess)
		}
		sessions = append(sessions, sess)
	}

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].Type != sessions[j].Type {
			return sessions[i].Type < sessions[j].Type
		}
		return sessions[i].PID < sessions[j].PID
	})
	return sessions
}

// Kill delivers SIGTERM to a session's root process. Callers should wait
// briefly before the next scan so the OS process table catches up.
func Kill(pid int) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return proc.Signal(syscall.SIGTERM)
}
