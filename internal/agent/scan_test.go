package agent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentpane/agentpane/internal/model"
	"github.com/agentpane/agentpane/internal/platform"
)

// fakeScanner wires a Scanner to in-memory collaborators.
func fakeScanner(procs []platform.ProcessEntry, usage map[int]float64, panes []model.Pane) *Scanner {
	return &Scanner{
		IdleThreshold: 3.0,
		Processes:     func() []platform.ProcessEntry { return procs },
		CPUPercents:   staticCPUs(usage),
		Metrics: func(pid int) (platform.Metrics, error) {
			return platform.Metrics{CPUPercent: usage[pid], MemoryBytes: 256 << 20, UptimeSeconds: 90}, nil
		},
		Cwd:   func(pid int) (string, bool) { return "/home/u/project", true },
		Panes: func() ([]model.Pane, error) { return panes, nil },
	}
}

func TestScanHelperExcludedKeepsSessionWaiting(t *testing.T) {
	// Root at 1.0 with a 4.0 language server underneath: aggregate is 1.0,
	// which sits under the 3.0 threshold.
	procs := []platform.ProcessEntry{
		{PID: 10, PPID: 1, Name: "claude", Cmdline: "claude"},
		{PID: 11, PPID: 10, Name: "pyright-langserver", Cmdline: "pyright-langserver --stdio"},
	}
	s := fakeScanner(procs, map[int]float64{10: 1.0, 11: 4.0}, nil)

	got := s.Scan()
	require.Len(t, got, 1)
	assert.Equal(t, 10, got[0].PID)
	assert.InDelta(t, 1.0, got[0].CPUPercent, 1e-9)
	assert.Equal(t, model.StateWaiting, got[0].State)
	assert.Nil(t, got[0].Pane)
	assert.Equal(t, "/home/u/project", got[0].WorkingDir)
	assert.Equal(t, uint64(256), got[0].MemoryMB)
}

func TestScanStateBoundaryIsWaiting(t *testing.T) {
	// Aggregated CPU exactly at the threshold stays Waiting; Running
	// requires a strict excess.
	procs := []platform.ProcessEntry{{PID: 10, PPID: 1, Name: "claude", Cmdline: "claude"}}
	s := fakeScanner(procs, map[int]float64{10: 3.0}, nil)

	got := s.Scan()
	require.Len(t, got, 1)
	assert.Equal(t, model.StateWaiting, got[0].State)

	s = fakeScanner(procs, map[int]float64{10: 3.01}, nil)
	got = s.Scan()
	require.Len(t, got, 1)
	assert.Equal(t, model.StateRunning, got[0].State)
}

func TestScanSortsByTypeThenPid(t *testing.T) {
	procs := []platform.ProcessEntry{
		{PID: 40, PPID: 1, Name: "gemini", Cmdline: "gemini"},
		{PID: 30, PPID: 1, Name: "claude", Cmdline: "claude"},
		{PID: 20, PPID: 1, Name: "claude", Cmdline: "claude"},
		{PID: 10, PPID: 1, Name: "codex", Cmdline: "codex"},
	}
	s := fakeScanner(procs, map[int]float64{}, nil)

	got := s.Scan()
	require.Len(t, got, 4)
	assert.Equal(t, []int{20, 30, 10, 40}, []int{got[0].PID, got[1].PID, got[2].PID, got[3].PID})
	assert.Equal(t, model.AgentClaude, got[0].Type)
	assert.Equal(t, model.AgentCodex, got[2].Type)
}

func TestScanDropsPidWhenMetricsFail(t *testing.T) {
	// A process that exits mid-scan is dropped entirely, never returned
	// with partial fields.
	procs := []platform.ProcessEntry{
		{PID: 10, PPID: 1, Name: "claude", Cmdline: "claude"},
		{PID: 20, PPID: 1, Name: "codex", Cmdline: "codex"},
	}
	s := fakeScanner(procs, map[int]float64{}, nil)
	s.Metrics = func(pid int) (platform.Metrics, error) {
		if pid == 20 {
			return platform.Metrics{}, errors.New("no such process")
		}
		return platform.Metrics{UptimeSeconds: 5}, nil
	}

	got := s.Scan()
	require.Len(t, got, 1)
	assert.Equal(t, 10, got[0].PID)
}

func TestScanCorrelatesPaneThroughAncestors(t *testing.T) {
	procs := []platform.ProcessEntry{
		{PID: 10, PPID: 1, Name: "tmux", Cmdline: "tmux"},
		{PID: 11, PPID: 10, Name: "zsh", Cmdline: "-zsh"},
		{PID: 12, PPID: 11, Name: "claude", Cmdline: "claude"},
	}
	panes := []model.Pane{{OwnerPID: 11, ID: "%2", Session: "work", WindowIndex: 1}}
	s := fakeScanner(procs, map[int]float64{}, panes)

	got := s.Scan()
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Pane)
	assert.Equal(t, "work:1.%2", got[0].Pane.Target())
}

func TestScanToleratesPaneSourceFailure(t *testing.T) {
	procs := []platform.ProcessEntry{{PID: 10, PPID: 1, Name: "claude", Cmdline: "claude"}}
	s := fakeScanner(procs, map[int]float64{}, nil)
	s.Panes = func() ([]model.Pane, error) { return nil, errors.New("no tmux server") }

	got := s.Scan()
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Pane)
}

func TestScanNoMatches(t *testing.T) {
	s := fakeScanner([]platform.ProcessEntry{{PID: 1, PPID: 0, Name: "init"}}, nil, nil)
	assert.Empty(t, s.Scan())
}

func TestScanUniquePids(t *testing.T) {
	procs := []platform.ProcessEntry{
		{PID: 10, PPID: 1, Name: "claude", Cmdline: "claude"},
		{PID: 11, PPID: 1, Name: "codex", Cmdline: "codex"},
		{PID: 12, PPID: 1, Name: "gemini", Cmdline: "gemini"},
	}
	s := fakeScanner(procs, nil, nil)

	seen := make(map[int]bool)
	for _, sess := range s.Scan() {
		assert.False(t, seen[sess.PID], "duplicate pid %d", sess.PID)
		seen[sess.PID] = true
	}
	assert.Len(t, seen, 3)
}
