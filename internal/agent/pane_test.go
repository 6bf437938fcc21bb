package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentpane/agentpane/internal/model"
	"github.com/agentpane/agentpane/internal/platform"
)

func procMap(entries ...platform.ProcessEntry) map[int]platform.ProcessEntry {
	m := make(map[int]platform.ProcessEntry, len(entries))
	for _, e := range entries {
		m[e.PID] = e
	}
	return m
}

func TestCorrelatePaneDirectOwner(t *testing.T) {
	panes := map[int]model.Pane{12: {OwnerPID: 12, ID: "%1", Session: "work"}}
	got := CorrelatePane(12, procMap(), panes)
	require.NotNil(t, got)
	assert.Equal(t, "%1", got.ID)
}

func TestCorrelatePaneWalksAncestors(t *testing.T) {
	// 12 -> 11 -> 10; pane owned by 10, three levels up. A second pane on
	// an unrelated pid must not be picked.
	procs := procMap(
		platform.ProcessEntry{PID: 12, PPID: 11},
		platform.ProcessEntry{PID: 11, PPID: 10},
		platform.ProcessEntry{PID: 10, PPID: 1},
	)
	panes := map[int]model.Pane{
		50: {OwnerPID: 50, ID: "%0", Session: "other"},
		10: {OwnerPID: 10, ID: "%3", Session: "work", WindowIndex: 2},
	}
	got := CorrelatePane(12, procs, panes)
	require.NotNil(t, got)
	assert.Equal(t, "%3", got.ID)
	assert.Equal(t, "work", got.Session)
}

func TestCorrelatePaneStopsAtTreeRoot(t *testing.T) {
	procs := procMap(
		platform.ProcessEntry{PID: 12, PPID: 11},
		platform.ProcessEntry{PID: 11, PPID: 1},
	)
	assert.Nil(t, CorrelatePane(12, procs, map[int]model.Pane{}))
}

func TestCorrelatePaneUnknownPid(t *testing.T) {
	// A pid missing from the snapshot terminates the walk.
	assert.Nil(t, CorrelatePane(42, procMap(), map[int]model.Pane{}))
}

func TestCorrelatePaneHopBound(t *testing.T) {
	// A chain deeper than the hop budget: pane sits 30 ancestors up and
	// must not be reached.
	procs := make(map[int]platform.ProcessEntry)
	for pid := 100; pid < 131; pid++ {
		procs[pid] = platform.ProcessEntry{PID: pid, PPID: pid + 1}
	}
	procs[131] = platform.ProcessEntry{PID: 131, PPID: 1}
	panes := map[int]model.Pane{131: {OwnerPID: 131, ID: "%9"}}

	assert.Nil(t, CorrelatePane(100, procs, panes))

	// The same pane within the budget is found.
	near := CorrelatePane(110, procs, panes)
	require.NotNil(t, near)
	assert.Equal(t, "%9", near.ID)
}
