package tmux

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentpane/agentpane/internal/model"
)

func TestParsePanes(t *testing.T) {
	out := "1234\t%0\twork\t0\t181\t48\n" +
		"5678\t%3\twork\t2\t90\t24\n" +
		"9012\t%5\tscratch\t0\t181\t48\n"
	panes := ParsePanes(out)
	require.Len(t, panes, 3)

	assert.Equal(t, model.Pane{OwnerPID: 1234, ID: "%0", Session: "work", WindowIndex: 0, Width: 181, Height: 48}, panes[0])
	assert.Equal(t, "work:2.%3", panes[1].Target())
	assert.Equal(t, "scratch", panes[2].Session)
}

func TestParsePanesSkipsMalformedRows(t *testing.T) {
	out := "not-a-pid\t%0\twork\t0\t80\t24\n" + // non-numeric pid
		"1234\t%1\twork\n" + // too few fields
		"0\t%2\twork\t1\t80\t24\n" + // pid 0
		"\n" +
		"4321\t%4\twork\tx\t80\t24\n" + // non-numeric window
		"5555\t%6\tmain\t1\t80\t24\n"
	panes := ParsePanes(out)
	require.Len(t, panes, 1)
	assert.Equal(t, 5555, panes[0].OwnerPID)
}

func TestParsePanesSessionNameWithColon(t *testing.T) {
	// Session names may contain almost anything; only tabs delimit fields.
	out := "77\t%1\tmy:odd session\t4\t100\t30\n"
	panes := ParsePanes(out)
	require.Len(t, panes, 1)
	assert.Equal(t, "my:odd session", panes[0].Session)
}

func TestInsideTmux(t *testing.T) {
	t.Setenv("TMUX", "")
	assert.False(t, InsideTmux())
	t.Setenv("TMUX", "/tmp/tmux-1000/default,12345,0")
	assert.True(t, InsideTmux())
}
