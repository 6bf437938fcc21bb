package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateFor(t *testing.T) {
	tests := []struct {
		name      string
		cpu       float64
		threshold float64
		want      SessionState
	}{
		{"above threshold runs", 5.0, 3.0, StateRunning},
		{"below threshold waits", 1.0, 3.0, StateWaiting},
		{"exactly at threshold waits", 3.0, 3.0, StateWaiting},
		{"zero threshold, zero cpu", 0.0, 0.0, StateWaiting},
		{"zero threshold, any cpu", 0.1, 0.0, StateRunning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StateFor(tt.cpu, tt.threshold))
		})
	}
}

func TestPaneTargets(t *testing.T) {
	p := Pane{OwnerPID: 42, ID: "%7", Session: "work", WindowIndex: 3}
	assert.Equal(t, "work:3.%7", p.Target())
	assert.Equal(t, "work:3", p.WindowTarget())
}

func TestAgentTypeOrdering(t *testing.T) {
	// The constant values are the presentation sort key.
	for i := 1; i < len(AllAgents); i++ {
		assert.Less(t, string(AllAgents[i-1]), string(AllAgents[i]))
	}
}
