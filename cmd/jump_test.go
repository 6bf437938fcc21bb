package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentpane/agentpane/internal/model"
)

func jumpSessions() []model.AgentSession {
	return []model.AgentSession{
		{PID: 10, Type: model.AgentClaude, Pane: &model.Pane{Session: "work", WindowIndex: 1, ID: "%1"}},
		{PID: 20, Type: model.AgentCodex, Pane: &model.Pane{Session: "workbench", WindowIndex: 0, ID: "%4"}},
		{PID: 30, Type: model.AgentGemini}, // no pane
	}
}

func TestResolveTargetByNumericId(t *testing.T) {
	sess, err := resolveTarget(jumpSessions(), "2")
	require.NoError(t, err)
	assert.Equal(t, 20, sess.PID)
}

func TestResolveTargetIdOutOfRange(t *testing.T) {
	_, err := resolveTarget(jumpSessions(), "4")
	assert.ErrorContains(t, err, "out of range")

	_, err = resolveTarget(jumpSessions(), "0")
	assert.ErrorContains(t, err, "out of range")
}

func TestResolveTargetByUniqueName(t *testing.T) {
	sess, err := resolveTarget(jumpSessions(), "bench")
	require.NoError(t, err)
	assert.Equal(t, 20, sess.PID)

	// Matching is case-insensitive.
	sess, err = resolveTarget(jumpSessions(), "BENCH")
	require.NoError(t, err)
	assert.Equal(t, 20, sess.PID)
}

func TestResolveTargetAmbiguousListsCandidates(t *testing.T) {
	// "work" is a substring of both "work" and "workbench": no action,
	// every candidate reported.
	_, err := resolveTarget(jumpSessions(), "work")
	require.Error(t, err)
	assert.ErrorContains(t, err, "ambiguous")
	assert.ErrorContains(t, err, "work")
	assert.ErrorContains(t, err, "workbench")
}

func TestResolveTargetNotFound(t *testing.T) {
	_, err := resolveTarget(jumpSessions(), "nope")
	assert.ErrorContains(t, err, "no session matching")
}

func TestResolveTargetSkipsPanelessSessions(t *testing.T) {
	// Sessions without a pane have no name to match against.
	_, err := resolveTarget(jumpSessions(), "gemini")
	assert.Error(t, err)
}
