package agent

import (
	"strings"

	"github.com/agentpane/agentpane/internal/model"
	"github.com/agentpane/agentpane/internal/platform"
)

// matchRule binds a lowercase substring to the agent type it selects.
type matchRule struct {
	substr string
	agent  model.AgentType
}

// matchRules is a static ordered list evaluated front to back; the first
// hit wins. Matching is a plain substring test on the lowered short name
// and command line, which is deliberately permissive: a process whose
// invocation path merely contains an agent name will match. Known false
// positives are patched via denyList instead of tightening the test.
var matchRules = []matchRule{
	{"opencode", model.AgentOpenCode},
	{"claude", model.AgentClaude},
	{"codex", model.AgentCodex},
	{"cursor", model.AgentCursor},
	{"gemini", model.AgentGemini},
}

// denyList rejects processes whose name incidentally contains an agent
// substring. Cursor the editor spawns "Cursor Helper" GPU and renderer
// processes that are not agent sessions.
var denyList = []string{
	"cursor helper",
}

// Candidate pairs a matched process with its classified agent type.
type Candidate struct {
	PID   int
	Type  model.AgentType
	Entry platform.ProcessEntry
}

// MatchAgents classifies snapshot entries into agent candidates and applies
// subprocess suppression: agent CLIs often re-spawn themselves or shell
// wrappers, so a candidate whose direct parent is also a candidate is
// discarded and only root agent processes survive.
func MatchAgents(procs []platform.ProcessEntry) []Candidate {
	var candidates []Candidate
	matched := make(map[int]bool)

	for _, p := range procs {
		name := strings.ToLower(p.Name)
		cmdline := strings.ToLower(p.Cmdline)
		if denied(name) || denied(cmdline) {
			continue
		}
		agentType, ok := Classify(name, cmdline)
		if !ok {
			continue
		}
		candidates = append(candidates, Candidate{PID: p.PID, Type: agentType, Entry: p})
		matched[p.PID] = true
	}

	roots := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if matched[c.Entry.PPID] {
			continue
		}
		roots = append(roots, c)
	}
	return roots
}

// Classify tests both lowered fields against the rules. The command line
// is preferred over the short name for selecting the type. The second
// return value reports whether anything matched at all; an entry that
// matched but selects no known type is AgentUnknown.
func Classify(name, cmdline string) (model.AgentType, bool) {
	if t := typeFor(cmdline); t != model.AgentUnknown {
		return t, true
	}
	if t := typeFor(name); t != model.AgentUnknown {
		return t, true
	}
	return model.AgentUnknown, false
}

// typeFor returns the type selected by the first rule whose substring
// occurs in s, or AgentUnknown.
func typeFor(s string) model.AgentType {
	if s == "" {
		return model.AgentUnknown
	}
	for _, r := range matchRules {
		if strings.Contains(s, r.substr) {
			return r.agent
		}
	}
	return model.AgentUnknown
}

// denied reports whether s hits the false-positive denylist.
func denied(s string) bool {
	for _, d := range denyList {
		if s != "" && strings.Contains(s, d) {
			return true
		}
	}
	return false
}
