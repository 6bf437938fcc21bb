package agent

import (
	"strings"

	"github.com/agentpane/agentpane/internal/platform"
)

// helperNames lists command substrings excluded from a session's CPU
// aggregate. Language servers and similar tooling an agent spawns are
// long-lived but say nothing about whether the agent itself is working;
// counting them produces false "running" classifications.
var helperNames = []string{
	"language-server",
	"language_server",
	"langserver",
	"pyright",
	"gopls",
	"rust-analyzer",
	"tsserver",
	"eslint_d",
	"copilot",
}

// ChildMap is a parent pid to direct children adjacency, rebuilt from a
// fresh snapshot on every scan and never retained across scans.
type ChildMap map[int][]int

// BuildChildMap builds the adjacency from a process snapshot.
func BuildChildMap(procs []platform.ProcessEntry) ChildMap {
	m := make(ChildMap, len(procs))
	for _, p := range procs {
		if p.PPID > 0 {
			m[p.PPID] = append(m[p.PPID], p.PID)
		}
	}
	return m
}

// Descendants returns the root plus all transitive children, breadth-first.
func Descendants(root int, children ChildMap) []int {
	pids := []int{root}
	seen := map[int]bool{root: true}
	for i := 0; i < len(pids); i++ {
		for _, child := range children[pids[i]] {
			if seen[child] {
				continue
			}
			seen[child] = true
			pids = append(pids, child)
		}
	}
	return pids
}

// AggregateCPU sums CPU utilisation over the root and all live descendants
// present in the given snapshot, excluding descendants whose command
// matches the helper list. The root itself is always counted. cpus supplies
// current utilisation for exactly the collected pid set; any query failure
// yields zero, which reads as idle and never aborts a scan.
func AggregateCPU(root int, procs []platform.ProcessEntry, cpus func([]int) map[int]float64) float64 {
	children := BuildChildMap(procs)
	pids := Descendants(root, children)

	usage := cpus(pids)
	if len(usage) == 0 {
		return 0
	}

	byPID := make(map[int]platform.ProcessEntry, len(procs))
	for _, p := range procs {
		byPID[p.PID] = p
	}

	var sum float64
	for _, pid := range pids {
		if pid != root {
			if e, ok := byPID[pid]; ok && isHelperProcess(e) {
				continue
			}
		}
		sum += usage[pid]
	}
	return sum
}

// isHelperProcess reports whether the entry's command matches the helper
// list.
func isHelperProcess(e platform.ProcessEntry) bool {
	name := strings.ToLower(e.Name)
	cmdline := strings.ToLower(e.Cmdline)
	for _, h := range helperNames {
		if strings.Contains(cmdline, h) || strings.Contains(name, h) {
			return true
		}
	}
	return false
}
