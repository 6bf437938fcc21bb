package platform

import (
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ProcessEntry is one row of the process snapshot: identity and command
// only. Per-pid metrics are fetched separately, and only for the pids a
// scan actually cares about.
type ProcessEntry struct {
	PID     int
	PPID    int
	Name    string // short name (comm / argv[0] basename)
	Cmdline string // full command line, best-effort; may be empty
}

// Metrics holds the targeted per-pid numbers used to build a session record.
type Metrics struct {
	CPUPercent    float64
	MemoryBytes   uint64
	UptimeSeconds int64
}

// Platform abstracts OS-specific process introspection.
type Platform interface {
	// ListProcesses returns a snapshot of all visible processes.
	// Failures degrade to an empty slice.
	ListProcesses() []ProcessEntry
	// CPUPercents returns current CPU utilisation for exactly the given
	// pid set. Pids that vanished are absent from the map.
	CPUPercents(pids []int) map[int]float64
	// Metrics returns CPU, resident memory, and elapsed run time for one
	// pid. The error means the pid is gone and should be dropped.
	Metrics(pid int) (Metrics, error)
	// Cwd returns the working directory of a process. On platforms or
	// pids where the direct lookup fails it falls back to the open file
	// descriptor table; false means genuinely unresolvable.
	Cwd(pid int) (string, bool)
	// ListOpenFiles returns absolute file paths of all open FDs for a process.
	ListOpenFiles(pid int) []string
}

// P is the platform-specific implementation, initialised by an init() in
// the platform_linux.go or platform_darwin.go file.
var P Platform

// cpuPercentsPS queries `ps -o pid=,pcpu=` for the given pid set in a
// single invocation. Both supported platforms accept this form.
func cpuPercentsPS(pids []int) map[int]float64 {
	if len(pids) == 0 {
		return nil
	}
	strs := make([]string, len(pids))
	for i, pid := range pids {
		strs[i] = strconv.Itoa(pid)
	}
	// ps exits non-zero when some of the requested pids are already gone
	// but still prints the rest; keep whatever came through.
	out, err := exec.Command("ps", "-o", "pid=,pcpu=", "-p", strings.Join(strs, ",")).Output()
	if err != nil && len(out) == 0 {
		return nil
	}
	return parsePidCPULines(string(out))
}

// parsePidCPULines parses "PID PCPU" rows as printed by ps.
func parsePidCPULines(out string) map[int]float64 {
	result := make(map[int]float64)
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		pid, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		cpu, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			continue
		}
		result[pid] = cpu
	}
	return result
}

// cwdFromOpenFiles guesses a working directory from the fd table when the
// direct cwd lookup is unavailable: the parent directory of the first open
// absolute path that is not a device or socket pseudo-path.
func cwdFromOpenFiles(files []string) (string, bool) {
	sort.Strings(files)
	for _, f := range files {
		if !strings.HasPrefix(f, "/") {
			continue
		}
		if strings.HasPrefix(f, "/dev/") || strings.HasPrefix(f, "/proc/") || strings.HasPrefix(f, "/sys/") {
			continue
		}
		return filepath.Dir(f), true
	}
	return "", false
}

// parseEtime converts the ps etime format [[dd-]hh:]mm:ss to seconds.
func parseEtime(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	var days int64
	if idx := strings.Index(s, "-"); idx >= 0 {
		d, err := strconv.ParseInt(s[:idx], 10, 64)
		if err != nil {
			return 0
		}
		days = d
		s = s[idx+1:]
	}
	parts := strings.Split(s, ":")
	var secs int64
	for _, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return 0
		}
		secs = secs*60 + n
	}
	return days*86400 + secs
}
