//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Compile-time interface check.
var _ Platform = (*darwinPlatform)(nil)

type darwinPlatform struct{}

func init() { P = &darwinPlatform{} }

// ListProcesses runs `ps ax -o pid,ppid,command` and returns one entry per
// live process. The short name is argv[0]'s basename; ps offers no way to
// separate a command path containing spaces from its arguments, so this is
// best-effort in the same way the rest of the ps parsing is.
func (d *darwinPlatform) ListProcesses() []ProcessEntry {
	out, err := exec.Command("ps", "ax", "-o", "pid=,ppid=,command=").Output()
	if err != nil {
		return nil
	}
	return parsePSProcesses(string(out))
}

// parsePSProcesses parses "PID PPID COMMAND ARGS..." rows. The numeric
// columns are right-aligned, so fields are split on whitespace runs; inner
// argument spacing is collapsed, which the substring matching tolerates.
func parsePSProcesses(out string) []ProcessEntry {
	var entries []ProcessEntry
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		pid, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		ppid, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		entries = append(entries, ProcessEntry{
			PID:     pid,
			PPID:    ppid,
			Name:    baseName(fields[2]),
			Cmdline: strings.Join(fields[2:], " "),
		})
	}
	return entries
}

// baseName returns the path component after the last '/'.
func baseName(path string) string {
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// CPUPercents queries ps once for the given pid set.
func (d *darwinPlatform) CPUPercents(pids []int) map[int]float64 {
	return cpuPercentsPS(pids)
}

// Metrics runs `ps -o pcpu=,rss=,etime= -p PID`. The error signals that
// the process exited and the caller should drop the pid.
func (d *darwinPlatform) Metrics(pid int) (Metrics, error) {
	out, err := exec.Command("ps", "-o", "pcpu=,rss=,etime=", "-p", strconv.Itoa(pid)).Output()
	if err != nil {
		return Metrics{}, err
	}
	fields := strings.Fields(string(out))
	if len(fields) < 3 {
		return Metrics{}, fmt.Errorf("no ps output for pid %d", pid)
	}

	var m Metrics
	m.CPUPercent, _ = strconv.ParseFloat(fields[0], 64)
	rssKB, _ := strconv.ParseUint(fields[1], 10, 64)
	m.MemoryBytes = rssKB * 1024
	m.UptimeSeconds = parseEtime(fields[2])
	return m, nil
}

// Cwd runs `lsof -a -p PID -d cwd -Fn`, falling back to the fd table.
func (d *darwinPlatform) Cwd(pid int) (string, bool) {
	out, err := exec.Command("lsof", "-a", "-p", strconv.Itoa(pid), "-d", "cwd", "-Fn").Output()
	if err == nil {
		for _, line := range strings.Split(string(out), "\n") {
			if strings.HasPrefix(line, "n/") {
				return line[1:], true
			}
		}
	}
	return cwdFromOpenFiles(d.ListOpenFiles(pid))
}

// ListOpenFiles runs `lsof -p PID -Fn` and returns absolute file paths
// of all open file descriptors for the given process.
func (d *darwinPlatform) ListOpenFiles(pid int) []string {
	out, err := exec.Command("lsof", "-p", strconv.Itoa(pid), "-Fn").Output()
	if err != nil {
		return nil
	}

	var paths []string
	for _, line := range strings.Split(string(out), "\n") {
		// lsof -Fn outputs lines prefixed with a field character; "n"
		// lines contain the file name. Keep only absolute paths.
		if strings.HasPrefix(line, "n/") {
			paths = append(paths, line[1:])
		}
	}
	return paths
}
