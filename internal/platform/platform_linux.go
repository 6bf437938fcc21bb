//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Compile-time interface check.
var _ Platform = (*linuxPlatform)(nil)

// Kernel clock tick rate; fixed at 100 on every supported architecture.
const clockTicks = 100

type linuxPlatform struct{}

func init() { P = &linuxPlatform{} }

// ListProcesses scans /proc and returns one entry per live process.
func (l *linuxPlatform) ListProcesses() []ProcessEntry {
	dirs, err := filepath.Glob("/proc/[0-9]*")
	if err != nil {
		return nil
	}

	entries := make([]ProcessEntry, 0, len(dirs))
	for _, dir := range dirs {
		pid, err := strconv.Atoi(filepath.Base(dir))
		if err != nil {
			continue
		}
		stat, err := os.ReadFile(filepath.Join(dir, "stat"))
		if err != nil {
			continue // exited mid-scan
		}
		comm, ppid, _, ok := parseProcStat(string(stat))
		if !ok {
			continue
		}
		entries = append(entries, ProcessEntry{
			PID:     pid,
			PPID:    ppid,
			Name:    comm,
			Cmdline: readCmdline(pid),
		})
	}
	return entries
}

// readCmdline returns the full command line of a process with NUL
// separators replaced by spaces. Kernel threads yield an empty string.
func readCmdline(pid int) string {
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/cmdline", pid))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.ReplaceAll(string(data), "\x00", " "))
}

// parseProcStat extracts comm, ppid, and starttime (in clock ticks) from a
// /proc/<pid>/stat line. The comm field is parenthesised and may itself
// contain spaces and parentheses, so fields are counted from the last ')'.
func parseProcStat(stat string) (comm string, ppid int, starttime uint64, ok bool) {
	lparen := strings.Index(stat, "(")
	rparen := strings.LastIndex(stat, ")")
	if lparen < 0 || rparen < 0 || rparen < lparen {
		return "", 0, 0, false
	}
	comm = stat[lparen+1 : rparen]

	// Fields after ')': state ppid pgrp session tty ... starttime is the
	// 22nd stat field overall, index 19 in this slice.
	rest := strings.Fields(stat[rparen+1:])
	if len(rest) < 2 {
		return "", 0, 0, false
	}
	ppid, err := strconv.Atoi(rest[1])
	if err != nil {
		return "", 0, 0, false
	}
	if len(rest) > 19 {
		starttime, _ = strconv.ParseUint(rest[19], 10, 64)
	}
	return comm, ppid, starttime, true
}

// CPUPercents queries ps once for the given pid set.
func (l *linuxPlatform) CPUPercents(pids []int) map[int]float64 {
	return cpuPercentsPS(pids)
}

// Metrics reads /proc for memory and uptime, and ps for CPU. The error
// signals that the process exited and the caller should drop the pid.
func (l *linuxPlatform) Metrics(pid int) (Metrics, error) {
	stat, err := os.ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		return Metrics{}, err
	}
	_, _, starttime, ok := parseProcStat(string(stat))
	if !ok {
		return Metrics{}, fmt.Errorf("malformed stat for pid %d", pid)
	}

	var m Metrics
	m.UptimeSeconds = uptimeSince(starttime)
	m.MemoryBytes = readVmRSS(pid)
	if cpus := cpuPercentsPS([]int{pid}); cpus != nil {
		m.CPUPercent = cpus[pid]
	}
	return m, nil
}

// uptimeSince converts a process starttime (clock ticks since boot) to
// elapsed seconds using /proc/uptime.
func uptimeSince(starttime uint64) int64 {
	data, err := os.ReadFile("/proc/uptime")
	if err != nil {
		return 0
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return 0
	}
	bootSecs, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	elapsed := int64(bootSecs) - int64(starttime/clockTicks)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// readVmRSS returns resident memory in bytes from /proc/<pid>/status.
func readVmRSS(pid int) uint64 {
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/status", pid))
	if err != nil {
		return 0
	}
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(line, "VmRSS:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0
		}
		kb, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return 0
		}
		return kb * 1024
	}
	return 0
}

// Cwd returns the working directory of a process by reading the
// /proc/<pid>/cwd symlink, falling back to the fd table.
func (l *linuxPlatform) Cwd(pid int) (string, bool) {
	link, err := os.Readlink(fmt.Sprintf("/proc/%d/cwd", pid))
	if err == nil && link != "" {
		return link, true
	}
	return cwdFromOpenFiles(l.ListOpenFiles(pid))
}

// ListOpenFiles returns absolute file paths of all open FDs for a process
// by reading /proc/<pid>/fd/* symlinks.
func (l *linuxPlatform) ListOpenFiles(pid int) []string {
	fdDir := fmt.Sprintf("/proc/%d/fd", pid)
	entries, err := os.ReadDir(fdDir)
	if err != nil {
		return nil
	}

	var paths []string
	for _, entry := range entries {
		link, err := os.Readlink(filepath.Join(fdDir, entry.Name()))
		if err != nil {
			continue
		}
		paths = append(paths, link)
	}
	return paths
}
