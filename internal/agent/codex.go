package agent

import (
	"database/sql"
	"os"
	"path/filepath"
	"regexp"

	"github.com/agentpane/agentpane/internal/model"
	"github.com/agentpane/agentpane/internal/platform"

	_ "modernc.org/sqlite"
)

// codexThreadInfo holds metadata fetched from the Codex SQLite database.
type codexThreadInfo struct {
	Title string
	CWD   string
}

// rolloutFileRe matches a Codex rollout JSONL held open by the process,
// e.g. rollout-2026-02-26T23-51-07-019c9aa5-....jsonl, capturing the
// trailing thread UUID (8-4-4-4-12 hex).
var rolloutFileRe = regexp.MustCompile(`rollout.*?([0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12})\.jsonl$`)

// EnrichCodex fills the thread title and the original launch directory for
// codex sessions from the Codex CLI's own state database. Strictly
// best-effort: any failure leaves the session as assembled.
func EnrichCodex(sess *model.AgentSession) {
	if sess.Type != model.AgentCodex {
		return
	}
	threadID := findRolloutThread(sess.PID)
	if threadID == "" {
		return
	}
	info := lookupCodexThread(threadID)
	if info == nil {
		return
	}
	sess.Title = info.Title
	if sess.WorkingDir == "" && info.CWD != "" {
		sess.WorkingDir = info.CWD
	}
}

// findRolloutThread inspects the open files of a process for a rollout
// JSONL and returns the extracted thread UUID.
func findRolloutThread(pid int) string {
	for _, f := range platform.P.ListOpenFiles(pid) {
		if matches := rolloutFileRe.FindStringSubmatch(f); len(matches) >= 2 {
			return matches[1]
		}
	}
	return ""
}

// lookupCodexThread queries the Codex SQLite database for thread metadata.
// The threads table stores title and cwd per thread.
func lookupCodexThread(threadID string) *codexThreadInfo {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	dbPath := filepath.Join(home, ".codex", "state_5.sqlite")
	db, err := sql.Open("sqlite", dbPath+"?mode=ro&_journal_mode=WAL")
	if err != nil {
		return nil
	}
	defer db.Close()

	var info codexThreadInfo
	err = db.QueryRow(
		"SELECT title, cwd FROM threads WHERE id = ?",
		threadID,
	).Scan(&info.Title, &info.CWD)
	if err != nil {
		return nil
	}
	return &info
}
