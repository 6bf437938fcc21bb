package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
)

// FormatDuration renders elapsed seconds as "2h 13m", "5m", or "42s".
func FormatDuration(seconds int64) string {
	minutes := seconds / 60
	hours := minutes / 60
	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// ShortenHome replaces the user's home directory prefix with "~".
func ShortenHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}

// TruncateTail shortens a string to maxWidth display cells, appending "...".
func TruncateTail(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// TruncateHead keeps the trailing maxWidth display cells of a path,
// prefixing "..."; directories are more recognisable by their tail.
func TruncateHead(s string, maxWidth int) string {
	w := runewidth.StringWidth(s)
	if w <= maxWidth {
		return s
	}
	return runewidth.TruncateLeft(s, w-maxWidth+3, "...")
}
