package ui

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{42, "42s"},
		{60, "1m"},
		{330, "5m"},
		{3600, "1h 0m"},
		{7980, "2h 13m"},
		{90000, "25h 0m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.seconds))
	}
}

func TestTruncateTail(t *testing.T) {
	assert.Equal(t, "short", TruncateTail("short", 10))
	assert.Equal(t, "a ver...", TruncateTail("a very long title", 8))
}

func TestTruncateHead(t *testing.T) {
	assert.Equal(t, "/tmp", TruncateHead("/tmp", 10))
	got := TruncateHead("/home/user/projects/deeply/nested/dir", 15)
	assert.Equal(t, "...y/nested/dir", got)
	assert.Equal(t, 15, runewidth.StringWidth(got), "truncation fills the full width")
}
