package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Symbols is the glyph set for session state indicators. The ASCII set
// exists for terminals and fonts that render the dots poorly.
type Symbols struct {
	Running string
	Waiting string
}

var (
	unicodeSymbols = Symbols{Running: "●", Waiting: "○"}
	asciiSymbols   = Symbols{Running: "*", Waiting: "o"}
)

// SymbolsFor selects the glyph set from the config flag.
func SymbolsFor(ascii bool) Symbols {
	if ascii {
		return asciiSymbols
	}
	return unicodeSymbols
}

// Theme groups the styles the list view draws with.
type Theme struct {
	Name     string
	Title    lipgloss.Style
	Header   lipgloss.Style
	Selected lipgloss.Style
	Running  lipgloss.Style
	Waiting  lipgloss.Style
	Dim      lipgloss.Style
	Status   lipgloss.Style
	Help     lipgloss.Style
	Prompt   lipgloss.Style
}

var themes = map[string]Theme{
	"dark": {
		Name:     "dark",
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		Header:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
		Selected: lipgloss.NewStyle().Background(lipgloss.Color("30")).Foreground(lipgloss.Color("255")),
		Running:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Waiting:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Prompt:   lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
	},
	"light": {
		Name:     "light",
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Bold(true),
		Header:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Bold(true),
		Selected: lipgloss.NewStyle().Background(lipgloss.Color("153")).Foreground(lipgloss.Color("16")),
		Running:  lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		Waiting:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Prompt:   lipgloss.NewStyle().Foreground(lipgloss.Color("25")),
	},
	"mono": {
		Name:     "mono",
		Title:    lipgloss.NewStyle().Bold(true),
		Header:   lipgloss.NewStyle().Bold(true),
		Selected: lipgloss.NewStyle().Reverse(true),
		Running:  lipgloss.NewStyle().Bold(true),
		Waiting:  lipgloss.NewStyle(),
		Dim:      lipgloss.NewStyle().Faint(true),
		Status:   lipgloss.NewStyle(),
		Help:     lipgloss.NewStyle().Faint(true),
		Prompt:   lipgloss.NewStyle().Bold(true),
	},
}

// ThemeByName resolves a theme, reporting whether the name is known.
func ThemeByName(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

// ThemeNames returns the available theme names, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
