package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Theme is a set of ANSI escape sequences for each color role.
type Theme struct {
	Name      string
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Reset     string

	// Accent is the lipgloss color used for styled blocks such as result
	// headers.
	Accent lipgloss.TerminalColor
}

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",
		Secondary: "\033[38;5;245m",
		Success:   "\033[38;5;82m",
		Warning:   "\033[38;5;220m",
		Error:     "\033[38;5;196m",
		Info:      "\033[38;5;141m",
		Bold:      "\033[1m",
		Reset:     "\033[0m",
		Accent:    lipgloss.Color("#FF8C00"),
	}

	// LightTheme suits light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",
		Secondary: "\033[38;5;240m",
		Success:   "\033[38;5;28m",
		Warning:   "\033[38;5;130m",
		Error:     "\033[38;5;124m",
		Info:      "\033[38;5;54m",
		Bold:      "\033[1m",
		Reset:     "\033[0m",
		Accent:    lipgloss.Color("#1F4E9C"),
	}

	// NoColorTheme emits no escape sequences at all.
	NoColorTheme = Theme{
		Name:   "none",
		Accent: lipgloss.NoColor{},
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates a theme by name; unknown names select the dark theme.
func SetTheme(name string) {
	switch name {
	case "light":
		SetCurrentTheme(LightTheme)
	case "none":
		SetCurrentTheme(NoColorTheme)
	default:
		SetCurrentTheme(DarkTheme)
	}
}

// isTerminal is swapped out by tests.
var isTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }

// InitTheme disables colors when noColor is set, when NO_COLOR is present
// in the environment (https://no-color.org/) or when stdout is not a
// terminal. Otherwise the dark theme is used.
func InitTheme(noColor bool) {
	_, envNoColor := os.LookupEnv("NO_COLOR")
	if noColor || envNoColor || !isTerminal() {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetCurrentTheme(DarkTheme)
}

// Styles are the lipgloss styles derived from the active theme.
type Styles struct {
	Header lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Dim    lipgloss.Style
}

// CurrentStyles builds Styles for the active theme. With NoColorTheme the
// styles only affect layout.
func CurrentStyles() Styles {
	t := GetCurrentTheme()
	s := Styles{
		Header: lipgloss.NewStyle().Foreground(t.Accent),
		Label:  lipgloss.NewStyle().Width(12),
		Value:  lipgloss.NewStyle(),
		Dim:    lipgloss.NewStyle(),
	}
	if t.Name != NoColorTheme.Name {
		s.Header = s.Header.Bold(true)
		s.Label = s.Label.Foreground(lipgloss.Color("245"))
		s.Dim = s.Dim.Faint(true)
	}
	return s
}
