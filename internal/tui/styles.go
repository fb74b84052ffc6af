package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/ui"
)

// Dashboard styles, rebuilt from the ui theme by initTUIStyles.
var (
	panelStyle     lipgloss.Style
	headerStyle    lipgloss.Style
	titleStyle     lipgloss.Style
	dimStyle       lipgloss.Style
	labelStyle     lipgloss.Style
	valueStyle     lipgloss.Style
	successStyle   lipgloss.Style
	errorStyle     lipgloss.Style
	runningStyle   lipgloss.Style
	pausedStyle    lipgloss.Style
	liveSparkStyle lipgloss.Style
	cpuSparkStyle  lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds the styles from the current ui theme. Run calls it
// again after the application has chosen the theme.
func initTUIStyles() {
	t := ui.GetCurrentTheme()
	plain := t.Name == ui.NoColorTheme.Name
	color := func(c string) lipgloss.TerminalColor {
		if plain {
			return lipgloss.NoColor{}
		}
		return lipgloss.Color(c)
	}

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color("240")).
		Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(!plain).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(!plain).Foreground(t.Accent)
	dimStyle = lipgloss.NewStyle().Foreground(color("245"))
	labelStyle = lipgloss.NewStyle().Foreground(color("245")).Width(10)
	valueStyle = lipgloss.NewStyle().Foreground(t.Accent)
	successStyle = lipgloss.NewStyle().Foreground(color("82"))
	errorStyle = lipgloss.NewStyle().Foreground(color("196"))
	runningStyle = lipgloss.NewStyle().Foreground(color("82")).Bold(!plain)
	pausedStyle = lipgloss.NewStyle().Foreground(color("220")).Bold(!plain)
	liveSparkStyle = lipgloss.NewStyle().Foreground(t.Accent)
	cpuSparkStyle = lipgloss.NewStyle().Foreground(color("220"))
}
