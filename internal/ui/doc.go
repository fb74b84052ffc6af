// Package ui holds the color theme shared by the CLI presentation code.
//
// The theme is process-wide: InitTheme picks it once at startup from the
// --no-color flag, the NO_COLOR variable and whether stdout is a terminal.
package ui
