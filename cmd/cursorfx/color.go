package main

import (
	"os"
	"strings"
)

const (
	colorTrue = "truecolor"
	color256  = "256"
)

// truecolorHints are set by terminals known to render 24-bit color
var truecolorHints = []string{
	"KITTY_WINDOW_ID",
	"KONSOLE_VERSION",
	"ITERM_SESSION_ID",
	"ALACRITTY_WINDOW_ID",
	"ALACRITTY_LOG",
	"WEZTERM_PANE",
}

// resolveColorMode turns "auto" into truecolor or 256 from the environment
func resolveColorMode(mode string) string {
	switch mode {
	case colorTrue, color256:
		return mode
	}

	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return colorTrue
	}
	for _, key := range truecolorHints {
		if os.Getenv(key) != "" {
			return colorTrue
		}
	}
	term := os.Getenv("TERM")
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return colorTrue
	}
	return color256
}

// applyColorMode steers tcell's palette selection before the screen is created
// tcell reads COLORTERM through terminfo and honors TCELL_TRUECOLOR=disable
func applyColorMode(mode string) string {
	resolved := resolveColorMode(mode)
	if resolved == colorTrue {
		if os.Getenv("COLORTERM") == "" {
			os.Setenv("COLORTERM", "truecolor")
		}
		os.Unsetenv("TCELL_TRUECOLOR")
	} else {
		os.Setenv("TCELL_TRUECOLOR", "disable")
	}
	return resolved
}
