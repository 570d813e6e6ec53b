// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Provides consistent iconography across different terminal capabilities

package icons

import (
	"os"
	"slices"
	"strings"
	"sync"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

var nerdFontTerminals = []string{"iTerm.app", "alacritty", "WezTerm", "kitty", "ghostty"}

// detectNerdFonts honours NEUROSTUDY_NERD_FONTS, then guesses from the terminal
func detectNerdFonts() bool {
	if env := os.Getenv("NEUROSTUDY_NERD_FONTS"); env != "" {
		return env == "1" || strings.EqualFold(env, "true")
	}

	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")
	if slices.ContainsFunc(nerdFontTerminals, func(t string) bool {
		return strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t))
	}) {
		return true
	}

	return os.Getenv("NERD_FONTS") == "1"
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

var (
	App = Icon{"󰧑", "◈"} // nf-md-brain

	// Tabs
	Home     = Icon{"󰋜", "⌂"} // nf-md-home
	Camera   = Icon{"󰄀", "◉"} // nf-md-camera
	History  = Icon{"󰋚", "◷"} // nf-md-history
	Settings = Icon{"󰒓", "⚙"} // nf-md-cog

	// Study content
	Summary    = Icon{"󰈙", "≡"} // nf-md-file_document
	Bulb       = Icon{"󰌵", "✦"} // nf-md-lightbulb
	Concepts   = Icon{"󰉹", "•"} // nf-md-format_list_bulleted
	Flashcards = Icon{"󰘸", "▤"} // nf-md-cards
	Quiz       = Icon{"󰘥", "?"} // nf-md-help_circle
	Image      = Icon{"󰋩", "▣"} // nf-md-image
	Folder     = Icon{"󰉋", "▸"} // nf-md-folder

	// Status
	CheckOK  = Icon{"", "✓"} // nf-oct-check_circle
	Warning  = Icon{"", "⚠"} // nf-oct-alert
	Critical = Icon{"", "✗"} // nf-oct-x_circle
	Info     = Icon{"", "ℹ"} // nf-oct-info

	// Account
	Logout = Icon{"󰍃", "⏻"} // nf-md-logout
	User   = Icon{"󰀄", "☺"} // nf-md-account
)
