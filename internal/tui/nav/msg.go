// ABOUTME: Navigation intents screens return as commands
// ABOUTME: Well-known locations for the tabs and study screens

package nav

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zubimendi/neurostudy/cli/internal/guard"
)

// PushMsg asks the app to push a screen
type PushMsg struct {
	Location guard.Location
	Params   map[string]string
}

// ReplaceMsg asks the app to replace the current screen
type ReplaceMsg struct {
	Location guard.Location
	Params   map[string]string
}

// BackMsg asks the app to pop the current screen
type BackMsg struct{}

// Push returns a command that pushes loc
func Push(loc guard.Location, params map[string]string) tea.Cmd {
	return func() tea.Msg { return PushMsg{Location: loc, Params: params} }
}

// Replace returns a command that replaces the current screen with loc
func Replace(loc guard.Location, params map[string]string) tea.Cmd {
	return func() tea.Msg { return ReplaceMsg{Location: loc, Params: params} }
}

// Back returns a command that pops the current screen
func Back() tea.Msg { return BackMsg{} }

// Well-known screens
var (
	HomeTab     = guard.Location{guard.HomeGroup}
	ScanTab     = guard.Location{guard.HomeGroup, "scan"}
	HistoryTab  = guard.Location{guard.HomeGroup, "history"}
	SettingsTab = guard.Location{guard.HomeGroup, "settings"}
	Processing  = guard.Location{"processing"}
)

// Tabs are the home group screens in display order
var Tabs = []guard.Location{HomeTab, ScanTab, HistoryTab, SettingsTab}

// Results returns the results screen for a session
func Results(id string) guard.Location { return guard.Location{"results", id} }

// Flashcards returns the flashcards screen for a session
func Flashcards(id string) guard.Location { return guard.Location{"flashcards", id} }

// Quiz returns the quiz screen for a session
func Quiz(id string) guard.Location { return guard.Location{"quiz", id} }
