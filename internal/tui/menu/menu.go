// ABOUTME: Selectable list used by the home and history screens
// ABOUTME: Arrow keys move the cursor; Enter emits SelectedMsg with the item's value

package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zubimendi/neurostudy/cli/internal/tui/styles"
)

// Item is one row of the menu
type Item struct {
	Title    string
	Subtitle string
	Value    string
	Disabled bool
}

// SelectedMsg is sent when Enter is pressed on an enabled item
type SelectedMsg struct {
	Item Item
}

// Menu is a vertical list with a cursor
type Menu struct {
	items  []Item
	cursor int
	height int
}

// New creates a menu positioned on the first item
func New(items []Item) *Menu {
	return &Menu{items: items}
}

// SetItems replaces the items, keeping the cursor in range
func (m *Menu) SetItems(items []Item) {
	m.items = items
	m.cursor = max(0, min(m.cursor, len(items)-1))
}

// SetHeight limits how many rows View renders; 0 shows all
func (m *Menu) SetHeight(h int) {
	m.height = h
}

// Len returns the number of items
func (m *Menu) Len() int { return len(m.items) }

// Cursor returns the highlighted index
func (m *Menu) Cursor() int { return m.cursor }

// Selected returns the highlighted item
func (m *Menu) Selected() (Item, bool) {
	if len(m.items) == 0 {
		return Item{}, false
	}
	return m.items[m.cursor], true
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd { return nil }

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(0, len(m.items)-1)
	case "enter":
		item, ok := m.Selected()
		if !ok || item.Disabled {
			return m, nil
		}
		return m, func() tea.Msg { return SelectedMsg{Item: item} }
	}
	return m, nil
}

var (
	titleStyle    = lipgloss.NewStyle().Foreground(styles.Text)
	selectedStyle = lipgloss.NewStyle().Foreground(styles.Secondary).Bold(true)
	disabledStyle = lipgloss.NewStyle().Foreground(styles.Muted).Strikethrough(true)
	subtitleStyle = lipgloss.NewStyle().Foreground(styles.Muted)
)

// View implements tea.Model
func (m *Menu) View() string {
	start, end := m.window()

	var b strings.Builder
	for i := start; i < end; i++ {
		item := m.items[i]
		cursor, style := "  ", titleStyle
		if i == m.cursor {
			cursor, style = "> ", selectedStyle
		}
		if item.Disabled {
			style = disabledStyle
		}

		b.WriteString(cursor + style.Render(item.Title))
		if item.Subtitle != "" {
			b.WriteString("  " + subtitleStyle.Render(item.Subtitle))
		}
		b.WriteString("\n")
	}
	if end < len(m.items) {
		b.WriteString(subtitleStyle.Render("  ↓ more"))
		b.WriteString("\n")
	}
	return b.String()
}

// window returns the visible range keeping the cursor on screen
func (m *Menu) window() (int, int) {
	if m.height <= 0 || len(m.items) <= m.height {
		return 0, len(m.items)
	}
	start := max(0, m.cursor-m.height+1)
	return start, start + m.height
}
