// ABOUTME: History tab listing every recent study session
// ABOUTME: Enter opens the session's results; r reloads the list

package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zubimendi/neurostudy/cli/internal/auth"
	"github.com/Zubimendi/neurostudy/cli/internal/client"
	"github.com/Zubimendi/neurostudy/cli/internal/study"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/icons"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/menu"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/nav"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/styles"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/widgets"
)

type loadedMsg struct {
	owner    *History
	sessions []client.SessionSummary
	err      error
}

// History is the history tab
type History struct {
	ctx      context.Context
	study    *study.Service
	sessions []client.SessionSummary
	menu     *menu.Menu
	loading  bool
	err      string
	now      func() time.Time
}

// New creates the history tab
func New(ctx context.Context, svc *study.Service) *History {
	return &History{
		ctx:   ctx,
		study: svc,
		menu:  menu.New(nil),
		now:   time.Now,
	}
}

// Init implements tea.Model
func (h *History) Init() tea.Cmd {
	return h.load()
}

func (h *History) load() tea.Cmd {
	h.loading = true
	h.err = ""
	ctx, svc := h.ctx, h.study
	return func() tea.Msg {
		sessions, err := svc.RecentSessions(ctx)
		return loadedMsg{owner: h, sessions: sessions, err: err}
	}
}

// Update implements tea.Model
func (h *History) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.owner != h {
			return h, nil
		}
		h.loading = false
		if msg.err != nil {
			h.err = auth.Message(msg.err)
			return h, nil
		}
		h.sessions = msg.sessions
		h.menu.SetItems(h.items())
		return h, nil

	case tea.WindowSizeMsg:
		h.menu.SetHeight(max(3, msg.Height-6))
		return h, nil

	case menu.SelectedMsg:
		if msg.Item.Value == "" {
			return h, nil
		}
		return h, nav.Push(nav.Results(msg.Item.Value), nil)

	case tea.KeyMsg:
		if msg.String() == "r" {
			return h, h.load()
		}
		_, cmd := h.menu.Update(msg)
		return h, cmd
	}
	return h, nil
}

func (h *History) items() []menu.Item {
	items := make([]menu.Item, 0, len(h.sessions))
	for _, s := range h.sessions {
		title := s.Title
		if title == "" {
			title = "Untitled session"
		}
		var sub []string
		if s.Topic != "" {
			sub = append(sub, s.Topic)
		}
		if !s.CreatedAt.IsZero() {
			sub = append(sub, s.CreatedAt.Local().Format("Jan 2, 2006"))
		}
		sub = append(sub, widgets.SessionBadge(s.Status))
		items = append(items, menu.Item{
			Title:    title,
			Subtitle: strings.Join(sub, " · "),
			Value:    s.ID,
		})
	}
	return items
}

// View implements tea.Model
func (h *History) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.History.String() + " Study History"))
	sb.WriteString("\n")

	switch {
	case h.loading && len(h.sessions) == 0:
		sb.WriteString(styles.Subtitle.Render("Loading..."))
	case h.err != "":
		sb.WriteString(styles.Error.Render(icons.Critical.String() + " " + h.err))
	case len(h.sessions) == 0:
		sb.WriteString(styles.Subtitle.Render("No study sessions yet"))
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("Your scanned pages will appear here"))
	default:
		sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d sessions", len(h.sessions))))
		sb.WriteString("\n")
		sb.WriteString(h.menu.View())
	}
	return sb.String()
}
