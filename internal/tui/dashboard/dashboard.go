// ABOUTME: Home dashboard listing recent study sessions
// ABOUTME: Greets the user, shows study stats and activity, and offers quick actions

package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zubimendi/neurostudy/cli/internal/auth"
	"github.com/Zubimendi/neurostudy/cli/internal/client"
	"github.com/Zubimendi/neurostudy/cli/internal/session"
	"github.com/Zubimendi/neurostudy/cli/internal/study"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/icons"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/menu"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/nav"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/styles"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/widgets"
)

// activityDays is the span of the activity sparkline
const activityDays = 14

// Menu values for the quick actions
const (
	actionScan    = "action:scan"
	actionHistory = "action:history"
)

// sessionsLoadedMsg carries the recent sessions
type sessionsLoadedMsg struct {
	owner    *Dashboard
	sessions []client.SessionSummary
	err      error
}

// Dashboard is the home tab
type Dashboard struct {
	ctx      context.Context
	study    *study.Service
	user     *session.User
	sessions []client.SessionSummary
	menu     *menu.Menu
	loading  bool
	err      string
	width    int
	height   int
	now      func() time.Time

	lastUpdate time.Time
}

// New creates the home dashboard for user
func New(ctx context.Context, svc *study.Service, user *session.User) *Dashboard {
	d := &Dashboard{
		ctx:   ctx,
		study: svc,
		user:  user,
		now:   time.Now,
	}
	d.menu = menu.New(d.items())
	return d
}

// LastUpdate returns when sessions were last loaded
func (d *Dashboard) LastUpdate() time.Time { return d.lastUpdate }

// Init implements tea.Model
func (d *Dashboard) Init() tea.Cmd {
	return d.load()
}

func (d *Dashboard) load() tea.Cmd {
	d.loading = true
	d.err = ""
	ctx, svc := d.ctx, d.study
	return func() tea.Msg {
		sessions, err := svc.RecentSessions(ctx)
		return sessionsLoadedMsg{owner: d, sessions: sessions, err: err}
	}
}

// Update implements tea.Model
func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionsLoadedMsg:
		if msg.owner != d {
			return d, nil
		}
		d.loading = false
		if msg.err != nil {
			d.err = auth.Message(msg.err)
			return d, nil
		}
		d.sessions = msg.sessions
		d.lastUpdate = d.now()
		d.menu.SetItems(d.items())
		return d, nil

	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		d.menu.SetHeight(max(3, d.height-16))
		return d, nil

	case menu.SelectedMsg:
		return d, d.open(msg.Item.Value)

	case tea.KeyMsg:
		if msg.String() == "r" {
			return d, d.load()
		}
		_, cmd := d.menu.Update(msg)
		return d, cmd
	}
	return d, nil
}

// open navigates to the screen behind a menu value
func (d *Dashboard) open(value string) tea.Cmd {
	switch value {
	case actionScan:
		return nav.Replace(nav.ScanTab, nil)
	case actionHistory:
		return nav.Replace(nav.HistoryTab, nil)
	case "":
		return nil
	}
	return nav.Push(nav.Results(value), nil)
}

// items builds the quick actions followed by one row per session
func (d *Dashboard) items() []menu.Item {
	items := []menu.Item{
		{Title: icons.Camera.String() + " Scan Page", Subtitle: "Take a photo", Value: actionScan},
		{Title: icons.History.String() + " History", Subtitle: "View past scans", Value: actionHistory},
	}
	for _, s := range d.sessions {
		items = append(items, menu.Item{
			Title:    sessionTitle(s),
			Subtitle: widgets.TimeAgo(s.CreatedAt, d.now()) + "  " + widgets.SessionBadge(s.Status),
			Value:    s.ID,
		})
	}
	return items
}

// sessionTitle falls back to the topic when the session has no title
func sessionTitle(s client.SessionSummary) string {
	switch {
	case s.Title != "":
		return s.Title
	case s.Topic != "":
		return s.Topic
	}
	return "Untitled session"
}

// View implements tea.Model
func (d *Dashboard) View() string {
	var sb strings.Builder

	name := "there"
	if d.user != nil && d.user.FullName != "" {
		name = d.user.FullName
	}
	sb.WriteString(styles.Title.Render(fmt.Sprintf("Hello, %s!", name)))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Ready to learn something new?"))
	sb.WriteString("\n")

	sb.WriteString(d.renderStats())
	sb.WriteString("\n\n")

	sb.WriteString(lipgloss.NewStyle().Foreground(styles.Text).Bold(true).Render("Recent Study Sessions"))
	sb.WriteString("\n")

	switch {
	case d.loading && len(d.sessions) == 0:
		sb.WriteString(styles.Subtitle.Render("Loading sessions..."))
		sb.WriteString("\n")
	case d.err != "":
		sb.WriteString(styles.Error.Render(icons.Critical.String() + " " + d.err))
		sb.WriteString("\n")
	case len(d.sessions) == 0:
		sb.WriteString(styles.Subtitle.Render("No study sessions yet\nScan a textbook page to get started!"))
		sb.WriteString("\n")
	}

	sb.WriteString(d.menu.View())
	return sb.String()
}

// renderStats lays out the stat blocks and the activity sparkline
func (d *Dashboard) renderStats() string {
	completed := 0
	topics := make(map[string]struct{})
	times := make([]time.Time, 0, len(d.sessions))
	for _, s := range d.sessions {
		if s.Status == "completed" {
			completed++
		}
		if s.Topic != "" {
			topics[strings.ToLower(s.Topic)] = struct{}{}
		}
		times = append(times, s.CreatedAt)
	}

	blocks := lipgloss.JoinHorizontal(lipgloss.Top,
		widgets.StatBlock(icons.Summary, "Sessions", fmt.Sprintf("%d", len(d.sessions)), "recent scans", widgets.DefaultBlockWidth),
		" ",
		widgets.StatBlock(icons.CheckOK, "Completed", fmt.Sprintf("%d", completed), "ready to study", widgets.DefaultBlockWidth),
		" ",
		widgets.StatBlock(icons.Concepts, "Topics", fmt.Sprintf("%d", len(topics)), "distinct subjects", widgets.DefaultBlockWidth),
	)

	activity := styles.Help.Render(fmt.Sprintf("Activity (%d days) ", activityDays)) +
		widgets.Sparkline(widgets.DailyCounts(times, activityDays, d.now()), activityDays, styles.Secondary)

	return blocks + "\n" + activity
}
