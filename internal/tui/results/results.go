// ABOUTME: Results screen for a processed study session
// ABOUTME: Summary, explanation, and concept tabs in a scrollable viewport

package results

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zubimendi/neurostudy/cli/internal/auth"
	"github.com/Zubimendi/neurostudy/cli/internal/client"
	"github.com/Zubimendi/neurostudy/cli/internal/study"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/icons"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/nav"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/styles"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/widgets"
)

// Tab is one of the result views
type Tab int

const (
	TabSummary Tab = iota
	TabExplain
	TabConcepts
)

var tabNames = []string{"Summary", "Explain", "Concepts"}

func (t Tab) String() string {
	return tabNames[t]
}

// Layout constants
const (
	defaultWidth  = 76
	defaultHeight = 14
	chromeHeight  = 7 // title, tab bar, actions, and spacing
)

type loadedMsg struct {
	owner   *Results
	session *client.StudySession
	err     error
}

// Results shows one study session
type Results struct {
	ctx      context.Context
	study    *study.Service
	id       string
	session  *client.StudySession
	tab      Tab
	viewport viewport.Model
	loading  bool
	err      string
	width    int
}

// New creates the results screen for session id
func New(ctx context.Context, svc *study.Service, id string) *Results {
	vp := viewport.New(defaultWidth, defaultHeight)
	vp.KeyMap.PageDown = key.NewBinding(key.WithKeys("pgdown", " "))
	vp.KeyMap.PageUp = key.NewBinding(key.WithKeys("pgup"))
	vp.KeyMap.HalfPageDown = key.NewBinding(key.WithKeys("ctrl+d"))
	vp.KeyMap.HalfPageUp = key.NewBinding(key.WithKeys("ctrl+u"))

	return &Results{
		ctx:      ctx,
		study:    svc,
		id:       id,
		viewport: vp,
		width:    defaultWidth,
	}
}

// Tab returns the active tab
func (r *Results) Tab() Tab { return r.tab }

// Init implements tea.Model
func (r *Results) Init() tea.Cmd {
	return r.load()
}

func (r *Results) load() tea.Cmd {
	r.loading = true
	r.err = ""
	ctx, svc, id := r.ctx, r.study, r.id
	return func() tea.Msg {
		sess, err := svc.Session(ctx, id)
		return loadedMsg{owner: r, session: sess, err: err}
	}
}

// Update implements tea.Model
func (r *Results) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.owner != r {
			return r, nil
		}
		r.loading = false
		if msg.err != nil {
			r.err = "Failed to load results: " + auth.Message(msg.err)
			return r, nil
		}
		r.session = msg.session
		r.refresh()
		return r, nil

	case tea.WindowSizeMsg:
		r.width = max(20, msg.Width)
		r.viewport.Width = r.width
		r.viewport.Height = max(3, msg.Height-chromeHeight)
		r.refresh()
		return r, nil

	case tea.KeyMsg:
		return r.updateKey(msg)
	}
	return r, nil
}

func (r *Results) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "b", "esc":
		return r, nav.Back
	case "r":
		return r, r.load()
	}

	if r.session == nil {
		return r, nil
	}

	switch msg.String() {
	case "right", "l", "tab":
		r.setTab((r.tab + 1) % Tab(len(tabNames)))
	case "left", "h", "shift+tab":
		r.setTab((r.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))
	case "1", "2", "3":
		r.setTab(Tab(msg.String()[0] - '1'))
	case "f":
		if len(r.session.Flashcards) > 0 {
			return r, nav.Push(nav.Flashcards(r.id), nil)
		}
	case "t":
		if len(r.session.QuizQuestions) > 0 {
			return r, nav.Push(nav.Quiz(r.id), nil)
		}
	default:
		var cmd tea.Cmd
		r.viewport, cmd = r.viewport.Update(msg)
		return r, cmd
	}
	return r, nil
}

func (r *Results) setTab(t Tab) {
	if t == r.tab {
		return
	}
	r.tab = t
	r.refresh()
	r.viewport.GotoTop()
}

// refresh re-renders the active tab into the viewport
func (r *Results) refresh() {
	if r.session == nil {
		return
	}
	r.viewport.SetContent(r.renderTab())
}

func (r *Results) renderTab() string {
	s := r.session
	wrap := lipgloss.NewStyle().Width(max(10, r.width-4))

	switch r.tab {
	case TabExplain:
		return section(icons.Bulb, "Simplified Explanation", wrap.Render(orNone(s.SimplifiedExplanation)))

	case TabConcepts:
		if len(s.KeyConcepts) == 0 {
			return section(icons.Concepts, "Key Concepts", styles.Subtitle.Render("None"))
		}
		var lines []string
		for i, c := range s.KeyConcepts {
			lines = append(lines, wrap.Render(fmt.Sprintf("%s %s",
				lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render(fmt.Sprintf("%d.", i+1)), c)))
		}
		return section(icons.Concepts, "Key Concepts", strings.Join(lines, "\n"))

	default:
		return section(icons.Summary, "Quick Summary", wrap.Render(orNone(s.ShortSummary))) +
			"\n\n" +
			section(icons.Summary, "Detailed Summary", wrap.Render(orNone(s.DetailedSummary)))
	}
}

func section(icon icons.Icon, title, body string) string {
	heading := lipgloss.NewStyle().Foreground(styles.Secondary).Bold(true).Render(icon.String() + " " + title)
	return heading + "\n" + body
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not available"
	}
	return s
}

// View implements tea.Model
func (r *Results) View() string {
	var sb strings.Builder

	title := "Study Results"
	if r.session != nil && r.session.Topic != "" {
		title = r.session.Topic
	}
	sb.WriteString(styles.Title.Render(title))
	if r.session != nil && r.session.Status != "" {
		sb.WriteString("  " + widgets.SessionBadge(r.session.Status))
	}
	sb.WriteString("\n")

	switch {
	case r.err != "":
		sb.WriteString(styles.Error.Render(icons.Critical.String() + " " + r.err))
		return sb.String()
	case r.session == nil:
		sb.WriteString(styles.Subtitle.Render("Loading results..."))
		return sb.String()
	}

	sb.WriteString(r.renderTabBar())
	sb.WriteString("\n\n")
	sb.WriteString(r.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(r.renderActions())
	return sb.String()
}

func (r *Results) renderTabBar() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == r.tab {
			tabs[i] = styles.TabActive.Render(name)
		} else {
			tabs[i] = styles.TabInactive.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (r *Results) renderActions() string {
	var actions []string
	if n := len(r.session.Flashcards); n > 0 {
		actions = append(actions, styles.KeyStyle.Render("f")+fmt.Sprintf(" %s Practice Flashcards (%d)", icons.Flashcards.String(), n))
	}
	if n := len(r.session.QuizQuestions); n > 0 {
		actions = append(actions, styles.KeyStyle.Render("t")+fmt.Sprintf(" %s Take Quiz (%d)", icons.Quiz.String(), n))
	}
	if len(actions) == 0 {
		return styles.Help.Render("No flashcards or quiz were generated for this page")
	}
	return strings.Join(actions, "   ")
}
