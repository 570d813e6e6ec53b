// ABOUTME: Flashcard practice screen
// ABOUTME: Space flips the card; arrow keys move through the deck

package flashcards

import (
	"context"
	"fmt"
	"strings"

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

const (
	cardWidth  = 56
	cardHeight = 7
)

type loadedMsg struct {
	owner *Flashcards
	cards []client.Flashcard
	err   error
}

// Flashcards is the flashcard practice screen
type Flashcards struct {
	ctx     context.Context
	study   *study.Service
	id      string
	deck    *study.Deck
	loading bool
	err     string
	width   int
}

// New creates the practice screen for session id
func New(ctx context.Context, svc *study.Service, id string) *Flashcards {
	return &Flashcards{ctx: ctx, study: svc, id: id, width: cardWidth}
}

// Deck returns the loaded deck, nil while loading
func (f *Flashcards) Deck() *study.Deck { return f.deck }

// Init implements tea.Model
func (f *Flashcards) Init() tea.Cmd {
	f.loading = true
	ctx, svc, id := f.ctx, f.study, f.id
	return func() tea.Msg {
		sess, err := svc.Session(ctx, id)
		if err != nil {
			return loadedMsg{owner: f, err: err}
		}
		return loadedMsg{owner: f, cards: sess.Flashcards}
	}
}

// Update implements tea.Model
func (f *Flashcards) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.owner != f {
			return f, nil
		}
		f.loading = false
		if msg.err != nil {
			f.err = "Failed to load flashcards: " + auth.Message(msg.err)
			return f, nil
		}
		f.deck = study.NewDeck(msg.cards)
		return f, nil

	case tea.WindowSizeMsg:
		f.width = min(cardWidth, max(20, msg.Width-2))
		return f, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "b", "esc":
			return f, nav.Back
		}
		if f.deck == nil {
			return f, nil
		}
		switch msg.String() {
		case " ", "enter", "up", "down":
			f.deck.Flip()
		case "right", "l", "n":
			f.deck.Next()
		case "left", "h", "p":
			f.deck.Prev()
		}
	}
	return f, nil
}

// View implements tea.Model
func (f *Flashcards) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Flashcards.String() + " Flashcards"))
	sb.WriteString("\n")

	switch {
	case f.err != "":
		sb.WriteString(styles.Error.Render(icons.Critical.String() + " " + f.err))
		return sb.String()
	case f.deck == nil:
		sb.WriteString(styles.Subtitle.Render("Loading flashcards..."))
		return sb.String()
	case f.deck.Len() == 0:
		sb.WriteString(styles.Subtitle.Render("No flashcards available"))
		return sb.String()
	}

	pos := f.deck.Index() + 1
	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("Card %d of %d", pos, f.deck.Len())))
	sb.WriteString("\n")
	sb.WriteString(widgets.ProgressBar(float64(pos)/float64(f.deck.Len())*100, f.width-2, styles.Primary, styles.Surface))
	sb.WriteString("\n\n")

	side, border := "QUESTION", styles.Primary
	if f.deck.Flipped() {
		side, border = "ANSWER", styles.Success
	}
	label := lipgloss.NewStyle().Foreground(border).Bold(true).Render(side)
	body := lipgloss.NewStyle().Foreground(styles.Text).Render(f.deck.Face())
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(f.width).
		Height(cardHeight).
		Padding(1, 2).
		Align(lipgloss.Center).
		Render(label + "\n\n" + body)
	sb.WriteString(card)
	sb.WriteString("\n")

	hint := "Press space to reveal the answer"
	if f.deck.Flipped() {
		hint = "Press space to see the question"
	}
	sb.WriteString(styles.Help.Render(hint))
	return sb.String()
}
