// ABOUTME: Quiz screen: multiple choice with one answer per question
// ABOUTME: Reveals the explanation after answering and scores the run at the end

package quiz

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

const barWidth = 40

type loadedMsg struct {
	owner     *Quiz
	questions []client.QuizQuestion
	err       error
}

// Quiz is the quiz screen
type Quiz struct {
	ctx   context.Context
	study *study.Service
	id    string
	quiz  *study.Quiz
	err   string
	width int
}

// New creates the quiz screen for session id
func New(ctx context.Context, svc *study.Service, id string) *Quiz {
	return &Quiz{ctx: ctx, study: svc, id: id, width: 70}
}

// State returns the loaded quiz, nil while loading
func (q *Quiz) State() *study.Quiz { return q.quiz }

// Init implements tea.Model
func (q *Quiz) Init() tea.Cmd {
	ctx, svc, id := q.ctx, q.study, q.id
	return func() tea.Msg {
		sess, err := svc.Session(ctx, id)
		if err != nil {
			return loadedMsg{owner: q, err: err}
		}
		return loadedMsg{owner: q, questions: sess.QuizQuestions}
	}
}

// Update implements tea.Model
func (q *Quiz) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.owner != q {
			return q, nil
		}
		if msg.err != nil {
			q.err = "Failed to load quiz: " + auth.Message(msg.err)
			return q, nil
		}
		q.quiz = study.NewQuiz(msg.questions)
		return q, nil

	case tea.WindowSizeMsg:
		q.width = max(20, msg.Width-2)
		return q, nil

	case tea.KeyMsg:
		return q.updateKey(msg)
	}
	return q, nil
}

func (q *Quiz) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	if k == "esc" {
		return q, nav.Back
	}
	// While a question is open, b picks option B
	answering := q.quiz != nil && !q.quiz.Done() && !q.quiz.Answered()
	if k == "b" && !answering {
		return q, nav.Back
	}
	if q.quiz == nil || q.quiz.Len() == 0 {
		return q, nil
	}

	if q.quiz.Done() {
		if k == "r" {
			q.quiz.Retry()
		}
		return q, nil
	}

	if q.quiz.Answered() {
		if k == "enter" || k == "n" || k == "right" {
			q.quiz.Next()
		}
		return q, nil
	}

	if opt, ok := q.optionFor(k); ok {
		// Unknown or repeated answers are ignored
		_, _ = q.quiz.Answer(opt)
	}
	return q, nil
}

// optionFor maps a letter or a 1-based number to an option key of the current question
func (q *Quiz) optionFor(k string) (string, bool) {
	cur, ok := q.quiz.Current()
	if !ok || len(k) != 1 {
		return "", false
	}
	keys := study.OptionKeys(cur)
	if c := k[0]; c >= '1' && c <= '9' {
		i := int(c - '1')
		if i < len(keys) {
			return keys[i], true
		}
		return "", false
	}
	upper := strings.ToUpper(k)
	for _, key := range keys {
		if strings.ToUpper(key) == upper {
			return key, true
		}
	}
	return "", false
}

// View implements tea.Model
func (q *Quiz) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Quiz.String() + " Quiz"))
	sb.WriteString("\n")

	switch {
	case q.err != "":
		sb.WriteString(styles.Error.Render(icons.Critical.String() + " " + q.err))
		return sb.String()
	case q.quiz == nil:
		sb.WriteString(styles.Subtitle.Render("Loading quiz..."))
		return sb.String()
	case q.quiz.Len() == 0:
		sb.WriteString(styles.Subtitle.Render("No quiz questions available"))
		return sb.String()
	case q.quiz.Done():
		sb.WriteString(q.renderComplete())
		return sb.String()
	}

	cur, _ := q.quiz.Current()
	pos := q.quiz.Index() + 1
	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d / %d", pos, q.quiz.Len())))
	sb.WriteString("\n")
	sb.WriteString(widgets.ProgressBar(float64(pos)/float64(q.quiz.Len())*100, barWidth, styles.Primary, styles.Surface))
	sb.WriteString("\n\n")

	wrap := lipgloss.NewStyle().Width(q.width)
	sb.WriteString(styles.Card.Width(q.width).Render(
		lipgloss.NewStyle().Foreground(styles.Text).Bold(true).Render(cur.Question)))
	sb.WriteString("\n\n")

	selected := q.quiz.Selected()
	for _, key := range study.OptionKeys(cur) {
		line := fmt.Sprintf("%s. %s", key, cur.Options[key])
		style := lipgloss.NewStyle().Foreground(styles.Text)
		marker := "  "
		if selected != "" {
			switch {
			case key == cur.CorrectAnswer:
				style = lipgloss.NewStyle().Foreground(styles.Success).Bold(true)
				marker = icons.CheckOK.String() + " "
			case key == selected:
				style = lipgloss.NewStyle().Foreground(styles.Danger)
				marker = icons.Critical.String() + " "
			default:
				style = lipgloss.NewStyle().Foreground(styles.Muted)
			}
		}
		sb.WriteString(marker + style.Render(line))
		sb.WriteString("\n")
	}

	if selected != "" {
		sb.WriteString("\n")
		verdict := styles.StatusOK.Render("Correct!")
		if selected != cur.CorrectAnswer {
			verdict = styles.StatusCritical.Render("Incorrect")
		}
		sb.WriteString(verdict + "\n")
		if cur.Explanation != "" {
			sb.WriteString(wrap.Render(lipgloss.NewStyle().Foreground(styles.Secondary).Bold(true).Render("Explanation: ") + cur.Explanation))
			sb.WriteString("\n")
		}
		next := "Next Question"
		if pos == q.quiz.Len() {
			next = "Finish Quiz"
		}
		sb.WriteString(styles.Help.Render(styles.KeyStyle.Render("Enter") + " " + next))
	} else {
		sb.WriteString(styles.Help.Render("Press a letter or number to answer"))
	}
	return sb.String()
}

func (q *Quiz) renderComplete() string {
	pct := q.quiz.Percentage()
	level := widgets.ScoreLevel(float64(pct))

	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Foreground(styles.Text).Bold(true).Render("Quiz Complete!"))
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.NewStyle().Foreground(level.Color()).Bold(true).Render(fmt.Sprintf("%d%%", pct)))
	sb.WriteString("  ")
	sb.WriteString(widgets.ScoreBar(float64(pct), barWidth/2))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("You scored %d out of %d", q.quiz.Score(), q.quiz.Len()))
	sb.WriteString("\n")
	sb.WriteString(widgets.StatusText(study.Verdict(pct), level))
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render(
		styles.KeyStyle.Render("r") + " Retry Quiz  " + styles.KeyStyle.Render("b") + " Back to Results"))
	return sb.String()
}
