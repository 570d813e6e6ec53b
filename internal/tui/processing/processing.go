// ABOUTME: Processing screen shown while the backend analyses an uploaded page
// ABOUTME: Ticks through step labels, then replaces itself with the results screen

package processing

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zubimendi/neurostudy/cli/internal/auth"
	"github.com/Zubimendi/neurostudy/cli/internal/study"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/icons"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/nav"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/styles"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/widgets"
)

// CompleteDelay is how long "Complete!" stays up before results open
const CompleteDelay = 500 * time.Millisecond

const barWidth = 40

type stepMsg struct{ owner *Processing }

type processedMsg struct {
	owner *Processing
	err   error
}

type finishedMsg struct{ owner *Processing }

// Processing is the processing screen
type Processing struct {
	ctx       context.Context
	study     *study.Service
	sessionID string
	imageURL  string
	spinner   spinner.Model
	step      int
	done      bool
	err       string
}

// New creates the processing screen for an uploaded image
func New(ctx context.Context, svc *study.Service, sessionID, imageURL string) *Processing {
	return &Processing{
		ctx:       ctx,
		study:     svc,
		sessionID: sessionID,
		imageURL:  imageURL,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
		),
	}
}

// Init implements tea.Model
func (p *Processing) Init() tea.Cmd {
	if p.sessionID == "" {
		p.err = "Processing failed: missing session"
		return nil
	}
	return tea.Batch(p.spinner.Tick, p.tick(), p.process())
}

func (p *Processing) tick() tea.Cmd {
	return tea.Tick(study.StepInterval, func(time.Time) tea.Msg { return stepMsg{owner: p} })
}

func (p *Processing) process() tea.Cmd {
	ctx, svc, id, url := p.ctx, p.study, p.sessionID, p.imageURL
	return func() tea.Msg {
		_, err := svc.ProcessImage(ctx, id, url)
		return processedMsg{owner: p, err: err}
	}
}

// Update implements tea.Model
func (p *Processing) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepMsg:
		if msg.owner != p || p.done || p.err != "" {
			return p, nil
		}
		if p.step < len(study.ProcessingSteps)-1 {
			p.step++
		}
		return p, p.tick()

	case processedMsg:
		if msg.owner != p {
			return p, nil
		}
		if msg.err != nil {
			p.err = "Processing failed: " + auth.Message(msg.err)
			return p, nil
		}
		p.done = true
		return p, tea.Tick(CompleteDelay, func(time.Time) tea.Msg { return finishedMsg{owner: p} })

	case finishedMsg:
		if msg.owner != p {
			return p, nil
		}
		return p, nav.Replace(nav.Results(p.sessionID), nil)

	case spinner.TickMsg:
		if p.done || p.err != "" {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case tea.KeyMsg:
		if p.err == "" {
			return p, nil
		}
		switch msg.String() {
		case "r":
			p.err = ""
			p.step = 0
			return p, tea.Batch(p.spinner.Tick, p.tick(), p.process())
		case "b", "esc":
			return p, nav.Back
		}
	}
	return p, nil
}

// Status returns the label currently shown
func (p *Processing) Status() string {
	if p.done {
		return "Complete!"
	}
	return study.Step(p.step)
}

// Progress returns the displayed completion percentage
func (p *Processing) Progress() float64 {
	if p.done {
		return 100
	}
	return study.Progress(p.step) * 100
}

// View implements tea.Model
func (p *Processing) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Bulb.String() + " Processing Your Content"))
	sb.WriteString("\n")

	if p.err != "" {
		sb.WriteString(styles.Error.Render(icons.Critical.String() + " " + p.err))
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render(
			styles.KeyStyle.Render("r") + " Retry  " + styles.KeyStyle.Render("b") + " Back"))
		return sb.String()
	}

	status := p.spinner.View() + " " + p.Status()
	if p.done {
		status = styles.StatusOK.Render(icons.CheckOK.String() + " Complete!")
	}
	sb.WriteString(status)
	sb.WriteString("\n\n")
	sb.WriteString(widgets.ProgressBarWithLabel(p.Progress(), barWidth))
	sb.WriteString("\n\n")

	for i, label := range study.ProcessingSteps {
		var line string
		switch {
		case p.done || i < p.step:
			line = lipgloss.NewStyle().Foreground(styles.Success).Render(icons.CheckOK.String() + " " + label)
		case i == p.step:
			line = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("● " + label)
		default:
			line = lipgloss.NewStyle().Foreground(styles.Muted).Render("○ " + label)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString(styles.Help.Render("This usually takes 10-15 seconds..."))
	return sb.String()
}
