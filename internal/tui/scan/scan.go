// ABOUTME: Scan tab: pick a textbook page image and upload it
// ABOUTME: A successful upload pushes the processing screen with the session id and image URL

package scan

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zubimendi/neurostudy/cli/internal/auth"
	"github.com/Zubimendi/neurostudy/cli/internal/study"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/filepicker"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/icons"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/nav"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/recentfiles"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/styles"
)

// Params passed to the processing screen
const (
	ParamSessionID = "session_id"
	ParamImageURL  = "image_url"
)

type state int

const (
	statePicking state = iota
	stateSelected
	stateUploading
)

type uploadedMsg struct {
	owner     *Scan
	sessionID string
	imageURL  string
	err       error
}

// Scan is the scan tab
type Scan struct {
	ctx     context.Context
	study   *study.Service
	recent  *recentfiles.RecentFiles
	picker  *filepicker.FilePicker
	spinner spinner.Model
	state   state
	path    string
	size    int64
	err     string
}

// New creates the scan tab. Recent images are read from recent; browseDir seeds the browser.
func New(ctx context.Context, svc *study.Service, recent *recentfiles.RecentFiles, browseDir string) *Scan {
	list, err := recent.Load()
	if err != nil {
		slog.Warn("Loading recent images failed", "error", err)
	}
	return &Scan{
		ctx:    ctx,
		study:  svc,
		recent: recent,
		picker: filepicker.New(list, browseDir),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
		),
	}
}

// Capturing reports whether the path input has focus
func (s *Scan) Capturing() bool {
	return s.state == statePicking && s.picker.Typing()
}

// Selected returns the chosen image path, empty before a choice
func (s *Scan) Selected() string { return s.path }

// Init implements tea.Model
func (s *Scan) Init() tea.Cmd {
	return s.picker.Init()
}

// Update implements tea.Model
func (s *Scan) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case filepicker.FileSelectedMsg:
		s.path, s.size = msg.Path, msg.Size
		s.state = stateSelected
		s.err = ""
		return s, nil

	case filepicker.CancelledMsg:
		return s, nav.Replace(nav.HomeTab, nil)

	case uploadedMsg:
		if msg.owner != s {
			return s, nil
		}
		if msg.err != nil {
			s.state = stateSelected
			s.err = "Upload Failed: " + auth.Message(msg.err)
			return s, nil
		}
		if err := s.recent.Add(s.path); err != nil {
			slog.Warn("Saving recent image failed", "error", err)
		}
		return s, nav.Push(nav.Processing, map[string]string{
			ParamSessionID: msg.sessionID,
			ParamImageURL:  msg.imageURL,
		})

	case spinner.TickMsg:
		if s.state != stateUploading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.WindowSizeMsg:
		_, cmd := s.picker.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.updateKey(msg)
	}

	if s.state == statePicking {
		_, cmd := s.picker.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Scan) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch s.state {
	case stateUploading:
		return s, nil

	case stateSelected:
		switch msg.String() {
		case "enter", "p":
			return s, s.upload()
		case "c", "esc":
			s.state = statePicking
			s.err = ""
		}
		return s, nil
	}

	if msg.String() == "p" && !s.picker.Typing() {
		s.err = "Please select an image first"
		return s, nil
	}
	s.err = ""
	_, cmd := s.picker.Update(msg)
	return s, cmd
}

func (s *Scan) upload() tea.Cmd {
	if s.path == "" {
		s.err = "Please select an image first"
		return nil
	}
	s.state = stateUploading
	s.err = ""
	ctx, svc, path := s.ctx, s.study, s.path
	upload := func() tea.Msg {
		res, err := svc.UploadImage(ctx, path)
		if err != nil {
			return uploadedMsg{owner: s, err: err}
		}
		return uploadedMsg{owner: s, sessionID: res.SessionID, imageURL: res.ImageURL}
	}
	return tea.Batch(s.spinner.Tick, upload)
}

// View implements tea.Model
func (s *Scan) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Camera.String() + " Scan Textbook Page"))
	sb.WriteString("\n")

	switch s.state {
	case statePicking:
		sb.WriteString(styles.Subtitle.Render("Choose a photo of the page you want to study"))
		sb.WriteString("\n")
		sb.WriteString(s.picker.View())
	case stateSelected:
		sb.WriteString(s.renderSelection())
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render(
			styles.KeyStyle.Render("Enter") + " Process Image  " + styles.KeyStyle.Render("c") + " Change Image"))
	case stateUploading:
		sb.WriteString(s.renderSelection())
		sb.WriteString("\n\n")
		sb.WriteString(s.spinner.View() + " Uploading...")
	}

	if s.err != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.Error.Render(icons.Critical.String() + " " + s.err))
	}
	return sb.String()
}

func (s *Scan) renderSelection() string {
	body := fmt.Sprintf("%s %s\n%s",
		icons.Image.String(),
		styles.ValueStyle.Render(filepath.Base(s.path)),
		lipgloss.NewStyle().Foreground(styles.Muted).Render(fmt.Sprintf("%s · %s", filepath.Dir(s.path), humanSize(s.size))),
	)
	return styles.SelectedCard.Render(body)
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.0f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
