// ABOUTME: Image picker for the scan screen
// ABOUTME: Offers recent images, a typed path, and a browsable image directory

package filepicker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zubimendi/neurostudy/cli/internal/client"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/gallery"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/icons"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/styles"
)

type state int

const (
	stateList state = iota
	stateInput
	stateBrowse
)

// FileSelectedMsg is sent when a valid image is chosen
type FileSelectedMsg struct {
	Path string
	Size int64
}

// CancelledMsg is sent when the user backs out of the picker
type CancelledMsg struct{}

// FilePicker is the image selection component
type FilePicker struct {
	recentFiles []string
	browseDir   string
	images      []gallery.Image
	cursor      int
	state       state
	textInput   textinput.Model
	err         string
	width       int
	height      int
}

var (
	selectedStyle = lipgloss.NewStyle().Foreground(styles.Secondary)
	normalStyle   = lipgloss.NewStyle().Foreground(styles.Text)
	helpStyle     = lipgloss.NewStyle().Foreground(styles.Muted)
	dividerStyle  = lipgloss.NewStyle().Foreground(styles.Surface)
)

// New creates a picker over recent images and browseDir
func New(recentFiles []string, browseDir string) *FilePicker {
	ti := textinput.New()
	ti.Placeholder = "~/Pictures/textbook-page.jpg"
	ti.CharLimit = 512
	ti.Width = 60

	return &FilePicker{
		recentFiles: recentFiles,
		browseDir:   browseDir,
		textInput:   ti,
	}
}

// Init implements tea.Model
func (fp *FilePicker) Init() tea.Cmd {
	return nil
}

// Typing reports whether the path input has focus
func (fp *FilePicker) Typing() bool {
	return fp.state == stateInput
}

// Update implements tea.Model
func (fp *FilePicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		fp.width = msg.Width
		fp.height = msg.Height
		return fp, nil

	case tea.KeyMsg:
		fp.err = ""
		switch fp.state {
		case stateList:
			return fp.updateList(msg)
		case stateInput:
			return fp.updateInput(msg)
		case stateBrowse:
			return fp.updateBrowse(msg)
		}
	}

	if fp.state == stateInput {
		var cmd tea.Cmd
		fp.textInput, cmd = fp.textInput.Update(msg)
		return fp, cmd
	}
	return fp, nil
}

func (fp *FilePicker) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if fp.cursor > 0 {
			fp.cursor--
		}
	case "down", "j":
		if fp.cursor < fp.listItemCount()-1 {
			fp.cursor++
		}
	case "enter":
		return fp.selectListItem()
	case "esc", "b":
		return fp, func() tea.Msg { return CancelledMsg{} }
	}
	return fp, nil
}

func (fp *FilePicker) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		fp.state = stateList
		fp.textInput.SetValue("")
		fp.textInput.Blur()
		return fp, nil
	case "enter":
		path := strings.TrimSpace(fp.textInput.Value())
		if path == "" {
			fp.err = "Please enter a file path"
			return fp, nil
		}
		return fp.choose(path)
	}

	var cmd tea.Cmd
	fp.textInput, cmd = fp.textInput.Update(msg)
	return fp, cmd
}

func (fp *FilePicker) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(fp.images) + 1 // [back]

	switch msg.String() {
	case "up", "k":
		if fp.cursor > 0 {
			fp.cursor--
		}
	case "down", "j":
		if fp.cursor < count-1 {
			fp.cursor++
		}
	case "enter":
		if fp.cursor == len(fp.images) {
			fp.state = stateList
			fp.cursor = 0
			return fp, nil
		}
		return fp.choose(fp.images[fp.cursor].Path)
	case "esc", "b":
		fp.state = stateList
		fp.cursor = 0
	}
	return fp, nil
}

// listItemCount is recent images + "Enter path..." + "Browse..."
func (fp *FilePicker) listItemCount() int {
	return len(fp.recentFiles) + 2
}

func (fp *FilePicker) selectListItem() (tea.Model, tea.Cmd) {
	recent := len(fp.recentFiles)

	switch {
	case fp.cursor < recent:
		return fp.choose(fp.recentFiles[fp.cursor])

	case fp.cursor == recent:
		fp.state = stateInput
		fp.textInput.Focus()
		return fp, textinput.Blink

	default:
		images, err := gallery.Discover(fp.browseDir)
		if err != nil {
			fp.err = "Cannot read " + fp.browseDir + ": " + err.Error()
			return fp, nil
		}
		fp.images = images
		fp.state = stateBrowse
		fp.cursor = 0
		return fp, nil
	}
}

// choose validates path before announcing it
func (fp *FilePicker) choose(path string) (tea.Model, tea.Cmd) {
	expanded := expandPath(path)

	info, err := os.Stat(expanded)
	switch {
	case os.IsNotExist(err):
		fp.err = "File not found: " + path
		return fp, nil
	case os.IsPermission(err):
		fp.err = "Cannot read file: permission denied"
		return fp, nil
	case err != nil:
		fp.err = "Error reading file: " + err.Error()
		return fp, nil
	case info.IsDir():
		fp.err = path + " is a directory"
		return fp, nil
	case !gallery.IsImage(expanded):
		fp.err = "Not an image: choose a " + strings.Join(gallery.Extensions, ", ") + " file"
		return fp, nil
	case info.Size() > client.MaxUploadBytes:
		fp.err = fmt.Sprintf("Image is too large (%s, limit %s)", humanSize(info.Size()), humanSize(client.MaxUploadBytes))
		return fp, nil
	}

	return fp, func() tea.Msg {
		return FileSelectedMsg{Path: expanded, Size: info.Size()}
	}
}

// expandPath expands ~ to the home directory
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
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

// SetError sets an error message to display
func (fp *FilePicker) SetError(msg string) {
	fp.err = msg
}

// View implements tea.Model
func (fp *FilePicker) View() string {
	var b strings.Builder

	switch fp.state {
	case stateInput:
		b.WriteString(styles.Title.Render("Enter image path"))
		b.WriteString("\n")
		b.WriteString(fp.textInput.View())
		b.WriteString("\n")
	case stateBrowse:
		fp.viewBrowse(&b)
	default:
		fp.viewList(&b)
	}

	if fp.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.Error.Render("Error: " + fp.err))
	}
	return b.String()
}

func (fp *FilePicker) item(b *strings.Builder, idx int, label string) {
	cursor, style := "  ", normalStyle
	if idx == fp.cursor {
		cursor, style = "> ", selectedStyle
	}
	b.WriteString(cursor + style.Render(label) + "\n")
}

func (fp *FilePicker) viewList(b *strings.Builder) {
	if len(fp.recentFiles) > 0 {
		b.WriteString(helpStyle.Render("Recent images:"))
		b.WriteString("\n")
		for i, path := range fp.recentFiles {
			display := path
			if fp.width > 20 && len(display) > fp.width-10 {
				display = "..." + display[len(display)-(fp.width-13):]
			}
			fp.item(b, i, icons.Image.String()+" "+display)
		}
		b.WriteString(dividerStyle.Render(strings.Repeat("─", max(1, min(40, fp.width-4)))))
		b.WriteString("\n")
	}

	idx := len(fp.recentFiles)
	fp.item(b, idx, "Enter path...")
	fp.item(b, idx+1, icons.Folder.String()+" Browse "+fp.browseDir+"...")
}

func (fp *FilePicker) viewBrowse(b *strings.Builder) {
	b.WriteString(styles.Title.Render("Images in " + fp.browseDir))
	b.WriteString("\n")
	if len(fp.images) == 0 {
		b.WriteString(helpStyle.Render("No images found"))
		b.WriteString("\n")
	}
	for i, img := range fp.images {
		fp.item(b, i, fmt.Sprintf("%s %s  %s", icons.Image.String(), img.Name, helpStyle.Render(humanSize(img.Size))))
	}
	fp.item(b, len(fp.images), "[back]")
}
