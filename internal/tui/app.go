// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Mounts the screen for the router's current location and routes input to it

package tui

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zubimendi/neurostudy/cli/internal/auth"
	"github.com/Zubimendi/neurostudy/cli/internal/guard"
	"github.com/Zubimendi/neurostudy/cli/internal/study"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/gallery"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/nav"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/recentfiles"
)

// Layout constants
const (
	minTerminalWidth = 80 // Frame never renders narrower than this
	frameOverhead    = 4  // Header, footer, and the newlines around content
	tabBarHeight     = 2
)

// sessionCheckedMsg is sent once the persisted session has been inspected
type sessionCheckedMsg struct{}

// locationChangedMsg wakes the app after a navigation from outside the update loop
type locationChangedMsg struct{}

// Deps are the services and settings the screens need
type Deps struct {
	Auth      *auth.Service
	Study     *study.Service
	ConfigDir string
	APIURL    string
	ImagesDir string
}

// capturer is implemented by screens that need printable keys for text input
type capturer interface {
	Capturing() bool
}

// App is the root model for the TUI
type App struct {
	ctx         context.Context
	auth        *auth.Service
	study       *study.Service
	router      *nav.Router
	guard       *guard.Guard
	recentFiles *recentfiles.RecentFiles
	configDir   string
	apiURL      string
	imagesDir   string

	screen  Screen
	model   tea.Model
	mounted bool
	version uint64
	// screenCtx is cancelled when the mounted screen is replaced
	screenCtx context.Context
	cancel    context.CancelFunc

	width  int
	height int
}

// New creates the TUI application. The guard starts watching the auth state
// immediately; the first redirect happens once the session check resolves.
func New(ctx context.Context, deps Deps) *App {
	imagesDir := deps.ImagesDir
	if imagesDir == "" {
		imagesDir = gallery.DefaultDir()
	}

	router := nav.New(guard.Root)
	a := &App{
		ctx:         ctx,
		auth:        deps.Auth,
		study:       deps.Study,
		router:      router,
		recentFiles: recentfiles.New(deps.ConfigDir),
		configDir:   deps.ConfigDir,
		apiURL:      deps.APIURL,
		imagesDir:   imagesDir,
	}
	a.guard = guard.New(deps.Auth.State(), router)
	router.OnChange(func(guard.Location) { a.guard.LocationChanged() })
	return a
}

// Router returns the app's navigation stack
func (a *App) Router() *nav.Router { return a.router }

// Screen returns the mounted screen
func (a *App) Screen() Screen { return a.screen }

// Close releases the mounted screen and detaches the guard
func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	a.guard.Stop()
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	ctx, svc := a.ctx, a.auth
	check := func() tea.Msg {
		svc.CheckSession(ctx)
		return sessionCheckedMsg{}
	}
	return tea.Batch(a.sync(), check)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	return a, tea.Batch(cmd, a.sync())
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a.forward(a.contentSize())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return tea.Quit
		}
		if !a.capturing() {
			switch msg.String() {
			case "q":
				return tea.Quit
			case "tab", "shift+tab":
				if a.router.Location().InHomeGroup() {
					a.switchTab(msg.String() == "tab")
					return nil
				}
			}
		}
		return a.forward(msg)

	case nav.PushMsg:
		a.router.Push(msg.Location, msg.Params)
		return nil

	case nav.ReplaceMsg:
		a.router.ReplaceWith(msg.Location, msg.Params)
		return nil

	case nav.BackMsg:
		a.router.Back()
		return nil

	case sessionCheckedMsg, locationChangedMsg:
		return nil
	}

	return a.forward(msg)
}

// forward hands msg to the mounted screen
func (a *App) forward(msg tea.Msg) tea.Cmd {
	if a.model == nil {
		return nil
	}
	model, cmd := a.model.Update(msg)
	a.model = model
	return cmd
}

func (a *App) capturing() bool {
	c, ok := a.model.(capturer)
	return ok && c.Capturing()
}

// switchTab moves to the neighbouring home tab without adding history
func (a *App) switchTab(forward bool) {
	loc := a.router.Location()
	idx := 0
	for i, tab := range nav.Tabs {
		if tab.Equal(loc) {
			idx = i
			break
		}
	}
	step := 1
	if !forward {
		step = len(nav.Tabs) - 1
	}
	a.router.Replace(nav.Tabs[(idx+step)%len(nav.Tabs)])
}

// sync mounts a new screen whenever the router has moved since the last mount
func (a *App) sync() tea.Cmd {
	entry, version := a.router.Snapshot()
	if a.mounted && version == a.version {
		return nil
	}
	a.mounted = true
	a.version = version

	if a.cancel != nil {
		a.cancel()
	}
	ctx, cancel := context.WithCancel(a.ctx)
	a.screenCtx, a.cancel = ctx, cancel

	a.screen = ScreenFor(entry.Location)
	a.model = a.build(ctx, a.screen, entry)
	slog.Debug("Mounted screen", "screen", a.screen.String(), "location", entry.Location.String())

	cmds := []tea.Cmd{a.model.Init()}
	if a.width > 0 {
		cmds = append(cmds, a.forward(a.contentSize()))
	}
	return tea.Batch(cmds...)
}

// contentSize is the area left inside the frame
func (a *App) contentSize() tea.WindowSizeMsg {
	h := a.height - frameOverhead
	if a.router.Location().InHomeGroup() {
		h -= tabBarHeight
	}
	return tea.WindowSizeMsg{Width: a.frameWidth() - 2, Height: max(1, h)}
}

// Run starts the TUI and blocks until it exits or ctx is cancelled
func Run(ctx context.Context, deps Deps) error {
	app := New(ctx, deps)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	// Guard redirects made on command goroutines need a message to remount
	app.router.OnChange(func(guard.Location) {
		go p.Send(locationChangedMsg{})
	})

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
