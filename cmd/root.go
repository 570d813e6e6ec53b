// ABOUTME: Root command for the neurostudy CLI
// ABOUTME: Handles global flags, configuration, and service wiring shared by subcommands

package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Zubimendi/neurostudy/cli/internal/auth"
	"github.com/Zubimendi/neurostudy/cli/internal/client"
	"github.com/Zubimendi/neurostudy/cli/internal/config"
	"github.com/Zubimendi/neurostudy/cli/internal/guard"
	"github.com/Zubimendi/neurostudy/cli/internal/logger"
	"github.com/Zubimendi/neurostudy/cli/internal/output"
	"github.com/Zubimendi/neurostudy/cli/internal/session"
	"github.com/Zubimendi/neurostudy/cli/internal/study"
)

var (
	apiURL     string
	jsonOutput bool
	configFile string
	verbose    bool
	colorMode  string

	// cfg is resolved once per invocation by PersistentPreRunE
	cfg *config.Config
)

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1 // not logged in, validation, bad arguments
	exitError   = 2 // connectivity or backend error
)

// rootCmd is the base command; without a subcommand it starts the TUI
var rootCmd = &cobra.Command{
	Use:   "neurostudy",
	Short: "Turn textbook pages into study material",
	Long: `neurostudy is a terminal client for NeuroStudy.

Scan a textbook page and get summaries, simplified explanations, flashcards,
and a quiz. Run without a command to open the interactive interface.

Environment Variables:
  NEUROSTUDY_API_URL     Backend API URL (default: http://localhost:8080/api/v1)
  NEUROSTUDY_CONFIG_DIR  Where the session and recent files are kept
  NEUROSTUDY_COLOR       Color output: auto, always, never
  LOG_LEVEL, LOG_FORMAT  Logging level and format (text or json)`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(config.Options{ConfigFile: configFile, EnvFile: ".env"})
		if err != nil {
			return err
		}
		cfg = loaded
		if colorMode != "" {
			if _, err := output.ParseColorMode(colorMode); err != nil {
				return err
			}
		}
		logger.Init(os.Stderr, logOptions())
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUICommand()
	},
}

// Execute runs the root command
func Execute() error {
	defer logger.Close()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides NEUROSTUDY_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a config file (default: <config-dir>/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "", "Color output: auto, always, never")
}

// settings returns the resolved configuration, or defaults when none was loaded
func settings() *config.Config {
	if cfg != nil {
		return cfg
	}
	return &config.Config{
		APIURL:    config.DefaultAPIURL,
		Timeout:   client.DefaultTimeout,
		ConfigDir: config.DefaultConfigDir(),
		Color:     "auto",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// GetAPIURL returns the API URL from flag, config, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if url := settings().APIURL; url != "" {
		return url
	}
	return config.DefaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

func logOptions() logger.Options {
	s := settings()
	return logger.Options{Level: s.LogLevel, Format: s.LogFormat, Verbose: verbose}
}

// newPrinter writes both normal and error lines to w
func newPrinter(w io.Writer) *output.Printer {
	mode := colorMode
	if mode == "" {
		mode = settings().Color
	}
	parsed, err := output.ParseColorMode(mode)
	if err != nil {
		parsed = output.ColorAuto
	}
	return output.NewPrinter(w, w, output.ResolveColors(parsed, w))
}

// commandContext is cancelled on SIGINT or SIGTERM
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// services wires the gateway client, the session store, and the domain services
type services struct {
	client    *client.Client
	store     *session.FileStore
	auth      *auth.Service
	study     *study.Service
	configDir string
}

func newServices() *services {
	s := settings()
	store := session.NewFileStore(s.ConfigDir)
	c := client.New(GetAPIURL(),
		client.WithTokenSource(session.TokenSource{Store: store}),
		client.WithTimeout(s.Timeout),
	)
	authSvc := auth.New(c, store, guard.NewState())
	c.OnUnauthorized(authSvc.HandleUnauthorized)

	return &services{
		client:    c,
		store:     store,
		auth:      authSvc,
		study:     study.New(c),
		configDir: s.ConfigDir,
	}
}

// requireLogin prints a hint and returns false when no session is stored
func (s *services) requireLogin(ctx context.Context, p *output.Printer) (*session.User, bool) {
	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		p.Error("Reading session: %v", err)
		return nil, false
	}
	if user == nil {
		p.Error("Not logged in. Run 'neurostudy login' first.")
		return nil, false
	}
	return user, true
}

// report prints err and maps it to an exit code
func report(p *output.Printer, err error) int {
	slog.Debug("Command failed", "error", err)

	var remote *client.RemoteError
	var network *client.NetworkError
	switch {
	case auth.IsValidation(err):
		p.Error("%s", auth.Message(err))
		return exitFailure
	case errors.As(err, &remote):
		p.Error("%s", auth.Message(err))
		if errors.Is(err, client.ErrUnauthorized) {
			p.Print("Run 'neurostudy login' to sign in again.")
			return exitFailure
		}
		return exitError
	case errors.As(err, &network):
		p.Error("%s", auth.Message(err))
		return exitError
	}

	p.Error("%v", err)
	return exitError
}

// exit terminates the process with code when it is not zero
func exit(code int) {
	if code != exitOK {
		logger.Close()
		os.Exit(code)
	}
}
