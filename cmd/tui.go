// ABOUTME: TUI command for the neurostudy CLI
// ABOUTME: Starts the interactive interface with logging redirected to the config directory

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Zubimendi/neurostudy/cli/internal/logger"
	"github.com/Zubimendi/neurostudy/cli/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive interface",
	Long:  `Open the full-screen interface: sign in, scan pages, and study the results.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUICommand()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runTUICommand blocks until the interface exits
func runTUICommand() error {
	ctx, cancel := commandContext()
	defer cancel()

	svc := newServices()
	if err := logger.InitFile(svc.configDir, logOptions()); err != nil {
		return err
	}

	return tui.Run(ctx, tui.Deps{
		Auth:      svc.auth,
		Study:     svc.study,
		ConfigDir: svc.configDir,
		APIURL:    GetAPIURL(),
	})
}
