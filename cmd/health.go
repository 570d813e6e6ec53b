// ABOUTME: Health command for the neurostudy CLI
// ABOUTME: Checks backend connectivity and service status

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zubimendi/neurostudy/cli/internal/client"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Long:  `Check connectivity to the NeuroStudy backend and verify service status.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		exit(runHealth(ctx, os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, w io.Writer) int {
	url := GetAPIURL()
	svc := newServices()
	p := newPrinter(w)

	resp, err := svc.client.Health(ctx)
	if err != nil {
		return report(p, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatHealthJSON(url, resp))
	} else {
		fmt.Fprintln(w, formatHealthHuman(url, resp))
	}

	if resp.Status != "" && resp.Status != "healthy" && resp.Status != "ok" {
		return exitError
	}
	return exitOK
}

// formatHealthHuman formats health response for human readability
func formatHealthHuman(url string, resp *client.HealthResponse) string {
	return fmt.Sprintf(`Backend:  %s
Service:  %s
Status:   %s`, url, resp.Service, resp.Status)
}

// formatHealthJSON formats health response as JSON
func formatHealthJSON(url string, resp *client.HealthResponse) string {
	output := map[string]any{
		"backend": url,
		"service": resp.Service,
		"status":  resp.Status,
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
