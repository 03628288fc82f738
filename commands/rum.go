package commands

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/datahound/hound/internal/api"
)

var rumCmd = &cobra.Command{
	Use:   "rum",
	Short: "Query RUM applications",
	Long: `Query Real User Monitoring applications.

The RUM API only accepts API key authentication; a bearer token alone
is rejected before any request is sent. Set DD_API_KEY and DD_APP_KEY.`,
}

var rumAppsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List RUM applications",
	RunE:  runRUMApps,
}

func init() {
	rumCmd.AddCommand(rumAppsCmd)
	rootCmd.AddCommand(rumCmd)
}

func runRUMApps(cmd *cobra.Command, args []string) error {
	d, err := newDispatcher()
	if err != nil {
		return err
	}

	ep := api.NewEndpoint(http.MethodGet, "/api/v2/rum/applications")
	body, err := d.Do(cmd.Context(), ep, &api.Request{
		Method: http.MethodGet,
		Path:   "/api/v2/rum/applications",
	})
	if err != nil {
		return fmt.Errorf("listing RUM applications: %w", err)
	}
	return render(body)
}
