package commands

import (
	"context"
	"fmt"
	"net/http"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV1"
	"github.com/spf13/cobra"

	"github.com/datahound/hound/internal/api"
)

var dashboardsCmd = &cobra.Command{
	Use:   "dashboards",
	Short: "Query dashboards",
}

var dashboardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all dashboards",
	RunE:  runDashboardsList,
}

var dashboardsGetCmd = &cobra.Command{
	Use:   "get [dashboard-id]",
	Short: "Get dashboard details",
	Args:  cobra.ExactArgs(1),
	RunE:  runDashboardsGet,
}

func init() {
	dashboardsCmd.AddCommand(dashboardsListCmd, dashboardsGetCmd)
	rootCmd.AddCommand(dashboardsCmd)
}

func runDashboardsList(cmd *cobra.Command, args []string) error {
	d, err := newDispatcher()
	if err != nil {
		return err
	}

	ep := api.NewEndpoint(http.MethodGet, "/api/v1/dashboard").WithTyped(
		func(ctx context.Context, client *datadog.APIClient) (any, *http.Response, error) {
			return datadogV1.NewDashboardsApi(client).ListDashboards(ctx)
		})

	body, err := d.Do(cmd.Context(), ep, &api.Request{Method: http.MethodGet, Path: "/api/v1/dashboard"})
	if err != nil {
		return fmt.Errorf("listing dashboards: %w", err)
	}
	return render(body)
}

func runDashboardsGet(cmd *cobra.Command, args []string) error {
	d, err := newDispatcher()
	if err != nil {
		return err
	}

	dashboardID := args[0]
	path := "/api/v1/dashboard/" + dashboardID
	ep := api.NewEndpoint(http.MethodGet, path).WithTyped(
		func(ctx context.Context, client *datadog.APIClient) (any, *http.Response, error) {
			return datadogV1.NewDashboardsApi(client).GetDashboard(ctx, dashboardID)
		})

	body, err := d.Do(cmd.Context(), ep, &api.Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return fmt.Errorf("getting dashboard %s: %w", dashboardID, err)
	}
	return render(body)
}
