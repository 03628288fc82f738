package commands

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
	"github.com/spf13/cobra"

	"github.com/datahound/hound/internal/api"
)

var incidentsCmd = &cobra.Command{
	Use:   "incidents",
	Short: "Query incidents",
}

var incidentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List incidents",
	RunE:  runIncidentsList,
}

var incidentsPageSize int64

func init() {
	incidentsListCmd.Flags().Int64Var(&incidentsPageSize, "page-size", 25, "Results per page")

	incidentsCmd.AddCommand(incidentsListCmd)
	rootCmd.AddCommand(incidentsCmd)
}

func runIncidentsList(cmd *cobra.Command, args []string) error {
	d, err := newDispatcher()
	if err != nil {
		return err
	}

	query := url.Values{}
	query.Set("page[size]", strconv.FormatInt(incidentsPageSize, 10))

	ep := api.NewEndpoint(http.MethodGet, "/api/v2/incidents").WithTyped(
		func(ctx context.Context, client *datadog.APIClient) (any, *http.Response, error) {
			opts := datadogV2.NewListIncidentsOptionalParameters().WithPageSize(incidentsPageSize)
			return datadogV2.NewIncidentsApi(client).ListIncidents(ctx, *opts)
		})

	body, err := d.Do(cmd.Context(), ep, &api.Request{
		Method: http.MethodGet,
		Path:   "/api/v2/incidents",
		Query:  query,
	})
	if err != nil {
		return fmt.Errorf("listing incidents: %w", err)
	}
	return render(body)
}
