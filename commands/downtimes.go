package commands

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV1"
	"github.com/spf13/cobra"

	"github.com/datahound/hound/internal/api"
)

var downtimesCmd = &cobra.Command{
	Use:   "downtimes",
	Short: "Query scheduled downtimes",
}

var downtimesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scheduled downtimes",
	RunE:  runDowntimesList,
}

var downtimesCurrentOnly bool

func init() {
	downtimesListCmd.Flags().BoolVar(&downtimesCurrentOnly, "current-only", false,
		"Only return downtimes active right now")

	downtimesCmd.AddCommand(downtimesListCmd)
	rootCmd.AddCommand(downtimesCmd)
}

func runDowntimesList(cmd *cobra.Command, args []string) error {
	d, err := newDispatcher()
	if err != nil {
		return err
	}

	query := url.Values{}
	if downtimesCurrentOnly {
		query.Set("current_only", "true")
	}

	ep := api.NewEndpoint(http.MethodGet, "/api/v1/downtime").WithTyped(
		func(ctx context.Context, client *datadog.APIClient) (any, *http.Response, error) {
			opts := datadogV1.NewListDowntimesOptionalParameters()
			if downtimesCurrentOnly {
				opts = opts.WithCurrentOnly(true)
			}
			return datadogV1.NewDowntimesApi(client).ListDowntimes(ctx, *opts)
		})

	body, err := d.Do(cmd.Context(), ep, &api.Request{
		Method: http.MethodGet,
		Path:   "/api/v1/downtime",
		Query:  query,
	})
	if err != nil {
		return fmt.Errorf("listing downtimes: %w", err)
	}
	return render(body)
}
