package commands

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV1"
	"github.com/spf13/cobra"

	"github.com/datahound/hound/internal/api"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Query events",
	Long: `Query events within a time window.

Events represent notable occurrences in your infrastructure such as
deployments, configuration changes and alerts.`,
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events in a time window",
	RunE:  runEventsList,
}

var (
	eventsFrom string
	eventsTo   string
	eventsTags string
)

func init() {
	eventsListCmd.Flags().StringVar(&eventsFrom, "from", "1h", "Window start (e.g. 1h, 7d, now, RFC3339)")
	eventsListCmd.Flags().StringVar(&eventsTo, "to", "now", "Window end")
	eventsListCmd.Flags().StringVar(&eventsTags, "tags", "", "Filter by tags (comma-separated)")

	eventsCmd.AddCommand(eventsListCmd)
	rootCmd.AddCommand(eventsCmd)
}

func runEventsList(cmd *cobra.Command, args []string) error {
	d, err := newDispatcher()
	if err != nil {
		return err
	}

	body, err := d.DoWindowed(cmd.Context(), eventsFrom, eventsTo,
		func(fromMs, toMs int64) (api.Endpoint, *api.Request, error) {
			// The v1 events endpoint takes epoch seconds.
			start := fromMs / 1000
			end := toMs / 1000

			query := url.Values{}
			query.Set("start", strconv.FormatInt(start, 10))
			query.Set("end", strconv.FormatInt(end, 10))
			if eventsTags != "" {
				query.Set("tags", eventsTags)
			}

			ep := api.NewEndpoint(http.MethodGet, "/api/v1/events").WithTyped(
				func(ctx context.Context, client *datadog.APIClient) (any, *http.Response, error) {
					opts := datadogV1.NewListEventsOptionalParameters()
					if eventsTags != "" {
						opts = opts.WithTags(eventsTags)
					}
					return datadogV1.NewEventsApi(client).ListEvents(ctx, start, end, *opts)
				})

			return ep, &api.Request{Method: http.MethodGet, Path: "/api/v1/events", Query: query}, nil
		})
	if err != nil {
		return fmt.Errorf("listing events: %w", err)
	}
	return render(body)
}
