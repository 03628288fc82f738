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

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Query timeseries metrics",
}

var metricsQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query timeseries points",
	Long: `Query timeseries points for a metric query over a time window.

Examples:
  hound metrics query --query "avg:system.cpu.user{*}" --from 1h
  hound metrics query --query "sum:http.requests{env:prod}.as_rate()" --from 4h --to 1h`,
	RunE: runMetricsQuery,
}

var (
	metricsQuery string
	metricsFrom  string
	metricsTo    string
)

func init() {
	metricsQueryCmd.Flags().StringVar(&metricsQuery, "query", "", "Metric query string")
	metricsQueryCmd.Flags().StringVar(&metricsFrom, "from", "1h", "Window start (e.g. 1h, 7d, now, RFC3339)")
	metricsQueryCmd.Flags().StringVar(&metricsTo, "to", "now", "Window end")
	_ = metricsQueryCmd.MarkFlagRequired("query")

	metricsCmd.AddCommand(metricsQueryCmd)
	rootCmd.AddCommand(metricsCmd)
}

func runMetricsQuery(cmd *cobra.Command, args []string) error {
	d, err := newDispatcher()
	if err != nil {
		return err
	}

	body, err := d.DoWindowed(cmd.Context(), metricsFrom, metricsTo,
		func(fromMs, toMs int64) (api.Endpoint, *api.Request, error) {
			// The v1 query endpoint takes epoch seconds.
			from := fromMs / 1000
			to := toMs / 1000

			query := url.Values{}
			query.Set("from", strconv.FormatInt(from, 10))
			query.Set("to", strconv.FormatInt(to, 10))
			query.Set("query", metricsQuery)

			ep := api.NewEndpoint(http.MethodGet, "/api/v1/query").WithTyped(
				func(ctx context.Context, client *datadog.APIClient) (any, *http.Response, error) {
					return datadogV1.NewMetricsApi(client).QueryMetrics(ctx, from, to, metricsQuery)
				})

			return ep, &api.Request{Method: http.MethodGet, Path: "/api/v1/query", Query: query}, nil
		})
	if err != nil {
		return fmt.Errorf("querying metrics: %w", err)
	}
	return render(body)
}
