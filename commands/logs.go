package commands

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/datahound/hound/internal/api"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Search logs",
	Long: `Search log events with flexible queries and time ranges.

The logs API only accepts API key authentication; a bearer token alone
is rejected before any request is sent. Set DD_API_KEY and DD_APP_KEY.

Query syntax follows Datadog log search:
  status:error              match by status
  service:web-app           match by service
  @http.status_code:500     match by attribute
  host:i-*                  wildcard matching
  status:error AND env:prod boolean operators`,
}

var logsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search log events",
	Long: `Search log events in a time window, newest first.

Examples:
  hound logs search --query "status:error" --from 1h
  hound logs search --query "service:api" --from 2h --to 1h --limit 100`,
	RunE: runLogsSearch,
}

var (
	logsQuery string
	logsFrom  string
	logsTo    string
	logsLimit int32
	logsSort  string
)

// logsSearchRequest is the v2 log search body. Timestamps are epoch
// milliseconds rendered as strings, which is what the endpoint expects.
type logsSearchRequest struct {
	Filter struct {
		Query string `json:"query,omitempty"`
		From  string `json:"from"`
		To    string `json:"to"`
	} `json:"filter"`
	Page struct {
		Limit int32 `json:"limit"`
	} `json:"page"`
	Sort string `json:"sort"`
}

func init() {
	logsSearchCmd.Flags().StringVar(&logsQuery, "query", "", "Log search query")
	logsSearchCmd.Flags().StringVar(&logsFrom, "from", "1h", "Window start (e.g. 1h, 7d, now, RFC3339)")
	logsSearchCmd.Flags().StringVar(&logsTo, "to", "now", "Window end")
	logsSearchCmd.Flags().Int32Var(&logsLimit, "limit", 50, "Maximum number of logs to return")
	logsSearchCmd.Flags().StringVar(&logsSort, "sort", "-timestamp", "Sort order (timestamp, -timestamp)")

	logsCmd.AddCommand(logsSearchCmd)
	rootCmd.AddCommand(logsCmd)
}

func runLogsSearch(cmd *cobra.Command, args []string) error {
	d, err := newDispatcher()
	if err != nil {
		return err
	}

	body, err := d.DoWindowed(cmd.Context(), logsFrom, logsTo,
		func(fromMs, toMs int64) (api.Endpoint, *api.Request, error) {
			var req logsSearchRequest
			req.Filter.Query = logsQuery
			req.Filter.From = strconv.FormatInt(fromMs, 10)
			req.Filter.To = strconv.FormatInt(toMs, 10)
			req.Page.Limit = logsLimit
			req.Sort = logsSort

			rawBody, err := sonic.Marshal(req)
			if err != nil {
				return api.Endpoint{}, nil, fmt.Errorf("encoding log search request: %w", err)
			}

			ep := api.NewEndpoint(http.MethodPost, "/api/v2/logs/events/search")
			return ep, &api.Request{
				Method: http.MethodPost,
				Path:   "/api/v2/logs/events/search",
				Body:   rawBody,
			}, nil
		})
	if err != nil {
		return fmt.Errorf("searching logs: %w", err)
	}
	return render(body)
}
