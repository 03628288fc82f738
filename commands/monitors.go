package commands

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV1"
	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/datahound/hound/internal/api"
	"github.com/datahound/hound/internal/util"
)

var monitorsCmd = &cobra.Command{
	Use:   "monitors",
	Short: "Manage monitors",
	Long:  `Create, delete, and query monitors for alerting.`,
}

var monitorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all monitors",
	RunE:  runMonitorsList,
}

var monitorsGetCmd = &cobra.Command{
	Use:   "get [monitor-id]",
	Short: "Get monitor details",
	Args:  cobra.ExactArgs(1),
	RunE:  runMonitorsGet,
}

var monitorsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a monitor from a JSON definition",
	RunE:  runMonitorsCreate,
}

var monitorsDeleteCmd = &cobra.Command{
	Use:   "delete [monitor-id]",
	Short: "Delete a monitor",
	Args:  cobra.ExactArgs(1),
	RunE:  runMonitorsDelete,
}

var (
	monitorName string
	monitorTags string
	monitorFile string
)

func init() {
	monitorsListCmd.Flags().StringVar(&monitorName, "name", "", "Filter monitors by name")
	monitorsListCmd.Flags().StringVar(&monitorTags, "tags", "", "Filter monitors by tags (comma-separated)")
	monitorsCreateCmd.Flags().StringVar(&monitorFile, "file", "", "Path to a JSON monitor definition")
	_ = monitorsCreateCmd.MarkFlagRequired("file")

	monitorsCmd.AddCommand(monitorsListCmd, monitorsGetCmd, monitorsCreateCmd, monitorsDeleteCmd)
	rootCmd.AddCommand(monitorsCmd)
}

func parseMonitorID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid monitor ID %q: expected a number", arg)
	}
	return id, nil
}

func runMonitorsList(cmd *cobra.Command, args []string) error {
	d, err := newDispatcher()
	if err != nil {
		return err
	}

	query := url.Values{}
	if monitorName != "" {
		query.Set("name", monitorName)
	}
	if monitorTags != "" {
		query.Set("monitor_tags", monitorTags)
	}

	ep := api.NewEndpoint(http.MethodGet, "/api/v1/monitor").WithTyped(
		func(ctx context.Context, client *datadog.APIClient) (any, *http.Response, error) {
			opts := datadogV1.NewListMonitorsOptionalParameters()
			if monitorName != "" {
				opts = opts.WithName(monitorName)
			}
			if monitorTags != "" {
				opts = opts.WithMonitorTags(monitorTags)
			}
			return datadogV1.NewMonitorsApi(client).ListMonitors(ctx, *opts)
		})

	body, err := d.Do(cmd.Context(), ep, &api.Request{
		Method: http.MethodGet,
		Path:   "/api/v1/monitor",
		Query:  query,
	})
	if err != nil {
		return fmt.Errorf("listing monitors: %w", err)
	}
	return render(body)
}

func runMonitorsGet(cmd *cobra.Command, args []string) error {
	id, err := parseMonitorID(args[0])
	if err != nil {
		return err
	}

	d, err := newDispatcher()
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/api/v1/monitor/%d", id)
	ep := api.NewEndpoint(http.MethodGet, path).WithTyped(
		func(ctx context.Context, client *datadog.APIClient) (any, *http.Response, error) {
			return datadogV1.NewMonitorsApi(client).GetMonitor(ctx, id)
		})

	body, err := d.Do(cmd.Context(), ep, &api.Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return fmt.Errorf("getting monitor %d: %w", id, err)
	}
	return render(body)
}

func runMonitorsCreate(cmd *cobra.Command, args []string) error {
	var monitor datadogV1.Monitor
	if err := util.ReadJSONFile(monitorFile, &monitor); err != nil {
		return fmt.Errorf("reading monitor definition: %w", err)
	}

	rawBody, err := sonic.Marshal(monitor)
	if err != nil {
		return fmt.Errorf("encoding monitor definition: %w", err)
	}

	d, err := newDispatcher()
	if err != nil {
		return err
	}

	ep := api.NewEndpoint(http.MethodPost, "/api/v1/monitor").WithTyped(
		func(ctx context.Context, client *datadog.APIClient) (any, *http.Response, error) {
			return datadogV1.NewMonitorsApi(client).CreateMonitor(ctx, monitor)
		})

	body, err := d.Do(cmd.Context(), ep, &api.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/monitor",
		Body:   rawBody,
	})
	if err != nil {
		return fmt.Errorf("creating monitor: %w", err)
	}
	return render(body)
}

func runMonitorsDelete(cmd *cobra.Command, args []string) error {
	id, err := parseMonitorID(args[0])
	if err != nil {
		return err
	}

	d, err := newDispatcher()
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/api/v1/monitor/%d", id)
	ep := api.NewEndpoint(http.MethodDelete, path).WithTyped(
		func(ctx context.Context, client *datadog.APIClient) (any, *http.Response, error) {
			return datadogV1.NewMonitorsApi(client).DeleteMonitor(ctx, id)
		})

	body, err := d.Do(cmd.Context(), ep, &api.Request{Method: http.MethodDelete, Path: path})
	if err != nil {
		return fmt.Errorf("deleting monitor %d: %w", id, err)
	}
	return render(body)
}
