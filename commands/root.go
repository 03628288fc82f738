package commands

import (
	"github.com/spf13/cobra"

	"github.com/datahound/hound/internal/api"
	"github.com/datahound/hound/internal/config"
	"github.com/datahound/hound/internal/formatter"
	"github.com/datahound/hound/internal/util"
	"github.com/datahound/hound/internal/version"
)

var (
	// Output related
	outputFormat string
	agentMode    bool

	// Connection related
	site      string
	transport string

	// Logging related
	debug bool

	// cfg is the resolved runtime configuration, populated before any
	// subcommand runs. Flags override env, which overrides the file.
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "hound",
		Short: "Datadog API client for the command line",
		Long: `hound is a command-line client for the Datadog API.

It talks to monitors, dashboards, events, metrics, downtimes, incidents,
logs and RUM applications, authenticating with either an OAuth2 bearer
token (DD_ACCESS_TOKEN) or an API key pair (DD_API_KEY + DD_APP_KEY).

Examples:
  hound monitors list                                  # List all monitors
  hound monitors get 12345678                          # Show one monitor
  hound metrics query --query "avg:system.cpu.user{*}" --from 1h
  hound logs search --query "status:error" --from 4h --to now
  hound events list --from 7d -o json                  # JSON to stdout
  hound auth status                                    # Show credential state

Time expressions accept "now", epoch milliseconds, RFC3339 timestamps,
and relative offsets like 30m, 2h, 7d or "5 minutes".`,
		Version:           version.Version,
		SilenceUsage:      true,
		PersistentPreRunE: initRuntime,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "",
		"Output format (json, table, agent, auto)")
	rootCmd.PersistentFlags().StringVar(&site, "site", "",
		"Datadog site (e.g. datadoghq.com, datadoghq.eu)")
	rootCmd.PersistentFlags().StringVar(&transport, "transport", "",
		"Transport target (native, gateway)")
	rootCmd.PersistentFlags().BoolVar(&agentMode, "agent", false,
		"Wrap output in a machine-readable envelope")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug logging")
}

// initRuntime loads configuration and applies flag overrides. Flags win
// over environment variables, which win over the config file.
func initRuntime(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	if cmd.Flags().Changed("output") {
		cfg.Output = outputFormat
	}
	if cmd.Flags().Changed("site") {
		cfg.Site = site
	}
	if cmd.Flags().Changed("transport") {
		cfg.Transport = transport
	}
	if agentMode {
		cfg.AgentMode = true
	}
	if debug {
		cfg.Debug = true
	}

	logLevel := "info"
	if cfg.Debug {
		logLevel = "debug"
	}
	util.InitLogger(logLevel, "")

	return nil
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func newDispatcher() (*api.Dispatcher, error) {
	return api.NewDispatcher(cfg)
}

// render formats a raw response body per the configured output settings.
func render(body []byte) error {
	f, err := formatter.New(cfg.Output, cfg.AgentMode)
	if err != nil {
		return err
	}
	return f.Format(body)
}
