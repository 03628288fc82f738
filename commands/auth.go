package commands

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/datahound/hound/internal/api"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Inspect authentication state",
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which credentials are configured",
	Long: `Show which credentials are configured and which auth method requests
will use. Bearer tokens take precedence over API key pairs; a key pair
with only one half set counts as absent.`,
	RunE: runAuthStatus,
}

func init() {
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	creds := api.CredentialsFrom(cfg)
	mode := creds.Mode()

	status := map[string]any{
		"authenticated": mode != api.AuthNone,
		"method":        mode.String(),
		"site":          cfg.Site,
		"bearer_token":  creds.HasBearer(),
		"api_key_pair":  creds.HasKeyPair(),
	}

	body, err := sonic.Marshal(status)
	if err != nil {
		return fmt.Errorf("encoding auth status: %w", err)
	}
	return render(body)
}
