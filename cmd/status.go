package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arlink/cli/pkg/util"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the configured ArNS gateway",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringP("output", "o", "", "Output format (json)")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")

	gw, cfg, err := getGateway()
	if err != nil {
		return err
	}

	info, err := gw.Info(cmd.Context())
	if err != nil {
		pterm.Error.Printf("Could not reach gateway %s\n", cfg.GatewayURL)
		return fmt.Errorf("gateway status check failed: %w", err)
	}

	if output == "json" {
		return util.PrintPrettyJSON(info)
	}

	pterm.Success.Printf("Gateway %s is reachable\n", cfg.GatewayURL)
	PrintTableNoPad(pterm.TableData{
		{"Property", "Value"},
		{"Network", info.Network},
		{"Height", fmt.Sprintf("%d", info.Height)},
		{"Peers", fmt.Sprintf("%d", info.Peers)},
		{"Registry", cfg.RegistryID},
	}, true)
	return nil
}
