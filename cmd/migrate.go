package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/browser"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arlink/cli/pkg/arns"
	"github.com/arlink/cli/pkg/arweave"
	"github.com/arlink/cli/pkg/util"
)

// MigrateRunner is the migration executor as the command sees it.
type MigrateRunner interface {
	Run(ctx context.Context, in arns.MigrateInput) (*arns.Result, error)
}

// MigrateCmd handles the migrate flow independent of cobra.
type MigrateCmd struct {
	directory DirectoryService
	runner    MigrateRunner
	address   func() (string, bool)
	open      func(url string) error
}

type MigrateInput struct {
	Name        string
	Undername   string
	URL         string
	Open        bool
	SkipConfirm bool
	Output      string
}

// Run points the selected name at the content behind the permaweb URL.
// One invocation is a single linear attempt; on failure the user
// re-invokes explicitly.
func (c MigrateCmd) Run(ctx context.Context, in MigrateInput) error {
	if !arweave.PermawebURLPattern.MatchString(in.URL) {
		return friendlyError(fmt.Errorf("%w: %q", arns.ErrInvalidURL, in.URL))
	}

	address, ok := c.address()
	if !ok {
		return friendlyError(arweave.ErrWalletUnavailable)
	}

	// The name must be selected from the set the wallet actually owns.
	names, err := c.directory.OwnedNames(ctx, address)
	if err != nil {
		return friendlyError(err)
	}
	var selected *arns.NameRecord
	for i := range names {
		if names[i].Name == in.Name {
			selected = &names[i]
			break
		}
	}
	if selected == nil {
		return fmt.Errorf("wallet %s does not own the name %q", address, in.Name)
	}

	if !in.SkipConfirm {
		target := arns.SiteURL(in.Name, in.Undername)
		pterm.DefaultInteractiveConfirm.DefaultText = fmt.Sprintf("Point %s at %s?", target, in.URL)
		ok, _ := pterm.DefaultInteractiveConfirm.Show()
		if !ok {
			pterm.Info.Println("Migration cancelled")
			return nil
		}
	}

	result, err := c.runner.Run(ctx, arns.MigrateInput{
		ContractID: selected.ContractID,
		Undername:  in.Undername,
		SourceURL:  in.URL,
	})
	if err != nil {
		return friendlyError(err)
	}

	if in.Output == "json" {
		return util.PrintPrettyJSON(result)
	}

	pterm.Success.Printf("Migrated %s\n", in.Name)
	PrintTableNoPad(pterm.TableData{
		{"Property", "Value"},
		{"Resolved URL", result.ResolvedURL},
		{"Update Tx", result.InteractionID},
	}, true)

	if in.Open {
		if err := c.open(result.ResolvedURL); err != nil {
			pterm.Warning.Printf("Could not open browser: %v\n", err)
		}
	}
	return nil
}

// --- Cobra wiring ---

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Point an owned ArNS name at a permaweb URL",
	Long: `Extract the transaction id from a permaweb URL and update the selected
name's ANT contract record to point at it.

Examples:
  arlink migrate --name mysite --url https://abc.arweave.net/<txid>
  arlink migrate --name mysite --undername www --url https://abc.arweave.net/<txid> --open`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().String("name", "", "ArNS name to update (required)")
	migrateCmd.Flags().String("undername", arns.RootUndername, "Undername record to update")
	migrateCmd.Flags().String("url", "", "Permaweb URL of the content (required)")
	migrateCmd.Flags().Bool("open", false, "Open the resolved URL in the browser on success")
	migrateCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")
	migrateCmd.Flags().StringP("output", "o", "", "Output format (json)")
	_ = migrateCmd.MarkFlagRequired("name")
	_ = migrateCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	undername, _ := cmd.Flags().GetString("undername")
	url, _ := cmd.Flags().GetString("url")
	open, _ := cmd.Flags().GetBool("open")
	yes, _ := cmd.Flags().GetBool("yes")
	output, _ := cmd.Flags().GetString("output")

	gw, cfg, err := getGateway()
	if err != nil {
		return err
	}
	wallet, err := sessionWallet()
	if err != nil {
		return friendlyError(err)
	}

	// The spinner starts on the first executor step so it does not fight
	// the confirmation prompt.
	var spinner *pterm.SpinnerPrinter
	spin := func(text string) {
		if spinner == nil {
			spinner, _ = pterm.DefaultSpinner.Start(text)
			return
		}
		spinner.UpdateText(text)
	}
	migrator := &arns.Migrator{
		Registry: gw,
		Contracts: func(contractID string) arns.RecordSetter {
			return arns.NewANT(gw, wallet, contractID)
		},
		Wallet:  wallet,
		TTL:     cfg.RecordTTL,
		Version: version,
		Log:     log,
		OnStep: func(s arns.Step) {
			switch s {
			case arns.StepValidating:
				spin("Validating permaweb URL...")
			case arns.StepSubmitting:
				spin("Submitting record update...")
			case arns.StepResolving:
				spin("Resolving name...")
			case arns.StepDone:
				spinner.Success("Record updated")
			case arns.StepFailed:
				spinner.Fail("Migration failed")
			}
		},
	}

	c := MigrateCmd{
		directory: arns.NewDirectory(gw, gw, cfg.OwnerConcurrency, log),
		runner:    migrator,
		address:   arweave.CurrentAddress,
		open:      browser.OpenURL,
	}
	return c.Run(cmd.Context(), MigrateInput{
		Name:        name,
		Undername:   undername,
		URL:         url,
		Open:        open,
		SkipConfirm: yes,
		Output:      output,
	})
}
