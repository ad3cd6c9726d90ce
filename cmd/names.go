package cmd

import (
	"context"
	"sort"

	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/arlink/cli/pkg/arns"
	"github.com/arlink/cli/pkg/arweave"
	"github.com/arlink/cli/pkg/util"
)

// DirectoryService is the subset of the directory lookup that the
// commands use.
type DirectoryService interface {
	OwnedNames(ctx context.Context, owner string) ([]arns.NameRecord, error)
}

// NamesCmd handles name listing independent of cobra.
type NamesCmd struct {
	directory DirectoryService
	address   func() (string, bool)
}

type NamesListInput struct {
	Output string
}

// List prints every ArNS name owned by the connected wallet. The scan
// itself carries no ordering guarantee; rows are sorted here purely for
// display.
func (c NamesCmd) List(ctx context.Context, in NamesListInput) error {
	address, ok := c.address()
	if !ok {
		return friendlyError(arweave.ErrWalletUnavailable)
	}

	names, err := c.directory.OwnedNames(ctx, address)
	if err != nil {
		return friendlyError(err)
	}

	if in.Output == "json" {
		return util.PrintPrettyJSONSlice(names)
	}

	if len(names) == 0 {
		pterm.Info.Printf("No names found for %s\n", address)
		return nil
	}

	sort.Slice(names, func(i, j int) bool { return names[i].Name < names[j].Name })

	rows := pterm.TableData{{"Name", "Contract", "Undername"}}
	rows = append(rows, lo.Map(names, func(n arns.NameRecord, _ int) []string {
		return []string{n.Name, n.ContractID, util.OrDash(n.Undername)}
	})...)
	PrintTableNoPad(rows, true)
	return nil
}

// --- Cobra wiring ---

var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "Inspect ArNS names owned by the connected wallet",
}

var namesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List names owned by the connected wallet",
	Args:  cobra.NoArgs,
	RunE:  runNamesList,
}

func init() {
	namesListCmd.Flags().StringP("output", "o", "", "Output format (json)")
	namesCmd.AddCommand(namesListCmd)
	rootCmd.AddCommand(namesCmd)
}

func runNamesList(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")

	gw, cfg, err := getGateway()
	if err != nil {
		return err
	}
	c := NamesCmd{
		directory: arns.NewDirectory(gw, gw, cfg.OwnerConcurrency, log),
		address:   arweave.CurrentAddress,
	}
	return c.List(cmd.Context(), NamesListInput{Output: output})
}
