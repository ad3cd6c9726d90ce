package cmd

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arlink/cli/pkg/arweave"
	"github.com/arlink/cli/pkg/util"
)

// WalletCmd handles wallet session operations independent of cobra.
// The loader and session store are injected so tests run against fakes.
type WalletCmd struct {
	load    func(path string) (*arweave.KeyfileWallet, error)
	save    func(arweave.Session) error
	current func() (arweave.Session, bool)
	clear   func() error
}

func newWalletCmd() WalletCmd {
	return WalletCmd{
		load:    arweave.LoadKeyfile,
		save:    arweave.SaveSession,
		current: arweave.CurrentSession,
		clear:   arweave.ClearSession,
	}
}

type WalletConnectInput struct {
	Keyfile string
	Output  string
}

// Connect loads the keyfile, requests address and signing permission,
// and persists the session for silent reconnection.
func (c WalletCmd) Connect(ctx context.Context, in WalletConnectInput) error {
	wallet, err := c.load(in.Keyfile)
	if err != nil {
		return friendlyError(err)
	}
	if err := wallet.Connect(ctx, []string{arweave.PermAccessAddress, arweave.PermSignTransaction}); err != nil {
		return friendlyError(err)
	}
	address, err := wallet.ActiveAddress(ctx)
	if err != nil {
		return friendlyError(err)
	}

	sess := arweave.Session{Address: address, Keyfile: in.Keyfile}
	if err := c.save(sess); err != nil {
		return friendlyError(err)
	}

	if in.Output == "json" {
		return util.PrintPrettyJSON(sess)
	}

	pterm.Success.Println("Wallet connected")
	PrintTableNoPad(pterm.TableData{
		{"Property", "Value"},
		{"Address", address},
		{"Keyfile", in.Keyfile},
	}, true)
	return nil
}

type WalletAddressInput struct {
	Output string
}

// Address prints the active session address. Best-effort: a missing
// session is reported, never an error, and nothing prompts.
func (c WalletCmd) Address(ctx context.Context, in WalletAddressInput) error {
	sess, ok := c.current()
	if !ok {
		pterm.Info.Println("No wallet connected")
		return nil
	}
	if in.Output == "json" {
		return util.PrintPrettyJSON(sess)
	}
	pterm.Printf("%s\n", sess.Address)
	return nil
}

// Disconnect forgets the stored session.
func (c WalletCmd) Disconnect(ctx context.Context) error {
	if err := c.clear(); err != nil {
		return err
	}
	pterm.Success.Println("Wallet disconnected")
	return nil
}

// --- Cobra wiring ---

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage the connected Arweave wallet",
}

var walletConnectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect a wallet from an Arweave keyfile",
	Long:  "Load an Arweave JWK keyfile, derive its address, and remember it for later commands",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		keyfile, _ := cmd.Flags().GetString("keyfile")
		output, _ := cmd.Flags().GetString("output")
		return newWalletCmd().Connect(cmd.Context(), WalletConnectInput{Keyfile: keyfile, Output: output})
	},
}

var walletAddressCmd = &cobra.Command{
	Use:   "address",
	Short: "Print the connected wallet address",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		return newWalletCmd().Address(cmd.Context(), WalletAddressInput{Output: output})
	},
}

var walletDisconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Forget the connected wallet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newWalletCmd().Disconnect(cmd.Context())
	},
}

func init() {
	walletConnectCmd.Flags().String("keyfile", "", "Path to the Arweave JWK keyfile (required)")
	walletConnectCmd.Flags().StringP("output", "o", "", "Output format (json)")
	_ = walletConnectCmd.MarkFlagRequired("keyfile")

	walletAddressCmd.Flags().StringP("output", "o", "", "Output format (json)")

	walletCmd.AddCommand(walletConnectCmd)
	walletCmd.AddCommand(walletAddressCmd)
	walletCmd.AddCommand(walletDisconnectCmd)
	rootCmd.AddCommand(walletCmd)
}
