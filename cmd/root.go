package cmd

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/arlink/cli/pkg/arns"
	"github.com/arlink/cli/pkg/arweave"
)

// version is injected at build time via ldflags.
var version = "dev"

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

var rootCmd = &cobra.Command{
	Use:   "arlink",
	Short: "Point your ArNS name at permaweb content",
	Long: `arlink connects an Arweave wallet, lists the ArNS names it owns,
and repoints a name (or one of its undernames) at a transaction id
extracted from a permaweb URL.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A .env next to the binary is a convenience for local use;
		// absence is not an error.
		_ = godotenv.Load()
		bindEnvFlags(cmd)

		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		}
		return nil
	},
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

// Root exposes the command tree to the fang runner in main.
func Root() *cobra.Command {
	return rootCmd
}

// bindEnvFlags backfills unset flags from ARLINK_<FLAG> environment
// variables, so every flag is scriptable without repeating it.
func bindEnvFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}
		envName := "ARLINK_" + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
		if v, ok := os.LookupEnv(envName); ok {
			_ = cmd.Flags().Set(f.Name, v)
		}
	})
}

// getGateway builds the gateway client from the environment.
func getGateway() (*arns.Gateway, arns.Config, error) {
	cfg, err := arns.LoadConfig()
	if err != nil {
		return nil, arns.Config{}, err
	}
	return arns.NewGateway(cfg, log), cfg, nil
}

// sessionWallet reattaches to the wallet of the stored session.
func sessionWallet() (*arweave.KeyfileWallet, error) {
	sess, ok := arweave.CurrentSession()
	if !ok {
		return nil, arweave.ErrWalletUnavailable
	}
	return arweave.LoadKeyfile(sess.Keyfile)
}
