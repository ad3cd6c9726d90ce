package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for arlink.

To load completions:

Bash:
  $ source <(arlink completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ arlink completion bash > /etc/bash_completion.d/arlink
  # macOS:
  $ arlink completion bash > $(brew --prefix)/etc/bash_completion.d/arlink

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ arlink completion zsh > "${fpath[1]}/_arlink"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ arlink completion fish | source

  # To load completions for each session, execute once:
  $ arlink completion fish > ~/.config/fish/completions/arlink.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
