package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for gogdf.

To load completions:

Bash:

  $ source <(gogdf completion bash)

  To load completions for each session, execute once:
  Linux:
    $ gogdf completion bash > /etc/bash_completion.d/gogdf
  macOS:
    $ gogdf completion bash > /usr/local/etc/bash_completion.d/gogdf

Zsh:

  If shell completion is not already enabled in your environment,
  you will need to enable it. You can execute the following once:

  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  To load completions for each session, execute once:
  $ gogdf completion zsh > "${fpath[1]}/_gogdf"

  You will need to start a new shell for this setup to take effect.

Fish:

  $ gogdf completion fish | source

  To load completions for each session, execute once:
  $ gogdf completion fish > ~/.config/fish/completions/gogdf.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		}
		return fmt.Errorf("unsupported shell %q", args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
