package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/netchart/pkg/layout"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand prints a completion script. Graph and style arguments
// complete as file paths; --layout completes from the layout names.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for netchart and print it to stdout.

  $ source <(netchart completion bash)
  $ netchart completion zsh > "${fpath[1]}/_netchart"
  $ netchart completion fish > ~/.config/fish/completions/netchart.fish
  PS> netchart completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

const layoutUsage = "layout: force (default), circular, neato, fdp, sfdp, circo, twopi, dot"

// layoutFlag registers -l/--layout with completion over the layout names.
func layoutFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "layout", "l", "", layoutUsage)
	_ = cmd.RegisterFlagCompletionFunc("layout", cobra.FixedCompletions(layout.Names, cobra.ShellCompDirectiveNoFileComp))
}
