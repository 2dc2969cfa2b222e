package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/anchor/pkg/attribute"
	"github.com/matzehuels/anchor/pkg/grid"
	"github.com/matzehuels/anchor/pkg/overlay"
)

var shells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand prints a shell completion script for the root command.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for anchor and print it to stdout.

Scene arguments complete to .toml files; --packing, --format and
--attributes complete to their known values.`,
		Example: `  source <(anchor completion bash)
  anchor completion zsh > "${fpath[1]}/_anchor"
  anchor completion fish > ~/.config/fish/completions/anchor.fish
  anchor completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             shells,
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

// completeScene completes the single scene file argument.
func completeScene(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
}

func completePacking(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return grid.PackingNames(), cobra.ShellCompDirectiveNoFileComp
}

func completeFormat(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{
		string(overlay.FormatText) + "\tterminal text",
		string(overlay.FormatDOT) + "\tGraphviz source",
		string(overlay.FormatSVG) + "\trendered SVG",
	}, cobra.ShellCompDirectiveNoFileComp
}

// completeAttributes completes the last element of a comma separated list.
func completeAttributes(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
	}
	var out []string
	for _, a := range attribute.All() {
		out = append(out, prefix+a.String())
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
