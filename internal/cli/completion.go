package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackgantt/pkg/pipeline"
	"github.com/matzehuels/stackgantt/pkg/task"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for stackgantt.

Bash:
  $ source <(stackgantt completion bash)

Zsh:
  $ stackgantt completion zsh > "${fpath[1]}/_stackgantt"

Fish:
  $ stackgantt completion fish | source

PowerShell:
  PS> stackgantt completion powershell | Out-String | Invoke-Expression

View modes (-v) and formats (-f) complete as well.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completeViewModes offers the view mode names.
func completeViewModes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, m := range task.ViewModes() {
		if strings.HasPrefix(strings.ToLower(string(m)), strings.ToLower(toComplete)) {
			out = append(out, string(m))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeFormats offers the formats of both visualization types.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	seen := map[string]bool{}
	var out []string
	for _, viz := range []string{pipeline.VizGantt, pipeline.VizDeps} {
		for _, f := range pipeline.ValidFormats[viz] {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
