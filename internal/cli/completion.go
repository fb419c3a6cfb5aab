package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/pipeline"
	"github.com/matzehuels/arbor/pkg/render/styles"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for arbor.

Besides command names, the scripts complete flag values: render --format,
--style and --expand, explore --style and --expand, and tree documents
(.json, .yaml, .yml) as the file argument of render, explore and info.

To load completions:

Bash:
  $ source <(arbor completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ arbor completion bash > /etc/bash_completion.d/arbor
  # macOS:
  $ arbor completion bash > $(brew --prefix)/etc/bash_completion.d/arbor

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ arbor completion zsh > "${fpath[1]}/_arbor"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ arbor completion fish | source

  # To load completions for each session, execute once:
  $ arbor completion fish > ~/.config/fish/completions/arbor.fish

PowerShell:
  PS> arbor completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> arbor completion powershell > arbor.ps1
  # and source this file from your PowerShell profile.
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

var expansionModes = []string{pipeline.ExpandDocument, pipeline.ExpandAll, pipeline.ExpandNone}

// documentArgs completes the single tree document argument.
func documentArgs(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json", "yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
}

func fixedValues(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// registerCompletions attaches value completions to the flags of cmd that
// take one of a fixed set of values.
func registerCompletions(cmd *cobra.Command) {
	cmd.ValidArgsFunction = documentArgs
	for name, values := range map[string][]string{
		"format": pipeline.Formats,
		"style":  styles.Names(),
		"expand": expansionModes,
	} {
		if cmd.Flags().Lookup(name) != nil {
			_ = cmd.RegisterFlagCompletionFunc(name, fixedValues(values))
		}
	}
}
