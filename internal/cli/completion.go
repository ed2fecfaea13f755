package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/conceptmap/pkg/hierarchy"
	"github.com/matzehuels/conceptmap/pkg/layout"
)

// hierarchyExts are offered when completing a [hierarchy] argument.
var hierarchyExts = []string{"json", "yaml", "yml", "toml"}

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for conceptmap.

Completion covers subcommands, --view and --format values, hierarchy
files, and the card or node ids of the built-in sample map.

  $ source <(conceptmap completion bash)
  $ conceptmap completion zsh > "${fpath[1]}/_conceptmap"
  $ conceptmap completion fish | source
  PS> conceptmap completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(os.Stdout, true)
			case "zsh":
				return root.GenZshCompletion(os.Stdout)
			case "fish":
				return root.GenFishCompletion(os.Stdout, true)
			default:
				return root.GenPowerShellCompletionWithDesc(os.Stdout)
			}
		},
	}
}

// registerCompletions attaches argument completion to every command below
// root. Commands whose first argument is an id complete ids from the
// sample; everything else that takes [hierarchy] completes files.
func registerCompletions(root *cobra.Command) {
	for _, cmd := range root.Commands() {
		registerCompletions(cmd)
		if cmd.ValidArgsFunction != nil || !strings.Contains(cmd.Use, "[hierarchy]") {
			continue
		}
		switch {
		case strings.Contains(cmd.Use, "<card-id>"):
			cmd.ValidArgsFunction = completeIDs(hierarchy.Hierarchy.CardIDs)
		case strings.Contains(cmd.Use, "<node-id>"):
			cmd.ValidArgsFunction = completeIDs(hierarchy.Hierarchy.ContainerIDs)
		default:
			cmd.ValidArgsFunction = completeHierarchyFile
		}
	}
}

func completeHierarchyFile(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return hierarchyExts, cobra.ShellCompDirectiveFilterFileExt
}

// completeIDs completes the leading id argument, then the hierarchy file.
// known set takes a boolean between the two.
func completeIDs(ids func(hierarchy.Hierarchy) []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		switch {
		case len(args) == 0:
			return filterPrefix(ids(hierarchy.Sample().Topics), toComplete), cobra.ShellCompDirectiveNoFileComp
		case len(args) == 1 && strings.Contains(cmd.Use, "<true|false>"):
			return []string{"true", "false"}, cobra.ShellCompDirectiveNoFileComp
		default:
			return completeHierarchyFile(cmd, nil, toComplete)
		}
	}
}

func completeViews(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, len(layout.Views))
	for i, v := range layout.Views {
		names[i] = string(v)
	}
	return filterPrefix(names, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func completeRenderFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Comma-separated lists complete their last element.
	head, last := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		head, last = toComplete[:i+1], toComplete[i+1:]
	}
	var out []string
	for _, f := range []string{formatSVG, formatPNG, formatJSON, formatDOT, formatGraphviz} {
		if strings.HasPrefix(f, last) {
			out = append(out, head+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

func filterPrefix(items []string, prefix string) []string {
	var out []string
	for _, s := range items {
		if strings.HasPrefix(s, prefix) {
			out = append(out, s)
		}
	}
	return out
}
