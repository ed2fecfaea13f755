package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/conceptmap/pkg/hierarchy"
)

func (c *CLI) sampleCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print the built-in respiratory hierarchy",
		Long: `Print the built-in respiratory hierarchy.

Use it as a starting point for your own file:

  conceptmap sample -f yaml > mymap.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := hierarchy.ParseFormat(format)
			if err != nil {
				return err
			}
			return hierarchy.Encode(os.Stdout, hierarchy.Sample(), f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(hierarchy.FormatJSON), "output format: json, yaml, toml")
	return cmd
}
