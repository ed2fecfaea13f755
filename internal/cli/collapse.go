package cli

import (
	"github.com/spf13/cobra"
)

func (c *CLI) collapseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collapse",
		Short: "Fold and unfold topics and subtopics",
	}

	cmd.AddCommand(c.collapseToggleCommand())
	cmd.AddCommand(c.collapseAllCommand("expand-all", "Open every topic and subtopic", true))
	cmd.AddCommand(c.collapseAllCommand("collapse-all", "Close every topic and subtopic", false))

	return cmd
}

func (c *CLI) collapseToggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <node-id> [hierarchy]",
		Short: "Open or close one topic or subtopic",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openWorkspace(cmd, args[1:])
			if err != nil {
				return err
			}
			defer ws.Close()

			collapsed, err := ws.sess.ToggleCollapsed(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if collapsed {
				printSuccess("%s %s collapsed", iconClosed, StyleHighlight.Render(args[0]))
			} else {
				printSuccess("%s %s expanded", iconOpen, StyleHighlight.Render(args[0]))
			}
			return nil
		},
	}
}

func (c *CLI) collapseAllCommand(use, short string, open bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [hierarchy]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openWorkspace(cmd, args)
			if err != nil {
				return err
			}
			defer ws.Close()

			ws.sess.ExpandAll(cmd.Context(), open)
			word := "Collapsed"
			if open {
				word = "Expanded"
			}
			printSuccess("%s %d topics and subtopics", word, len(ws.sess.Collapsed()))
			return nil
		},
	}
}
