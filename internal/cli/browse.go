package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [hierarchy]",
		Short: "Browse the outline interactively and mark cards as known",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openWorkspace(cmd, args)
			if err != nil {
				return err
			}
			defer ws.Close()

			model := NewBrowseModel(cmd.Context(), ws.sess, ws.title())
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(BrowseModel); ok {
				printSuccess("%s  %s", ws.title(), progressPill(m.sess.Overall()))
			}
			return nil
		},
	}
}
