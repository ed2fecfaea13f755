package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/conceptmap/pkg/errors"
)

func (c *CLI) knownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "known",
		Short: "Mark cards as known or unknown",
	}

	cmd.AddCommand(c.knownToggleCommand())
	cmd.AddCommand(c.knownSetCommand())
	cmd.AddCommand(c.knownResetCommand())
	cmd.AddCommand(c.knownListCommand())

	return cmd
}

func (c *CLI) knownToggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <card-id> [hierarchy]",
		Short: "Flip a card between known and unknown",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openWorkspace(cmd, args[1:])
			if err != nil {
				return err
			}
			defer ws.Close()

			v, err := ws.sess.ToggleKnown(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printKnown(args[0], v)
			printDetail("Overall %s", progressPill(ws.sess.Overall()))
			return nil
		},
	}
}

func (c *CLI) knownSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <card-id> <true|false> [hierarchy]",
		Short: "Set whether a card is known",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseBool(args[1])
			if err != nil {
				return errors.New(errors.ErrCodeInvalidInput, "known must be true or false, got %q", args[1])
			}
			ws, err := c.openWorkspace(cmd, args[2:])
			if err != nil {
				return err
			}
			defer ws.Close()

			if err := ws.sess.SetKnown(cmd.Context(), args[0], value); err != nil {
				return err
			}
			printKnown(args[0], value)
			return nil
		},
	}
}

func (c *CLI) knownResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset [hierarchy]",
		Short: "Forget every known card",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openWorkspace(cmd, args)
			if err != nil {
				return err
			}
			defer ws.Close()

			n := ws.sess.Overall().Known
			ws.sess.ResetProgress(cmd.Context())
			printSuccess("Reset progress (%d cards were known)", n)
			return nil
		},
	}
}

func (c *CLI) knownListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [hierarchy]",
		Short: "List known cards",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openWorkspace(cmd, args)
			if err != nil {
				return err
			}
			defer ws.Close()

			count := 0
			for _, t := range ws.doc.Topics {
				for _, s := range t.Subtopics {
					for _, card := range s.Cards {
						if ws.sess.IsKnown(card.ID) {
							printKeyValue(card.ID, card.Title)
							count++
						}
					}
				}
			}
			if count == 0 {
				printInfo("No cards known yet")
			}
			return nil
		},
	}
}

func printKnown(id string, known bool) {
	if known {
		printSuccess("%s %s is known", iconKnown, StyleHighlight.Render(id))
		return
	}
	printInfo("%s %s is unknown", iconUnknown, StyleHighlight.Render(id))
}
