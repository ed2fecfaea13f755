package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/conceptmap/internal/config"
	"github.com/matzehuels/conceptmap/pkg/errors"
	"github.com/matzehuels/conceptmap/pkg/store"
)

// storeCommand manages persisted known and collapsed state.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect or clear persisted progress and collapse state",
	}

	cmd.AddCommand(c.storeInfoCommand())
	cmd.AddCommand(c.storeClearCommand())
	cmd.AddCommand(c.storePathCommand())

	return cmd
}

func (c *CLI) storeInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info [hierarchy]",
		Short: "Show the backend, namespace and keys for a map",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openWorkspace(cmd, args)
			if err != nil {
				return err
			}
			defer ws.Close()

			printKeyValue("Backend", store.Kind(ws.cfg.Store.DSN))
			printKeyValue("Namespace", ws.cfg.Namespace)
			printKeyValue("Map", ws.sess.MapID())
			printKeyValue("Known key", store.Key(ws.cfg.Namespace, store.KnownKey(ws.sess.MapID())))
			printKeyValue("Collapse key", store.Key(ws.cfg.Namespace, store.CollapsedKey(ws.sess.MapID())))
			printKeyValue("Progress", progressPill(ws.sess.Overall()))
			return nil
		},
	}
}

// storeClearCommand deletes both keys of one map.
func (c *CLI) storeClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [hierarchy]",
		Short: "Delete the known and collapsed state of a map",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			mapID, err := c.resolveMapID(path)
			if err != nil {
				return err
			}
			if err := errors.ValidateMapID(mapID); err != nil {
				return err
			}
			st, err := c.openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			st.Delete(ctx, cfg.Namespace, store.KnownKey(mapID))
			st.Delete(ctx, cfg.Namespace, store.CollapsedKey(mapID))
			printSuccess("Cleared state of map %s", StyleHighlight.Render(mapID))
			return nil
		},
	}
}

// storePathCommand prints where file and sqlite stores live by default.
func (c *CLI) storePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the data directory used by the file store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			if dir, ok := strings.CutPrefix(cfg.Store.DSN, "file:"); ok && dir != "" {
				fmt.Println(dir)
				return nil
			}
			dir, err := config.DataDir()
			if err != nil {
				return fmt.Errorf("get data dir: %w", err)
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printDetail("(not created yet)")
			}
			fmt.Println(dir)
			return nil
		},
	}
}
