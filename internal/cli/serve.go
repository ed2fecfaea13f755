package cli

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/conceptmap/pkg/hierarchy"
	"github.com/matzehuels/conceptmap/pkg/layout"
	"github.com/matzehuels/conceptmap/pkg/server"
	"github.com/matzehuels/conceptmap/pkg/watch"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		watchFile bool
		metrics   bool
	)

	cmd := &cobra.Command{
		Use:   "serve [hierarchy]",
		Short: "Serve layouts and progress over HTTP",
		Long: `Serve layouts and progress over HTTP for an external renderer.

Every map id gets its own known and collapsed state; the hierarchy is shared.
With --watch the hierarchy file is reloaded when it changes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			doc, err := loadDocument(path)
			if err != nil {
				return err
			}
			st, err := c.openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			opts := server.Options{
				Addr:          cfg.Server.Addr,
				CORSOrigins:   cfg.Server.CORSOrigins,
				Namespace:     cfg.Namespace,
				StartExpanded: cfg.StartExpanded,
				DefaultView:   layout.View(cfg.View),
				Width:         cfg.Viewport.Width,
				Height:        cfg.Viewport.Height,
				Logger:        logger,
			}
			if metrics {
				m := server.NewMetrics(appName)
				m.Install()
				opts.Metrics = m
			}
			srv := server.New(doc, st, opts)

			printInfo("Serving %s on %s", StyleHighlight.Render(titleOf(doc, path)), StyleValue.Render(cfg.Server.Addr))

			var w *watch.Watcher
			if watchFile && path == "" {
				printWarning("--watch needs a hierarchy file; serving the built-in sample without reload")
			}
			if watchFile && path != "" {
				if w, err = watch.New(path, watch.WithLogger(logger)); err != nil {
					return err
				}
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return srv.ListenAndServe(gctx) })
			if w != nil {
				g.Go(func() error {
					return w.Run(gctx, func(ctx context.Context, doc hierarchy.Document) {
						srv.Reload(ctx, doc)
					})
				})
			}
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "reload the hierarchy file when it changes")
	cmd.Flags().BoolVar(&metrics, "metrics", true, "expose Prometheus metrics on /metrics")

	return cmd
}

func titleOf(doc hierarchy.Document, path string) string {
	switch {
	case doc.Title != "":
		return doc.Title
	case path != "":
		return path
	default:
		return "sample"
	}
}
