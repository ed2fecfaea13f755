// Package cli implements the conceptmap command-line interface.
//
// # Commands
//
//   - layout: print the {nodes, links, progress} snapshot of a view as JSON
//   - render: draw a view to SVG, PNG, JSON or Graphviz DOT
//   - progress: show known/total per topic and subtopic
//   - known: toggle, set or reset known cards
//   - collapse: toggle, expand or collapse topics and subtopics
//   - browse: interactive outline in the terminal
//   - serve: HTTP API for external renderers
//   - sample: print the built-in hierarchy
//   - store: inspect or clear persisted state
//
// Every command takes an optional hierarchy file (.json, .yaml, .toml).
// Without one the built-in sample is used.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/conceptmap/internal/config"
	"github.com/matzehuels/conceptmap/pkg/buildinfo"
	"github.com/matzehuels/conceptmap/pkg/engine"
	"github.com/matzehuels/conceptmap/pkg/hierarchy"
	"github.com/matzehuels/conceptmap/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	appName = config.AppName

	// sampleMapID keys the state of the built-in sample.
	sampleMapID = "sample"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	storeDSN   string
	namespace  string
	mapID      string
	expanded   bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Conceptmap lays out study hierarchies and tracks what you know",
		Long:         `Conceptmap turns a topic → subtopic → card hierarchy into positioned nodes and links for several views, and remembers which cards you know and which branches you folded.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/conceptmap/config.toml)")
	pf.StringVar(&c.storeDSN, "store", "", "state store: file, file:DIR, memory, null, sqlite:PATH, redis://…, mongodb://…")
	pf.StringVar(&c.namespace, "namespace", "", "key namespace for persisted state")
	pf.StringVar(&c.mapID, "map-id", "", "map id (default derived from the hierarchy file path)")
	pf.BoolVar(&c.expanded, "expanded", false, "start never-seen topics expanded")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.progressCommand())
	root.AddCommand(c.knownCommand())
	root.AddCommand(c.collapseCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.sampleCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.completionCommand())
	registerCompletions(root)

	return root
}

// =============================================================================
// Session Factory
// =============================================================================

// workspace bundles what a command needs to talk to one concept map.
type workspace struct {
	cfg   config.Config
	doc   hierarchy.Document
	path  string
	store *store.Store
	sess  *engine.Session
}

// loadConfig reads the config file and applies flag overrides.
func (c *CLI) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	if c.storeDSN != "" {
		cfg.Store.DSN = c.storeDSN
	}
	if c.namespace != "" {
		cfg.Namespace = c.namespace
	}
	if cmd.Flags().Changed("expanded") {
		cfg.StartExpanded = c.expanded
	}
	return cfg, nil
}

// loadDocument reads path, or returns the sample when path is empty.
func loadDocument(path string) (hierarchy.Document, error) {
	if path == "" {
		return hierarchy.Sample(), nil
	}
	return hierarchy.Load(path)
}

// resolveMapID picks --map-id, the sample id, or one derived from path.
func (c *CLI) resolveMapID(path string) (string, error) {
	switch {
	case c.mapID != "":
		return c.mapID, nil
	case path == "":
		return sampleMapID, nil
	default:
		return engine.MapIDForPath(path)
	}
}

// openStore opens the configured backend. The caller closes it.
func (c *CLI) openStore(ctx context.Context, cfg config.Config) (*store.Store, error) {
	dir, err := config.DataDir()
	if err != nil {
		dir = ""
	}
	kind := store.Kind(cfg.Store.DSN)
	var b store.Backend
	open := func(ctx context.Context) error {
		b, err = store.Open(ctx, cfg.Store.DSN, dir)
		return err
	}
	if kind == store.KindRedis || kind == store.KindMongo {
		err = withSpinner(ctx, "Connecting to "+kind+"...", open)
	} else {
		err = open(ctx)
	}
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("store opened", "kind", kind)
	return store.New(b, store.WithLogger(c.Logger)), nil
}

// openWorkspace loads config, hierarchy and store and opens the session
// for args[0] (or the sample).
func (c *CLI) openWorkspace(cmd *cobra.Command, args []string) (*workspace, error) {
	ctx := cmd.Context()
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	var path string
	if len(args) > 0 {
		path = args[0]
	}
	doc, err := loadDocument(path)
	if err != nil {
		return nil, err
	}
	mapID, err := c.resolveMapID(path)
	if err != nil {
		return nil, err
	}

	st, err := c.openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	sess, err := engine.Open(ctx, doc.Topics, st, engine.Options{
		MapID:         mapID,
		Namespace:     cfg.Namespace,
		StartExpanded: cfg.StartExpanded,
		Logger:        c.Logger,
	})
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return &workspace{cfg: cfg, doc: doc, path: path, store: st, sess: sess}, nil
}

func (w *workspace) Close() error { return w.store.Close() }

// title is the display name of the loaded hierarchy.
func (w *workspace) title() string { return titleOf(w.doc, w.path) }

// writeOutput writes data to path, or stdout when path is empty or "-".
func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
