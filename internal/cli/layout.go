package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/conceptmap/internal/config"
	"github.com/matzehuels/conceptmap/pkg/engine"
	"github.com/matzehuels/conceptmap/pkg/layout"
	"github.com/matzehuels/conceptmap/pkg/render/sink"
)

// viewFlags are shared by every command that computes a layout.
type viewFlags struct {
	view   string
	width  float64
	height float64
}

func (v *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&v.view, "view", "V", "", "view: "+layout.ViewNames()+" (default from config)")
	cmd.Flags().Float64Var(&v.width, "width", 0, "viewport width (default from config)")
	cmd.Flags().Float64Var(&v.height, "height", 0, "viewport height (default from config)")
	_ = cmd.RegisterFlagCompletionFunc("view", completeViews)
}

// resolve fills unset flags from cfg.
func (v viewFlags) resolve(cfg config.Config) (layout.View, float64, float64, error) {
	name := v.view
	if name == "" {
		name = cfg.View
	}
	view, err := layout.ParseView(name)
	if err != nil {
		return "", 0, 0, err
	}
	w, h := v.width, v.height
	if w <= 0 {
		w = cfg.Viewport.Width
	}
	if h <= 0 {
		h = cfg.Viewport.Height
	}
	return view, w, h, nil
}

// snapshot computes the requested view for an open workspace.
func (v viewFlags) snapshot(cmd *cobra.Command, ws *workspace) (*engine.Snapshot, error) {
	view, w, h, err := v.resolve(ws.cfg)
	if err != nil {
		return nil, err
	}
	sw := newStopwatch(loggerFromContext(cmd.Context()))
	snap, err := ws.sess.Layout(cmd.Context(), view, w, h)
	if err != nil {
		return nil, err
	}
	sw.done("Laid out " + string(view))
	return snap, nil
}

// layoutCommand prints the renderer boundary: {nodes, links, progress}.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		vf     viewFlags
		output string
		indent bool
	)

	cmd := &cobra.Command{
		Use:   "layout [hierarchy]",
		Short: "Print the positioned nodes, links and progress of a view as JSON",
		Long: `Print the positioned nodes, links and progress of a view as JSON.

The output is what an external renderer draws: one entry per visible node with
x/y in viewport pixels, one link per parent/child pair with an SVG path, and
known/total counts for every topic and subtopic.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openWorkspace(cmd, args)
			if err != nil {
				return err
			}
			defer ws.Close()

			snap, err := vf.snapshot(cmd, ws)
			if err != nil {
				return err
			}
			opts := []sink.JSONOption{
				sink.WithJSONMapID(snap.MapID),
				sink.WithJSONProgress(snap.Progress, snap.Overall),
				sink.WithJSONKnown(snap.Known),
			}
			if indent {
				opts = append(opts, sink.WithJSONIndent())
			}
			data, err := sink.RenderJSON(snap.Result, opts...)
			if err != nil {
				return err
			}
			return writeOutput(output, data)
		},
	}

	vf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&indent, "indent", false, "indent JSON output")

	return cmd
}
