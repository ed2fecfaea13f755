package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/conceptmap/pkg/engine"
	"github.com/matzehuels/conceptmap/pkg/errors"
	"github.com/matzehuels/conceptmap/pkg/render/dot"
	"github.com/matzehuels/conceptmap/pkg/render/sink"
)

// Output formats accepted by render.
const (
	formatSVG      = "svg"      // built-in SVG sink
	formatPNG      = "png"      // built-in raster sink
	formatJSON     = "json"     // renderer boundary, same as `layout`
	formatDOT      = "dot"      // Graphviz source of the visible tree
	formatGraphviz = "graphviz" // SVG laid out by Graphviz
)

var validFormats = map[string]bool{
	formatSVG: true, formatPNG: true, formatJSON: true, formatDOT: true, formatGraphviz: true,
}

// extensions maps a format to its file extension.
var extensions = map[string]string{
	formatSVG: "svg", formatPNG: "png", formatJSON: "json", formatDOT: "dot", formatGraphviz: "svg",
}

type renderOpts struct {
	view    viewFlags
	output  string
	formats []string
	scale   float64
}

func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: 1}

	cmd := &cobra.Command{
		Use:   "render [hierarchy]",
		Short: "Draw a view to SVG, PNG, JSON or Graphviz",
		Long: `Draw a view of the concept map.

Formats (comma-separated with -f):
  svg       built-in SVG drawing (default)
  png       raster image
  json      positioned nodes, links and progress
  dot       Graphviz DOT source of the visible tree
  graphviz  SVG laid out by Graphviz

With one format and no -o the result goes to stdout. With several formats -o is
a base path and each file gets its own extension.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			ws, err := c.openWorkspace(cmd, args)
			if err != nil {
				return err
			}
			defer ws.Close()
			return runRender(cmd, ws, &opts)
		},
	}

	opts.view.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (one format) or base path (several)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json, dot, graphviz")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG pixel scale")
	_ = cmd.RegisterFlagCompletionFunc("format", completeRenderFormats)

	return cmd
}

// parseFormats splits the --format flag. Empty means svg.
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return parts
}

func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be svg, png, json, dot or graphviz)", f)
		}
	}
	return nil
}

// basePath strips a known extension from output, or derives a name from input.
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return sampleMapID
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if validFormats[ext] {
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}

// outputPath names the file for format when several formats are written.
// svg and graphviz would collide, so graphviz gets a suffix.
func outputPath(base, format string) string {
	if format == formatGraphviz {
		return base + ".graphviz." + extensions[format]
	}
	return base + "." + extensions[format]
}

func runRender(cmd *cobra.Command, ws *workspace, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	snap, err := opts.view.snapshot(cmd, ws)
	if err != nil {
		return err
	}
	logger.Debugf("%s: %d nodes, %d links", snap.View, len(snap.Nodes), len(snap.Links))

	if len(opts.formats) == 1 {
		data, err := renderFormat(ctx, ws, snap, opts.formats[0], opts)
		if err != nil {
			return err
		}
		if err := writeOutput(opts.output, data); err != nil {
			return err
		}
		if opts.output != "" && opts.output != "-" {
			printFile(opts.output)
			printStats(string(snap.View), len(snap.Nodes), len(snap.Links))
		}
		return nil
	}

	base := basePath(opts.output, ws.path)
	for _, format := range opts.formats {
		data, err := renderFormat(ctx, ws, snap, format, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
		path := outputPath(base, format)
		if err := writeOutput(path, data); err != nil {
			return err
		}
		logger.Debugf("Wrote %d bytes", len(data))
		printFile(path)
	}
	printStats(string(snap.View), len(snap.Nodes), len(snap.Links))
	return nil
}

func renderFormat(ctx context.Context, ws *workspace, snap *engine.Snapshot, format string, opts *renderOpts) ([]byte, error) {
	switch format {
	case formatSVG:
		return sink.RenderSVG(snap.Result,
			sink.WithProgress(snap.Progress),
			sink.WithKnown(snap.Known),
			sink.WithTitle(ws.title()),
		), nil
	case formatPNG:
		return sink.RenderPNG(snap.Result,
			sink.WithPNGProgress(snap.Progress),
			sink.WithPNGKnown(snap.Known),
			sink.WithScale(opts.scale),
		)
	case formatJSON:
		return sink.RenderJSON(snap.Result,
			sink.WithJSONMapID(snap.MapID),
			sink.WithJSONProgress(snap.Progress, snap.Overall),
			sink.WithJSONKnown(snap.Known),
			sink.WithJSONIndent(),
		)
	case formatDOT, formatGraphviz:
		src := dot.ToDOT(ws.sess.Roots(), dot.Options{
			Report:      &snap.Progress,
			Known:       snap.Known,
			IsCollapsed: ws.sess.IsCollapsed,
		})
		if format == formatDOT {
			return []byte(src), nil
		}
		var out []byte
		err := withSpinner(ctx, "Running Graphviz...", func(ctx context.Context) error {
			var err error
			out, err = dot.RenderSVG(ctx, src)
			return err
		})
		return out, err
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
}
