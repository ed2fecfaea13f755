// Package render groups the output backends for concept maps.
//
// # Overview
//
// Layouts are computed once by [layout.Compute] and drawn by one of:
//
//   - [sink]: SVG, PNG and JSON output of a positioned [layout.Result]
//   - [dot]: Graphviz DOT of the visible tree, optionally laid out by
//     Graphviz itself
//
// The two differ in who places the nodes. The sinks draw the coordinates
// the layout engine produced, so every view (outline, tree, trunk,
// infographic, canopy) looks the same in the terminal, the browser and a
// saved file. The dot package hands the tree to Graphviz and ignores the
// engine's coordinates.
//
//	snap, _ := sess.Layout(ctx, layout.ViewTrunk, 1200, 720)
//	svg := sink.RenderSVG(snap.Result, sink.WithProgress(snap.Progress))
//
//	src := dot.ToDOT(sess.Roots(), dot.Options{IsCollapsed: sess.IsCollapsed})
//	svg, err := dot.RenderSVG(ctx, src)
//
// [sink]: github.com/matzehuels/conceptmap/pkg/render/sink
// [dot]: github.com/matzehuels/conceptmap/pkg/render/dot
// [layout.Compute]: github.com/matzehuels/conceptmap/pkg/layout.Compute
// [layout.Result]: github.com/matzehuels/conceptmap/pkg/layout.Result
package render
