// Package sink renders a computed [layout.Result] to an output format.
//
// # Formats
//
//   - SVG: vector output built with svgo, one group per node
//   - PNG: raster output drawn with gg and the basic bitmap font
//   - JSON: the layout and progress data for external renderers
//
// All sinks colour nodes by progress: cards by their known flag, topics and
// subtopics by the [progress.Level] of their known/total pair, and radial
// nodes by their decorative progress value.
//
// Basic usage:
//
//	svg := sink.RenderSVG(snap.Result,
//	    sink.WithProgress(snap.Progress),
//	    sink.WithKnown(snap.Known),
//	    sink.WithTitle("Respiratory"),
//	)
package sink
