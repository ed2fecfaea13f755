// Package pkg provides the libraries behind the conceptmap study tool.
//
// # Overview
//
// Conceptmap lays out a topic → subtopic → card hierarchy as a concept map
// and tracks which cards a learner knows. The data flow:
//
//	hierarchy file or value
//	         ↓
//	    [hierarchy] (decode, sample, duplicate report)
//	         ↓
//	    [tree] (three-level tree, pruned by collapse state)
//	         ↓
//	    [layout] (outline, tree, trunk, infographic, canopy)
//	         ↓
//	    [render/sink], [render/dot], or an external renderer
//
// engine ties these together for one map: it owns the known and collapsed
// sets, persisted through store, and returns an engine.Snapshot of
// {nodes, links, progress} for any view.
//
// # Quick Start
//
//	s := store.New(store.NewMemoryBackend())
//	sess, _ := engine.Open(ctx, hierarchy.Sample().Topics, s, engine.Options{MapID: "demo"})
//
//	sess.ToggleCollapsed(ctx, "anatomy")
//	sess.ToggleKnown(ctx, "larynx")
//
//	snap, _ := sess.Layout(ctx, layout.ViewTree, 1200, 720)
//	svg := sink.RenderSVG(snap.Result, sink.WithProgress(snap.Progress), sink.WithKnown(snap.Known))
//
// # Main Packages
//
// hierarchy - Card, Subtopic, Topic types; JSON, YAML and TOML codecs.
//
// tree - Tree building, pruning and walking.
//
// progress - Known/total aggregation per subtopic and topic.
//
// state - Known and collapsed sets with write-through persistence.
//
// store - JSON key-value store over memory, file, SQLite, Redis or MongoDB.
// Loads fall back and saves are best-effort; neither returns an error.
//
// layout - Deterministic layout strategies and the zoom/pan viewport.
//
// engine - One concept map session.
//
// server - HTTP API over engine sessions, with Prometheus metrics.
//
// watch - Hierarchy file reloading.
//
// observability - Hooks for layout, toggle and store events.
//
// errors - Structured error codes.
package pkg
