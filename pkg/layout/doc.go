// Package layout computes deterministic 2-D positions for a concept tree.
//
// # Views
//
// Five strategies share one input (the built tree plus collapse state) and
// one output shape ([Result]):
//
//   - [ViewOutline]: indented list, one row per visible node
//   - [ViewTree]: tidy left-to-right columns, one column per depth
//   - [ViewTrunk]: bottom-up organic tree with jittered Bezier branches
//   - [ViewInfographic]: fixed-shape radial overview (decorative)
//   - [ViewCanopy]: one trunk with a leaf per subtopic
//
// [Compute] selects the strategy from a [View].
//
// # Reproducible Randomness
//
// Every curve bend comes from [SeededJitter] seeded with a hash of node ids:
//
//	seed := layout.HashPair(parent.ID, child.ID)
//	dx := layout.SeededJitter(seed+1, 80)
//
// The same ids always yield the same offsets, so identical input produces
// byte-identical coordinates and path strings.
package layout
