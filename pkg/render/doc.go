// Package render bounds the cost of drawing a graph: given a viewport, a
// device profile, and a performance mode it culls off-screen elements and
// aggregates nearby nodes into synthetic cluster markers.
//
// # Pipeline
//
// [Optimizer.Optimize] runs four stages per viewport change:
//
//  1. Derive [CullingThresholds] from the device profile (tier baseline,
//     adjusted by memory, GPU tier, and screen area).
//  2. Pick a clustering level from the node count, the performance
//     multiplier, and the requested mode.
//  3. Cull nodes outside the margin-expanded viewport, tightening the
//     bounds further when the survivors still exceed the node budget.
//  4. Cull links by endpoint visibility and midpoint position, then
//     aggregate surviving nodes into cluster markers when the level
//     calls for it.
//
// The optimizer never re-runs layout or graph clustering; it is cheap
// enough to call on every pan or zoom.
//
// # DOT Export
//
// The [dot] subpackage serializes a graph to Graphviz DOT text for
// external tooling.
//
// [dot]: github.com/matzehuels/graphscape/pkg/render/dot
package render
