// Package pkg provides the core libraries for graphscape graph visualization.
//
// # Overview
//
// Graphscape computes layouts, clusters, analytics, and render optimizations
// for node-link knowledge graphs. The pkg directory is organized into:
//
//  1. [graph] - Graph types, in-memory store, and canonical serialization
//  2. [layout] - Layout algorithms (force, circular, hierarchical, grid, radial)
//  3. [cluster] - Clustering strategies (component, louvain, spectral, kmeans)
//  4. [analytics] - Structural analytics (centrality, bridges, path metrics)
//  5. [filter] - Predicate-based subgraph extraction
//  6. [render] - Viewport culling, cluster aggregation, and DOT export
//  7. [engine] - Facade wiring the store, engines, and cache together
//  8. [server] - HTTP JSON API over the engine
//
// Supporting infrastructure lives in [cache] (pluggable result caching),
// [config] (TOML configuration), [device] (device tier profiles),
// [observability] (hooks), [errors] (coded errors), and [buildinfo].
//
// # Architecture
//
// The typical data flow:
//
//	graph.json document
//	         |
//	    graph.Unmarshal (validate, canonicalize)
//	         |
//	    engine.Engine (store + cache)
//	     /        \
//	layout      cluster         -> positions and labels written back
//	     \        /
//	analytics, filter, render   -> read-only derived views
//
// Expensive results are cached under the graph's content hash, so a cached
// entry can never be served for a graph that has since changed.
package pkg
