// Package graph defines the node/link data model shared by every engine in
// graphscape, the mutable [Store] that owns the current graph, and the JSON
// serialization used for import/export.
//
// # Data Model
//
// A [Data] value holds nodes, links, and derived summary metadata. Nodes are
// unique by ID. Links reference node IDs; a link whose endpoints were removed
// is dropped during filtering and cascade deletion. Engines (layout,
// clustering, analytics, filter, render) treat Data as a value: they receive
// a graph and return a new one, leaving the input untouched.
//
// # Store
//
// The [Store] is the single mutable graph instance. All mutation primitives
// (AddNode, RemoveNode, AddLink, ...) operate on it, and RemoveNode cascades
// to every incident link. The Store is not safe for concurrent use without
// external synchronization - callers sharing it across goroutines must
// serialize access.
//
// # Serialization
//
// [Marshal], [Unmarshal], [Write], [Read], [WriteFile], and [ReadFile]
// implement the canonical JSON format: top-level "nodes" and "links" arrays
// plus summary "metadata". Export sorts nodes and links by ID so output is
// deterministic; import validates ID uniqueness and drops links whose
// endpoints do not exist.
package graph
