package graph

import (
	"math"
	"time"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// NodeType classifies a node by the kind of content it represents.
type NodeType string

// Node types.
const (
	NodeNote     NodeType = "note"
	NodeTag      NodeType = "tag"
	NodeUser     NodeType = "user"
	NodeCategory NodeType = "category"
)

// LinkType classifies the relationship a link encodes.
type LinkType string

// Link types.
const (
	LinkReference     LinkType = "reference"
	LinkTag           LinkType = "tag"
	LinkCollaboration LinkType = "collaboration"
	LinkHierarchy     LinkType = "hierarchy"
)

// ValidNodeTypes is the set of supported node types.
var ValidNodeTypes = map[NodeType]bool{
	NodeNote:     true,
	NodeTag:      true,
	NodeUser:     true,
	NodeCategory: true,
}

// ValidLinkTypes is the set of supported link types.
var ValidLinkTypes = map[LinkType]bool{
	LinkReference:     true,
	LinkTag:           true,
	LinkCollaboration: true,
	LinkHierarchy:     true,
}

// =============================================================================
// Position
// =============================================================================

// Position is a 2-D world-space coordinate assigned by a layout algorithm.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the Euclidean distance between two positions.
func (p Position) DistanceTo(o Position) float64 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// =============================================================================
// Node
// =============================================================================

// NodeMetadata carries per-node domain information supplied by the host
// application (note/tag/user layer) and enriched by the engines.
type NodeMetadata struct {
	CreatedAt       time.Time `json:"created_at,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
	ConnectionCount int       `json:"connection_count,omitempty"`
	Importance      float64   `json:"importance,omitempty"` // in [0,1]
}

// Node is a vertex in the visualization graph.
//
// Position is nil until a layout algorithm has run. Cluster holds the label
// assigned by the most recent clustering pass (empty if unclustered).
//
// The cluster-marker fields (IsCluster, ChildNodes, ClusterSize,
// Representative) are only set on synthetic nodes produced by the render
// optimizer, which aggregates nearby nodes into a single marker for scalable
// rendering.
type Node struct {
	ID       string       `json:"id"`
	Label    string       `json:"label,omitempty"`
	Type     NodeType     `json:"type"`
	Position *Position    `json:"position,omitempty"`
	Size     float64      `json:"size,omitempty"`
	Color    string       `json:"color,omitempty"`
	Cluster  string       `json:"cluster,omitempty"`
	Metadata NodeMetadata `json:"metadata,omitempty"`

	// Synthetic cluster-marker fields (render optimizer output only).
	IsCluster      bool     `json:"is_cluster,omitempty"`
	ChildNodes     []string `json:"child_nodes,omitempty"`
	ClusterSize    int      `json:"cluster_size,omitempty"`
	Representative string   `json:"representative,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Clone returns a deep copy of the node.
func (n Node) Clone() Node {
	out := n
	if n.Position != nil {
		p := *n.Position
		out.Position = &p
	}
	if n.Metadata.Tags != nil {
		out.Metadata.Tags = append([]string(nil), n.Metadata.Tags...)
	}
	if n.ChildNodes != nil {
		out.ChildNodes = append([]string(nil), n.ChildNodes...)
	}
	return out
}

// =============================================================================
// Link
// =============================================================================

// LinkMetadata carries per-link domain information.
type LinkMetadata struct {
	CreatedAt     time.Time `json:"created_at,omitempty"`
	Strength      float64   `json:"strength,omitempty"` // in [0,1]
	Bidirectional bool      `json:"bidirectional,omitempty"`
}

// Link is a directed connection between two nodes.
// Weight (>= 0) is both a rendering hint and an analytics signal.
type Link struct {
	ID       string       `json:"id"`
	Source   string       `json:"source"`
	Target   string       `json:"target"`
	Type     LinkType     `json:"type"`
	Weight   float64      `json:"weight,omitempty"`
	Metadata LinkMetadata `json:"metadata,omitempty"`
}

// Touches reports whether the link has the given node as either endpoint.
func (l *Link) Touches(nodeID string) bool {
	return l.Source == nodeID || l.Target == nodeID
}

// =============================================================================
// Data - Graph Value
// =============================================================================

// Metadata summarizes a graph. It is derived data - call [Data.Finalize]
// after structural changes to keep it consistent.
type Metadata struct {
	NodeCount    int     `json:"node_count"`
	LinkCount    int     `json:"link_count"`
	ClusterCount int     `json:"cluster_count,omitempty"`
	Density      float64 `json:"density,omitempty"`
	AvgDegree    float64 `json:"avg_degree,omitempty"`
}

// Data is the node/link graph plus summary metadata. Engines treat Data as
// a value: input graphs are never mutated, new graphs are returned.
type Data struct {
	Nodes    []Node   `json:"nodes"`
	Links    []Link   `json:"links"`
	Metadata Metadata `json:"metadata"`
}

// Clone returns a deep copy of the graph.
func (d Data) Clone() Data {
	out := Data{
		Nodes:    make([]Node, len(d.Nodes)),
		Links:    make([]Link, len(d.Links)),
		Metadata: d.Metadata,
	}
	for i, n := range d.Nodes {
		out.Nodes[i] = n.Clone()
	}
	copy(out.Links, d.Links)
	return out
}

// NodeIndex returns a map from node ID to index in d.Nodes.
func (d *Data) NodeIndex() map[string]int {
	idx := make(map[string]int, len(d.Nodes))
	for i, n := range d.Nodes {
		idx[n.ID] = i
	}
	return idx
}

// Adjacency builds the undirected adjacency list implied by the links.
// Links referencing unknown nodes are skipped.
func (d *Data) Adjacency() map[string][]string {
	idx := d.NodeIndex()
	adj := make(map[string][]string, len(d.Nodes))
	for _, n := range d.Nodes {
		adj[n.ID] = nil
	}
	for _, l := range d.Links {
		if _, ok := idx[l.Source]; !ok {
			continue
		}
		if _, ok := idx[l.Target]; !ok {
			continue
		}
		adj[l.Source] = append(adj[l.Source], l.Target)
		adj[l.Target] = append(adj[l.Target], l.Source)
	}
	return adj
}

// Degrees returns the incident-link count per node (both directions summed).
// Links referencing unknown nodes are skipped.
func (d *Data) Degrees() map[string]int {
	idx := d.NodeIndex()
	deg := make(map[string]int, len(d.Nodes))
	for _, n := range d.Nodes {
		deg[n.ID] = 0
	}
	for _, l := range d.Links {
		if _, ok := idx[l.Source]; !ok {
			continue
		}
		if _, ok := idx[l.Target]; !ok {
			continue
		}
		deg[l.Source]++
		deg[l.Target]++
	}
	return deg
}

// Finalize recomputes the summary metadata from the current nodes and links.
// Density and average degree are guarded against division by zero and are 0
// for degenerate graphs.
func (d *Data) Finalize() {
	d.Metadata.NodeCount = len(d.Nodes)
	d.Metadata.LinkCount = len(d.Links)

	clusters := make(map[string]bool)
	for _, n := range d.Nodes {
		if n.Cluster != "" {
			clusters[n.Cluster] = true
		}
	}
	d.Metadata.ClusterCount = len(clusters)

	n := float64(len(d.Nodes))
	l := float64(len(d.Links))
	if n > 0 {
		d.Metadata.AvgDegree = 2 * l / n
	} else {
		d.Metadata.AvgDegree = 0
	}
	if n > 1 {
		d.Metadata.Density = 2 * l / (n * (n - 1))
	} else {
		d.Metadata.Density = 0
	}
}
