// Package filter extracts subgraphs by node type, link type, connection
// count, tag, and cluster membership.
//
// Predicates apply in a fixed order: node types first, then link types,
// then connection bounds measured against the link-type-filtered link set,
// then tags, then clusters. Links are dropped whenever either endpoint is
// filtered out, so the result is always a well-formed graph. An empty
// filter returns the graph unchanged.
package filter

import (
	"slices"

	gserrors "github.com/matzehuels/graphscape/pkg/errors"
	"github.com/matzehuels/graphscape/pkg/graph"
)

// Filter describes which parts of a graph to keep. Zero-value fields are
// inactive; MinConnections and MaxConnections are bounds on the number of
// links incident to a node after link-type filtering.
type Filter struct {
	NodeTypes      []graph.NodeType `json:"node_types,omitempty"`
	LinkTypes      []graph.LinkType `json:"link_types,omitempty"`
	MinConnections *int             `json:"min_connections,omitempty"`
	MaxConnections *int             `json:"max_connections,omitempty"`
	Tags           []string         `json:"tags,omitempty"`
	Clusters       []string         `json:"clusters,omitempty"`
}

// IsEmpty reports whether the filter has no active predicates.
func (f *Filter) IsEmpty() bool {
	return len(f.NodeTypes) == 0 &&
		len(f.LinkTypes) == 0 &&
		f.MinConnections == nil &&
		f.MaxConnections == nil &&
		len(f.Tags) == 0 &&
		len(f.Clusters) == 0
}

// Validate checks the filter for unknown types and inconsistent bounds.
func (f *Filter) Validate() error {
	for _, nt := range f.NodeTypes {
		if !graph.ValidNodeTypes[nt] {
			return gserrors.New(gserrors.ErrCodeInvalidFilter, "unknown node type %q", nt)
		}
	}
	for _, lt := range f.LinkTypes {
		if !graph.ValidLinkTypes[lt] {
			return gserrors.New(gserrors.ErrCodeInvalidFilter, "unknown link type %q", lt)
		}
	}
	if f.MinConnections != nil && *f.MinConnections < 0 {
		return gserrors.New(gserrors.ErrCodeInvalidFilter, "min connections %d is negative", *f.MinConnections)
	}
	if f.MaxConnections != nil && *f.MaxConnections < 0 {
		return gserrors.New(gserrors.ErrCodeInvalidFilter, "max connections %d is negative", *f.MaxConnections)
	}
	if f.MinConnections != nil && f.MaxConnections != nil && *f.MinConnections > *f.MaxConnections {
		return gserrors.New(gserrors.ErrCodeInvalidFilter,
			"min connections %d exceeds max connections %d", *f.MinConnections, *f.MaxConnections)
	}
	return nil
}

// Apply returns the subgraph of d matching f. The input graph is never
// mutated.
func Apply(d graph.Data, f Filter) (graph.Data, error) {
	if err := f.Validate(); err != nil {
		return graph.Data{}, err
	}
	out := d.Clone()
	if f.IsEmpty() {
		return out, nil
	}

	// 1. Node types.
	if len(f.NodeTypes) > 0 {
		out.Nodes = keepNodes(out.Nodes, func(n graph.Node) bool {
			return slices.Contains(f.NodeTypes, n.Type)
		})
	}

	// 2. Link types, plus links orphaned by step 1.
	present := idSet(out.Nodes)
	out.Links = keepLinks(out.Links, func(l graph.Link) bool {
		if !present[l.Source] || !present[l.Target] {
			return false
		}
		return len(f.LinkTypes) == 0 || slices.Contains(f.LinkTypes, l.Type)
	})

	// 3. Connection bounds, counted against the link-type-filtered set.
	if f.MinConnections != nil || f.MaxConnections != nil {
		counts := make(map[string]int, len(out.Nodes))
		for _, l := range out.Links {
			counts[l.Source]++
			counts[l.Target]++
		}
		out.Nodes = keepNodes(out.Nodes, func(n graph.Node) bool {
			c := counts[n.ID]
			if f.MinConnections != nil && c < *f.MinConnections {
				return false
			}
			if f.MaxConnections != nil && c > *f.MaxConnections {
				return false
			}
			return true
		})
	}

	// 4. Tags: keep nodes carrying at least one requested tag.
	if len(f.Tags) > 0 {
		out.Nodes = keepNodes(out.Nodes, func(n graph.Node) bool {
			for _, tag := range n.Metadata.Tags {
				if slices.Contains(f.Tags, tag) {
					return true
				}
			}
			return false
		})
	}

	// 5. Clusters.
	if len(f.Clusters) > 0 {
		out.Nodes = keepNodes(out.Nodes, func(n graph.Node) bool {
			return slices.Contains(f.Clusters, n.Cluster)
		})
	}

	// Drop links orphaned by steps 3 to 5.
	present = idSet(out.Nodes)
	out.Links = keepLinks(out.Links, func(l graph.Link) bool {
		return present[l.Source] && present[l.Target]
	})

	out.Finalize()
	return out, nil
}

func keepNodes(nodes []graph.Node, pred func(graph.Node) bool) []graph.Node {
	out := nodes[:0]
	for _, n := range nodes {
		if pred(n) {
			out = append(out, n)
		}
	}
	return out
}

func keepLinks(links []graph.Link, pred func(graph.Link) bool) []graph.Link {
	out := links[:0]
	for _, l := range links {
		if pred(l) {
			out = append(out, l)
		}
	}
	return out
}

func idSet(nodes []graph.Node) map[string]bool {
	set := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		set[n.ID] = true
	}
	return set
}
