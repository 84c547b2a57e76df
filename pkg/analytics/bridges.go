package analytics

import (
	"slices"

	"github.com/matzehuels/graphscape/pkg/graph"
)

// bridges finds all bridge links (links whose removal disconnects their
// component) using Tarjan's low-link DFS over the undirected projection.
//
// Parallel links between the same endpoints are never bridges, and self
// loops are skipped. The returned link IDs are sorted.
func bridges(d *graph.Data) []string {
	idx := d.NodeIndex()
	n := len(d.Nodes)
	if n == 0 {
		return nil
	}

	type edge struct {
		to   int
		link int // index into d.Links
	}
	adj := make([][]edge, n)
	for li, l := range d.Links {
		a, okA := idx[l.Source]
		b, okB := idx[l.Target]
		if !okA || !okB || a == b {
			continue
		}
		adj[a] = append(adj[a], edge{to: b, link: li})
		adj[b] = append(adj[b], edge{to: a, link: li})
	}

	disc := make([]int, n)  // discovery time, 0 = unvisited
	low := make([]int, n)   // lowest discovery time reachable
	timer := 0
	var out []string

	// Iterative DFS so deep graphs cannot blow the stack. Each frame
	// remembers which adjacency entry to resume at and the edge used to
	// enter the node, so a bridge's parallel twin still provides a back
	// path.
	type frame struct {
		node   int
		inEdge int // link index used to reach node, -1 at roots
		next   int // next adjacency entry to visit
	}

	for root := 0; root < n; root++ {
		if disc[root] != 0 {
			continue
		}
		timer++
		disc[root] = timer
		low[root] = timer
		stack := []frame{{node: root, inEdge: -1}}

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			if f.next < len(adj[f.node]) {
				e := adj[f.node][f.next]
				f.next++
				if e.link == f.inEdge {
					continue
				}
				if disc[e.to] != 0 {
					low[f.node] = min(low[f.node], disc[e.to])
					continue
				}
				timer++
				disc[e.to] = timer
				low[e.to] = timer
				stack = append(stack, frame{node: e.to, inEdge: e.link})
				continue
			}

			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				parent := &stack[len(stack)-1]
				parent.next-- // re-read the edge we just returned from
				e := adj[parent.node][parent.next]
				parent.next++
				low[parent.node] = min(low[parent.node], low[f.node])
				if low[f.node] > disc[parent.node] {
					out = append(out, d.Links[e.link].ID)
				}
			}
		}
	}

	slices.Sort(out)
	return out
}

// weightedBridges reports links heavier than WeightedBridgeThreshold.
// Kept as a display heuristic alongside the structural bridge detection.
func weightedBridges(d *graph.Data) []string {
	var out []string
	for _, l := range d.Links {
		if l.Weight > WeightedBridgeThreshold {
			out = append(out, l.ID)
		}
	}
	slices.Sort(out)
	return out
}
