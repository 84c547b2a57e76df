package cluster

import (
	"fmt"
	"math/rand"

	"github.com/matzehuels/graphscape/pkg/graph"
)

// component labels each connected component of the undirected link adjacency
// as one cluster. Every node reachable from a given node receives the same
// label; disconnected components receive distinct labels.
//
// Labels are assigned in node slice order, so output is deterministic.
type component struct{}

func (component) Name() string { return Component }

func (component) Defaults() Params { return Params{} }

func (component) Execute(d graph.Data, _ Params, _ *rand.Rand) (graph.Data, error) {
	out := d.Clone()
	labels := Components(&out)
	for i := range out.Nodes {
		out.Nodes[i].Cluster = labels[out.Nodes[i].ID]
	}
	return out, nil
}

// Components computes the connected-component partition of the graph's
// undirected link adjacency. It returns a node-ID → component-label map,
// labeling components "c0", "c1", ... in node slice order.
//
// This is also the community structure reported by the analytics engine.
func Components(d *graph.Data) map[string]string {
	adj := d.Adjacency()
	labels := make(map[string]string, len(d.Nodes))
	next := 0

	for _, n := range d.Nodes {
		if _, seen := labels[n.ID]; seen {
			continue
		}
		label := fmt.Sprintf("c%d", next)
		next++

		// BFS flood fill from the first unlabeled node.
		queue := []string{n.ID}
		labels[n.ID] = label
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range adj[cur] {
				if _, seen := labels[nb]; !seen {
					labels[nb] = label
					queue = append(queue, nb)
				}
			}
		}
	}
	return labels
}
